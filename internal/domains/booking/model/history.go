package model

import (
	"time"
)

const (
	HistoryTableName  = "booking_history"
	HistoryEntityName = "booking_history"

	HistoryFieldID        = "id"
	HistoryFieldBookingID = "booking_id"
	HistoryFieldStatus    = "status"
	HistoryFieldRemarks   = "remarks"
	HistoryFieldActorID   = "actor_id"
	HistoryFieldCreatedAt = "created_at"
)

// History is an append-only audit record. One row per status change,
// including the initial `submitted`; never mutated after insert.
type History struct {
	ID        string    `db:"id"`
	BookingID string    `db:"booking_id"`
	Status    string    `db:"status"`
	Remarks   string    `db:"remarks"`
	ActorID   string    `db:"actor_id"`
	CreatedAt time.Time `db:"created_at"`
}

package model

import (
	"venuedesk/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "venues"
	EntityName = "venue"

	FieldID        = "id"
	FieldName      = "name"
	FieldFloor     = "floor"
	FieldCapacity  = "capacity"
	FieldAmenities = "amenities"
	FieldStatus    = "status"
	FieldActive    = "active"
)

const (
	StatusAvailable   = "available"
	StatusMaintenance = "maintenance"
)

type Venue struct {
	ID        string         `db:"id"`
	Name      string         `db:"name"`
	Floor     string         `db:"floor"`
	Capacity  int            `db:"capacity"`
	Amenities pq.StringArray `db:"amenities"`
	Status    string         `db:"status"`
	Active    bool           `db:"active"`
	model.Metadata
}

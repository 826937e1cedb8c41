package model

import "venuedesk/shared/model"

const (
	TableName  = "booking_feedback"
	EntityName = "feedback"

	FieldID            = "id"
	FieldBookingID     = "booking_id"
	FieldUserID        = "user_id"
	FieldRating        = "rating"
	FieldComments      = "comments"
	FieldAttachmentURL = "attachment_url"
)

// Feedback is submitted by the booking owner after the event took place.
type Feedback struct {
	ID            string  `db:"id"`
	BookingID     string  `db:"booking_id"`
	UserID        string  `db:"user_id"`
	Rating        int     `db:"rating"`
	Comments      string  `db:"comments"`
	AttachmentURL *string `db:"attachment_url"`
	model.Metadata
}

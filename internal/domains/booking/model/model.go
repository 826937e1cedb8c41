package model

import (
	"time"
	"venuedesk/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "venue_bookings"
	EntityName = "booking"

	FieldID                    = "id"
	FieldUserID                = "user_id"
	FieldVenueID               = "venue_id"
	FieldTitle                 = "title"
	FieldDescription           = "description"
	FieldMeetingType           = "meeting_type"
	FieldEventDate             = "event_date"
	FieldStartTime             = "start_time"
	FieldEndTime               = "end_time"
	FieldAttendees             = "attendees"
	FieldDepartment            = "department"
	FieldResources             = "resources"
	FieldSpecialRequirements   = "special_requirements"
	FieldStatus                = "status"
	FieldGDApprovalDate        = "gd_approval_date"
	FieldGDRemarks             = "gd_remarks"
	FieldSecretaryApprovalDate = "secretary_approval_date"
	FieldSecretaryRemarks      = "secretary_remarks"
	FieldITSetupDate           = "it_setup_date"
	FieldITRemarks             = "it_remarks"
)

type Booking struct {
	ID                    string         `db:"id"`
	UserID                string         `db:"user_id"`
	VenueID               string         `db:"venue_id"`
	Title                 string         `db:"title"`
	Description           string         `db:"description"`
	MeetingType           string         `db:"meeting_type"`
	EventDate             time.Time      `db:"event_date"`
	StartTime             time.Time      `db:"start_time"`
	EndTime               time.Time      `db:"end_time"`
	Attendees             int            `db:"attendees"`
	Department            string         `db:"department"`
	Resources             pq.StringArray `db:"resources"`
	SpecialRequirements   string         `db:"special_requirements"`
	Status                string         `db:"status"`
	GDApprovalDate        *time.Time     `db:"gd_approval_date"`
	GDRemarks             *string        `db:"gd_remarks"`
	SecretaryApprovalDate *time.Time     `db:"secretary_approval_date"`
	SecretaryRemarks      *string        `db:"secretary_remarks"`
	ITSetupDate           *time.Time     `db:"it_setup_date"`
	ITRemarks             *string        `db:"it_remarks"`

	// Joined columns. The INNER JOIN means a booking whose user or venue
	// cannot be resolved is excluded from list results.
	UserName  string `db:"user_name"  table:"users"  column:"username"`
	UserEmail string `db:"user_email" table:"users"  column:"email"`
	VenueName string `db:"venue_name" table:"venues" column:"name"`

	model.Metadata
}

func (Booking) GetJoinQuery() string {
	return "JOIN users ON users.id = venue_bookings.user_id JOIN venues ON venues.id = venue_bookings.venue_id"
}

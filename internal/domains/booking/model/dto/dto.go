package dto

import (
	"errors"
	"time"
	"venuedesk/internal/domains/booking/model"
	"venuedesk/internal/domains/booking/workflow"
	"venuedesk/shared"
	"venuedesk/shared/constant"
	gDto "venuedesk/shared/dto"
	gModel "venuedesk/shared/model"
	"venuedesk/shared/timezone"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

var errInvalidTimeRange = errors.New("start_time must be before end_time")

type CreateBookingRequest struct {
	VenueID             string   `json:"venue_id"             validate:"required"`
	Title               string   `json:"title"                validate:"required,max=200"`
	Description         string   `json:"description"          validate:"omitempty"`
	MeetingType         string   `json:"meeting_type"         validate:"omitempty,max=100"`
	EventDate           string   `json:"event_date"           validate:"required"`
	StartTime           string   `json:"start_time"           validate:"required"`
	EndTime             string   `json:"end_time"             validate:"required"`
	Attendees           int      `json:"attendees"            validate:"required,gte=1"`
	Department          string   `json:"department"           validate:"omitempty,max=100"`
	Resources           []string `json:"resources"            validate:"omitempty,dive,max=100"`
	SpecialRequirements string   `json:"special_requirements" validate:"omitempty"`
}

func (c *CreateBookingRequest) ToModel(user string) (model.Booking, error) {
	eventDate, startTime, endTime, err := parseSchedule(c.EventDate, c.StartTime, c.EndTime)
	if err != nil {
		return model.Booking{}, err
	}

	return model.Booking{
		ID:                  uuid.NewString(),
		UserID:              user,
		VenueID:             c.VenueID,
		Title:               c.Title,
		Description:         c.Description,
		MeetingType:         c.MeetingType,
		EventDate:           eventDate,
		StartTime:           startTime,
		EndTime:             endTime,
		Attendees:           c.Attendees,
		Department:          c.Department,
		Resources:           c.Resources,
		SpecialRequirements: c.SpecialRequirements,
		Status:              workflow.StatusSubmitted,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

// EditBookingRequest overwrites the mutable creation-time fields of a booking
// and forces it back to `submitted`.
type EditBookingRequest struct {
	VenueID             string   `json:"venue_id"             validate:"required"`
	Title               string   `json:"title"                validate:"required,max=200"`
	Description         string   `json:"description"          validate:"omitempty"`
	MeetingType         string   `json:"meeting_type"         validate:"omitempty,max=100"`
	EventDate           string   `json:"event_date"           validate:"required"`
	StartTime           string   `json:"start_time"           validate:"required"`
	EndTime             string   `json:"end_time"             validate:"required"`
	Attendees           int      `json:"attendees"            validate:"required,gte=1"`
	Department          string   `json:"department"           validate:"omitempty,max=100"`
	Resources           []string `json:"resources"            validate:"omitempty,dive,max=100"`
	SpecialRequirements string   `json:"special_requirements" validate:"omitempty"`
}

// Schedule parses the requested venue/date/time slot for the conflict scan.
func (e *EditBookingRequest) Schedule() (eventDate, startTime, endTime time.Time, err error) {
	return parseSchedule(e.EventDate, e.StartTime, e.EndTime)
}

// ToUpdateMap builds the column map applied on resubmission. Prior-stage
// approval fields are left untouched; they form a permanent record.
func (e *EditBookingRequest) ToUpdateMap(user string) (map[string]any, error) {
	eventDate, startTime, endTime, err := e.Schedule()
	if err != nil {
		return nil, err
	}

	return map[string]any{
		model.FieldVenueID:             e.VenueID,
		model.FieldTitle:               e.Title,
		model.FieldDescription:         e.Description,
		model.FieldMeetingType:         e.MeetingType,
		model.FieldEventDate:           eventDate,
		model.FieldStartTime:           startTime,
		model.FieldEndTime:             endTime,
		model.FieldAttendees:           e.Attendees,
		model.FieldDepartment:          e.Department,
		model.FieldResources:           pq.StringArray(e.Resources),
		model.FieldSpecialRequirements: e.SpecialRequirements,
		model.FieldStatus:              workflow.StatusSubmitted,
		constant.FieldModifiedAt:       timezone.Now(),
		constant.FieldModifiedBy:       user,
	}, nil
}

type TransitionRequest struct {
	Status  string `json:"status"  validate:"required"`
	Remarks string `json:"remarks" validate:"omitempty,max=500"`
}

type AvailabilityRequest struct {
	VenueID          string `json:"venue_id"           validate:"required"`
	EventDate        string `json:"event_date"         validate:"required"`
	StartTime        string `json:"start_time"         validate:"required"`
	EndTime          string `json:"end_time"           validate:"required"`
	ExcludeBookingID string `json:"exclude_booking_id" validate:"omitempty"`
}

func (a *AvailabilityRequest) Schedule() (eventDate, startTime, endTime time.Time, err error) {
	return parseSchedule(a.EventDate, a.StartTime, a.EndTime)
}

type BookingResponse struct {
	ID                    string   `json:"id"`
	UserID                string   `json:"user_id"`
	UserName              string   `json:"user_name"`
	UserEmail             string   `json:"user_email"`
	VenueID               string   `json:"venue_id"`
	VenueName             string   `json:"venue_name"`
	Title                 string   `json:"title"`
	Description           string   `json:"description"`
	MeetingType           string   `json:"meeting_type"`
	EventDate             string   `json:"event_date"`
	StartTime             string   `json:"start_time"`
	EndTime               string   `json:"end_time"`
	Attendees             int      `json:"attendees"`
	Department            string   `json:"department"`
	Resources             []string `json:"resources"`
	SpecialRequirements   string   `json:"special_requirements"`
	Status                string   `json:"status"`
	GDApprovalDate        *string  `json:"gd_approval_date,omitempty"`
	GDRemarks             *string  `json:"gd_remarks,omitempty"`
	SecretaryApprovalDate *string  `json:"secretary_approval_date,omitempty"`
	SecretaryRemarks      *string  `json:"secretary_remarks,omitempty"`
	ITSetupDate           *string  `json:"it_setup_date,omitempty"`
	ITRemarks             *string  `json:"it_remarks,omitempty"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(mod model.Booking) {
	r.ID = mod.ID
	r.UserID = mod.UserID
	r.UserName = mod.UserName
	r.UserEmail = mod.UserEmail
	r.VenueID = mod.VenueID
	r.VenueName = mod.VenueName
	r.Title = mod.Title
	r.Description = mod.Description
	r.MeetingType = mod.MeetingType
	r.EventDate = mod.EventDate.Format(constant.EventDateFormat)
	r.StartTime = mod.StartTime.Format(constant.TimeOfDayFormat)
	r.EndTime = mod.EndTime.Format(constant.TimeOfDayFormat)
	r.Attendees = mod.Attendees
	r.Department = mod.Department
	r.Resources = mod.Resources
	r.SpecialRequirements = mod.SpecialRequirements
	r.Status = mod.Status
	r.GDApprovalDate = formatStamp(mod.GDApprovalDate)
	r.GDRemarks = mod.GDRemarks
	r.SecretaryApprovalDate = formatStamp(mod.SecretaryApprovalDate)
	r.SecretaryRemarks = mod.SecretaryRemarks
	r.ITSetupDate = formatStamp(mod.ITSetupDate)
	r.ITRemarks = mod.ITRemarks
	r.Metadata.FromModel(mod.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

type AvailabilityResponse struct {
	Available bool `json:"available"`
}

type HistoryResponse struct {
	ID        string `json:"id"`
	BookingID string `json:"booking_id"`
	Status    string `json:"status"`
	Remarks   string `json:"remarks"`
	ActorID   string `json:"actor_id"`
	CreatedAt string `json:"created_at"`
}

func (r *HistoryResponse) FromModel(mod model.History) {
	r.ID = mod.ID
	r.BookingID = mod.BookingID
	r.Status = mod.Status
	r.Remarks = mod.Remarks
	r.ActorID = mod.ActorID
	r.CreatedAt = timezone.Format(mod.CreatedAt, constant.DateFormat)
}

type GetHistoryResponse struct {
	Entries []HistoryResponse `json:"entries"`
}

func (r *GetHistoryResponse) FromModels(models []model.History) {
	r.Entries = make([]HistoryResponse, len(models))
	for i, mod := range models {
		r.Entries[i].FromModel(mod)
	}
}

func parseSchedule(eventDate, startTime, endTime string) (date, start, end time.Time, err error) {
	date, err = time.Parse(constant.EventDateFormat, eventDate)
	if err != nil {
		return date, start, end, err
	}

	start, err = time.Parse(constant.TimeOfDayFormat, startTime)
	if err != nil {
		return date, start, end, err
	}

	end, err = time.Parse(constant.TimeOfDayFormat, endTime)
	if err != nil {
		return date, start, end, err
	}

	if !start.Before(end) {
		return date, start, end, errInvalidTimeRange
	}

	return date, start, end, nil
}

func formatStamp(t *time.Time) *string {
	if t == nil {
		return nil
	}

	formatted := timezone.Format(*t, constant.DateFormat)

	return &formatted
}

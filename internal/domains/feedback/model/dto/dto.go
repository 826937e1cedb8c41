package dto

import (
	"venuedesk/internal/domains/feedback/model"
	"venuedesk/shared"
	gDto "venuedesk/shared/dto"
	gModel "venuedesk/shared/model"
	"venuedesk/shared/timezone"

	"github.com/google/uuid"
)

type CreateFeedbackRequest struct {
	BookingID string `json:"booking_id" validate:"required"`
	Rating    int    `json:"rating"     validate:"required,gte=1,lte=5"`
	Comments  string `json:"comments"   validate:"omitempty,max=1000"`

	// Attachment is a data URI (`data:<mime>;base64,<payload>`), stored in
	// object storage rather than the database.
	Attachment     string `json:"attachment"      validate:"omitempty,mimetypes=image/png image/jpeg image/webp,maxfilesize=5"`
	AttachmentName string `json:"attachment_name" validate:"required_with=Attachment,omitempty,max=255"`
}

func (c *CreateFeedbackRequest) ToModel(user, attachmentURL string) model.Feedback {
	feedback := model.Feedback{
		ID:        uuid.NewString(),
		BookingID: c.BookingID,
		UserID:    user,
		Rating:    c.Rating,
		Comments:  c.Comments,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}

	if attachmentURL != "" {
		feedback.AttachmentURL = &attachmentURL
	}

	return feedback
}

type FeedbackResponse struct {
	ID            string  `json:"id"`
	BookingID     string  `json:"booking_id"`
	UserID        string  `json:"user_id"`
	Rating        int     `json:"rating"`
	Comments      string  `json:"comments"`
	AttachmentURL *string `json:"attachment_url,omitempty"`
	gDto.Metadata
}

func (r *FeedbackResponse) FromModel(mod model.Feedback) {
	r.ID = mod.ID
	r.BookingID = mod.BookingID
	r.UserID = mod.UserID
	r.Rating = mod.Rating
	r.Comments = mod.Comments
	r.AttachmentURL = mod.AttachmentURL
	r.Metadata.FromModel(mod.Metadata)
}

type GetFeedbacksResponse struct {
	Feedbacks []FeedbackResponse `json:"feedbacks"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetFeedbacksResponse) FromModels(models []model.Feedback, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Feedbacks = make([]FeedbackResponse, len(models))
	for i, mod := range models {
		r.Feedbacks[i].FromModel(mod)
	}
}

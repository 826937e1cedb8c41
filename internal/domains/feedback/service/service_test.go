package service_test

import (
	"context"
	b64 "encoding/base64"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"venuedesk/config"
	"venuedesk/infras/otel/mocks"
	s3Mocks "venuedesk/infras/s3/mocks"
	bookingMocks "venuedesk/internal/domains/booking/mocks"
	bookingModel "venuedesk/internal/domains/booking/model"
	"venuedesk/internal/domains/booking/workflow"
	feedbackMocks "venuedesk/internal/domains/feedback/mocks"
	"venuedesk/internal/domains/feedback/model"
	"venuedesk/internal/domains/feedback/model/dto"
	"venuedesk/internal/domains/feedback/service"
	cacheMocks "venuedesk/shared/cache/mocks"
	"venuedesk/shared/constant"
	"venuedesk/shared/failure"
	"venuedesk/shared/timezone"
)

type feedbackFixture struct {
	repo     *feedbackMocks.MockFeedback
	bookings *bookingMocks.MockBooking
	s3       *s3Mocks.MockS3
	svc      service.Feedback
}

func newFeedbackFixture(t *testing.T) *feedbackFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	f := &feedbackFixture{
		repo:     feedbackMocks.NewMockFeedback(ctrl),
		bookings: bookingMocks.NewMockBooking(ctrl),
		s3:       s3Mocks.NewMockS3(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.External.S3.BucketName = "venuedesk"

	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.svc = service.New(f.repo, f.bookings, f.s3, cfg, mockCache, mocks.NewOtel())

	return f
}

func completedBooking(ownerID string) bookingModel.Booking {
	return bookingModel.Booking{
		ID:        "booking-1",
		UserID:    ownerID,
		VenueID:   "venue-1",
		EventDate: timezone.Now().AddDate(0, 0, -1),
		Status:    workflow.StatusCompleted,
	}
}

func TestFeedbackService_Create(t *testing.T) {
	attachment := "data:image/png;base64," + b64.StdEncoding.EncodeToString([]byte("fake image bytes"))

	tests := []struct {
		name      string
		req       dto.CreateFeedbackRequest
		setupMock func(f *feedbackFixture)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "owner submits feedback",
			req:  dto.CreateFeedbackRequest{BookingID: "booking-1", Rating: 5, Comments: "Great venue"},
			setupMock: func(f *feedbackFixture) {
				f.bookings.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(completedBooking("user-1"), nil)
				f.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, feedback model.Feedback) error {
						assert.Equal(t, "booking-1", feedback.BookingID)
						assert.Equal(t, "user-1", feedback.UserID)
						assert.Equal(t, 5, feedback.Rating)
						assert.Nil(t, feedback.AttachmentURL)

						return nil
					})
			},
		},
		{
			name: "attachment is uploaded before insert",
			req: dto.CreateFeedbackRequest{
				BookingID:      "booking-1",
				Rating:         4,
				Attachment:     attachment,
				AttachmentName: "setup.png",
			},
			setupMock: func(f *feedbackFixture) {
				f.bookings.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(completedBooking("user-1"), nil)
				f.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
				f.s3.EXPECT().
					UploadFileBytes(gomock.Any(), "venuedesk", model.EntityName, gomock.Any(), "image/png", []byte("fake image bytes")).
					Return("https://cdn.example.com/feedback/setup.png", nil)
				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, feedback model.Feedback) error {
						if assert.NotNil(t, feedback.AttachmentURL) {
							assert.Equal(t, "https://cdn.example.com/feedback/setup.png", *feedback.AttachmentURL)
						}

						return nil
					})
			},
		},
		{
			name: "booking not found",
			req:  dto.CreateFeedbackRequest{BookingID: "missing", Rating: 3},
			setupMock: func(f *feedbackFixture) {
				f.bookings.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(bookingModel.Booking{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "non-owner cannot submit",
			req:  dto.CreateFeedbackRequest{BookingID: "booking-1", Rating: 3},
			setupMock: func(f *feedbackFixture) {
				f.bookings.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(completedBooking("user-2"), nil)
			},
			wantErr:  true,
			wantCode: http.StatusForbidden,
		},
		{
			name: "booking not completed",
			req:  dto.CreateFeedbackRequest{BookingID: "booking-1", Rating: 3},
			setupMock: func(f *feedbackFixture) {
				booking := completedBooking("user-1")
				booking.Status = workflow.StatusSecretaryApproved

				f.bookings.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booking, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "event has not happened yet",
			req:  dto.CreateFeedbackRequest{BookingID: "booking-1", Rating: 3},
			setupMock: func(f *feedbackFixture) {
				booking := completedBooking("user-1")
				booking.EventDate = timezone.Now().Add(48 * time.Hour)

				f.bookings.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booking, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "duplicate feedback",
			req:  dto.CreateFeedbackRequest{BookingID: "booking-1", Rating: 3},
			setupMock: func(f *feedbackFixture) {
				f.bookings.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(completedBooking("user-1"), nil)
				f.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "malformed attachment",
			req: dto.CreateFeedbackRequest{
				BookingID:      "booking-1",
				Rating:         3,
				Attachment:     "not a data uri",
				AttachmentName: "broken.png",
			},
			setupMock: func(f *feedbackFixture) {
				f.bookings.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(completedBooking("user-1"), nil)
				f.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFeedbackFixture(t)
			tt.setupMock(f)

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "user-1")
			err := f.svc.Create(ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFeedbackService_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		f := newFeedbackFixture(t)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Feedback{ID: "feedback-1", BookingID: "booking-1", Rating: 4}, nil)

		res, err := f.svc.Get(context.Background(), "feedback-1")

		assert.NoError(t, err)
		assert.Equal(t, "feedback-1", res.ID)
		assert.Equal(t, 4, res.Rating)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFeedbackFixture(t)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Feedback{}, nil)

		_, err := f.svc.Get(context.Background(), "missing")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

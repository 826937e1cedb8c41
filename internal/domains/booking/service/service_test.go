package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"venuedesk/config"
	"venuedesk/infras/otel/mocks"
	bookingMocks "venuedesk/internal/domains/booking/mocks"
	"venuedesk/internal/domains/booking/model"
	"venuedesk/internal/domains/booking/model/dto"
	"venuedesk/internal/domains/booking/service"
	"venuedesk/internal/domains/booking/workflow"
	venueMocks "venuedesk/internal/domains/venue/mocks"
	eventMocks "venuedesk/internal/events/mocks"
	cacheMocks "venuedesk/shared/cache/mocks"
	"venuedesk/shared/constant"
	gDto "venuedesk/shared/dto"
	"venuedesk/shared/failure"
	"venuedesk/shared/lock"
	"venuedesk/shared/timezone"
)

type bookingFixture struct {
	repo    *bookingMocks.MockBooking
	history *bookingMocks.MockHistory
	venues  *venueMocks.MockVenue
	relay   *eventMocks.Relay
	cache   *cacheMocks.MockRedisCache
	svc     service.Booking
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	f := &bookingFixture{
		repo:    bookingMocks.NewMockBooking(ctrl),
		history: bookingMocks.NewMockHistory(ctrl),
		venues:  venueMocks.NewMockVenue(ctrl),
		relay:   eventMocks.NewRelay(),
		cache:   cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.svc = service.New(f.repo, f.history, f.venues, f.relay, lock.NewKeyedMutex(), cfg, f.cache, mocks.NewOtel())

	return f
}

func ctxWithUser(userID, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func validCreateRequest() dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		VenueID:   "venue-1",
		Title:     "Quarterly planning",
		EventDate: "2026-03-10",
		StartTime: "10:00",
		EndTime:   "12:00",
		Attendees: 8,
	}
}

func existingBooking(id, userID, status string) model.Booking {
	eventDate, _ := time.Parse(constant.EventDateFormat, "2026-03-10")
	start, _ := time.Parse(constant.TimeOfDayFormat, "10:00")
	end, _ := time.Parse(constant.TimeOfDayFormat, "12:00")

	return model.Booking{
		ID:        id,
		UserID:    userID,
		VenueID:   "venue-1",
		Title:     "Quarterly planning",
		EventDate: eventDate,
		StartTime: start,
		EndTime:   end,
		Attendees: 8,
		Status:    status,
	}
}

func TestBookingService_Create(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.CreateBookingRequest
		setupMock func(f *bookingFixture)
		wantErr   bool
		wantCode  int
		wantEvent string
	}{
		{
			name: "successful creation emits submitted event",
			req:  validCreateRequest(),
			setupMock: func(f *bookingFixture) {
				f.venues.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
				f.repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, nil)
				f.repo.EXPECT().
					InsertWithHistory(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, booking model.Booking, entry model.History) error {
						assert.Equal(t, workflow.StatusSubmitted, booking.Status)
						assert.Equal(t, booking.ID, entry.BookingID)
						assert.Equal(t, workflow.StatusSubmitted, entry.Status)
						assert.Equal(t, "user-1", entry.ActorID)

						return nil
					})
			},
			wantEvent: workflow.StatusSubmitted,
		},
		{
			name: "unknown venue",
			req:  validCreateRequest(),
			setupMock: func(f *bookingFixture) {
				f.venues.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "conflicting slot",
			req:  validCreateRequest(),
			setupMock: func(f *bookingFixture) {
				f.venues.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
				f.repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Booking{existingBooking("booking-2", "user-2", workflow.StatusGDApproved)}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "adjacent slot does not conflict",
			req: dto.CreateBookingRequest{
				VenueID:   "venue-1",
				Title:     "Evening sync",
				EventDate: "2026-03-10",
				StartTime: "12:00",
				EndTime:   "13:00",
				Attendees: 4,
			},
			setupMock: func(f *bookingFixture) {
				f.venues.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
				f.repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Booking{existingBooking("booking-2", "user-2", workflow.StatusSubmitted)}, nil)
				f.repo.EXPECT().
					InsertWithHistory(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantEvent: workflow.StatusSubmitted,
		},
		{
			name: "start not before end",
			req: dto.CreateBookingRequest{
				VenueID:   "venue-1",
				Title:     "Backwards meeting",
				EventDate: "2026-03-10",
				StartTime: "12:00",
				EndTime:   "10:00",
				Attendees: 4,
			},
			setupMock: func(f *bookingFixture) {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "repository error",
			req:  validCreateRequest(),
			setupMock: func(f *bookingFixture) {
				f.venues.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
				f.repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, nil)
				f.repo.EXPECT().
					InsertWithHistory(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr:  true,
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBookingFixture(t)
			tt.setupMock(f)

			err := f.svc.Create(ctxWithUser("user-1", constant.RoleUser), tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
				assert.Empty(t, f.relay.Events())
			} else {
				assert.NoError(t, err)

				published := f.relay.Events()
				if assert.Len(t, published, 1) {
					assert.Equal(t, tt.wantEvent, published[0].Status)
				}
			}
		})
	}
}

func TestBookingService_Transition(t *testing.T) {
	tests := []struct {
		name      string
		actorID   string
		actorRole string
		req       dto.TransitionRequest
		setupMock func(f *bookingFixture)
		wantErr   bool
		wantCode  int
		wantEvent string
	}{
		{
			name:      "director approves submitted booking",
			actorID:   "director-1",
			actorRole: constant.RoleGroupDirector,
			req:       dto.TransitionRequest{Status: workflow.StatusGDApproved, Remarks: "Looks fine"},
			setupMock: func(f *bookingFixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(existingBooking("booking-1", "user-1", workflow.StatusSubmitted), nil)
				f.repo.EXPECT().
					UpdateWithHistory(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup, entry model.History) error {
						assert.Equal(t, workflow.StatusGDApproved, fields[model.FieldStatus])
						assert.NotNil(t, fields[model.FieldGDApprovalDate])
						assert.Equal(t, "Looks fine", fields[model.FieldGDRemarks])
						assert.Equal(t, workflow.StatusGDApproved, entry.Status)
						assert.Equal(t, "Looks fine", entry.Remarks)
						assert.Equal(t, "director-1", entry.ActorID)

						return nil
					})
			},
			wantEvent: workflow.StatusGDApproved,
		},
		{
			name:      "rejection without remarks uses default",
			actorID:   "secretary-1",
			actorRole: constant.RoleSecretary,
			req:       dto.TransitionRequest{Status: workflow.StatusSecretaryRejected},
			setupMock: func(f *bookingFixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(existingBooking("booking-1", "user-1", workflow.StatusGDApproved), nil)
				f.repo.EXPECT().
					UpdateWithHistory(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup, entry model.History) error {
						assert.Equal(t, workflow.DefaultRemarksFor(workflow.StatusSecretaryRejected), fields[model.FieldSecretaryRemarks])
						assert.Equal(t, workflow.DefaultRemarksFor(workflow.StatusSecretaryRejected), entry.Remarks)

						return nil
					})
			},
			wantEvent: workflow.StatusSecretaryRejected,
		},
		{
			name:      "secretary cannot act as director",
			actorID:   "secretary-1",
			actorRole: constant.RoleSecretary,
			req:       dto.TransitionRequest{Status: workflow.StatusGDApproved},
			setupMock: func(f *bookingFixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(existingBooking("booking-1", "user-1", workflow.StatusSubmitted), nil)
			},
			wantErr:  true,
			wantCode: http.StatusForbidden,
		},
		{
			name:      "secretary cannot skip director stage",
			actorID:   "secretary-1",
			actorRole: constant.RoleSecretary,
			req:       dto.TransitionRequest{Status: workflow.StatusSecretaryApproved},
			setupMock: func(f *bookingFixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(existingBooking("booking-1", "user-1", workflow.StatusSubmitted), nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name:      "second identical approval fails",
			actorID:   "director-1",
			actorRole: constant.RoleGroupDirector,
			req:       dto.TransitionRequest{Status: workflow.StatusGDApproved},
			setupMock: func(f *bookingFixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(existingBooking("booking-1", "user-1", workflow.StatusGDApproved), nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name:      "owner cancels own booking",
			actorID:   "user-1",
			actorRole: constant.RoleUser,
			req:       dto.TransitionRequest{Status: workflow.StatusCancelled},
			setupMock: func(f *bookingFixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(existingBooking("booking-1", "user-1", workflow.StatusGDApproved), nil)
				f.repo.EXPECT().
					UpdateWithHistory(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantEvent: workflow.StatusCancelled,
		},
		{
			name:      "non-owner cannot cancel",
			actorID:   "user-2",
			actorRole: constant.RoleUser,
			req:       dto.TransitionRequest{Status: workflow.StatusCancelled},
			setupMock: func(f *bookingFixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(existingBooking("booking-1", "user-1", workflow.StatusSubmitted), nil)
			},
			wantErr:  true,
			wantCode: http.StatusForbidden,
		},
		{
			name:      "cancelled booking stays cancelled",
			actorID:   "director-1",
			actorRole: constant.RoleGroupDirector,
			req:       dto.TransitionRequest{Status: workflow.StatusGDApproved},
			setupMock: func(f *bookingFixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(existingBooking("booking-1", "user-1", workflow.StatusCancelled), nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name:      "unknown status",
			actorID:   "director-1",
			actorRole: constant.RoleGroupDirector,
			req:       dto.TransitionRequest{Status: "archived"},
			setupMock: func(f *bookingFixture) {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "submitted cannot be requested directly",
			actorID:   "user-1",
			actorRole: constant.RoleUser,
			req:       dto.TransitionRequest{Status: workflow.StatusSubmitted},
			setupMock: func(f *bookingFixture) {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "booking not found",
			actorID:   "director-1",
			actorRole: constant.RoleGroupDirector,
			req:       dto.TransitionRequest{Status: workflow.StatusGDApproved},
			setupMock: func(f *bookingFixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBookingFixture(t)
			tt.setupMock(f)

			err := f.svc.Transition(ctxWithUser(tt.actorID, tt.actorRole), tt.req, "booking-1")

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
				assert.Empty(t, f.relay.Events())
			} else {
				assert.NoError(t, err)

				published := f.relay.Events()
				if assert.Len(t, published, 1) {
					assert.Equal(t, tt.wantEvent, published[0].Status)
					assert.Equal(t, "booking-1", published[0].BookingID)
				}
			}
		})
	}
}

func TestBookingService_Edit(t *testing.T) {
	editReq := dto.EditBookingRequest{
		VenueID:   "venue-1",
		Title:     "Quarterly planning, take two",
		EventDate: "2026-03-10",
		StartTime: "14:00",
		EndTime:   "16:00",
		Attendees: 10,
	}

	tests := []struct {
		name      string
		actorID   string
		setupMock func(f *bookingFixture)
		wantErr   bool
		wantCode  int
	}{
		{
			name:    "owner resubmits rejected booking",
			actorID: "user-1",
			setupMock: func(f *bookingFixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(existingBooking("booking-1", "user-1", workflow.StatusGDRejected), nil)
				f.repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, nil)
				f.repo.EXPECT().
					UpdateWithHistory(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup, entry model.History) error {
						assert.Equal(t, workflow.StatusSubmitted, fields[model.FieldStatus])
						assert.Equal(t, "Quarterly planning, take two", fields[model.FieldTitle])
						assert.NotContains(t, fields, model.FieldGDApprovalDate)
						assert.NotContains(t, fields, model.FieldGDRemarks)
						assert.Equal(t, workflow.StatusSubmitted, entry.Status)
						assert.Equal(t, workflow.ResubmitRemarks, entry.Remarks)
						assert.NotEqual(t, workflow.DefaultRemarksFor(workflow.StatusSubmitted), entry.Remarks)

						return nil
					})
			},
		},
		{
			name:    "own slot does not block the edit",
			actorID: "user-1",
			setupMock: func(f *bookingFixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(existingBooking("booking-1", "user-1", workflow.StatusSubmitted), nil)

				conflicting := existingBooking("booking-1", "user-1", workflow.StatusSubmitted)
				conflicting.StartTime, _ = time.Parse(constant.TimeOfDayFormat, "14:00")
				conflicting.EndTime, _ = time.Parse(constant.TimeOfDayFormat, "16:00")

				f.repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Booking{conflicting}, nil)
				f.repo.EXPECT().
					UpdateWithHistory(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name:    "another booking in the slot blocks the edit",
			actorID: "user-1",
			setupMock: func(f *bookingFixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(existingBooking("booking-1", "user-1", workflow.StatusSubmitted), nil)

				conflicting := existingBooking("booking-2", "user-2", workflow.StatusSubmitted)
				conflicting.StartTime, _ = time.Parse(constant.TimeOfDayFormat, "15:00")
				conflicting.EndTime, _ = time.Parse(constant.TimeOfDayFormat, "17:00")

				f.repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Booking{conflicting}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name:    "non-owner cannot edit",
			actorID: "user-2",
			setupMock: func(f *bookingFixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(existingBooking("booking-1", "user-1", workflow.StatusGDRejected), nil)
			},
			wantErr:  true,
			wantCode: http.StatusForbidden,
		},
		{
			name:    "approved booking cannot be edited",
			actorID: "user-1",
			setupMock: func(f *bookingFixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(existingBooking("booking-1", "user-1", workflow.StatusGDApproved), nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name:    "booking not found",
			actorID: "user-1",
			setupMock: func(f *bookingFixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBookingFixture(t)
			tt.setupMock(f)

			err := f.svc.Edit(ctxWithUser(tt.actorID, constant.RoleUser), editReq, "booking-1")

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
				assert.Empty(t, f.relay.Events())
			} else {
				assert.NoError(t, err)

				published := f.relay.Events()
				if assert.Len(t, published, 1) {
					assert.Equal(t, workflow.StatusSubmitted, published[0].Status)
				}
			}
		})
	}
}

func TestBookingService_IsAvailable(t *testing.T) {
	tests := []struct {
		name          string
		req           dto.AvailabilityRequest
		setupMock     func(f *bookingFixture)
		wantErr       bool
		wantAvailable bool
	}{
		{
			name: "free slot",
			req: dto.AvailabilityRequest{
				VenueID:   "venue-1",
				EventDate: "2026-03-10",
				StartTime: "10:00",
				EndTime:   "12:00",
			},
			setupMock: func(f *bookingFixture) {
				f.repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, nil)
			},
			wantAvailable: true,
		},
		{
			name: "occupied slot",
			req: dto.AvailabilityRequest{
				VenueID:   "venue-1",
				EventDate: "2026-03-10",
				StartTime: "11:00",
				EndTime:   "13:00",
			},
			setupMock: func(f *bookingFixture) {
				f.repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Booking{existingBooking("booking-1", "user-1", workflow.StatusSubmitted)}, nil)
			},
			wantAvailable: false,
		},
		{
			name: "excluded booking is skipped",
			req: dto.AvailabilityRequest{
				VenueID:          "venue-1",
				EventDate:        "2026-03-10",
				StartTime:        "11:00",
				EndTime:          "13:00",
				ExcludeBookingID: "booking-1",
			},
			setupMock: func(f *bookingFixture) {
				f.repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Booking{existingBooking("booking-1", "user-1", workflow.StatusSubmitted)}, nil)
			},
			wantAvailable: true,
		},
		{
			name: "invalid time range",
			req: dto.AvailabilityRequest{
				VenueID:   "venue-1",
				EventDate: "2026-03-10",
				StartTime: "12:00",
				EndTime:   "12:00",
			},
			setupMock: func(f *bookingFixture) {},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBookingFixture(t)
			tt.setupMock(f)

			res, err := f.svc.IsAvailable(context.Background(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantAvailable, res.Available)
			}
		})
	}
}

func TestBookingService_History(t *testing.T) {
	t.Run("entries come back oldest first", func(t *testing.T) {
		f := newBookingFixture(t)

		f.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)
		f.history.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.History, error) {
				assert.Equal(t, model.HistoryFieldCreatedAt, params.SortBy)
				assert.Equal(t, gDto.SortDirAsc, params.SortDir)

				return []model.History{
					{ID: "h1", BookingID: "booking-1", Status: workflow.StatusSubmitted, CreatedAt: timezone.Now().Add(-2 * time.Hour)},
					{ID: "h2", BookingID: "booking-1", Status: workflow.StatusGDApproved, CreatedAt: timezone.Now().Add(-time.Hour)},
				}, nil
			})

		res, err := f.svc.History(context.Background(), "booking-1")

		assert.NoError(t, err)
		if assert.Len(t, res.Entries, 2) {
			assert.Equal(t, workflow.StatusSubmitted, res.Entries[0].Status)
			assert.Equal(t, workflow.StatusGDApproved, res.Entries[1].Status)
		}
	})

	t.Run("unknown booking", func(t *testing.T) {
		f := newBookingFixture(t)

		f.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		_, err := f.svc.History(context.Background(), "missing")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestBookingService_GetPending(t *testing.T) {
	tests := []struct {
		name       string
		role       string
		wantStatus string
		wantErr    bool
	}{
		{"director sees submitted", constant.RoleGroupDirector, workflow.StatusSubmitted, false},
		{"secretary sees director approved", constant.RoleSecretary, workflow.StatusGDApproved, false},
		{"it sees secretary approved", constant.RoleITTeam, workflow.StatusSecretaryApproved, false},
		{"regular user has no queue", constant.RoleUser, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBookingFixture(t)

			if !tt.wantErr {
				f.repo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(0, nil)
				f.repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Booking, error) {
						where, args := filter.GetWhereClause()

						assert.Contains(t, where, model.FieldStatus)
						assert.Contains(t, args, model.FieldStatus)
						assert.Equal(t, tt.wantStatus, args[model.FieldStatus])

						return nil, nil
					})
			}

			_, err := f.svc.GetPending(ctxWithUser("actor-1", tt.role), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd})

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookingService_GetMine(t *testing.T) {
	f := newBookingFixture(t)

	f.repo.EXPECT().
		Count(gomock.Any(), gomock.Any()).
		Return(1, nil)
	f.repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Booking, error) {
			_, args := filter.GetWhereClause()

			assert.Equal(t, "user-1", args[model.FieldUserID])

			return []model.Booking{existingBooking("booking-1", "user-1", workflow.StatusSubmitted)}, nil
		})

	res, err := f.svc.GetMine(ctxWithUser("user-1", constant.RoleUser), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd})

	assert.NoError(t, err)
	assert.Equal(t, 1, res.TotalData)
	if assert.Len(t, res.Bookings, 1) {
		assert.Equal(t, "booking-1", res.Bookings[0].ID)
	}
}

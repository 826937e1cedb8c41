package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"venuedesk/config"
	"venuedesk/infras/otel/mocks"
	venueMocks "venuedesk/internal/domains/venue/mocks"
	"venuedesk/internal/domains/venue/model"
	"venuedesk/internal/domains/venue/model/dto"
	"venuedesk/internal/domains/venue/service"
	cacheMocks "venuedesk/shared/cache/mocks"
	"venuedesk/shared/constant"
	gDto "venuedesk/shared/dto"
	"venuedesk/shared/failure"
)

type venueFixture struct {
	repo  *venueMocks.MockVenue
	cache *cacheMocks.MockRedisCache
	svc   service.Venue
}

func newVenueFixture(t *testing.T) *venueFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	f := &venueFixture{
		repo:  venueMocks.NewMockVenue(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.svc = service.New(f.repo, cfg, f.cache, mocks.NewOtel())

	return f
}

func adminCtx() context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "secretary-1")

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleSecretary)
}

func sampleVenue() model.Venue {
	return model.Venue{
		ID:       "venue-1",
		Name:     "Boardroom A",
		Floor:    "3",
		Capacity: 12,
		Status:   model.StatusAvailable,
		Active:   true,
	}
}

func TestVenueService_Create(t *testing.T) {
	t.Run("creates venue with defaults", func(t *testing.T) {
		f := newVenueFixture(t)

		req := dto.CreateVenueRequest{
			Name:      "Boardroom A",
			Floor:     "3",
			Capacity:  12,
			Amenities: []string{"projector", "whiteboard"},
		}

		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, mod model.Venue) error {
				assert.NotEmpty(t, mod.ID)
				assert.Equal(t, "Boardroom A", mod.Name)
				assert.Equal(t, model.StatusAvailable, mod.Status)
				assert.True(t, mod.Active)
				assert.Equal(t, "secretary-1", mod.CreatedBy)

				return nil
			})

		err := f.svc.Create(adminCtx(), req)

		assert.NoError(t, err)
	})

	t.Run("propagates insert failure", func(t *testing.T) {
		f := newVenueFixture(t)

		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("insert failed"))

		err := f.svc.Create(adminCtx(), dto.CreateVenueRequest{Name: "Boardroom A", Capacity: 12})

		assert.Error(t, err)
	})
}

func TestVenueService_Get(t *testing.T) {
	t.Run("returns venue", func(t *testing.T) {
		f := newVenueFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(sampleVenue(), nil)

		res, err := f.svc.Get(adminCtx(), "venue-1")

		assert.NoError(t, err)
		assert.Equal(t, "Boardroom A", res.Name)
		assert.Equal(t, 12, res.Capacity)
	})

	t.Run("returns not found for unknown venue", func(t *testing.T) {
		f := newVenueFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Venue{}, nil)

		_, err := f.svc.Get(adminCtx(), "missing")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestVenueService_GetAll(t *testing.T) {
	t.Run("returns venues with pagination metadata", func(t *testing.T) {
		f := newVenueFixture(t)

		params := gDto.QueryParams{Page: 1, Limit: 10}
		filter := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

		f.repo.EXPECT().Count(gomock.Any(), filter).Return(1, nil)
		f.repo.EXPECT().GetAll(gomock.Any(), params, filter).Return([]model.Venue{sampleVenue()}, nil)

		res, err := f.svc.GetAll(adminCtx(), params, filter)

		assert.NoError(t, err)
		assert.Len(t, res.Venues, 1)
		assert.Equal(t, 1, res.TotalData)
	})
}

func TestVenueService_Update(t *testing.T) {
	t.Run("updates only provided fields", func(t *testing.T) {
		f := newVenueFixture(t)

		req := dto.UpdateVenueRequest{
			Name:      "Boardroom B",
			Amenities: []string{"projector"},
		}

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, "Boardroom B", fields[model.FieldName])
				assert.Contains(t, fields, model.FieldAmenities)
				assert.NotContains(t, fields, model.FieldCapacity)

				return nil
			})

		err := f.svc.Update(adminCtx(), req, "venue-1")

		assert.NoError(t, err)
	})

	t.Run("returns not found for unknown venue", func(t *testing.T) {
		f := newVenueFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := f.svc.Update(adminCtx(), dto.UpdateVenueRequest{Name: "Boardroom B"}, "missing")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestVenueService_Delete(t *testing.T) {
	t.Run("deletes existing venue", func(t *testing.T) {
		f := newVenueFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		err := f.svc.Delete(adminCtx(), "venue-1")

		assert.NoError(t, err)
	})

	t.Run("returns not found for unknown venue", func(t *testing.T) {
		f := newVenueFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := f.svc.Delete(adminCtx(), "missing")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

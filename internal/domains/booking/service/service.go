package service

import (
	"context"
	"fmt"
	"time"
	"venuedesk/config"
	"venuedesk/infras/otel"
	"venuedesk/internal/domains/booking/model"
	"venuedesk/internal/domains/booking/model/dto"
	"venuedesk/internal/domains/booking/repository"
	"venuedesk/internal/domains/booking/workflow"
	venueModel "venuedesk/internal/domains/venue/model"
	venueRepo "venuedesk/internal/domains/venue/repository"
	"venuedesk/internal/events"
	"venuedesk/shared"
	"venuedesk/shared/cache"
	"venuedesk/shared/constant"
	gDto "venuedesk/shared/dto"
	"venuedesk/shared/failure"
	"venuedesk/shared/lock"
	"venuedesk/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking     = "booking:get"
	cacheGetAllBooking  = "booking:gets"
	cacheCountBooking   = "booking:count"
	cacheBookingHistory = "booking:history"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	GetMine(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	GetPending(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	GetProcessed(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	Edit(ctx context.Context, req dto.EditBookingRequest, id string) error
	Transition(ctx context.Context, req dto.TransitionRequest, id string) error
	IsAvailable(ctx context.Context, req dto.AvailabilityRequest) (dto.AvailabilityResponse, error)
	History(ctx context.Context, id string) (dto.GetHistoryResponse, error)
}

type serviceImpl struct {
	repo    repository.Booking
	history repository.History
	venues  venueRepo.Venue
	relay   events.Relay
	locks   *lock.KeyedMutex
	cfg     *config.Config
	cache   cache.RedisCache
	otel    otel.Otel
}

func New(
	repo repository.Booking,
	history repository.History,
	venues venueRepo.Venue,
	relay events.Relay,
	locks *lock.KeyedMutex,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:    repo,
		history: history,
		venues:  venues,
		relay:   relay,
		locks:   locks,
		cfg:     cfg,
		cache:   cache,
		otel:    otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := req.ToModel(user)
	if err != nil {
		return failure.BadRequest(err) // nolint:wrapcheck
	}

	venueExists, err := s.venues.Exist(ctx, shared.FilterByID(booking.VenueID, venueModel.FieldID, venueModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if venue exists")

		return fmt.Errorf("failed to check if venue exists: %w", err)
	}

	if !venueExists {
		return failure.NotFound("venue not found") // nolint:wrapcheck
	}

	available, err := s.checkAvailability(ctx, booking.VenueID, booking.EventDate, booking.StartTime, booking.EndTime, constant.Empty)
	if err != nil {
		return err
	}

	if !available {
		return failure.Conflict("venue is already booked for the requested time") // nolint:wrapcheck
	}

	entry := model.History{
		ID:        uuid.NewString(),
		BookingID: booking.ID,
		Status:    workflow.StatusSubmitted,
		Remarks:   workflow.DefaultRemarksFor(workflow.StatusSubmitted),
		ActorID:   user,
		CreatedAt: timezone.Now(),
	}

	if err = s.repo.InsertWithHistory(ctx, booking, entry); err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return fmt.Errorf("failed to create booking: %w", err)
	}

	s.relay.PublishStatusChange(ctx, events.StatusEvent{
		BookingID: booking.ID,
		Status:    workflow.StatusSubmitted,
		Timestamp: timezone.Now(),
	})

	s.invalidateBookingCaches(ctx, booking.ID)

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetMine(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error) {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	filter.Filters = append(filter.Filters, gDto.Filter{
		Field:    model.FieldUserID,
		Table:    model.TableName,
		Value:    user,
		Operator: gDto.FilterOperatorEq,
	})

	return s.GetAll(ctx, req, filter)
}

// GetPending lists the bookings waiting on the caller's approval stage.
func (s *serviceImpl) GetPending(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error) {
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	status, ok := workflow.PendingStatusFor(role)
	if !ok {
		return dto.GetBookingsResponse{}, failure.Forbidden("no approval stage is assigned to your role") // nolint:wrapcheck
	}

	filter.Filters = append(filter.Filters, gDto.Filter{
		Field:    model.FieldStatus,
		Table:    model.TableName,
		Value:    status,
		Operator: gDto.FilterOperatorEq,
	})

	return s.GetAll(ctx, req, filter)
}

// GetProcessed lists the bookings the caller's approval stage has already
// acted on.
func (s *serviceImpl) GetProcessed(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error) {
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	statuses, ok := workflow.ProcessedStatusesFor(role)
	if !ok {
		return dto.GetBookingsResponse{}, failure.Forbidden("no approval stage is assigned to your role") // nolint:wrapcheck
	}

	filter.Filters = append(filter.Filters, gDto.Filter{
		Field:    model.FieldStatus,
		Table:    model.TableName,
		Value:    statuses,
		Operator: gDto.FilterOperatorIn,
	})

	return s.GetAll(ctx, req, filter)
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

// Edit overwrites the creation-time fields of a rejected or still-submitted
// booking and resubmits it to the start of the approval chain.
func (s *serviceImpl) Edit(ctx context.Context, req dto.EditBookingRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Edit")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	s.locks.Lock(id)
	defer s.locks.Unlock(id)

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if booking.UserID != user {
		return failure.Forbidden("only the booking owner can edit it") // nolint:wrapcheck
	}

	if !workflow.IsEditable(booking.Status) {
		return failure.BadRequestFromString("booking cannot be edited in status " + booking.Status) // nolint:wrapcheck
	}

	eventDate, startTime, endTime, err := req.Schedule()
	if err != nil {
		return failure.BadRequest(err) // nolint:wrapcheck
	}

	available, err := s.checkAvailability(ctx, req.VenueID, eventDate, startTime, endTime, id)
	if err != nil {
		return err
	}

	if !available {
		return failure.Conflict("venue is already booked for the requested time") // nolint:wrapcheck
	}

	updatedFields, err := req.ToUpdateMap(user)
	if err != nil {
		return failure.BadRequest(err) // nolint:wrapcheck
	}

	entry := model.History{
		ID:        uuid.NewString(),
		BookingID: id,
		Status:    workflow.StatusSubmitted,
		Remarks:   workflow.ResubmitRemarks,
		ActorID:   user,
		CreatedAt: timezone.Now(),
	}

	if err = s.repo.UpdateWithHistory(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName), entry); err != nil {
		log.Error().Err(err).Msg("failed to update booking")

		return fmt.Errorf("failed to update booking: %w", err)
	}

	s.relay.PublishStatusChange(ctx, events.StatusEvent{
		BookingID: id,
		Status:    workflow.StatusSubmitted,
		Timestamp: timezone.Now(),
	})

	s.invalidateBookingCaches(ctx, id)

	return nil
}

// Transition moves a booking to the requested status, enforcing the
// transition table and the role assigned to the target stage.
func (s *serviceImpl) Transition(ctx context.Context, req dto.TransitionRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Transition")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	if !workflow.IsValidStatus(req.Status) {
		return failure.BadRequestFromString("unknown status " + req.Status) // nolint:wrapcheck
	}

	requiredRole, ok := workflow.RequiredRole(req.Status)
	if !ok {
		return failure.BadRequestFromString("status " + req.Status + " cannot be requested directly") // nolint:wrapcheck
	}

	s.locks.Lock(id)
	defer s.locks.Unlock(id)

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if req.Status == workflow.StatusCancelled {
		if booking.UserID != user {
			return failure.Forbidden("only the booking owner can cancel it") // nolint:wrapcheck
		}
	} else if role != requiredRole {
		return failure.Forbidden("status " + req.Status + " requires role " + requiredRole) // nolint:wrapcheck
	}

	if !workflow.CanTransition(booking.Status, req.Status) {
		return failure.BadRequestFromString("cannot transition from " + booking.Status + " to " + req.Status) // nolint:wrapcheck
	}

	remarks := req.Remarks
	if remarks == constant.Empty {
		remarks = workflow.DefaultRemarksFor(req.Status)
	}

	updatedFields := map[string]any{
		model.FieldStatus:        req.Status,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if stamp, ok := workflow.StampFor(req.Status); ok {
		updatedFields[stamp.DateColumn] = timezone.Now()
		updatedFields[stamp.RemarksColumn] = remarks
	}

	entry := model.History{
		ID:        uuid.NewString(),
		BookingID: id,
		Status:    req.Status,
		Remarks:   remarks,
		ActorID:   user,
		CreatedAt: timezone.Now(),
	}

	if err = s.repo.UpdateWithHistory(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName), entry); err != nil {
		log.Error().Err(err).Msg("failed to transition booking")

		return fmt.Errorf("failed to transition booking: %w", err)
	}

	s.relay.PublishStatusChange(ctx, events.StatusEvent{
		BookingID: id,
		Status:    req.Status,
		Timestamp: timezone.Now(),
	})

	s.invalidateBookingCaches(ctx, id)

	return nil
}

func (s *serviceImpl) IsAvailable(ctx context.Context, req dto.AvailabilityRequest) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.IsAvailable")
	defer scope.End()
	defer scope.TraceIfError(err)

	eventDate, startTime, endTime, err := req.Schedule()
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	available, err := s.checkAvailability(ctx, req.VenueID, eventDate, startTime, endTime, req.ExcludeBookingID)
	if err != nil {
		return res, err
	}

	res.Available = available

	return res, nil
}

func (s *serviceImpl) History(ctx context.Context, id string) (res dto.GetHistoryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.History")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheBookingHistory, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking history")

		return res, nil
	}

	exist, err := s.repo.Exist(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if booking exists")

		return res, fmt.Errorf("failed to check if booking exists: %w", err)
	}

	if !exist {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	params := gDto.QueryParams{
		SortBy:  model.HistoryFieldCreatedAt,
		SortDir: gDto.SortDirAsc,
	}

	entries, err := s.history.GetAll(ctx, params, shared.FilterByID(id, model.HistoryFieldBookingID, model.HistoryTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking history")

		return res, fmt.Errorf("failed to get booking history: %w", err)
	}

	res.FromModels(entries)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking history to cache")
		}
	}()

	return res, nil
}

// checkAvailability scans the venue's bookings on the requested date and
// reports whether the [start,end) slot is free. Only statuses that hold the
// slot count; rejected and cancelled bookings never conflict.
func (s *serviceImpl) checkAvailability(ctx context.Context, venueID string, eventDate, startTime, endTime time.Time, excludeBookingID string) (bool, error) {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldVenueID,
				Table:    model.TableName,
				Value:    venueID,
				Operator: gDto.FilterOperatorEq,
			},
			gDto.Filter{
				Field:    model.FieldEventDate,
				Table:    model.TableName,
				Value:    eventDate,
				Operator: gDto.FilterOperatorEq,
			},
			gDto.Filter{
				Field:    model.FieldStatus,
				Table:    model.TableName,
				Value:    workflow.ActiveStatuses(),
				Operator: gDto.FilterOperatorIn,
			},
		},
	}

	existing, err := s.repo.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to scan bookings for conflicts")

		return false, fmt.Errorf("failed to scan bookings for conflicts: %w", err)
	}

	for _, booked := range existing {
		if booked.ID == excludeBookingID {
			continue
		}

		if workflow.Overlaps(startTime, endTime, booked.StartTime, booked.EndTime) {
			return false, nil
		}
	}

	return true, nil
}

func (s *serviceImpl) invalidateBookingCaches(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheBookingHistory, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking history from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()
}

package service

import (
	"context"
	b64 "encoding/base64"
	"fmt"
	"strings"
	"venuedesk/config"
	"venuedesk/infras/otel"
	"venuedesk/infras/s3"
	bookingModel "venuedesk/internal/domains/booking/model"
	bookingRepo "venuedesk/internal/domains/booking/repository"
	"venuedesk/internal/domains/booking/workflow"
	"venuedesk/internal/domains/feedback/model"
	"venuedesk/internal/domains/feedback/model/dto"
	"venuedesk/internal/domains/feedback/repository"
	"venuedesk/shared"
	"venuedesk/shared/base64"
	"venuedesk/shared/cache"
	"venuedesk/shared/constant"
	gDto "venuedesk/shared/dto"
	"venuedesk/shared/failure"
	"venuedesk/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetFeedback    = "feedback:get"
	cacheGetAllFeedback = "feedback:gets"
	cacheCountFeedback  = "feedback:count"
)

type Feedback interface {
	Create(ctx context.Context, req dto.CreateFeedbackRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetFeedbacksResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.FeedbackResponse, error)
}

type serviceImpl struct {
	repo     repository.Feedback
	bookings bookingRepo.Booking
	s3       s3.S3
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(repo repository.Feedback, bookings bookingRepo.Booking, s3 s3.S3, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Feedback {
	return &serviceImpl{
		repo:     repo,
		bookings: bookings,
		s3:       s3,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

// Create accepts feedback from the booking owner once the booking has been
// completed and the event date has passed.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateFeedbackRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".feedback.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.bookings.Get(ctx, shared.FilterByID(req.BookingID, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if booking.UserID != user {
		return failure.Forbidden("only the booking owner can submit feedback") // nolint:wrapcheck
	}

	if booking.Status != workflow.StatusCompleted {
		return failure.BadRequestFromString("feedback is only accepted for completed bookings") // nolint:wrapcheck
	}

	if booking.EventDate.After(timezone.Now()) {
		return failure.BadRequestFromString("feedback is only accepted after the event date") // nolint:wrapcheck
	}

	bookingFilter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldBookingID,
				Table:    model.TableName,
				Value:    req.BookingID,
				Operator: gDto.FilterOperatorEq,
			},
		},
	}

	exists, err := s.repo.Exist(ctx, bookingFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if feedback exists")

		return fmt.Errorf("failed to check if feedback exists: %w", err)
	}

	if exists {
		return failure.Conflict("feedback already submitted for this booking") // nolint:wrapcheck
	}

	attachmentURL := constant.Empty

	if req.Attachment != constant.Empty {
		attachmentURL, err = s.uploadAttachment(ctx, req.Attachment, req.AttachmentName)
		if err != nil {
			return err
		}
	}

	if err = s.repo.Insert(ctx, req.ToModel(user, attachmentURL)); err != nil {
		log.Error().Err(err).Msg("failed to create feedback")

		return fmt.Errorf("failed to create feedback: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllFeedback)
		shared.InvalidateCaches(c, s.cache, cacheCountFeedback)
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetFeedbacksResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".feedback.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllFeedback, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for feedbacks")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count feedbacks")

		return res, fmt.Errorf("failed to count feedbacks: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get feedbacks")

		return res, fmt.Errorf("failed to get feedbacks: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save feedbacks to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".feedback.Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountFeedback, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for feedback count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count feedbacks")

		return res, fmt.Errorf("failed to count feedbacks: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save feedback count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.FeedbackResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".feedback.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetFeedback, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for feedback")

		return res, nil
	}

	feedback, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get feedback")

		return res, fmt.Errorf("failed to get feedback: %w", err)
	}

	if feedback.ID == constant.Empty {
		return res, failure.NotFound("feedback not found") // nolint:wrapcheck
	}

	res.FromModel(feedback)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save feedback to cache")
		}
	}()

	return res, nil
}

// uploadAttachment decodes the data URI payload and stores it in the
// feedback bucket directory.
func (s *serviceImpl) uploadAttachment(ctx context.Context, attachment, name string) (string, error) {
	contentType := base64.GetContentType(attachment)

	marker := ";base64,"

	idx := strings.Index(attachment, marker)
	if idx == -1 {
		return constant.Empty, failure.BadRequestFromString("attachment must be a base64 data URI") // nolint:wrapcheck
	}

	data, err := b64.StdEncoding.DecodeString(attachment[idx+len(marker):])
	if err != nil {
		return constant.Empty, failure.BadRequestFromString("attachment payload is not valid base64") // nolint:wrapcheck
	}

	bucketName := s.cfg.External.S3.BucketName
	fileName := uuid.NewString() + "_" + name

	url, err := s.s3.UploadFileBytes(ctx, bucketName, model.EntityName, fileName, contentType, data)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload attachment to S3")

		return constant.Empty, fmt.Errorf("failed to upload attachment to S3: %w", err)
	}

	return url, nil
}

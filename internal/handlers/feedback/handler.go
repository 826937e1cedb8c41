package feedback

import (
	"net/http"
	"venuedesk/infras/otel"
	"venuedesk/internal/domains/feedback/model"
	"venuedesk/internal/domains/feedback/model/dto"
	"venuedesk/internal/domains/feedback/service"
	"venuedesk/shared/constant"
	gDto "venuedesk/shared/dto"
	"venuedesk/shared/validator"
	"venuedesk/transport/http/middleware"
	"venuedesk/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service    service.Feedback
	middleware middleware.AuthRole
	otel       otel.Otel
}

func New(service service.Feedback, middleware middleware.AuthRole, otel otel.Otel) Handler {
	return Handler{
		service:    service,
		middleware: middleware,
		otel:       otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/feedbacks", func(routerGroup chi.Router) {
		routerGroup.Use(handler.middleware.APIKey, handler.middleware.Auth, handler.middleware.RBAC)
		routerGroup.Post("/", handler.CreateFeedback)
		routerGroup.Get("/", handler.GetFeedbacks)
		routerGroup.Get("/{id}", handler.GetFeedbackByID)
	})
}

// CreateFeedback handles feedback submission for a completed booking.
// @Summary Submit booking feedback
// @Description Submit a rating and optional comments for a completed booking. Only the booking owner may submit, once per booking.
// @Tags Feedback
// @Accept json
// @Produce json
// @Param request body dto.CreateFeedbackRequest true "Create Feedback Request"
// @Success 201 {object} response.Message "Feedback submitted successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/feedbacks [post]
// @Security BearerAuth
func (handler *Handler) CreateFeedback(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateFeedback")
	defer scope.End()

	req := dto.CreateFeedbackRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create feedback")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Feedback submitted successfully by user " + user)

	response.WithMessage(writer, http.StatusCreated, "Feedback submitted successfully")
}

// GetFeedbacks retrieves all feedback entries based on query parameters.
// @Summary Get all feedback
// @Description Retrieve all feedback entries with optional filtering and pagination.
// @Tags Feedback
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param booking_id query string false "Filter by booking ID"
// @Param rating query string false "Filter by rating"
// @Success 200 {object} response.Data[dto.GetFeedbacksResponse] "List of feedback entries"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/feedbacks [get]
// @Security BearerAuth
func (handler *Handler) GetFeedbacks(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetFeedbacks")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if bookingID := request.URL.Query().Get(model.FieldBookingID); bookingID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldBookingID,
			Operator: gDto.FilterOperatorEq,
			Value:    bookingID,
		})
	}

	if rating := request.URL.Query().Get(model.FieldRating); rating != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldRating,
			Operator: gDto.FilterOperatorEq,
			Value:    rating,
		})
	}

	feedbacks, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get feedback entries")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Feedback entries retrieved successfully")

	response.WithJSON(writer, http.StatusOK, feedbacks)
}

// GetFeedbackByID retrieves a feedback entry by its ID.
// @Summary Get feedback by ID
// @Description Retrieve a feedback entry by its unique identifier.
// @Tags Feedback
// @Accept json
// @Produce json
// @Param id path string true "Feedback ID"
// @Success 200 {object} response.Data[dto.FeedbackResponse] "Feedback details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/feedbacks/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetFeedbackByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetFeedbackByID")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	feedback, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get feedback by ID")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Feedback retrieved successfully")

	response.WithJSON(writer, http.StatusOK, feedback)
}

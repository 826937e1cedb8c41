package booking

import (
	"net/http"
	"venuedesk/infras/otel"
	"venuedesk/internal/domains/booking/model"
	"venuedesk/internal/domains/booking/model/dto"
	"venuedesk/internal/domains/booking/service"
	"venuedesk/shared/constant"
	gDto "venuedesk/shared/dto"
	"venuedesk/shared/validator"
	"venuedesk/transport/http/middleware"
	"venuedesk/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service    service.Booking
	middleware middleware.AuthRole
	otel       otel.Otel
}

func New(service service.Booking, middleware middleware.AuthRole, otel otel.Otel) Handler {
	return Handler{
		service:    service,
		middleware: middleware,
		otel:       otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Use(handler.middleware.APIKey, handler.middleware.Auth, handler.middleware.RBAC)
		routerGroup.Post("/", handler.CreateBooking)
		routerGroup.Get("/", handler.GetBookings)
		routerGroup.Get("/mybookings", handler.GetMyBookings)
		routerGroup.Get("/pending", handler.GetPendingBookings)
		routerGroup.Get("/processed", handler.GetProcessedBookings)
		routerGroup.Get("/availability", handler.CheckAvailability)
		routerGroup.Get("/{id}", handler.GetBookingByID)
		routerGroup.Get("/{id}/history", handler.GetBookingHistory)
		routerGroup.Put("/{id}", handler.EditBooking)
		routerGroup.Patch("/{id}/status", handler.TransitionBooking)
	})
}

// CreateBooking handles the creation of a new booking.
// @Summary Create a new booking
// @Description Submit a new venue booking request. The booking enters the approval chain in the submitted status.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} response.Message "Booking created successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [post]
// @Security BearerAuth
func (handler *Handler) CreateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	req := dto.CreateBookingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Booking created successfully by user " + user)

	response.WithMessage(writer, http.StatusCreated, "Booking created successfully")
}

// GetBookings retrieves all bookings based on query parameters.
// @Summary Get all bookings
// @Description Retrieve all bookings with optional filtering and pagination.
// @Tags Booking
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param venue_id query string false "Filter by venue ID"
// @Param status query string false "Filter by status"
// @Param event_date query string false "Filter by event date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.GetBookingsResponse] "List of bookings"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [get]
// @Security BearerAuth
func (handler *Handler) GetBookings(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	bookings, err := handler.service.GetAll(ctx, queryParams, bookingFilters(request))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bookings")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Bookings retrieved successfully")

	response.WithJSON(writer, http.StatusOK, bookings)
}

// GetMyBookings retrieves the bookings owned by the authenticated user.
// @Summary Get my bookings
// @Description Retrieve all bookings submitted by the currently authenticated user.
// @Tags Booking
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status"
// @Param event_date query string false "Filter by event date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.GetBookingsResponse] "List of user's bookings"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/mybookings [get]
// @Security BearerAuth
func (handler *Handler) GetMyBookings(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	bookings, err := handler.service.GetMine(ctx, queryParams, bookingFilters(request))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get user bookings")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("User bookings retrieved successfully for user " + user)

	response.WithJSON(writer, http.StatusOK, bookings)
}

// GetPendingBookings retrieves the bookings awaiting action from the caller's approval stage.
// @Summary Get pending bookings
// @Description Retrieve the bookings waiting on the authenticated approver's stage of the chain.
// @Tags Booking
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param venue_id query string false "Filter by venue ID"
// @Param event_date query string false "Filter by event date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.GetBookingsResponse] "List of pending bookings"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/pending [get]
// @Security BearerAuth
func (handler *Handler) GetPendingBookings(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPendingBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	bookings, err := handler.service.GetPending(ctx, queryParams, bookingFilters(request))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get pending bookings")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Pending bookings retrieved successfully")

	response.WithJSON(writer, http.StatusOK, bookings)
}

// GetProcessedBookings retrieves the bookings the caller's approval stage has already acted on.
// @Summary Get processed bookings
// @Description Retrieve the bookings that have already passed the authenticated approver's stage.
// @Tags Booking
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param venue_id query string false "Filter by venue ID"
// @Param event_date query string false "Filter by event date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.GetBookingsResponse] "List of processed bookings"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/processed [get]
// @Security BearerAuth
func (handler *Handler) GetProcessedBookings(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetProcessedBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	bookings, err := handler.service.GetProcessed(ctx, queryParams, bookingFilters(request))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get processed bookings")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Processed bookings retrieved successfully")

	response.WithJSON(writer, http.StatusOK, bookings)
}

// CheckAvailability reports whether a venue is free for a requested time slot.
// @Summary Check venue availability
// @Description Check whether a venue is free on a given date for a given half-open time slot.
// @Tags Booking
// @Accept json
// @Produce json
// @Param venue_id query string true "Venue ID"
// @Param event_date query string true "Event date (YYYY-MM-DD)"
// @Param start_time query string true "Start time (HH:MM)"
// @Param end_time query string true "End time (HH:MM)"
// @Param exclude_booking_id query string false "Booking ID to exclude from the scan"
// @Success 200 {object} response.Data[dto.AvailabilityResponse] "Availability result"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/availability [get]
// @Security BearerAuth
func (handler *Handler) CheckAvailability(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CheckAvailability")
	defer scope.End()

	req := dto.AvailabilityRequest{
		VenueID:          request.URL.Query().Get(model.FieldVenueID),
		EventDate:        request.URL.Query().Get(model.FieldEventDate),
		StartTime:        request.URL.Query().Get(model.FieldStartTime),
		EndTime:          request.URL.Query().Get(model.FieldEndTime),
		ExcludeBookingID: request.URL.Query().Get("exclude_booking_id"),
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate availability query")

		response.WithError(writer, err)

		return
	}

	availability, err := handler.service.IsAvailable(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check availability")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Availability checked successfully")

	response.WithJSON(writer, http.StatusOK, availability)
}

// GetBookingByID retrieves a booking by its ID.
// @Summary Get a booking by ID
// @Description Retrieve a booking by its unique identifier.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingResponse] "Booking details"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetBookingByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByID")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	booking, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking by ID")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking retrieved successfully")

	response.WithJSON(writer, http.StatusOK, booking)
}

// GetBookingHistory retrieves the full status ledger of a booking.
// @Summary Get booking history
// @Description Retrieve the append-only status history of a booking, oldest entry first.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.GetHistoryResponse] "Booking history"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/history [get]
// @Security BearerAuth
func (handler *Handler) GetBookingHistory(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingHistory")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	history, err := handler.service.History(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking history")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking history retrieved successfully")

	response.WithJSON(writer, http.StatusOK, history)
}

// EditBooking updates an editable booking and resubmits it to the approval chain.
// @Summary Edit a booking
// @Description Edit a booking that is still editable. The booking is resubmitted and re-enters the chain at the submitted status.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.EditBookingRequest true "Edit Booking Request"
// @Success 200 {object} response.Message "Booking updated successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [put]
// @Security BearerAuth
func (handler *Handler) EditBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".EditBooking")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	req := dto.EditBookingRequest{}
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Edit(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to edit booking")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Booking updated successfully by user " + user)

	response.WithMessage(writer, http.StatusOK, "Booking updated successfully")
}

// TransitionBooking moves a booking to the requested status.
// @Summary Transition a booking status
// @Description Request a status change for a booking. The caller's role must match the approval stage that owns the requested status.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.TransitionRequest true "Transition Request"
// @Success 200 {object} response.Message "Booking status updated successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/status [patch]
// @Security BearerAuth
func (handler *Handler) TransitionBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".TransitionBooking")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	req := dto.TransitionRequest{}
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Transition(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to transition booking")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Booking status updated to " + req.Status + " by user " + user)

	response.WithMessage(writer, http.StatusOK, "Booking status updated successfully")
}

// bookingFilters collects the optional list filters shared by the booking
// collection endpoints.
func bookingFilters(request *http.Request) gDto.FilterGroup {
	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if venueID := request.URL.Query().Get(model.FieldVenueID); venueID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldVenueID,
			Operator: gDto.FilterOperatorEq,
			Value:    venueID,
			Table:    model.TableName,
		})
	}

	if status := request.URL.Query().Get(model.FieldStatus); status != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.TableName,
		})
	}

	if eventDate := request.URL.Query().Get(model.FieldEventDate); eventDate != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldEventDate,
			Operator: gDto.FilterOperatorEq,
			Value:    eventDate,
			Table:    model.TableName,
		})
	}

	return filterGroup
}

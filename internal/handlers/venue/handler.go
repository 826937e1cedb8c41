package venue

import (
	"net/http"
	"venuedesk/infras/otel"
	"venuedesk/internal/domains/venue/model"
	"venuedesk/internal/domains/venue/model/dto"
	"venuedesk/internal/domains/venue/service"
	"venuedesk/shared/constant"
	gDto "venuedesk/shared/dto"
	"venuedesk/shared/validator"
	"venuedesk/transport/http/middleware"
	"venuedesk/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service    service.Venue
	middleware middleware.AuthRole
	otel       otel.Otel
}

func New(service service.Venue, middleware middleware.AuthRole, otel otel.Otel) Handler {
	return Handler{
		service:    service,
		middleware: middleware,
		otel:       otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/venues", func(routerGroup chi.Router) {
		routerGroup.Use(handler.middleware.APIKey, handler.middleware.Auth, handler.middleware.RBAC)
		routerGroup.Post("/", handler.CreateVenue)
		routerGroup.Get("/", handler.GetVenues)
		routerGroup.Get("/{id}", handler.GetVenueByID)
		routerGroup.Patch("/{id}", handler.UpdateVenue)
		routerGroup.Delete("/{id}", handler.DeleteVenue)
	})
}

// CreateVenue handles the creation of a new venue.
// @Summary Create a new venue
// @Description Register a new bookable venue with its floor, capacity and amenities.
// @Tags Venue
// @Accept json
// @Produce json
// @Param request body dto.CreateVenueRequest true "Create Venue Request"
// @Success 201 {object} response.Message "Venue created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/venues [post]
// @Security BearerAuth
func (handler *Handler) CreateVenue(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateVenue")
	defer scope.End()

	req := dto.CreateVenueRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create venue")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Venue created successfully by user " + user)

	response.WithMessage(writer, http.StatusCreated, "Venue created successfully")
}

// GetVenues retrieves all venues based on query parameters.
// @Summary Get all venues
// @Description Retrieve all venues with optional filtering and pagination.
// @Tags Venue
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param floor query string false "Filter by floor"
// @Param status query string false "Filter by status"
// @Success 200 {object} response.Data[dto.GetVenuesResponse] "List of venues"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/venues [get]
// @Security BearerAuth
func (handler *Handler) GetVenues(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetVenues")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if floor := request.URL.Query().Get(model.FieldFloor); floor != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldFloor,
			Operator: gDto.FilterOperatorEq,
			Value:    floor,
		})
	}

	if status := request.URL.Query().Get(model.FieldStatus); status != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
		})
	}

	venues, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get venues")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Venues retrieved successfully")

	response.WithJSON(writer, http.StatusOK, venues)
}

// GetVenueByID retrieves a venue by its ID.
// @Summary Get a venue by ID
// @Description Retrieve a venue by its unique identifier.
// @Tags Venue
// @Accept json
// @Produce json
// @Param id path string true "Venue ID"
// @Success 200 {object} response.Data[dto.VenueResponse] "Venue details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/venues/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetVenueByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetVenueByID")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	venue, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get venue by ID")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Venue retrieved successfully")

	response.WithJSON(writer, http.StatusOK, venue)
}

// UpdateVenue updates an existing venue by its ID.
// @Summary Update a venue by ID
// @Description Update the details of an existing venue.
// @Tags Venue
// @Accept json
// @Produce json
// @Param id path string true "Venue ID"
// @Param request body dto.UpdateVenueRequest true "Update Venue Request"
// @Success 200 {object} response.Message "Venue updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/venues/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateVenue(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateVenue")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	req := dto.UpdateVenueRequest{}
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update venue")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Venue updated successfully by user " + user)

	response.WithMessage(writer, http.StatusOK, "Venue updated successfully")
}

// DeleteVenue deletes a venue by its ID.
// @Summary Delete a venue by ID
// @Description Remove a venue from the catalogue.
// @Tags Venue
// @Accept json
// @Produce json
// @Param id path string true "Venue ID"
// @Success 200 {object} response.Message "Venue deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/venues/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteVenue(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteVenue")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete venue")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Venue deleted successfully by user " + user)

	response.WithMessage(writer, http.StatusOK, "Venue deleted successfully")
}

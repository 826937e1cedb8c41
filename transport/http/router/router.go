package router

import (
	"venuedesk/internal/handlers/auth"
	"venuedesk/internal/handlers/booking"
	"venuedesk/internal/handlers/feedback"
	"venuedesk/internal/handlers/user"
	"venuedesk/internal/handlers/venue"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth     auth.Handler
	Venue    venue.Handler
	Booking  booking.Handler
	Feedback feedback.Handler
	User     user.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Venue.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Feedback.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}

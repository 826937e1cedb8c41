//go:build wireinject
// +build wireinject

package di

import (
	"venuedesk/config"
	"venuedesk/infras/jwt"
	"venuedesk/infras/kafka"
	"venuedesk/infras/otel"
	"venuedesk/infras/postgres"
	"venuedesk/infras/redis"
	"venuedesk/infras/s3"
	"venuedesk/internal/events"
	"venuedesk/permissions"
	"venuedesk/shared/cache"
	"venuedesk/shared/lock"
	"venuedesk/transport/http"
	"venuedesk/transport/http/middleware"
	"venuedesk/transport/http/router"

	authService "venuedesk/internal/domains/auth/service"
	bookingRepository "venuedesk/internal/domains/booking/repository"
	bookingService "venuedesk/internal/domains/booking/service"
	feedbackRepository "venuedesk/internal/domains/feedback/repository"
	feedbackService "venuedesk/internal/domains/feedback/service"
	userRepository "venuedesk/internal/domains/user/repository"
	userService "venuedesk/internal/domains/user/service"
	venueRepository "venuedesk/internal/domains/venue/repository"
	venueService "venuedesk/internal/domains/venue/service"

	authHandler "venuedesk/internal/handlers/auth"
	bookingHandler "venuedesk/internal/handlers/booking"
	feedbackHandler "venuedesk/internal/handlers/feedback"
	userHandler "venuedesk/internal/handlers/user"
	venueHandler "venuedesk/internal/handlers/venue"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	permissions.Get,
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	lock.NewKeyedMutex,
	events.NewRelay,
)

var authDomain = wire.NewSet(
	userRepository.New,
	authService.New,
)

var userDomain = wire.NewSet(
	userService.New,
)

var venueDomain = wire.NewSet(
	venueRepository.New,
	venueService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingRepository.NewHistory,
	bookingService.New,
)

var feedbackDomain = wire.NewSet(
	feedbackRepository.New,
	feedbackService.New,
)

var domains = wire.NewSet(
	authDomain,
	userDomain,
	venueDomain,
	bookingDomain,
	feedbackDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	venueHandler.New,
	bookingHandler.New,
	feedbackHandler.New,
	userHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}

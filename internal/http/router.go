package router

import (
	"log"
	"net/http"

	"github.com/Renal37/restaurant-pos/internal/logger"
	"github.com/Renal37/restaurant-pos/internal/middlewares"
	"github.com/Renal37/restaurant-pos/internal/models"
	"github.com/go-chi/chi/v5"
)

type Config struct {
	Endpoint string
}

type Router struct {
	config      Config
	authService models.AuthService
	jwtService  models.JWTService
	syncService models.OrderSyncService
}

func New(
	config Config,
	authService models.AuthService,
	jwtService models.JWTService,
	syncService models.OrderSyncService,
) *Router {
	return &Router{
		config,
		authService,
		jwtService,
		syncService,
	}
}

func (router *Router) get() chi.Router {
	r := chi.NewRouter()

	r.Use(
		middlewares.ServiceInjectorMiddleware(
			router.authService,
			router.jwtService,
			router.syncService,
		),
		logger.RequestLogger,
		middlewares.AuthMiddleware().WithExcludedPaths(
			"/api/user/register",
			"/api/user/login",
		).Middleware,
	)

	r.Route("/api", func(r chi.Router) {
		r.With(middlewares.JSONMiddleware[models.UnknownUser]).Post("/user/register", Register)
		r.With(middlewares.JSONMiddleware[models.UnknownUser]).Post("/user/login", Login)

		r.With(middlewares.JSONMiddleware[models.Order]).Post("/orders", SaveOrder)
		r.Post("/orders/sync", SyncOrders)

		r.Get("/sync/status", GetSyncStatus)
	})

	return r
}

func (router *Router) Run() {
	log.Fatal(http.ListenAndServe(router.config.Endpoint, router.get()))
}

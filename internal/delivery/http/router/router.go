// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"handshakeme/internal/delivery/http/middleware"
	"handshakeme/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	SearchHandler      *handler.SearchHandler
	GeocodingHandler   *handler.GeocodingHandler
	TimeSessionHandler *handler.TimeSessionHandler
	MasterHandler      *handler.MasterHandler
	AuthMiddleware     *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	searchHandler      *handler.SearchHandler
	geocodingHandler   *handler.GeocodingHandler
	timeSessionHandler *handler.TimeSessionHandler
	masterHandler      *handler.MasterHandler
	authMiddleware     *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		searchHandler:      params.SearchHandler,
		geocodingHandler:   params.GeocodingHandler,
		timeSessionHandler: params.TimeSessionHandler,
		masterHandler:      params.MasterHandler,
		authMiddleware:     params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Public search surface
	searchGroup := e.Group("/search")
	{
		searchGroup.GET("/masters", r.searchHandler.FindNearbyMasters)
	}

	// Public profile sharing
	masterGroup := e.Group("/masters")
	{
		masterGroup.GET("/:id/qr", r.masterHandler.GetProfileQR)
		masterGroup.POST("/qr/resolve", r.masterHandler.ResolveProfileQR)
	}

	// Geocoding gateway requires authentication (rate limits are per user)
	geocodingGroup := e.Group("/geocoding")
	geocodingGroup.Use(r.authMiddleware.Authenticate)
	{
		geocodingGroup.POST("", r.geocodingHandler.Handle)
	}

	// Time tracking requires authentication and the "master" role
	sessionGroup := e.Group("/time-sessions")
	sessionGroup.Use(r.authMiddleware.Authenticate)
	sessionGroup.Use(r.authMiddleware.RequireRole("master"))
	{
		sessionGroup.POST("", r.timeSessionHandler.Handle)
		sessionGroup.GET("/open", r.timeSessionHandler.GetOpenSession)
		sessionGroup.GET("/:id", r.timeSessionHandler.GetSession)
	}
}

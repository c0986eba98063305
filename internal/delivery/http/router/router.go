// Package router contains routing setup for the local HTTP gateway.
package router

import (
	"moducare/internal/delivery/http/middleware"
	"moducare/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	SessionHandler    *handler.SessionHandler
	ReportHandler     *handler.ReportHandler
	SessionMiddleware *middleware.SessionMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	sessionHandler    *handler.SessionHandler
	reportHandler     *handler.ReportHandler
	sessionMiddleware *middleware.SessionMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		sessionHandler:    params.SessionHandler,
		reportHandler:     params.ReportHandler,
		sessionMiddleware: params.SessionMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the gateway.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Session routes; login and status work without an established session
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/login", r.sessionHandler.Login)
		authGroup.GET("/status", r.sessionHandler.Status)
	}

	sessionGroup := e.Group("/auth", r.sessionMiddleware.RequireAuthenticated)
	{
		sessionGroup.POST("/logout", r.sessionHandler.Logout)
		sessionGroup.DELETE("/member", r.sessionHandler.DeleteAccount)
		sessionGroup.GET("/profile", r.sessionHandler.Profile)
	}

	// Diagnosis data routes require an established session
	reportGroup := e.Group("/reports", r.sessionMiddleware.RequireAuthenticated)
	{
		reportGroup.GET("", r.reportHandler.List)
		reportGroup.GET("/:id", r.reportHandler.Detail)
		reportGroup.POST("/:id/document", r.reportHandler.Document)
	}

	diaryGroup := e.Group("/diaries", r.sessionMiddleware.RequireAuthenticated)
	{
		diaryGroup.GET("/:type", r.reportHandler.Diary)
		diaryGroup.POST("", r.reportHandler.Upload)
	}
}

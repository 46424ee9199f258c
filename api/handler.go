// Package api provides HTTP handlers for accounts, topics and quiz scoring.
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/YelnurShh/infoqaz/config"
	"github.com/YelnurShh/infoqaz/store"
)

// Handler handles HTTP requests.
type Handler struct {
	store  store.Store
	config *config.Config
}

// NewHandler creates a new handler.
func NewHandler(store store.Store, config *config.Config) *Handler {
	return &Handler{
		store:  store,
		config: config,
	}
}

// RegisterRoutes registers routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	// Accounts
	e.POST("/api/auth/signup", h.Signup)
	e.GET("/api/users/:user_id", h.GetUser)

	// Topics
	e.GET("/api/topics", h.ListTopics)
	e.GET("/api/topics/:topic_id", h.GetTopic)

	// Quiz
	e.POST("/api/quiz/:topic_id/submit", h.SubmitQuiz)

	e.GET("/health", h.Health)
}

// Health returns health status.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": "0.1.0",
	})
}

package api

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/YelnurShh/infoqaz/domain"
)

// SignupRequest is the request to create a user profile.
type SignupRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Signup creates a new user profile with zero points.
// POST /api/auth/signup
func (h *Handler) Signup(c echo.Context) error {
	ctx := c.Request().Context()

	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	name := strings.TrimSpace(req.Name)
	if email == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "email is required"})
	}
	if name == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "name is required"})
	}

	existing, err := h.store.GetUserByEmail(ctx, email)
	if err != nil {
		log.Printf("ERROR: failed to look up user: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to create user"})
	}
	if existing != nil {
		return c.JSON(http.StatusConflict, map[string]string{"error": "email already registered"})
	}

	user := &domain.User{
		UserID:    "usr_" + uuid.New().String()[:8],
		Email:     email,
		Name:      name,
		Points:    0,
		CreatedAt: time.Now(),
	}
	if err := h.store.CreateUser(ctx, user); err != nil {
		log.Printf("ERROR: failed to create user: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to create user"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"ok":   true,
		"user": user,
	})
}

// GetUser returns a user profile with its current point total.
// GET /api/users/:user_id
func (h *Handler) GetUser(c echo.Context) error {
	ctx := c.Request().Context()
	userID := c.Param("user_id")

	user, err := h.store.GetUser(ctx, userID)
	if err != nil {
		log.Printf("ERROR: failed to get user: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to get user"})
	}
	if user == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "user not found"})
	}

	submissions, err := h.store.ListSubmissions(ctx, userID, 20)
	if err != nil {
		log.Printf("WARN: failed to list submissions for %s: %v", userID, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"ok":          true,
		"user":        user,
		"submissions": submissions,
	})
}

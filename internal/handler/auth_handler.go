package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/ViniciusBessa/planejando-api/internal/domain"
	"github.com/ViniciusBessa/planejando-api/internal/middleware"
	"github.com/ViniciusBessa/planejando-api/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse represents a user in responses
type UserResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// SessionResponse wraps a user and its access token
type SessionResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

func toUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
		UpdatedAt: user.UpdatedAt.Format(time.RFC3339),
	}
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	user, token, err := h.authService.Register(req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidName):
			return NewValidationError(c, "Please provide a name between 8 and 40 characters", []ValidationError{
				{Field: "name", Message: "Must be between 8 and 40 characters"},
			})
		case errors.Is(err, domain.ErrInvalidEmail):
			return NewValidationError(c, "Please provide a valid e-mail", []ValidationError{
				{Field: "email", Message: "Must be a valid e-mail address"},
			})
		case errors.Is(err, domain.ErrPasswordRequired):
			return NewValidationError(c, "Please provide a password", []ValidationError{
				{Field: "password", Message: "Password is required"},
			})
		case errors.Is(err, domain.ErrNameInUse):
			return NewConflictError(c, "The name provided is already in use")
		case errors.Is(err, domain.ErrEmailInUse):
			return NewConflictError(c, "The e-mail provided is already in use")
		}
		log.Error().Err(err).Str("email", req.Email).Msg("Failed to register user")
		return NewInternalError(c, "Failed to register, try again later")
	}

	log.Info().Int64("user_id", user.ID).Msg("User registered")

	return c.JSON(http.StatusCreated, SessionResponse{User: toUserResponse(user), Token: token})
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if req.Email == "" || req.Password == "" {
		return NewValidationError(c, "Please provide an e-mail and a password", nil)
	}

	user, token, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrWrongPassword) {
			return NewUnauthorizedError(c, "Invalid credentials")
		}
		log.Error().Err(err).Str("email", req.Email).Msg("Failed to log user in")
		return NewInternalError(c, "Failed to log in, try again later")
	}

	log.Info().Int64("user_id", user.ID).Msg("User logged in")

	return c.JSON(http.StatusOK, SessionResponse{User: toUserResponse(user), Token: token})
}

// CurrentUser handles GET /api/v1/auth/user
func (h *AuthHandler) CurrentUser(c echo.Context) error {
	user := middleware.GetUser(c)
	return c.JSON(http.StatusOK, map[string]UserResponse{"user": toUserResponse(user)})
}

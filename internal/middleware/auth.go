package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/ViniciusBessa/planejando-api/internal/domain"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

// UserKey is the context key for the authenticated user
const UserKey contextKey = "user"

// UserLoader resolves a bearer token to the user it was issued to
type UserLoader interface {
	UserFromToken(token string) (*domain.User, error)
}

// AuthMiddleware attaches the authenticated user to the request context
type AuthMiddleware struct {
	users UserLoader
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(users UserLoader) *AuthMiddleware {
	return &AuthMiddleware{users: users}
}

// Authenticate parses the Authorization header when present. Requests with a
// missing or invalid token continue anonymously; the per-route gates decide
// whether that is acceptable.
func (m *AuthMiddleware) Authenticate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return next(c)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				return next(c)
			}

			user, err := m.users.UserFromToken(parts[1])
			if err != nil {
				log.Debug().Err(err).Msg("Token validation failed")
				return next(c)
			}

			ctx := context.WithValue(c.Request().Context(), UserKey, user)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// RequireAuth rejects anonymous requests with 401
func (m *AuthMiddleware) RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if GetUser(c) == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "login required")
			}
			return next(c)
		}
	}
}

// RequireAdmin rejects callers without the admin role with 403
func (m *AuthMiddleware) RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := GetUser(c)
			if user == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "login required")
			}
			if !user.IsAdmin() {
				return echo.NewHTTPError(http.StatusForbidden, "admin role required")
			}
			return next(c)
		}
	}
}

// GetUser extracts the authenticated user from the context, nil when anonymous
func GetUser(c echo.Context) *domain.User {
	if user, ok := c.Request().Context().Value(UserKey).(*domain.User); ok {
		return user
	}
	return nil
}

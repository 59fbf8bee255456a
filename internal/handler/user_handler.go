package handler

import (
	"errors"
	"net/http"

	"github.com/ViniciusBessa/planejando-api/internal/domain"
	"github.com/ViniciusBessa/planejando-api/internal/middleware"
	"github.com/ViniciusBessa/planejando-api/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// UserHandler handles user account HTTP requests
type UserHandler struct {
	userService *service.UserService
	env         string
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *service.UserService, env string) *UserHandler {
	return &UserHandler{userService: userService, env: env}
}

// UpdateNameRequest represents the name update request body
type UpdateNameRequest struct {
	Name string `json:"name"`
}

// UpdateEmailRequest represents the email update request body
type UpdateEmailRequest struct {
	Email string `json:"email"`
}

// UpdatePasswordRequest represents the password update request body
type UpdatePasswordRequest struct {
	Password string `json:"password"`
}

// DeleteAccountRequest represents the account deletion request body
type DeleteAccountRequest struct {
	Password string `json:"password"`
}

// ForgotPasswordRequest represents the reset token creation request body
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest represents the password reset request body
type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// UserListResponse wraps the users collection
type UserListResponse struct {
	Users []UserResponse `json:"users"`
}

// UserItemResponse wraps a single user
type UserItemResponse struct {
	User UserResponse `json:"user"`
}

// GetUsers handles GET /api/v1/users
func (h *UserHandler) GetUsers(c echo.Context) error {
	users, err := h.userService.GetAll()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list users")
		return NewInternalError(c, "Failed to list users, try again later")
	}

	resp := UserListResponse{Users: make([]UserResponse, len(users))}
	for i, user := range users {
		resp.Users[i] = toUserResponse(user)
	}
	return c.JSON(http.StatusOK, resp)
}

// GetUserByID handles GET /api/v1/users/:userId
func (h *UserHandler) GetUserByID(c echo.Context) error {
	userID, ok := pathID(c, "userId")
	if !ok {
		return NewNotFoundError(c, "No user was found with the given id")
	}

	user, err := h.userService.Get(userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return NewNotFoundError(c, "No user was found with the given id")
		}
		log.Error().Err(err).Int64("user_id", userID).Msg("Failed to get user")
		return NewInternalError(c, "Failed to get user, try again later")
	}

	return c.JSON(http.StatusOK, UserItemResponse{User: toUserResponse(user)})
}

// DeleteUser handles DELETE /api/v1/users/:userId
func (h *UserHandler) DeleteUser(c echo.Context) error {
	userID, ok := pathID(c, "userId")
	if !ok {
		return NewNotFoundError(c, "No user was found with the given id")
	}

	user, err := h.userService.Delete(userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return NewNotFoundError(c, "No user was found with the given id")
		}
		log.Error().Err(err).Int64("user_id", userID).Msg("Failed to delete user")
		return NewInternalError(c, "Failed to delete user, try again later")
	}

	log.Info().Int64("user_id", userID).Msg("User deleted")

	return c.JSON(http.StatusOK, UserItemResponse{User: toUserResponse(user)})
}

// DeleteOwnAccount handles DELETE /api/v1/users/account
func (h *UserHandler) DeleteOwnAccount(c echo.Context) error {
	user := middleware.GetUser(c)

	var req DeleteAccountRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if req.Password == "" {
		return NewValidationError(c, "Please provide your password", []ValidationError{
			{Field: "password", Message: "Password is required"},
		})
	}

	deleted, err := h.userService.DeleteOwnAccount(user.ID, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrWrongPassword) {
			return NewUnauthorizedError(c, "Invalid credentials")
		}
		log.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to delete account")
		return NewInternalError(c, "Failed to delete account, try again later")
	}

	log.Info().Int64("user_id", user.ID).Msg("Account deleted")

	return c.JSON(http.StatusOK, UserItemResponse{User: toUserResponse(deleted)})
}

// UpdateName handles PATCH /api/v1/users/account/name
func (h *UserHandler) UpdateName(c echo.Context) error {
	user := middleware.GetUser(c)

	var req UpdateNameRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	updated, token, err := h.userService.UpdateName(user.ID, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidName):
			return NewValidationError(c, "Please provide a name between 8 and 40 characters", []ValidationError{
				{Field: "name", Message: "Must be between 8 and 40 characters"},
			})
		case errors.Is(err, domain.ErrNameInUse):
			return NewConflictError(c, "The name provided is already in use")
		}
		log.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to update name")
		return NewInternalError(c, "Failed to update name, try again later")
	}

	log.Info().Int64("user_id", user.ID).Msg("User name updated")

	return c.JSON(http.StatusOK, SessionResponse{User: toUserResponse(updated), Token: token})
}

// UpdateEmail handles PATCH /api/v1/users/account/email
func (h *UserHandler) UpdateEmail(c echo.Context) error {
	user := middleware.GetUser(c)

	var req UpdateEmailRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	updated, token, err := h.userService.UpdateEmail(user.ID, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidEmail):
			return NewValidationError(c, "Please provide a valid e-mail", []ValidationError{
				{Field: "email", Message: "Must be a valid e-mail address"},
			})
		case errors.Is(err, domain.ErrEmailInUse):
			return NewConflictError(c, "The e-mail provided is already in use")
		}
		log.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to update email")
		return NewInternalError(c, "Failed to update e-mail, try again later")
	}

	log.Info().Int64("user_id", user.ID).Msg("User e-mail updated")

	return c.JSON(http.StatusOK, SessionResponse{User: toUserResponse(updated), Token: token})
}

// UpdatePassword handles PATCH /api/v1/users/account/password
func (h *UserHandler) UpdatePassword(c echo.Context) error {
	user := middleware.GetUser(c)

	var req UpdatePasswordRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	updated, token, err := h.userService.UpdatePassword(user.ID, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrPasswordRequired) {
			return NewValidationError(c, "Please provide a new password", []ValidationError{
				{Field: "password", Message: "Password is required"},
			})
		}
		log.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to update password")
		return NewInternalError(c, "Failed to update password, try again later")
	}

	log.Info().Int64("user_id", user.ID).Msg("User password updated")

	return c.JSON(http.StatusOK, SessionResponse{User: toUserResponse(updated), Token: token})
}

// ForgotPassword handles POST /api/v1/users/resetpassword
//
// Always answers 200 so callers cannot probe which e-mails exist. Outside
// production the token is echoed back since no mail delivery is wired.
func (h *UserHandler) ForgotPassword(c echo.Context) error {
	var req ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if req.Email == "" {
		return NewValidationError(c, "Please provide your e-mail", []ValidationError{
			{Field: "email", Message: "E-mail is required"},
		})
	}

	resp := map[string]string{"message": "If the e-mail is registered, a reset token was created"}

	token, err := h.userService.CreateResetToken(req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.JSON(http.StatusOK, resp)
		}
		if errors.Is(err, domain.ErrInvalidEmail) {
			return NewValidationError(c, "Please provide a valid e-mail", []ValidationError{
				{Field: "email", Message: "Must be a valid e-mail address"},
			})
		}
		log.Error().Err(err).Msg("Failed to create reset token")
		return NewInternalError(c, "Failed to create reset token, try again later")
	}

	if h.env != "production" {
		resp["token"] = token.ID.String()
	}
	return c.JSON(http.StatusOK, resp)
}

// CheckResetToken handles GET /api/v1/users/resetpassword/:token
func (h *UserHandler) CheckResetToken(c echo.Context) error {
	tokenID, err := uuid.Parse(c.Param("token"))
	if err != nil {
		return c.JSON(http.StatusOK, map[string]bool{"valid": false})
	}

	valid, err := h.userService.CheckResetToken(tokenID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to check reset token")
		return NewInternalError(c, "Failed to check reset token, try again later")
	}
	return c.JSON(http.StatusOK, map[string]bool{"valid": valid})
}

// ResetPassword handles PATCH /api/v1/users/resetpassword
func (h *UserHandler) ResetPassword(c echo.Context) error {
	var req ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	user, token, err := h.userService.ResetPassword(req.Token, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrResetTokenRequired):
			return NewValidationError(c, "Please provide the reset token", []ValidationError{
				{Field: "token", Message: "Token is required"},
			})
		case errors.Is(err, domain.ErrResetTokenNotFound):
			return NewUnauthorizedError(c, "The reset token is invalid or expired")
		case errors.Is(err, domain.ErrPasswordRequired):
			return NewValidationError(c, "Please provide a new password", []ValidationError{
				{Field: "password", Message: "Password is required"},
			})
		}
		log.Error().Err(err).Msg("Failed to reset password")
		return NewInternalError(c, "Failed to reset password, try again later")
	}

	log.Info().Int64("user_id", user.ID).Msg("Password reset")

	return c.JSON(http.StatusOK, SessionResponse{User: toUserResponse(user), Token: token})
}

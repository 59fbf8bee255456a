package service

import (
	"errors"

	"github.com/ViniciusBessa/planejando-api/internal/domain"
	"github.com/google/uuid"
)

// UserService handles account management and password recovery
type UserService struct {
	userRepo       domain.UserRepository
	resetTokenRepo domain.PasswordResetTokenRepository
	auth           *AuthService
}

// NewUserService creates a new UserService
func NewUserService(userRepo domain.UserRepository, resetTokenRepo domain.PasswordResetTokenRepository, auth *AuthService) *UserService {
	return &UserService{
		userRepo:       userRepo,
		resetTokenRepo: resetTokenRepo,
		auth:           auth,
	}
}

// GetAll returns every user (admin only, enforced at the route)
func (s *UserService) GetAll() ([]*domain.User, error) {
	return s.userRepo.GetAll()
}

// Get returns one user by id
func (s *UserService) Get(userID int64) (*domain.User, error) {
	return s.userRepo.GetByID(userID)
}

// Delete removes any user account (admin only, enforced at the route)
func (s *UserService) Delete(userID int64) (*domain.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Delete(userID); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteOwnAccount removes the caller's account after confirming the password
func (s *UserService) DeleteOwnAccount(userID int64, password string) (*domain.User, error) {
	if password == "" {
		return nil, domain.ErrPasswordRequired
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if err := s.auth.ComparePassword(password, user.Password); err != nil {
		return nil, err
	}

	if err := s.userRepo.Delete(userID); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateName changes the caller's name and re-issues a token
func (s *UserService) UpdateName(userID int64, newName string) (*domain.User, string, error) {
	if len(newName) < domain.MinUserNameLength || len(newName) > domain.MaxUserNameLength {
		return nil, "", domain.ErrInvalidName
	}

	if _, err := s.userRepo.GetByName(newName); err == nil {
		return nil, "", domain.ErrNameInUse
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, "", err
	}

	user, err := s.userRepo.UpdateName(userID, newName)
	if err != nil {
		return nil, "", err
	}

	token, err := s.auth.IssueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// UpdateEmail changes the caller's email and re-issues a token
func (s *UserService) UpdateEmail(userID int64, newEmail string) (*domain.User, string, error) {
	if !emailRegex.MatchString(newEmail) {
		return nil, "", domain.ErrInvalidEmail
	}

	if _, err := s.userRepo.GetByEmail(newEmail); err == nil {
		return nil, "", domain.ErrEmailInUse
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, "", err
	}

	user, err := s.userRepo.UpdateEmail(userID, newEmail)
	if err != nil {
		return nil, "", err
	}

	token, err := s.auth.IssueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// UpdatePassword changes the caller's password and re-issues a token
func (s *UserService) UpdatePassword(userID int64, newPassword string) (*domain.User, string, error) {
	if newPassword == "" {
		return nil, "", domain.ErrPasswordRequired
	}

	hash, err := s.auth.HashPassword(newPassword)
	if err != nil {
		return nil, "", err
	}

	user, err := s.userRepo.UpdatePassword(userID, hash)
	if err != nil {
		return nil, "", err
	}

	token, err := s.auth.IssueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// CreateResetToken issues a password reset token for the account registered
// under the email. Delivery is up to the caller; the token is only stored.
func (s *UserService) CreateResetToken(email string) (*domain.PasswordResetToken, error) {
	if !emailRegex.MatchString(email) {
		return nil, domain.ErrInvalidEmail
	}

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	return s.resetTokenRepo.Create(user.ID)
}

// CheckResetToken reports whether a reset token is currently valid
func (s *UserService) CheckResetToken(tokenID uuid.UUID) (bool, error) {
	_, err := s.resetTokenRepo.GetByID(tokenID)
	if err != nil {
		if errors.Is(err, domain.ErrResetTokenNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ResetPassword consumes a reset token, replaces the password and returns the
// user with a fresh auth token. Tokens that do not parse as UUIDs are treated
// the same as unknown ones.
func (s *UserService) ResetPassword(token string, newPassword string) (*domain.User, string, error) {
	if token == "" {
		return nil, "", domain.ErrResetTokenRequired
	}
	if newPassword == "" {
		return nil, "", domain.ErrPasswordRequired
	}

	tokenID, err := uuid.Parse(token)
	if err != nil {
		return nil, "", domain.ErrResetTokenNotFound
	}

	resetToken, err := s.resetTokenRepo.GetByID(tokenID)
	if err != nil {
		return nil, "", err
	}

	hash, err := s.auth.HashPassword(newPassword)
	if err != nil {
		return nil, "", err
	}

	user, err := s.userRepo.UpdatePassword(resetToken.UserID, hash)
	if err != nil {
		return nil, "", err
	}

	// Token is single use
	if err := s.resetTokenRepo.Delete(tokenID); err != nil {
		return nil, "", err
	}

	token, err = s.auth.IssueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

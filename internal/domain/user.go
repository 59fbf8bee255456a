package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role classifies a user's access level
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// User represents a registered user
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// PasswordResetToken is a one-time token allowing a password reset
type PasswordResetToken struct {
	ID        uuid.UUID `json:"id"`
	UserID    int64     `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserRepository defines the interface for user persistence operations
type UserRepository interface {
	Create(user *User) (*User, error)
	GetByID(id int64) (*User, error)
	GetByEmail(email string) (*User, error)
	GetByName(name string) (*User, error)
	GetAll() ([]*User, error)
	UpdateName(id int64, name string) (*User, error)
	UpdateEmail(id int64, email string) (*User, error)
	UpdatePassword(id int64, hashedPassword string) (*User, error)
	Delete(id int64) error
}

// PasswordResetTokenRepository persists one-time password reset tokens
type PasswordResetTokenRepository interface {
	Create(userID int64) (*PasswordResetToken, error)
	GetByID(id uuid.UUID) (*PasswordResetToken, error)
	Delete(id uuid.UUID) error
}

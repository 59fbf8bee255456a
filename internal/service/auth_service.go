package service

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/ViniciusBessa/planejando-api/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]{2,}$`)

// TokenClaims is the JWT payload issued at login
type TokenClaims struct {
	UserID int64       `json:"id"`
	Name   string      `json:"name"`
	Email  string      `json:"email"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// AuthService handles registration, login and token issuance
type AuthService struct {
	userRepo  domain.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo domain.UserRepository, jwtSecret []byte, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

// Register validates the input, stores the user with a bcrypt hash and
// returns the user together with a fresh token.
func (s *AuthService) Register(name, email, password string) (*domain.User, string, error) {
	if len(name) < domain.MinUserNameLength || len(name) > domain.MaxUserNameLength {
		return nil, "", domain.ErrInvalidName
	}
	if !emailRegex.MatchString(email) {
		return nil, "", domain.ErrInvalidEmail
	}
	if password == "" {
		return nil, "", domain.ErrPasswordRequired
	}

	if _, err := s.userRepo.GetByName(name); err == nil {
		return nil, "", domain.ErrNameInUse
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, "", err
	}
	if _, err := s.userRepo.GetByEmail(email); err == nil {
		return nil, "", domain.ErrEmailInUse
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, "", err
	}

	hash, err := s.HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	user, err := s.userRepo.Create(&domain.User{
		Name:     name,
		Email:    email,
		Password: hash,
		Role:     domain.RoleUser,
	})
	if err != nil {
		return nil, "", err
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login checks the credentials and returns the user with a fresh token.
// An unknown email fails with ErrUserNotFound, a bad password with
// ErrWrongPassword.
func (s *AuthService) Login(email, password string) (*domain.User, string, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, "", err
	}

	if err := s.ComparePassword(password, user.Password); err != nil {
		return nil, "", err
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// IssueToken signs an HS256 token carrying the user payload
func (s *AuthService) IssueToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := TokenClaims{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}

// VerifyToken parses and validates a token, rejecting any signing method
// other than HMAC.
func (s *AuthService) VerifyToken(tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, domain.ErrUnauthorized
	}
	return claims, nil
}

// UserFromToken verifies a token and loads the user it was issued to. The
// user row is re-read so revoked accounts stop authenticating immediately.
func (s *AuthService) UserFromToken(tokenString string) (*domain.User, error) {
	claims, err := s.VerifyToken(tokenString)
	if err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(claims.UserID)
}

// HashPassword hashes a plaintext password with bcrypt
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// ComparePassword checks a plaintext password against a stored hash,
// returning ErrWrongPassword on mismatch.
func (s *AuthService) ComparePassword(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return domain.ErrWrongPassword
	}
	return nil
}

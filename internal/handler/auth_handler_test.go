package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ViniciusBessa/planejando-api/internal/service"
	"github.com/ViniciusBessa/planejando-api/internal/testutil"
	"github.com/labstack/echo/v4"
)

func newAuthHandlerForTest() (*AuthHandler, *service.AuthService, *testutil.MockUserRepository) {
	userRepo := testutil.NewMockUserRepository()
	authService := service.NewAuthService(userRepo, []byte("test-secret"), time.Hour)
	return NewAuthHandler(authService), authService, userRepo
}

func TestRegisterHandler_Success(t *testing.T) {
	e := echo.New()
	handler, _, _ := newAuthHandlerForTest()

	reqBody := `{"name": "Vinicius Bessa", "email": "vinicius@example.com", "password": "my-password"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Register(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", rec.Code)
	}

	var response SessionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.User.Name != "Vinicius Bessa" {
		t.Errorf("Expected name 'Vinicius Bessa', got %s", response.User.Name)
	}
	if response.Token == "" {
		t.Error("Expected a token in the response")
	}
}

func TestRegisterHandler_ShortName(t *testing.T) {
	e := echo.New()
	handler, _, _ := newAuthHandlerForTest()

	reqBody := `{"name": "short", "email": "vinicius@example.com", "password": "my-password"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Register(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestRegisterHandler_DuplicateEmail(t *testing.T) {
	e := echo.New()
	handler, authService, _ := newAuthHandlerForTest()

	if _, _, err := authService.Register("Another Person", "vinicius@example.com", "my-password"); err != nil {
		t.Fatalf("Failed to seed user: %v", err)
	}

	reqBody := `{"name": "Vinicius Bessa", "email": "vinicius@example.com", "password": "my-password"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Register(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Errorf("Expected status 409, got %d", rec.Code)
	}
}

func TestLoginHandler_Success(t *testing.T) {
	e := echo.New()
	handler, authService, _ := newAuthHandlerForTest()

	if _, _, err := authService.Register("Vinicius Bessa", "vinicius@example.com", "my-password"); err != nil {
		t.Fatalf("Failed to seed user: %v", err)
	}

	reqBody := `{"email": "vinicius@example.com", "password": "my-password"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Login(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}
}

func TestLoginHandler_BadCredentialsDoNotLeakWhichFieldFailed(t *testing.T) {
	e := echo.New()
	handler, authService, _ := newAuthHandlerForTest()

	if _, _, err := authService.Register("Vinicius Bessa", "vinicius@example.com", "my-password"); err != nil {
		t.Fatalf("Failed to seed user: %v", err)
	}

	cases := []string{
		`{"email": "vinicius@example.com", "password": "wrong"}`,
		`{"email": "nobody@example.com", "password": "my-password"}`,
	}
	for _, reqBody := range cases {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(reqBody))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		if err := handler.Login(c); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("Expected status 401, got %d", rec.Code)
		}

		var problem ProblemDetails
		if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		if problem.Detail != "Invalid credentials" {
			t.Errorf("Expected generic detail, got %s", problem.Detail)
		}
	}
}

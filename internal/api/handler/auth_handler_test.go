package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/univadmin/records-system/internal/api/middleware"
	"github.com/univadmin/records-system/internal/core/domain"
	"github.com/univadmin/records-system/internal/core/ports"
)

type stubAuthService struct {
	loginFn          func(ctx context.Context, id, password string) (*ports.LoginResult, error)
	changePasswordFn func(ctx context.Context, id, oldPassword, newPassword string) error
}

func (s *stubAuthService) Login(ctx context.Context, id, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, id, password)
}

func (s *stubAuthService) ChangePassword(ctx context.Context, id, oldPassword, newPassword string) error {
	return s.changePasswordFn(ctx, id, oldPassword, newPassword)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return resp
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, id, password string) (*ports.LoginResult, error) {
			if id != "S-00001" || password != "secret" {
				t.Fatalf("unexpected args: %s %s", id, password)
			}
			return &ports.LoginResult{
				AccessToken:         "token123",
				NeedsPasswordChange: true,
				User:                &domain.Credentials{ID: id, Role: domain.RoleStudent},
			}, nil
		},
	}
	handler := NewAuthHandler(stub)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/v1/auth/login", `{"id":"S-00001","password":"secret"}`), rec)

	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	resp := decodeEnvelope(t, rec)
	if resp["success"] != true || resp["statusCode"] != float64(200) {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
	data, ok := resp["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data in response")
	}
	if data["accessToken"] != "token123" || data["needsPasswordChange"] != true || data["role"] != "student" {
		t.Fatalf("unexpected data: %+v", data)
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	e := newTestEcho()
	handler := NewAuthHandler(&stubAuthService{
		loginFn: func(ctx context.Context, id, password string) (*ports.LoginResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	})

	c := e.NewContext(jsonRequest(http.MethodPost, "/api/v1/auth/login", `{"id":"S-00001"}`), httptest.NewRecorder())

	err := handler.Login(c)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Fields[0].Path != "password" || ve.Fields[0].Message != "is required" {
		t.Fatalf("unexpected field error: %+v", ve.Fields)
	}
}

func TestAuthHandler_Login_InvalidPayload(t *testing.T) {
	e := newTestEcho()
	handler := NewAuthHandler(&stubAuthService{})

	c := e.NewContext(jsonRequest(http.MethodPost, "/api/v1/auth/login", "not-json"), httptest.NewRecorder())

	err := handler.Login(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestAuthHandler_Login_ServiceError(t *testing.T) {
	e := newTestEcho()
	handler := NewAuthHandler(&stubAuthService{
		loginFn: func(ctx context.Context, id, password string) (*ports.LoginResult, error) {
			return nil, domain.ErrInvalidCredentials
		},
	})

	c := e.NewContext(jsonRequest(http.MethodPost, "/api/v1/auth/login", `{"id":"S-00001","password":"bad"}`), httptest.NewRecorder())

	if err := handler.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials to propagate, got %v", err)
	}
}

func TestAuthHandler_ChangePassword(t *testing.T) {
	e := newTestEcho()
	handler := NewAuthHandler(&stubAuthService{
		changePasswordFn: func(ctx context.Context, id, oldPassword, newPassword string) error {
			if id != "F-00002" || oldPassword != "old-pass" || newPassword != "new-pass" {
				t.Fatalf("unexpected args: %s %s %s", id, oldPassword, newPassword)
			}
			return nil
		},
	})

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/v1/auth/change-password", `{"oldPassword":"old-pass","newPassword":"new-pass"}`), rec)
	c.Set(middleware.ContextUserID, "F-00002")

	if err := handler.ChangePassword(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthHandler_ChangePassword_Unauthenticated(t *testing.T) {
	e := newTestEcho()
	handler := NewAuthHandler(&stubAuthService{})

	c := e.NewContext(jsonRequest(http.MethodPost, "/api/v1/auth/change-password", `{"oldPassword":"a","newPassword":"bbbbbb"}`), httptest.NewRecorder())

	err := handler.ChangePassword(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

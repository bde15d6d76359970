package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/univadmin/records-system/internal/core/domain"
	"github.com/univadmin/records-system/internal/core/ports"
	"github.com/univadmin/records-system/internal/core/service"
	"github.com/univadmin/records-system/internal/infrastructure/db/memory"
)

type testServer struct {
	e     *echo.Echo
	users *service.UserService
	auth  *service.AuthService
}

func newTestServer(t *testing.T) testServer {
	t.Helper()
	log := zerolog.Nop()
	hasher := service.NewBcryptHasher(bcrypt.MinCost)
	userRepo := memory.NewUserRepository()
	users := service.NewUserService(userRepo, service.NewIdentityAllocator(memory.NewCounterStore(), "memory", log), hasher, nil, "default-pass", log)
	auth := service.NewAuthService(userRepo, hasher, "test-secret", time.Hour, log)
	faculties := service.NewAcademicFacultyService(memory.NewAcademicFacultyRepository(), log)

	reg := prometheus.NewRegistry()
	e := NewRouter(Dependencies{
		Faculties:  faculties,
		Users:      users,
		Auth:       auth,
		JWTSecret:  "test-secret",
		Logger:     log,
		Registerer: reg,
		Gatherer:   reg,
	})
	return testServer{e: e, users: users, auth: auth}
}

func (s testServer) do(t *testing.T, method, target, token, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	var out map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &out)
	return rec, out
}

func (s testServer) login(t *testing.T, role domain.Role) string {
	t.Helper()
	u, err := s.users.Create(context.Background(), ports.CreateUserInput{Role: role, Password: "role-pass"})
	if err != nil {
		t.Fatalf("create %s: %v", role, err)
	}
	res, err := s.auth.Login(context.Background(), u.ID, "role-pass")
	if err != nil {
		t.Fatalf("login %s: %v", role, err)
	}
	return res.AccessToken
}

func TestRouter_FacultyLifecycle(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(t, domain.RoleAdmin)

	rec, body := s.do(t, http.MethodPost, "/api/v1/academic-faculties", admin, `{"title":"Faculty of Law"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	id := body["data"].(map[string]any)["id"].(string)

	rec, _ = s.do(t, http.MethodPost, "/api/v1/academic-faculties", admin, `{"title":"faculty of LAW"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate: expected 409, got %d", rec.Code)
	}

	rec, body = s.do(t, http.MethodGet, "/api/v1/academic-faculties?searchTerm=law&page=1&limit=10", admin, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", rec.Code)
	}
	if meta := body["meta"].(map[string]any); meta["total"] != float64(1) {
		t.Fatalf("list: unexpected meta %+v", meta)
	}

	rec, _ = s.do(t, http.MethodPatch, "/api/v1/academic-faculties/"+id, admin, `{"title":"School of Law"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d", rec.Code)
	}

	rec, _ = s.do(t, http.MethodDelete, "/api/v1/academic-faculties/"+id, admin, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", rec.Code)
	}
	rec, body = s.do(t, http.MethodDelete, "/api/v1/academic-faculties/"+id, admin, "")
	if rec.Code != http.StatusNotFound || body["success"] != false {
		t.Fatalf("delete missing: expected 404 envelope, got %d %+v", rec.Code, body)
	}

	rec, _ = s.do(t, http.MethodGet, "/api/v1/academic-faculties/not-an-id", admin, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("malformed id: expected 400, got %d", rec.Code)
	}
}

func TestRouter_UsersRequireAdmin(t *testing.T) {
	s := newTestServer(t)
	student := s.login(t, domain.RoleStudent)

	rec, _ := s.do(t, http.MethodGet, "/api/v1/users", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous: expected 401, got %d", rec.Code)
	}
	rec, body := s.do(t, http.MethodGet, "/api/v1/users", student, "")
	if rec.Code != http.StatusForbidden || body["statusCode"] != float64(http.StatusForbidden) {
		t.Fatalf("student: expected 403 envelope, got %d %+v", rec.Code, body)
	}
}

func TestRouter_CreateUserWithDefaultPassword(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(t, domain.RoleAdmin)

	rec, body := s.do(t, http.MethodPost, "/api/v1/users", admin, `{"role":"student"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	data := body["data"].(map[string]any)
	if data["id"] != "S-00001" || data["needsPasswordChange"] != true {
		t.Fatalf("unexpected user: %+v", data)
	}
	if _, leaked := data["password"]; leaked {
		t.Fatalf("password must never be returned")
	}

	rec, body = s.do(t, http.MethodPost, "/api/v1/auth/login", "", `{"id":"S-00001","password":"default-pass"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d", rec.Code)
	}
	login := body["data"].(map[string]any)
	if login["needsPasswordChange"] != true {
		t.Fatalf("expected forced change flag on login")
	}
	token := login["accessToken"].(string)

	rec, _ = s.do(t, http.MethodPost, "/api/v1/auth/change-password", token, `{"oldPassword":"default-pass","newPassword":"my-own-pass"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("change password: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec, body = s.do(t, http.MethodPost, "/api/v1/users", admin, `{"role":"student","profile":{"faculty":"65f1c0a2b3c4d5e6f7a8b9c0"}}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("mismatched profile: expected 400, got %d", rec.Code)
	}
	msgs := body["errorMessages"].([]any)
	if msgs[0].(map[string]any)["path"] != "faculty" {
		t.Fatalf("unexpected errorMessages: %+v", msgs)
	}
}

func TestRouter_OpsEndpoints(t *testing.T) {
	s := newTestServer(t)

	rec, _ := s.do(t, http.MethodGet, "/health", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("liveness: expected 200, got %d", rec.Code)
	}

	rec, body := s.do(t, http.MethodGet, "/health/ready", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("readiness: expected 200 with disabled deps, got %d", rec.Code)
	}
	deps := body["dependencies"].(map[string]any)
	if deps["mongodb"].(map[string]any)["status"] != "disabled" {
		t.Fatalf("unexpected dependency report: %+v", deps)
	}

	rec, _ = s.do(t, http.MethodGet, "/metrics", "", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "records_http_requests_total") {
		t.Fatalf("metrics: expected records_http_requests_total, got %d", rec.Code)
	}

	rec, _ = s.do(t, http.MethodGet, "/health", "", "")
	if rec.Header().Get(echo.HeaderXRequestID) == "" {
		t.Fatalf("expected a request id header")
	}
}

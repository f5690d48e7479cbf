package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func newTestHandler(t *testing.T) (*Handler, *echo.Echo) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.json")
	provider := NewProvider(newTestStore(), NewSessionStore(path))
	issuer := NewTokenIssuer([]byte("test-secret"), time.Hour)
	return NewHandler(provider, issuer), echo.New()
}

func TestHandler_Login(t *testing.T) {
	h, e := newTestHandler(t)
	body := `{"email":"admin@swasthtrack.com","password":"admin123"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Login(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Token == "" {
		t.Error("expected a session token")
	}
	if resp.User.Role != RoleAdmin {
		t.Errorf("expected admin role, got %s", resp.User.Role)
	}
}

func TestHandler_Login_BadCredentials(t *testing.T) {
	h, e := newTestHandler(t)
	body := `{"email":"admin@swasthtrack.com","password":"nope"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Login(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
	// The message must not leak whether the email exists.
	if he.Message != "invalid credentials" {
		t.Errorf("unexpected failure message: %v", he.Message)
	}
}

func TestHandler_Register_Conflict(t *testing.T) {
	h, e := newTestHandler(t)
	body := `{"email":"admin@swasthtrack.com","password":"x","name":"X","role":"admin"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Register(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %v", err)
	}
}

func TestMiddleware_AllowsValidToken(t *testing.T) {
	issuer := NewTokenIssuer([]byte("test-secret"), time.Hour)
	raw, _ := issuer.Issue(User{ID: "2", Name: "Dr. Sarah Smith", Role: RoleDoctor})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/patients", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var gotName, gotRole string
	handler := func(c echo.Context) error {
		gotName = UserNameFromContext(c.Request().Context())
		gotRole = RoleFromContext(c.Request().Context())
		return c.NoContent(http.StatusOK)
	}

	if err := Middleware(issuer)(handler)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotName != "Dr. Sarah Smith" || gotRole != RoleDoctor {
		t.Errorf("expected identity on context, got %q/%q", gotName, gotRole)
	}
}

func TestMiddleware_RejectsMissingToken(t *testing.T) {
	issuer := NewTokenIssuer([]byte("test-secret"), time.Hour)
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/patients", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	err := Middleware(issuer)(handler)(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestMiddleware_SkipsConfiguredPrefixes(t *testing.T) {
	issuer := NewTokenIssuer([]byte("test-secret"), time.Hour)
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	if err := Middleware(issuer, "/api/v1/auth/")(handler)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRequireRole(t *testing.T) {
	e := echo.New()
	handler := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	makeCtx := func(role string) echo.Context {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		ctx := context.WithValue(req.Context(), UserRoleKey, role)
		req = req.WithContext(ctx)
		return e.NewContext(req, httptest.NewRecorder())
	}

	if err := RequireRole(RoleDoctor)(handler)(makeCtx(RoleDoctor)); err != nil {
		t.Errorf("expected doctor to pass: %v", err)
	}
	if err := RequireRole(RoleDoctor)(handler)(makeCtx(RoleAdmin)); err != nil {
		t.Errorf("expected admin to pass any check: %v", err)
	}
	if err := RequireRole(RoleDoctor)(handler)(makeCtx(RolePatient)); err == nil {
		t.Error("expected patient to be rejected")
	}
}

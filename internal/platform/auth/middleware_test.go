package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dentalcare/clinic/internal/platform/clock"
)

func setupEcho(issuer *TokenIssuer, roles ...string) *echo.Echo {
	e := echo.New()
	g := e.Group("/protected", Middleware(issuer))
	if len(roles) > 0 {
		g.Use(RequireRole(roles...))
	}
	g.GET("", func(c echo.Context) error {
		id, _ := FromContext(c.Request().Context())
		return c.String(http.StatusOK, id.UserID)
	})
	return e
}

func TestMiddlewareMissingHeader(t *testing.T) {
	issuer := NewTokenIssuer([]byte("test-secret"), time.Hour, clock.System{})
	e := setupEcho(issuer)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestMiddlewareMalformedHeader(t *testing.T) {
	issuer := NewTokenIssuer([]byte("test-secret"), time.Hour, clock.System{})
	e := setupEcho(issuer)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Basic abc123")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestMiddlewareValidToken(t *testing.T) {
	issuer := NewTokenIssuer([]byte("test-secret"), time.Hour, clock.System{})
	e := setupEcho(issuer)

	token, err := issuer.Issue(Identity{UserID: "1", Role: RoleAdmin})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Body.String() != "1" {
		t.Errorf("body = %q, want user id on context", rec.Body.String())
	}
}

func TestRequireRoleForbidden(t *testing.T) {
	issuer := NewTokenIssuer([]byte("test-secret"), time.Hour, clock.System{})
	e := setupEcho(issuer, RoleAdmin)

	token, err := issuer.Issue(Identity{UserID: "2", Role: RolePatient, PatientID: "p1"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}

func TestRequireRoleAllowsAnyListed(t *testing.T) {
	issuer := NewTokenIssuer([]byte("test-secret"), time.Hour, clock.System{})
	e := setupEcho(issuer, RoleAdmin, RolePatient)

	token, err := issuer.Issue(Identity{UserID: "2", Role: RolePatient, PatientID: "p1"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

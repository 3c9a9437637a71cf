package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/mediscan/platform-api/internal/core/domain"
)

func rbacContext(role string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	if role != "" {
		c.Set(CtxRole, role)
	}
	return c
}

func TestRequireRole_Allowed(t *testing.T) {
	c := rbacContext(domain.RoleSuperadmin)

	called := false
	handler := RequireRole(domain.RoleDoctor, domain.RoleSuperadmin)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called for an allowed role")
	}
}

func TestRequireRole_Denied(t *testing.T) {
	c := rbacContext(domain.RolePatient)

	handler := RequireRole(domain.RoleDoctor, domain.RoleSuperadmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestRequireRole_MissingIdentity(t *testing.T) {
	c := rbacContext("")

	handler := RequireRole(domain.RoleSuperadmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/mediscan/platform-api/internal/auth"
	"github.com/mediscan/platform-api/internal/core/domain"
)

func issueToken(t *testing.T, tokens *auth.TokenManager) string {
	t.Helper()
	token, err := tokens.Issue("acc_1", "jane@example.com", domain.RolePatient)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}

func newAuthContext(req *http.Request) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuth_BearerHeader(t *testing.T) {
	tokens := auth.NewTokenManager("secret", time.Hour)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, tokens))
	c, rec := newAuthContext(req)

	called := false
	handler := Auth(tokens)(func(c echo.Context) error {
		called = true
		if c.Get(CtxAccountID) != "acc_1" {
			t.Fatalf("account_id not set")
		}
		if c.Get(CtxEmail) != "jane@example.com" {
			t.Fatalf("email not set")
		}
		if c.Get(CtxRole) != domain.RolePatient {
			t.Fatalf("role not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuth_CookieFallback(t *testing.T) {
	tokens := auth.NewTokenManager("secret", time.Hour)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: issueToken(t, tokens)})
	c, _ := newAuthContext(req)

	called := false
	handler := Auth(tokens)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("cookie credential not accepted")
	}
}

func TestAuth_HeaderTakesPriorityOverCookie(t *testing.T) {
	tokens := auth.NewTokenManager("secret", time.Hour)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	// Valid cookie, but a garbage Authorization header: the header wins,
	// so the request must be rejected.
	req.AddCookie(&http.Cookie{Name: CookieName, Value: issueToken(t, tokens)})
	req.Header.Set("Authorization", "Bearer not-a-token")
	c, _ := newAuthContext(req)

	handler := Auth(tokens)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestAuth_MissingCredential(t *testing.T) {
	tokens := auth.NewTokenManager("secret", time.Hour)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c, _ := newAuthContext(req)

	handler := Auth(tokens)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrAuthRequired) {
		t.Fatalf("expected ErrAuthRequired, got %v", err)
	}
}

func TestAuth_ExpiredToken(t *testing.T) {
	tokens := auth.NewTokenManager("secret", time.Hour)

	claims := &auth.Claims{
		Email: "jane@example.com",
		Role:  domain.RolePatient,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "acc_1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+expired)
	c, _ := newAuthContext(req)

	handler := Auth(tokens)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
}

func TestAuth_WrongKey(t *testing.T) {
	tokens := auth.NewTokenManager("secret", time.Hour)
	other := auth.NewTokenManager("other-secret", time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, other))
	c, _ := newAuthContext(req)

	handler := Auth(tokens)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

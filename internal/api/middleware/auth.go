package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mediscan/platform-api/internal/api/metrics"
	"github.com/mediscan/platform-api/internal/auth"
	"github.com/mediscan/platform-api/internal/core/domain"
)

// CookieName is the cookie carrying the auth token for browser clients.
const CookieName = "auth_token"

// Context keys populated by Auth for downstream handlers.
const (
	CtxAccountID = "account_id"
	CtxEmail     = "email"
	CtxRole      = "role"
)

// Auth verifies the request credential and injects the identity into the
// echo context. The bearer header is tried first; the cookie is only a
// fallback when no Authorization header is present at all.
func Auth(tokens *auth.TokenManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c)
			if token == "" {
				metrics.TokenRejectionsTotal.WithLabelValues("missing").Inc()
				return domain.ErrAuthRequired
			}

			identity, err := tokens.Verify(token)
			if err != nil {
				if errors.Is(err, auth.ErrTokenExpired) {
					metrics.TokenRejectionsTotal.WithLabelValues("expired").Inc()
					return domain.ErrSessionExpired
				}
				metrics.TokenRejectionsTotal.WithLabelValues("invalid").Inc()
				return domain.ErrInvalidToken
			}

			c.Set(CtxAccountID, identity.AccountID)
			c.Set(CtxEmail, identity.Email)
			c.Set(CtxRole, identity.Role)

			return next(c)
		}
	}
}

func extractToken(c echo.Context) string {
	header := c.Request().Header.Get("Authorization")
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
		// A malformed header is not silently ignored in favour of the
		// cookie; the header has priority when present.
		return ""
	}

	if cookie, err := c.Cookie(CookieName); err == nil {
		return cookie.Value
	}
	return ""
}

package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/mediscan/platform-api/internal/core/domain"
)

// RequireRole enforces role-based access control. The identity must
// already be populated by Auth; an absent identity or a role outside the
// allowed set fails with Forbidden. Pure predicate, no side effects.
func RequireRole(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(CtxRole).(string)
			if _, ok := allowed[role]; !ok {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}

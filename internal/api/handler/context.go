package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/mediscan/platform-api/internal/api/middleware"
	"github.com/mediscan/platform-api/internal/core/domain"
)

// ctxIdentity extracts the identity injected by the Auth middleware and
// fast-fails before any service call when it is missing: a populated
// account_id proves the middleware ran.
func ctxIdentity(c echo.Context) (accountID, role string, err error) {
	accountID, _ = c.Get(middleware.CtxAccountID).(string)
	if accountID == "" {
		return "", "", domain.ErrAuthRequired
	}
	role, _ = c.Get(middleware.CtxRole).(string)
	return accountID, role, nil
}

package handler

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mediscan/platform-api/internal/api/metrics"
	"github.com/mediscan/platform-api/internal/api/middleware"
	"github.com/mediscan/platform-api/internal/core/domain"
	"github.com/mediscan/platform-api/internal/core/ports"
)

// AuthHandler exposes registration, login, and account-session endpoints.
type AuthHandler struct {
	authService  ports.AuthService
	setupKey     string
	cookieTTL    time.Duration
	secureCookie bool
}

func NewAuthHandler(authService ports.AuthService, setupKey string, cookieTTL time.Duration, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		setupKey:     setupKey,
		cookieTTL:    cookieTTL,
		secureCookie: secureCookie,
	}
}

// Register creates a new account and issues a token.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  map[string]any
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	req.normalize()
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Name:      req.Name,
		Email:     req.Email,
		Password:  req.Password,
		Role:      req.Role,
		Phone:     req.Phone,
		LicenseID: req.LicenseID,
	})
	if err != nil {
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues(result.Account.Role).Inc()
	h.setAuthCookie(c, result.Token)

	return c.JSON(http.StatusCreated, authResponse{
		Success: true,
		Message: "Registered successfully",
		User:    result.Account,
		Token:   result.Token,
	})
}

// RegisterSuperadmin creates a superadmin account. The setup key is
// compared in constant time against process configuration before any
// validation runs; a mismatch is rejected regardless of payload.
//
// @Summary      Register a superadmin (requires setup key)
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerSuperadminRequest  true  "Registration details plus setup key"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  map[string]any
// @Failure      403   {object}  map[string]any
// @Router       /auth/register-superadmin [post]
func (h *AuthHandler) RegisterSuperadmin(c echo.Context) error {
	var req registerSuperadminRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if h.setupKey == "" || subtle.ConstantTimeCompare([]byte(req.SetupKey), []byte(h.setupKey)) != 1 {
		return domain.ErrBadSetupKey
	}

	req.Role = domain.RoleSuperadmin
	req.normalize()
	if err := c.Validate(&req.registerRequest); err != nil {
		return err
	}

	result, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Name:      req.Name,
		Email:     req.Email,
		Password:  req.Password,
		Role:      req.Role,
		Phone:     req.Phone,
		LicenseID: req.LicenseID,
	})
	if err != nil {
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues(result.Account.Role).Inc()
	h.setAuthCookie(c, result.Token)

	return c.JSON(http.StatusCreated, authResponse{
		Success: true,
		Message: "Superadmin registered successfully",
		User:    result.Account,
		Token:   result.Token,
	})
}

// Login authenticates an account and issues a token.
//
// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      401   {object}  map[string]any
// @Failure      429   {object}  map[string]any
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	req.normalize()
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		switch domain.KindOf(err) {
		case domain.KindRateLimited:
			metrics.LoginsTotal.WithLabelValues("throttled").Inc()
		default:
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
		}
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	h.setAuthCookie(c, result.Token)

	return c.JSON(http.StatusOK, authResponse{
		Success: true,
		Message: "Logged in successfully",
		User:    result.Account,
		Token:   result.Token,
	})
}

// Logout clears the credential cookie. A bearer token already held by the
// client stays valid until it expires: invalidation is expiry-only, there
// is no server-side revocation list.
//
// @Summary      Log out
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  map[string]any
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	h.clearAuthCookie(c)
	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "Logged out successfully"})
}

// Me returns the authenticated account.
//
// @Summary      Get the current account
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  accountResponse
// @Failure      401  {object}  map[string]any
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	accountID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	account, err := h.authService.CurrentAccount(c.Request().Context(), accountID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, accountResponse{Success: true, User: account})
}

// ChangePassword re-proves the current password and persists a new hash.
//
// @Summary      Change the current account's password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      changePasswordRequest  true  "Current and new password"
// @Success      200   {object}  accountResponse
// @Failure      400   {object}  map[string]any
// @Failure      401   {object}  map[string]any
// @Router       /auth/change-password [post]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	accountID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		metrics.PasswordChangesTotal.WithLabelValues("rejected").Inc()
		return err
	}

	account, err := h.authService.ChangePassword(c.Request().Context(), accountID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		metrics.PasswordChangesTotal.WithLabelValues("rejected").Inc()
		return err
	}

	metrics.PasswordChangesTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, accountResponse{
		Success: true,
		Message: "Password updated successfully",
		User:    account,
	})
}

func (h *AuthHandler) setAuthCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.cookieTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.secureCookie,
	})
}

func (h *AuthHandler) clearAuthCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.secureCookie,
	})
}

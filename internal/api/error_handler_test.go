package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/mediscan/platform-api/internal/core/domain"
)

func render(t *testing.T, err error) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, rec.Body.String())
	}
	return rec, body
}

func TestErrorHandler_KindStatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"validation", domain.NewValidation([]string{"name is required"}), http.StatusBadRequest},
		{"conflict renders as 400", domain.ErrEmailTaken, http.StatusBadRequest},
		{"unauthenticated", domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden},
		{"not found", domain.ErrAccountNotFound, http.StatusNotFound},
		{"rate limited", domain.ErrTooManyAttempts, http.StatusTooManyRequests},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, body := render(t, tc.err)
			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			if body["success"] != false {
				t.Fatalf("expected success=false, got %v", body["success"])
			}
			if body["message"] == "" {
				t.Fatalf("expected a message")
			}
		})
	}
}

func TestErrorHandler_ValidationCarriesBatchedErrors(t *testing.T) {
	_, body := render(t, domain.NewValidation([]string{
		"name is required",
		"email must be a valid email",
	}))

	msgs, _ := body["errors"].([]any)
	if len(msgs) != 2 {
		t.Fatalf("expected 2 batched errors, got %v", body["errors"])
	}
}

func TestErrorHandler_InternalHidesCause(t *testing.T) {
	rec, body := render(t, domain.Internal(errors.New("mongo: socket closed")))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if body["message"] != "Internal server error" {
		t.Fatalf("internal cause leaked: %v", body["message"])
	}
}

func TestErrorHandler_UnknownErrorIsGeneric(t *testing.T) {
	rec, body := render(t, errors.New("boom"))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if body["message"] != "Internal server error" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
}

func TestErrorHandler_EchoHTTPErrorPassthrough(t *testing.T) {
	rec, _ := render(t, echo.NewHTTPError(http.StatusNotFound, "Route not found"))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

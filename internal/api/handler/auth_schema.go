package handler

import (
	"strings"

	"github.com/mediscan/platform-api/internal/core/domain"
)

type registerRequest struct {
	Name      string `json:"name" validate:"required,min=2"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	Role      string `json:"role" validate:"required,oneof=patient doctor superadmin"`
	Phone     string `json:"phone" validate:"required_if=Role patient"`
	LicenseID string `json:"license_id" validate:"required_if=Role doctor"`
}

// normalize trims and case-folds everything except the password, which is
// stored exactly as supplied. A missing role defaults to patient. Runs
// before validation so the min-length rules see trimmed values.
func (r *registerRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Role = strings.ToLower(strings.TrimSpace(r.Role))
	if r.Role == "" {
		r.Role = domain.RolePatient
	}
	r.Phone = strings.TrimSpace(r.Phone)
	r.LicenseID = strings.TrimSpace(r.LicenseID)
}

type registerSuperadminRequest struct {
	registerRequest
	SetupKey string `json:"setup_key"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *loginRequest) normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

type authResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	User    *domain.Account `json:"user"`
	Token   string          `json:"token"`
}

type accountResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	User    *domain.Account `json:"user"`
}

type accountListResponse struct {
	Success bool              `json:"success"`
	Users   []*domain.Account `json:"users"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

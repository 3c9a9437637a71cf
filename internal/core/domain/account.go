package domain

import "time"

const (
	RolePatient    = "patient"
	RoleDoctor     = "doctor"
	RoleSuperadmin = "superadmin"
)

// Roles is the closed set of roles an account may hold.
var Roles = []string{RolePatient, RoleDoctor, RoleSuperadmin}

// ValidRole reports whether role belongs to the closed role set.
func ValidRole(role string) bool {
	for _, r := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Account models a registered identity. The password hash is never
// serialized outward (json:"-"); sanitization is structural, not ad hoc.
type Account struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Phone        string    `json:"phone,omitempty"`
	LicenseID    string    `json:"license_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

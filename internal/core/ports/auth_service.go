package ports

import (
	"context"

	"github.com/mediscan/platform-api/internal/core/domain"
)

// RegisterInput carries an already-validated, normalized registration
// payload: email lowercased, name/phone/license trimmed, role defaulted.
// The password is the only field that is never normalized.
type RegisterInput struct {
	Name      string
	Email     string
	Password  string
	Role      string
	Phone     string
	LicenseID string
}

// AuthResult pairs the stored account with a freshly issued token.
type AuthResult struct {
	Account *domain.Account
	Token   string
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	CurrentAccount(ctx context.Context, accountID string) (*domain.Account, error)
	ChangePassword(ctx context.Context, accountID, currentPassword, newPassword string) (*domain.Account, error)
}

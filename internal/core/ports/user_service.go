package ports

import (
	"context"

	"github.com/mediscan/platform-api/internal/core/domain"
)

// UpdateAccountInput lists the mutable fields of an account. Nil means
// "leave unchanged". Which fields a caller may set is decided at the
// boundary by an explicit per-role allow-list, never by iterating the
// request payload.
type UpdateAccountInput struct {
	ID        string
	Name      *string
	Email     *string
	Role      *string
	Phone     *string
	LicenseID *string
}

type UserService interface {
	List(ctx context.Context) ([]*domain.Account, error)
	Get(ctx context.Context, id string) (*domain.Account, error)
	Update(ctx context.Context, input UpdateAccountInput) (*domain.Account, error)
	Delete(ctx context.Context, id string) (*domain.Account, error)
}

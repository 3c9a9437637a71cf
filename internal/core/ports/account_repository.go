package ports

import (
	"context"

	"github.com/mediscan/platform-api/internal/core/domain"
)

// AccountRepository is the persistence contract for accounts. Uniqueness of
// email and license_id is enforced by the store itself (unique indexes), so
// Create closes the race a prior existence check leaves open.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByLicenseID(ctx context.Context, licenseID string) (*domain.Account, error)
	FindAll(ctx context.Context) ([]*domain.Account, error)
	Update(ctx context.Context, account *domain.Account) (*domain.Account, error)
	Delete(ctx context.Context, id string) error
}

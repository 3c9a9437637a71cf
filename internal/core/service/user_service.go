package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/mediscan/platform-api/internal/core/domain"
	"github.com/mediscan/platform-api/internal/core/ports"
)

// UserService implements account administration: list, get, update, delete.
type UserService struct {
	repo ports.AccountRepository
}

func NewUserService(repo ports.AccountRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) List(ctx context.Context) ([]*domain.Account, error) {
	return s.repo.FindAll(ctx)
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.Account, error) {
	return s.repo.FindByID(ctx, id)
}

// Update applies the non-nil fields of input to the stored account. Which
// fields a caller may set is already decided at the boundary; this layer
// enforces the data invariants: role membership, email normalization, and
// license uniqueness across other accounts.
func (s *UserService) Update(ctx context.Context, input ports.UpdateAccountInput) (*domain.Account, error) {
	account, err := s.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		account.Name = strings.TrimSpace(*input.Name)
	}
	if input.Email != nil {
		account.Email = normalizeEmail(*input.Email)
	}
	if input.Role != nil {
		if !domain.ValidRole(*input.Role) {
			return nil, domain.NewValidation([]string{"role must be one of: " + strings.Join(domain.Roles, ", ")})
		}
		account.Role = *input.Role
	}
	if input.Phone != nil {
		account.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.LicenseID != nil {
		account.LicenseID = strings.TrimSpace(*input.LicenseID)
	}

	if input.LicenseID != nil && account.LicenseID != "" {
		other, err := s.repo.FindByLicenseID(ctx, account.LicenseID)
		if err == nil && other.ID != account.ID {
			return nil, domain.ErrLicenseTaken
		}
		if err != nil && !errors.Is(err, domain.ErrAccountNotFound) {
			return nil, err
		}
	}

	account.UpdatedAt = time.Now().UTC()
	return s.repo.Update(ctx, account)
}

// Delete removes the account and returns its last state.
func (s *UserService) Delete(ctx context.Context, id string) (*domain.Account, error) {
	account, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return account, nil
}

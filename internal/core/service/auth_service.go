package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/mediscan/platform-api/internal/auth"
	"github.com/mediscan/platform-api/internal/core/domain"
	"github.com/mediscan/platform-api/internal/core/ports"
)

// AuthService implements registration, login, and password management.
type AuthService struct {
	repo     ports.AccountRepository
	hasher   auth.PasswordHasher
	tokens   *auth.TokenManager
	throttle ports.LoginThrottle // nil disables login throttling
}

func NewAuthService(repo ports.AccountRepository, hasher auth.PasswordHasher, tokens *auth.TokenManager, throttle ports.LoginThrottle) *AuthService {
	return &AuthService{repo: repo, hasher: hasher, tokens: tokens, throttle: throttle}
}

// Register creates an account and issues a token for it. Uniqueness is
// checked in a fixed order, email first and then license, before the
// password is hashed or anything is written. The store's own unique
// indexes close the remaining check/create race.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*ports.AuthResult, error) {
	email := normalizeEmail(input.Email)
	role := input.Role
	if role == "" {
		role = domain.RolePatient
	}
	if !domain.ValidRole(role) {
		return nil, domain.NewValidation([]string{"role must be one of: " + strings.Join(domain.Roles, ", ")})
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, err
	}

	if role == domain.RoleDoctor && input.LicenseID != "" {
		if _, err := s.repo.FindByLicenseID(ctx, input.LicenseID); err == nil {
			return nil, domain.ErrLicenseTaken
		} else if !errors.Is(err, domain.ErrAccountNotFound) {
			return nil, err
		}
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, domain.Internal(err)
	}

	now := time.Now().UTC()
	account := &domain.Account{
		Name:         input.Name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Phone:        input.Phone,
		LicenseID:    input.LicenseID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, account)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(created.ID, created.Email, created.Role)
	if err != nil {
		return nil, domain.Internal(err)
	}

	return &ports.AuthResult{Account: created, Token: token}, nil
}

// Login authenticates by email and password. An unknown email and a wrong
// password produce the same failure so the response leaks nothing.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	email = normalizeEmail(email)

	if s.throttle != nil {
		blocked, err := s.throttle.TooMany(ctx, email)
		if err != nil {
			return nil, domain.Internal(err)
		}
		if blocked {
			return nil, domain.ErrTooManyAttempts
		}
	}

	account, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, s.failLogin(ctx, email)
		}
		return nil, err
	}

	if !s.hasher.Verify(password, account.PasswordHash) {
		return nil, s.failLogin(ctx, email)
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, email); err != nil {
			return nil, domain.Internal(err)
		}
	}

	token, err := s.tokens.Issue(account.ID, account.Email, account.Role)
	if err != nil {
		return nil, domain.Internal(err)
	}

	return &ports.AuthResult{Account: account, Token: token}, nil
}

func (s *AuthService) failLogin(ctx context.Context, email string) error {
	if s.throttle != nil {
		if err := s.throttle.RecordFailure(ctx, email); err != nil {
			return domain.Internal(err)
		}
	}
	return domain.ErrInvalidCredentials
}

// CurrentAccount loads the account behind an authenticated identity.
func (s *AuthService) CurrentAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	return s.repo.FindByID(ctx, accountID)
}

// ChangePassword re-proves the current password before persisting a new
// hash. A wrong current password mutates nothing.
func (s *AuthService) ChangePassword(ctx context.Context, accountID, currentPassword, newPassword string) (*domain.Account, error) {
	account, err := s.repo.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if !s.hasher.Verify(currentPassword, account.PasswordHash) {
		return nil, domain.ErrWrongPassword
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return nil, domain.Internal(err)
	}

	account.PasswordHash = hash
	account.UpdatedAt = time.Now().UTC()
	return s.repo.Update(ctx, account)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mediscan/platform-api/internal/core/domain"
	"github.com/mediscan/platform-api/internal/core/ports"
)

func seedAccount(t *testing.T, repo *stubAccountRepo, email, role, licenseID string) *domain.Account {
	t.Helper()
	now := time.Now().UTC()
	created, err := repo.Create(context.Background(), &domain.Account{
		Name:         "Seeded User",
		Email:        email,
		PasswordHash: "$2a$04$fakefakefakefakefakefake",
		Role:         role,
		LicenseID:    licenseID,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("seed account: %v", err)
	}
	return created
}

func strptr(s string) *string { return &s }

func TestUserService_Update_AppliesFields(t *testing.T) {
	repo := newStubAccountRepo()
	svc := NewUserService(repo)
	acc := seedAccount(t, repo, "jane@example.com", domain.RolePatient, "")

	updated, err := svc.Update(context.Background(), ports.UpdateAccountInput{
		ID:    acc.ID,
		Name:  strptr("  Jane Updated  "),
		Email: strptr("Jane.New@Example.COM"),
		Phone: strptr("+15557654321"),
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Name != "Jane Updated" {
		t.Fatalf("name not trimmed/applied: %q", updated.Name)
	}
	if updated.Email != "jane.new@example.com" {
		t.Fatalf("email not normalized: %q", updated.Email)
	}
	if updated.Phone != "+15557654321" {
		t.Fatalf("phone not applied: %q", updated.Phone)
	}
	if updated.Role != domain.RolePatient {
		t.Fatalf("role changed without being requested: %q", updated.Role)
	}
}

func TestUserService_Update_RejectsUnknownRole(t *testing.T) {
	repo := newStubAccountRepo()
	svc := NewUserService(repo)
	acc := seedAccount(t, repo, "jane@example.com", domain.RolePatient, "")

	_, err := svc.Update(context.Background(), ports.UpdateAccountInput{
		ID:   acc.ID,
		Role: strptr("nurse"),
	})
	if domain.KindOf(err) != domain.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUserService_Update_LicenseConflict(t *testing.T) {
	repo := newStubAccountRepo()
	svc := NewUserService(repo)
	seedAccount(t, repo, "dr.a@example.com", domain.RoleDoctor, "NMC-111")
	other := seedAccount(t, repo, "dr.b@example.com", domain.RoleDoctor, "NMC-222")

	_, err := svc.Update(context.Background(), ports.UpdateAccountInput{
		ID:        other.ID,
		LicenseID: strptr("NMC-111"),
	})
	if !errors.Is(err, domain.ErrLicenseTaken) {
		t.Fatalf("expected ErrLicenseTaken, got %v", err)
	}
}

func TestUserService_Update_OwnLicenseIsNotAConflict(t *testing.T) {
	repo := newStubAccountRepo()
	svc := NewUserService(repo)
	acc := seedAccount(t, repo, "dr.a@example.com", domain.RoleDoctor, "NMC-111")

	if _, err := svc.Update(context.Background(), ports.UpdateAccountInput{
		ID:        acc.ID,
		LicenseID: strptr("NMC-111"),
	}); err != nil {
		t.Fatalf("re-asserting one's own license must not conflict: %v", err)
	}
}

func TestUserService_Update_NotFound(t *testing.T) {
	svc := NewUserService(newStubAccountRepo())

	_, err := svc.Update(context.Background(), ports.UpdateAccountInput{
		ID:   "acc_missing",
		Name: strptr("Nobody"),
	})
	if !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestUserService_Delete(t *testing.T) {
	repo := newStubAccountRepo()
	svc := NewUserService(repo)
	acc := seedAccount(t, repo, "jane@example.com", domain.RolePatient, "")

	deleted, err := svc.Delete(context.Background(), acc.ID)
	if err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if deleted.ID != acc.ID {
		t.Fatalf("unexpected deleted account: %+v", deleted)
	}

	if _, err := svc.Get(context.Background(), acc.ID); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("account still present after delete: %v", err)
	}
}

func TestUserService_Delete_NotFound(t *testing.T) {
	svc := NewUserService(newStubAccountRepo())

	if _, err := svc.Delete(context.Background(), "acc_missing"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestUserService_List(t *testing.T) {
	repo := newStubAccountRepo()
	svc := NewUserService(repo)
	seedAccount(t, repo, "a@example.com", domain.RolePatient, "")
	seedAccount(t, repo, "b@example.com", domain.RoleDoctor, "NMC-1")

	users, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 accounts, got %d", len(users))
	}
}

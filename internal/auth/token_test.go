package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)

	token, err := m.Issue("acc_1", "jane@example.com", "patient")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	identity, err := m.Verify(token)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if identity.AccountID != "acc_1" {
		t.Fatalf("expected account acc_1, got %s", identity.AccountID)
	}
	if identity.Email != "jane@example.com" {
		t.Fatalf("unexpected email: %s", identity.Email)
	}
	if identity.Role != "patient" {
		t.Fatalf("unexpected role: %s", identity.Role)
	}
}

func TestTokenManager_Expired(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)

	// Sign a token whose lifetime has already passed, with the right key.
	claims := &Claims{
		Email: "jane@example.com",
		Role:  "patient",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "acc_1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := m.Verify(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenManager_WrongKey(t *testing.T) {
	issuer := NewTokenManager("key-a", time.Hour)
	verifier := NewTokenManager("key-b", time.Hour)

	token, err := issuer.Issue("acc_1", "jane@example.com", "patient")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if _, err := verifier.Verify(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestTokenManager_Malformed(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)

	if _, err := m.Verify("not-a-token"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestTokenManager_MissingSubject(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)

	claims := jwt.MapClaims{
		"email": "jane@example.com",
		"role":  "patient",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := m.Verify(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for missing sub, got %v", err)
	}
}

func TestNewTokenManager_DefaultTTL(t *testing.T) {
	m := NewTokenManager("secret", 0)
	if m.TTL() != DefaultTokenTTL {
		t.Fatalf("expected default TTL %v, got %v", DefaultTokenTTL, m.TTL())
	}
}

package service

import (
	"errors"
	"testing"
	"time"

	"github.com/dextasynergyservices/myweddingpage/internal/core/domain"
)

func TestSessionToken_RoundTrip(t *testing.T) {
	user := &domain.User{ID: "user-1", Role: domain.RoleAdmin}

	token, err := MintSessionToken("secret", user, time.Hour)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	claims, err := ParseSessionToken("secret", token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Subject != "user-1" {
		t.Fatalf("subject changed: %s", claims.Subject)
	}
	if claims.Role != domain.RoleAdmin {
		t.Fatalf("role changed: %s", claims.Role)
	}
}

func TestSessionToken_Expired(t *testing.T) {
	user := &domain.User{ID: "user-1", Role: domain.RoleUser}

	token, err := MintSessionToken("secret", user, -time.Minute)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if _, err := ParseSessionToken("secret", token); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for expired token, got %v", err)
	}
}

func TestSessionToken_Tampered(t *testing.T) {
	user := &domain.User{ID: "user-1", Role: domain.RoleUser}

	token, err := MintSessionToken("secret", user, time.Hour)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	// Flip one character of the signature.
	tampered := []byte(token)
	last := len(tampered) - 1
	if tampered[last] == 'A' {
		tampered[last] = 'B'
	} else {
		tampered[last] = 'A'
	}
	if _, err := ParseSessionToken("secret", string(tampered)); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for tampered token, got %v", err)
	}
}

func TestSessionToken_WrongSecret(t *testing.T) {
	user := &domain.User{ID: "user-1", Role: domain.RoleUser}

	token, err := MintSessionToken("secret", user, time.Hour)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if _, err := ParseSessionToken("other-secret", token); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for wrong secret, got %v", err)
	}
}

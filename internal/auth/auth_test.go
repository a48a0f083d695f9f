package auth

import (
	"errors"
	"testing"
	"time"
)

func TestJWTManager(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)

	t.Run("round trip", func(t *testing.T) {
		token, err := m.Generate()
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		claims, err := m.Validate(token)
		if err != nil {
			t.Fatalf("Validate failed: %v", err)
		}
		if !claims.Admin {
			t.Error("expected admin claim to be set")
		}
	})

	t.Run("wrong secret rejected", func(t *testing.T) {
		token, err := m.Generate()
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		other := NewJWTManager("other-secret", time.Hour)
		if _, err := other.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("expired token rejected", func(t *testing.T) {
		short := NewJWTManager("test-secret", -time.Minute)
		token, err := short.Generate()
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if _, err := short.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("garbage rejected", func(t *testing.T) {
		if _, err := m.Validate("not-a-token"); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})
}

func TestAdminAuthenticator(t *testing.T) {
	a, err := NewAdminAuthenticator("correct horse battery staple")
	if err != nil {
		t.Fatalf("NewAdminAuthenticator failed: %v", err)
	}

	if err := a.Authenticate("correct horse battery staple"); err != nil {
		t.Errorf("expected correct password to pass, got %v", err)
	}
	if err := a.Authenticate("wrong"); !errors.Is(err, ErrInvalidPassword) {
		t.Errorf("expected ErrInvalidPassword, got %v", err)
	}
}

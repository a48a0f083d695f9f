package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidPassword is returned when the supplied admin password is wrong.
var ErrInvalidPassword = errors.New("invalid password")

// AdminAuthenticator verifies the shared admin password using bcrypt.
// The site has a single admin identity; there are no user accounts.
type AdminAuthenticator struct {
	passwordHash []byte
}

// NewAdminAuthenticator hashes the configured admin password once at startup.
// Holding only the hash keeps the plaintext out of long-lived process state.
func NewAdminAuthenticator(password string) (*AdminAuthenticator, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash admin password: %w", err)
	}
	return &AdminAuthenticator{passwordHash: hash}, nil
}

// Authenticate compares the supplied password against the configured one.
func (a *AdminAuthenticator) Authenticate(password string) error {
	if err := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)); err != nil {
		return ErrInvalidPassword
	}
	return nil
}

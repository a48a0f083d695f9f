package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rfeldman/wedsite/internal/auth"
)

// AdminCookie is the session cookie set by the admin login endpoint.
const AdminCookie = "admin_auth"

// TokenValidator validates an admin session token.
type TokenValidator interface {
	Validate(token string) (*auth.AdminClaims, error)
}

// IsAdminRequest reports whether the request carries a valid admin session,
// either as the admin_auth cookie or as a Bearer token.
func IsAdminRequest(r *http.Request, tokens TokenValidator) bool {
	if cookie, err := r.Cookie(AdminCookie); err == nil && cookie.Value != "" {
		if _, err := tokens.Validate(cookie.Value); err == nil {
			return true
		}
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			if _, err := tokens.Validate(parts[1]); err == nil {
				return true
			}
		}
	}

	return false
}

// RequireAdmin wraps a handler with the admin authorization gate. Requests
// without a valid admin session get 401 with the standard error envelope.
func RequireAdmin(tokens TokenValidator, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !IsAdminRequest(r, tokens) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "Unauthorized"})
			return
		}
		next(w, r)
	}
}

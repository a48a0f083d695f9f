package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/rfeldman/wedsite/internal/middleware"
)

func (s *Server) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	if s.authenticator == nil {
		writeError(w, http.StatusInternalServerError, "Admin password not set.")
		return
	}

	var body struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	if err := s.authenticator.Authenticate(body.Password); err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid password.")
		return
	}

	token, err := s.tokens.Generate()
	if err != nil {
		slog.Error("failed to issue admin session token", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AdminCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.tokenDuration.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleAdminLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AdminCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleAdminMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{
		"isAdmin": middleware.IsAdminRequest(r, s.tokens),
	})
}

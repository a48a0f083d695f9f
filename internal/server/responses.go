package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rfeldman/wedsite/internal/service"
	"github.com/rfeldman/wedsite/internal/storage"
)

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes the standard {"error": ...} envelope.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// contributionError maps a contribution failure to a status code and a
// client-safe message. Business-rule violations carry specific messages;
// anything unrecognized is an infrastructure failure and gets the generic
// message so no internal detail leaks to the client.
func contributionError(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrInvalidAmount):
		return http.StatusBadRequest, "Contribution must be a positive number."
	case errors.Is(err, storage.ErrItemNotFound):
		return http.StatusNotFound, "Item not found"
	case errors.Is(err, storage.ErrAlreadyPurchased):
		return http.StatusBadRequest, "This item has already been purchased."
	case errors.Is(err, storage.ErrExceedsRemaining):
		return http.StatusBadRequest, "Contribution cannot be greater than the remaining amount."
	default:
		return http.StatusInternalServerError, "Failed to process contribution. Please try again later."
	}
}

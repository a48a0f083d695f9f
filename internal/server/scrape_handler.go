package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/rfeldman/wedsite/internal/scraper"
)

func (s *Server) handleScrape(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "URL is required and must be a string")
		return
	}

	raw, ok := body["url"].(string)
	if !ok || raw == "" {
		writeError(w, http.StatusBadRequest, "URL is required and must be a string")
		return
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		writeError(w, http.StatusBadRequest, "Invalid URL format")
		return
	}

	data, err := s.scraper.Scrape(r.Context(), raw)
	if err != nil {
		if errors.Is(err, scraper.ErrUnreachable) {
			writeError(w, http.StatusBadRequest, "Could not reach the provided URL. Please check the link.")
			return
		}
		slog.Error("scrape failed", "url", raw, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to scrape product info")
		return
	}

	writeJSON(w, http.StatusOK, data)
}

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/rfeldman/wedsite/internal/auth"
	"github.com/rfeldman/wedsite/internal/config"
	"github.com/rfeldman/wedsite/internal/metrics"
	"github.com/rfeldman/wedsite/internal/scraper"
	"github.com/rfeldman/wedsite/internal/server"
	"github.com/rfeldman/wedsite/internal/service"
	"github.com/rfeldman/wedsite/internal/storage/sqlite"
	"github.com/rfeldman/wedsite/pkg/logging"
)

func main() {
	logging.Setup()

	cfg := config.FromEnv()

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	var authenticator *auth.AdminAuthenticator
	if cfg.AdminPassword == "" {
		slog.Warn("ADMIN_PASSWORD not set, admin login is disabled")
	} else {
		authenticator, err = auth.NewAdminAuthenticator(cfg.AdminPassword)
		if err != nil {
			slog.Error("Failed to hash admin password", "error", err)
			os.Exit(1)
		}
	}

	tokens := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenDuration)
	registry := service.NewRegistryService(store)
	srv := server.New(registry, authenticator, tokens, cfg.TokenDuration, scraper.New(), metrics.New())

	staticDir, err := filepath.Abs(cfg.StaticPath)
	if err != nil {
		slog.Error("Failed to resolve static path", "error", err)
		os.Exit(1)
	}
	slog.Info("Serving static files", "path", staticDir)

	api := srv.Routes()
	mux := http.NewServeMux()
	mux.Handle("/api/", api)
	mux.Handle("/metrics", api)
	mux.HandleFunc("/", staticHandler(staticDir))

	// h2c allows HTTP/2 without TLS when a proxy terminates in front.
	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           h2c.NewHandler(mux, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("Registry server starting", "address", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
}

// staticHandler serves the built site, falling back to index.html for
// unknown non-API paths so client-side routing works.
func staticHandler(staticDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			http.NotFound(w, r)
			return
		}

		urlPath := r.URL.Path
		if urlPath == "/" {
			urlPath = "/index.html"
		}
		filePath := filepath.Join(staticDir, filepath.Clean(urlPath))

		if _, err := os.Stat(filePath); os.IsNotExist(err) {
			http.ServeFile(w, r, filepath.Join(staticDir, "index.html"))
			return
		}
		http.ServeFile(w, r, filePath)
	}
}

// Package config resolves environment configuration once so main stays lean.
package config

import (
	"os"
	"time"
)

// Config captures server-level configuration.
type Config struct {
	// Addr is the listen address for the HTTP server.
	Addr string

	// DBPath is the SQLite database file path.
	DBPath string

	// StaticPath is the directory holding the built static site.
	StaticPath string

	// JWTSecret signs admin session tokens.
	JWTSecret string

	// AdminPassword is the shared admin password. Empty disables admin
	// login entirely; the public registry still works.
	AdminPassword string

	// TokenDuration is how long an admin session stays valid.
	TokenDuration time.Duration
}

// FromEnv builds a Config from environment variables.
func FromEnv() Config {
	jwtSecret := getEnv("JWT_SECRET", "")
	if jwtSecret == "" {
		// Development default - must be overridden in production.
		jwtSecret = "dev-secret-key-change-in-production"
	}

	return Config{
		Addr:          getEnv("ADDR", ":8080"),
		DBPath:        getEnv("DB_PATH", "./data/registry.db"),
		StaticPath:    getEnv("STATIC_PATH", "./static"),
		JWTSecret:     jwtSecret,
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		TokenDuration: 8 * time.Hour,
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

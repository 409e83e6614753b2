package main

import (
	"errors"
	"os"
	"strings"
	"time"
)

// location is used for the current period label and export file dates.
var location = time.Local

// Config is read from the environment (after .env is loaded).
type Config struct {
	HTTPAddr          string
	DBDSN             string
	DBAutoMigrate     bool
	JWTSecret         []byte
	LogLevel          string
	Env               string // dev|prod
	SentryDSN         string
	Location          *time.Location
	SeedAdminEmail    string
	SeedAdminPassword string
}

func loadConfig() (Config, error) {
	loc, err := time.LoadLocation(getenv("TZ", "Asia/Jakarta"))
	if err != nil {
		loc = time.Local
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-insecure-secret-change" // development fallback
	}
	cfg := Config{
		HTTPAddr:          getenv("HTTP_ADDR", ":8081"),
		DBDSN:             os.Getenv("DB_DSN"),
		DBAutoMigrate:     parseBool(os.Getenv("DB_AUTO_MIGRATE"), true),
		JWTSecret:         []byte(secret),
		LogLevel:          getenv("LOG_LEVEL", "info"),
		Env:               getenv("ENV", "dev"),
		SentryDSN:         os.Getenv("SENTRY_DSN"),
		Location:          loc,
		SeedAdminEmail:    os.Getenv("SEED_ADMIN_EMAIL"),
		SeedAdminPassword: os.Getenv("SEED_ADMIN_PASSWORD"),
	}
	if strings.TrimSpace(cfg.DBDSN) == "" {
		return cfg, errors.New("DB_DSN is not set. This service requires a Postgres DSN in DB_DSN")
	}
	return cfg, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func parseBool(v string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "":
		return def
	case "false", "0", "no":
		return false
	}
	return true
}

package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	defaultAddr           = ":8080"
	defaultJWTTTL         = "24h"
	defaultConfirmTimeout = "5s"
	defaultConfirmPoll    = "200ms"
	defaultRecurringEvery = "1h"
)

type Config struct {
	Addr        string
	DatabaseURL string
	JWTSecret   string
	JWTTTL      time.Duration
	CatalogPath string

	// Write-confirmation polling window for booking saves.
	ConfirmTimeout time.Duration
	ConfirmPoll    time.Duration

	// Interval between recurring-maintenance sweeps.
	RecurringEvery time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		Addr:        getenv("ADDR", defaultAddr),
		DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),
		JWTSecret:   strings.TrimSpace(os.Getenv("JWT_SECRET")),
		CatalogPath: getenv("CATALOG_PATH", "catalog.json"),
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is empty")
	}

	var err error
	if cfg.JWTTTL, err = parseDuration("JWT_TTL", defaultJWTTTL); err != nil {
		return nil, err
	}
	if cfg.ConfirmTimeout, err = parseDuration("CONFIRM_TIMEOUT", defaultConfirmTimeout); err != nil {
		return nil, err
	}
	if cfg.ConfirmPoll, err = parseDuration("CONFIRM_POLL_INTERVAL", defaultConfirmPoll); err != nil {
		return nil, err
	}
	if cfg.RecurringEvery, err = parseDuration("RECURRING_SWEEP_INTERVAL", defaultRecurringEvery); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func parseDuration(key, fallback string) (time.Duration, error) {
	raw := getenv(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q", key, raw)
	}
	return d, nil
}

// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults; Load() layers file and env on top.
// - External errors are wrapped via this package's sentinel errors.
package config

import "time"

// Default values applied before file/env layering.
const (
	defaultAddr            = ":8080"
	defaultRateLimitWindow = 60
	defaultMaxLeaderboard  = 100
)

// Config contains process configuration resolved once at startup.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// IdentityURL is the identity provider base URL (token checks go to
	// IdentityURL + "/auth/v1/user"). Required.
	IdentityURL string `koanf:"identity_url"`

	// IdentityAPIKey is the identity provider public API key sent with
	// every token check. Required.
	IdentityAPIKey string `koanf:"identity_api_key"`

	// SinkURL is the spreadsheet sink endpoint accepted submissions are
	// forwarded to. Required.
	SinkURL string `koanf:"sink_url"`

	// RateLimitWindowSeconds is the minimum interval between accepted
	// submissions from the same user.
	RateLimitWindowSeconds int `koanf:"rate_limit_window_seconds"`

	// AdminEmail identifies the admin account for leaderboard uploads.
	// The admin surface is disabled when empty.
	AdminEmail string `koanf:"admin_email"`

	// MaxLeaderboardLimit caps GET /api/leaderboard?limit.
	MaxLeaderboardLimit int `koanf:"max_leaderboard_limit"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:               "info",
		Addr:                   defaultAddr,
		RateLimitWindowSeconds: defaultRateLimitWindow,
		MaxLeaderboardLimit:    defaultMaxLeaderboard,
	}
}

// RateLimitWindow returns the configured window as a duration.
func (c *Config) RateLimitWindow() time.Duration {
	return time.Duration(c.RateLimitWindowSeconds) * time.Second
}

package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if EIGENTRIBE_CONFIG is set
//  3. env (prefix EIGENTRIBE_)
//
// Required keys (identity_url, identity_api_key, sink_url) are validated
// here so a misconfigured process fails at startup, not at request time.
func Load(ctx context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("EIGENTRIBE_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: EIGENTRIBE_ADDR, EIGENTRIBE_SINK_URL, ...
	// Map env keys like EIGENTRIBE_SINK_URL -> sink_url (flat keys).
	envProvider := env.Provider("EIGENTRIBE_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "eigentribe_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	switch {
	case cfg.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case cfg.IdentityURL == "":
		return fmt.Errorf("%w: identity_url is required", ErrInvalidConfig)
	case cfg.IdentityAPIKey == "":
		return fmt.Errorf("%w: identity_api_key is required", ErrInvalidConfig)
	case cfg.SinkURL == "":
		return fmt.Errorf("%w: sink_url is required", ErrInvalidConfig)
	case cfg.RateLimitWindowSeconds <= 0:
		return fmt.Errorf("%w: rate_limit_window_seconds must be positive", ErrInvalidConfig)
	case cfg.MaxLeaderboardLimit <= 0:
		return fmt.Errorf("%w: max_leaderboard_limit must be positive", ErrInvalidConfig)
	}
	return nil
}

package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ArgyPorgy/eigentribe/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("EIGENTRIBE_IDENTITY_URL", "https://identity.example.com")
	t.Setenv("EIGENTRIBE_IDENTITY_API_KEY", "anon-key")
	t.Setenv("EIGENTRIBE_SINK_URL", "https://sheets.example.com/exec")
}

func TestLoad(t *testing.T) {
	Convey("Given required settings in the environment", t, func() {
		setRequiredEnv(t)

		Convey("When loading the config", func() {
			cfg, err := config.Load(context.Background())

			Convey("Then defaults and env values should be applied", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":8080")
				So(cfg.LogLevel, ShouldEqual, "info")
				So(cfg.IdentityURL, ShouldEqual, "https://identity.example.com")
				So(cfg.IdentityAPIKey, ShouldEqual, "anon-key")
				So(cfg.SinkURL, ShouldEqual, "https://sheets.example.com/exec")
				So(cfg.RateLimitWindowSeconds, ShouldEqual, 60)
				So(cfg.MaxLeaderboardLimit, ShouldEqual, 100)
			})
		})

		Convey("When overriding the rate limit window via env", func() {
			t.Setenv("EIGENTRIBE_RATE_LIMIT_WINDOW_SECONDS", "120")
			cfg, err := config.Load(context.Background())

			Convey("Then the override should win", func() {
				So(err, ShouldBeNil)
				So(cfg.RateLimitWindowSeconds, ShouldEqual, 120)
				So(cfg.RateLimitWindow().Seconds(), ShouldEqual, 120)
			})
		})

		Convey("When a YAML file is layered under the env", func() {
			dir := t.TempDir()
			path := filepath.Join(dir, "config.yaml")
			So(os.WriteFile(path, []byte("addr: \":9090\"\nadmin_email: admin@example.com\n"), 0o600), ShouldBeNil)
			t.Setenv("EIGENTRIBE_CONFIG", path)

			cfg, err := config.Load(context.Background())

			Convey("Then file values should be applied", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":9090")
				So(cfg.AdminEmail, ShouldEqual, "admin@example.com")
			})
		})
	})
}

func TestLoadValidation(t *testing.T) {
	Convey("Given a missing required key", t, func() {
		setRequiredEnv(t)
		t.Setenv("EIGENTRIBE_SINK_URL", "")

		Convey("When loading the config", func() {
			_, err := config.Load(context.Background())

			Convey("Then it should fail with ErrInvalidConfig", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
			})
		})
	})

	Convey("Given a non-positive rate limit window", t, func() {
		setRequiredEnv(t)
		t.Setenv("EIGENTRIBE_RATE_LIMIT_WINDOW_SECONDS", "0")

		Convey("When loading the config", func() {
			_, err := config.Load(context.Background())

			Convey("Then it should fail with ErrInvalidConfig", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
			})
		})
	})
}

package authtransport

import (
	"time"

	"github.com/shelterops/authkit/core/session"
)

// Config provides environment-based configuration for the transport.
type Config struct {
	// RefreshTimeout bounds a single refresh episode.
	RefreshTimeout time.Duration `env:"AUTH_REFRESH_TIMEOUT" envDefault:"30s"`

	// SkipPaths are extra path suffixes excluded from bearer decoration,
	// on top of the built-in credential endpoints.
	SkipPaths []string `env:"AUTH_SKIP_PATHS" envSeparator:","`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		RefreshTimeout: DefaultRefreshTimeout,
	}
}

// NewFromConfig creates a transport from configuration.
func NewFromConfig(cfg Config, store *session.Store, refresher Refresher, opts ...Option) *Transport {
	base := []Option{
		WithRefreshTimeout(cfg.RefreshTimeout),
	}
	if len(cfg.SkipPaths) > 0 {
		base = append(base, WithSkipPaths(cfg.SkipPaths...))
	}
	return New(store, refresher, append(base, opts...)...)
}

package authclient

import "github.com/shelterops/authkit/core/session"

// Config contains API client settings loadable from the environment.
type Config struct {
	BaseURL string `env:"SHELTER_API_URL" envDefault:"http://localhost:8080"`
}

// DefaultConfig returns the default API client configuration.
func DefaultConfig() Config {
	return Config{
		BaseURL: "http://localhost:8080",
	}
}

// NewFromConfig creates a Client from environment-derived configuration.
func NewFromConfig(cfg Config, store *session.Store, opts ...Option) *Client {
	return New(cfg.BaseURL, store, opts...)
}

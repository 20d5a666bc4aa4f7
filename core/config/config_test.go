package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelterops/authkit/core/config"
)

// Each test uses its own config type: the cache is keyed by type and shared
// across the process, so reusing a type would leak state between tests.

func TestLoadDefaults(t *testing.T) {
	type serverConfig struct {
		Host string `env:"TEST_CFG_HOST" envDefault:"localhost"`
		Port int    `env:"TEST_CFG_PORT" envDefault:"8080"`
	}

	var cfg serverConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 8080, cfg.Port)
}

func TestLoadFromEnvironment(t *testing.T) {
	type apiConfig struct {
		URL     string `env:"TEST_CFG_API_URL" envDefault:"http://localhost:8080"`
		Retries int    `env:"TEST_CFG_API_RETRIES" envDefault:"3"`
	}

	t.Setenv("TEST_CFG_API_URL", "https://api.shelter.example")
	t.Setenv("TEST_CFG_API_RETRIES", "5")

	var cfg apiConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "https://api.shelter.example", cfg.URL)
	assert.Equal(t, 5, cfg.Retries)
}

func TestLoadCachesPerType(t *testing.T) {
	type cachedConfig struct {
		Value string `env:"TEST_CFG_CACHED" envDefault:"initial"`
	}

	t.Setenv("TEST_CFG_CACHED", "first")

	var first cachedConfig
	require.NoError(t, config.Load(&first))
	assert.Equal(t, "first", first.Value)

	// Later environment changes are invisible: the type is already cached.
	t.Setenv("TEST_CFG_CACHED", "second")

	var second cachedConfig
	require.NoError(t, config.Load(&second))
	assert.Equal(t, "first", second.Value)
}

func TestLoadRequiredMissing(t *testing.T) {
	type strictConfig struct {
		Secret string `env:"TEST_CFG_MISSING_SECRET,required"`
	}

	var cfg strictConfig
	err := config.Load(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: parse")
}

func TestMustLoadPanics(t *testing.T) {
	type panicConfig struct {
		Token string `env:"TEST_CFG_MISSING_TOKEN,required"`
	}

	assert.Panics(t, func() {
		var cfg panicConfig
		config.MustLoad(&cfg)
	})
}

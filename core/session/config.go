package session

// Config provides environment-based configuration for session storage.
type Config struct {
	// FilePath is where the file-backed storage keeps the session blob.
	FilePath string `env:"SESSION_FILE_PATH" envDefault:".shelter_session.json"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		FilePath: ".shelter_session.json",
	}
}

// NewFileStorageFromConfig creates a file-backed storage from configuration.
func NewFileStorageFromConfig(cfg Config) (*FileStorage, error) {
	return NewFileStorage(cfg.FilePath)
}

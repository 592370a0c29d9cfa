package history

import "codeberg.org/mutker/errwrap/internal/errors"

const (
	defaultDirPerm      = 0o755
	defaultDBPath       = "/var/lib/errwrap/history.db"
	defaultBatchSize    = 16
	defaultBatchTimeout = 5
)

type Config struct {
	DBPath  string
	Enabled bool

	// BatchSize entries are buffered before a write; BatchTimeout
	// (seconds) bounds how long a partial batch may wait. A zero
	// BatchTimeout disables the background flusher.
	BatchSize    int
	BatchTimeout int
}

func DefaultConfig() Config {
	return Config{
		DBPath:       defaultDBPath,
		Enabled:      false,
		BatchSize:    defaultBatchSize,
		BatchTimeout: defaultBatchTimeout,
	}
}

func (c Config) Validate() error {
	errFactory := errors.New()

	// Only validate DBPath if history is enabled
	if c.Enabled && c.DBPath == "" {
		return errFactory.New(ErrInvalidDBPath)
	}
	if c.BatchSize < 0 || c.BatchTimeout < 0 {
		return errFactory.WithData(ErrInvalidConfig, struct {
			BatchSize    int
			BatchTimeout int
		}{c.BatchSize, c.BatchTimeout})
	}
	return nil
}

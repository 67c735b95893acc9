package server

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/arloliu/lossless/store"
)

// Config holds the service settings.
type Config struct {
	// Addr is the TCP listen address.
	Addr string
	// UploadDir is where uploads and generated files are kept.
	UploadDir string
	// CleanupInterval is how often old files are swept.
	CleanupInterval time.Duration
	// MaxFileAge is how long a file is kept.
	MaxFileAge time.Duration
	// MaxUploadBytes bounds the size of a request body.
	MaxUploadBytes int64
	// ShutdownTimeout bounds the graceful shutdown of in-flight requests.
	ShutdownTimeout time.Duration
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Addr:            ":5000",
		UploadDir:       filepath.Join(os.TempDir(), "uploads"),
		CleanupInterval: store.DefaultCleanupInterval,
		MaxFileAge:      store.DefaultMaxFileAge,
		MaxUploadBytes:  32 << 20,
		ShutdownTimeout: 5 * time.Second,
	}
}

// Validate reports the first unusable setting.
func (c Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("listen address is empty")
	case c.UploadDir == "":
		return fmt.Errorf("upload directory is empty")
	case c.CleanupInterval <= 0:
		return fmt.Errorf("cleanup interval must be positive, got %s", c.CleanupInterval)
	case c.MaxFileAge <= 0:
		return fmt.Errorf("max file age must be positive, got %s", c.MaxFileAge)
	case c.MaxUploadBytes <= 0:
		return fmt.Errorf("max upload size must be positive, got %d", c.MaxUploadBytes)
	}

	return nil
}

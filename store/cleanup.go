package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-multierror"
)

const (
	// DefaultCleanupInterval is how often RunJanitor sweeps the store.
	DefaultCleanupInterval = 10 * time.Minute
	// DefaultMaxFileAge is how long a file is kept after its last modification.
	DefaultMaxFileAge = 30 * time.Minute
)

// Cleanup removes every regular file whose modification time is more than
// maxAge in the past.
//
// It keeps going after a failure and returns all failures combined.
//
// Returns:
//   - int: Number of files removed
//   - error: Combined listing, stat and removal errors
func (s *Store) Cleanup(maxAge time.Duration) (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, fmt.Errorf("failed to list %s: %w", s.dir, err)
	}

	cutoff := s.now().Add(-maxAge)
	removed := 0
	var result *multierror.Error

	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			if !os.IsNotExist(err) {
				result = multierror.Append(result, fmt.Errorf("stat %s: %w", entry.Name(), err))
			}
			continue
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}

		if err := os.Remove(filepath.Join(s.dir, entry.Name())); err != nil && !os.IsNotExist(err) {
			result = multierror.Append(result, fmt.Errorf("remove %s: %w", entry.Name(), err))
			continue
		}
		removed++
	}

	return removed, result.ErrorOrNil()
}

// RunJanitor calls Cleanup every interval until ctx is done.
//
// A non-positive interval or maxAge selects DefaultCleanupInterval or
// DefaultMaxFileAge.
func (s *Store) RunJanitor(ctx context.Context, interval, maxAge time.Duration) {
	if interval <= 0 {
		interval = DefaultCleanupInterval
	}
	if maxAge <= 0 {
		maxAge = DefaultMaxFileAge
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Infof("janitor started: every %s, max age %s", interval, maxAge)
	for {
		select {
		case <-ctx.Done():
			log.Infof("janitor stopped")
			return
		case <-ticker.C:
			removed, err := s.Cleanup(maxAge)
			if err != nil {
				log.Errorf("cleanup of %s: %v", s.dir, err)
			}
			if removed > 0 {
				log.Infof("cleanup removed %d files", removed)
			}
		}
	}
}

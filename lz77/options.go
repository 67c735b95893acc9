package lz77

import (
	"github.com/arloliu/lossless/internal/options"
)

const (
	// DefaultWindowSize is the default number of symbols searched behind the cursor.
	DefaultWindowSize = 1024
	// DefaultLookaheadSize is the default maximum match length.
	DefaultLookaheadSize = 128
)

// Config holds LZ77 codec settings.
type Config struct {
	WindowSize    int
	LookaheadSize int
}

// Option configures an LZ77 codec.
type Option = options.Option[*Config]

// WithWindowSize sets the search window size. Must be positive.
func WithWindowSize(size int) Option {
	return options.New(func(cfg *Config) error {
		if err := options.PositiveInt("window size", size); err != nil {
			return err
		}
		cfg.WindowSize = size

		return nil
	})
}

// WithLookaheadSize sets the maximum match length. Must be positive.
func WithLookaheadSize(size int) Option {
	return options.New(func(cfg *Config) error {
		if err := options.PositiveInt("lookahead size", size); err != nil {
			return err
		}
		cfg.LookaheadSize = size

		return nil
	})
}

func newConfig(opts []Option) (Config, error) {
	cfg := Config{
		WindowSize:    DefaultWindowSize,
		LookaheadSize: DefaultLookaheadSize,
	}
	if err := options.Apply(&cfg, opts...); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

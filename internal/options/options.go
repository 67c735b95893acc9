package options

import (
	"fmt"

	"github.com/arloliu/lossless/errs"
)

// Option configures a value of type T.
type Option[T any] interface {
	apply(T) error
}

// funcOption adapts a plain function to Option.
type funcOption[T any] func(T) error

func (f funcOption[T]) apply(target T) error {
	return f(target)
}

// New creates an Option from a function that may reject its input.
func New[T any](fn func(T) error) Option[T] {
	return funcOption[T](fn)
}

// NoError creates an Option from a function that cannot fail.
func NoError[T any](fn func(T)) Option[T] {
	return funcOption[T](func(target T) error {
		fn(target)
		return nil
	})
}

// Apply applies opts to target in order and stops at the first failure.
// Nil options are skipped.
func Apply[T any](target T, opts ...Option[T]) error {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.apply(target); err != nil {
			return err
		}
	}

	return nil
}

// PositiveInt validates a size-like option value.
//
// Returns errs.ErrInvalidOption when v is not strictly positive.
func PositiveInt(name string, v int) error {
	if v <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %d", errs.ErrInvalidOption, name, v)
	}

	return nil
}

package config

import (
	"errors"
	"fmt"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrInvalidConfig     = errors.New("invalid config")
	ErrMissingCredential = errors.New("missing credential")
	ErrLoadConfig        = errors.New("load config failed")
)

func wrapInvalid(err error) error {
	return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
}

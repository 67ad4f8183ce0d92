package cases

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration marks errors that abort a run before any case executes
	ErrConfiguration = errors.New("configuration error")

	ErrSheetNotFound  = errors.New("sheet not found")
	ErrHeaderNotFound = errors.New("header row not found")
	ErrMissingColumn  = errors.New("missing required column")
	ErrDuplicateID    = errors.New("duplicate case id")
	ErrInvalidFixture = errors.New("invalid case fixture")
)

// configError wraps kind and ErrConfiguration so callers can match either
func configError(kind error, format string, args ...any) error {
	return fmt.Errorf("%w: %w: %s", ErrConfiguration, kind, fmt.Sprintf(format, args...))
}

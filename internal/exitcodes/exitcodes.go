// Package exitcodes defines standard exit codes for the CLI so that
// orchestration environments can tell retryable failures from fatal ones.
package exitcodes

import (
	"errors"
	"os"

	"github.com/smaspe/kafka-connect-jdbc-exasol/internal/dialect"
)

const (
	// Success - command completed without errors
	Success = 0

	// ConfigError - configuration or schema file parsing errors (don't retry)
	ConfigError = 1

	// ConnectionError - database connection errors (retryable)
	ConnectionError = 2

	// UnsupportedType - a field type has no mapping in the dialect (don't retry)
	UnsupportedType = 3

	// IOError - file I/O errors (retryable)
	IOError = 4

	// GenericError - anything unclassified
	GenericError = 10
)

// ExitError wraps an error with an explicit exit code.
type ExitError struct {
	Err  error
	Code int
}

func (e *ExitError) Error() string { return e.Err.Error() }

func (e *ExitError) Unwrap() error { return e.Err }

// NewExitError creates a new ExitError with the given code.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{Err: err, Code: code}
}

// FromError determines the exit code for an error.
func FromError(err error) int {
	if err == nil {
		return Success
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	if errors.Is(err, dialect.ErrUnsupportedType) || errors.Is(err, dialect.ErrUnsupportedOperation) {
		return UnsupportedType
	}
	if errors.Is(err, dialect.ErrUnknownDialect) {
		return ConfigError
	}

	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return IOError
	}

	return GenericError
}

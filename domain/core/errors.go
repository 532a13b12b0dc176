package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Usage errors
	ErrInputMissing  = errors.New("input file must not be empty")
	ErrInputNotFound = errors.New("input file not found")
	ErrOutputMissing = errors.New("output file name must not be empty")

	// Source errors
	ErrUnreadableInput = errors.New("input file could not be read")
	ErrNoSheets        = fmt.Errorf("%w: workbook has no sheets", ErrUnreadableInput)
	ErrNoHeader        = fmt.Errorf("%w: header row missing", ErrUnreadableInput)

	// Sink errors
	ErrExportFailed = errors.New("export failed")
)

// Error constructors with context
func NewInputNotFoundError(path string) error {
	return &inputNotFoundError{path: path}
}

type inputNotFoundError struct {
	path string
}

func (e *inputNotFoundError) Error() string {
	return fmt.Sprintf("input file %q not found", e.path)
}

func (e *inputNotFoundError) Is(target error) bool {
	return target == ErrInputNotFound
}

func NewExportError(sink string, err error) error {
	return fmt.Errorf("%w for %s: %v", ErrExportFailed, sink, err)
}

// Error checking helpers
func IsUsageError(err error) bool {
	return errors.Is(err, ErrInputMissing) ||
		errors.Is(err, ErrInputNotFound) ||
		errors.Is(err, ErrOutputMissing)
}

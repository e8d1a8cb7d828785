package bundle

import (
	"errors"
	"fmt"
)

// ErrorKind classifies the failures that abort an import
type ErrorKind string

// Import error kinds
const (
	KindEmptyInput         ErrorKind = "empty_input"
	KindMalformedDocument  ErrorKind = "malformed_document"
	KindUnsupportedVersion ErrorKind = "unsupported_version"
)

// Sentinels for errors.Is
var (
	ErrEmptyInput         = errors.New("empty input")
	ErrMalformedDocument  = errors.New("malformed document")
	ErrUnsupportedVersion = errors.New("unsupported version")
)

var kindSentinels = map[ErrorKind]error{
	KindEmptyInput:         ErrEmptyInput,
	KindMalformedDocument:  ErrMalformedDocument,
	KindUnsupportedVersion: ErrUnsupportedVersion,
}

// ImportError is returned when a bundle cannot be imported at all.
// The live configuration is never modified when one is returned.
type ImportError struct {
	Kind    ErrorKind
	Version int // set for KindUnsupportedVersion
	Err     error
}

func (e *ImportError) Error() string {
	switch e.Kind {
	case KindUnsupportedVersion:
		return fmt.Sprintf("unsupported version %d (supported %d..%d)", e.Version, MinSupportedVersion, CurrentVersion)
	case KindEmptyInput:
		return "empty input"
	}
	if e.Err != nil {
		return fmt.Sprintf("malformed document: %v", e.Err)
	}
	return "malformed document"
}

// Unwrap returns the underlying cause
func (e *ImportError) Unwrap() error {
	return e.Err
}

// Is matches the kind sentinels
func (e *ImportError) Is(target error) bool {
	return kindSentinels[e.Kind] == target
}

func malformed(format string, args ...any) *ImportError {
	return &ImportError{Kind: KindMalformedDocument, Err: fmt.Errorf(format, args...)}
}

// Package errors provides structured error types and exit codes for casemock.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Exit codes returned by the casemock CLI.
const (
	ExitSuccess          = 0 // Success
	ExitRuntimeError     = 1 // Runtime error (lookup failed, etc.)
	ExitConfigError      = 2 // Configuration error (invalid config, malformed catalog, etc.)
	ExitEnvironmentError = 3 // Environment error (catalog missing or unreadable, etc.)
	ExitNoMatch          = 4 // Lookup completed but no recorded case matched
)

// ErrorKind represents the type of error.
type ErrorKind int

const (
	KindRuntime ErrorKind = iota
	KindConfig
	KindValidation
	KindEnvironment
	KindCatalogUnavailable
	KindCatalogMalformed
	KindLookupFailed
)

// Sentinels for errors.Is. A CasemockError of the matching kind reports
// itself as equal to the sentinel.
var (
	ErrCatalogUnavailable = stderrors.New("catalog unavailable")
	ErrCatalogMalformed   = stderrors.New("catalog malformed")
	ErrLookupFailed       = stderrors.New("lookup failed")
)

// CasemockError is the base error type for casemock.
type CasemockError struct {
	Kind    ErrorKind
	Message string
	Path    string // Catalog or config path if applicable
	Cause   error  // Underlying error
}

func (e *CasemockError) Error() string {
	msg := e.Message
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", e.Path, msg)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *CasemockError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is the sentinel for this error's kind.
func (e *CasemockError) Is(target error) bool {
	switch target {
	case ErrCatalogUnavailable:
		return e.Kind == KindCatalogUnavailable
	case ErrCatalogMalformed:
		return e.Kind == KindCatalogMalformed
	case ErrLookupFailed:
		return e.Kind == KindLookupFailed
	}
	return false
}

// ExitCode returns the appropriate exit code for this error.
// A lookup failure reports the exit code of the catalog error it wraps.
func (e *CasemockError) ExitCode() int {
	switch e.Kind {
	case KindConfig, KindValidation, KindCatalogMalformed:
		return ExitConfigError
	case KindEnvironment, KindCatalogUnavailable:
		return ExitEnvironmentError
	case KindLookupFailed:
		var inner *CasemockError
		if stderrors.As(e.Cause, &inner) {
			return inner.ExitCode()
		}
		return ExitRuntimeError
	default:
		return ExitRuntimeError
	}
}

// New creates a new runtime error.
func New(message string) *CasemockError {
	return &CasemockError{
		Kind:    KindRuntime,
		Message: message,
	}
}

// Config creates a new configuration error.
func Config(message string) *CasemockError {
	return &CasemockError{
		Kind:    KindConfig,
		Message: message,
	}
}

// Configf creates a new configuration error with formatting.
func Configf(format string, args ...interface{}) *CasemockError {
	return Config(fmt.Sprintf(format, args...))
}

// Environment creates an environment error for a file that could not be
// read or written.
func Environment(message string, cause error) *CasemockError {
	return &CasemockError{
		Kind:    KindEnvironment,
		Message: message,
		Cause:   cause,
	}
}

// Validation reports a configuration file at path that failed validation.
func Validation(path string, cause error) *CasemockError {
	return &CasemockError{
		Kind:    KindValidation,
		Message: "invalid configuration",
		Path:    path,
		Cause:   cause,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) *CasemockError {
	return &CasemockError{
		Kind:    KindRuntime,
		Message: message,
		Cause:   err,
	}
}

// CatalogUnavailable reports that the catalog at path could not be read.
func CatalogUnavailable(path string, cause error) *CasemockError {
	return &CasemockError{
		Kind:    KindCatalogUnavailable,
		Message: "catalog unavailable",
		Path:    path,
		Cause:   cause,
	}
}

// CatalogMalformed reports that the catalog at path could not be decoded.
func CatalogMalformed(path string, cause error) *CasemockError {
	return &CasemockError{
		Kind:    KindCatalogMalformed,
		Message: "catalog malformed",
		Path:    path,
		Cause:   cause,
	}
}

// LookupFailed wraps a failure encountered while serving a lookup.
func LookupFailed(cause error) *CasemockError {
	return &CasemockError{
		Kind:    KindLookupFailed,
		Message: "lookup failed",
		Cause:   cause,
	}
}

// GetExitCode returns the exit code for an error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var ce *CasemockError
	if stderrors.As(err, &ce) {
		return ce.ExitCode()
	}
	return ExitRuntimeError
}

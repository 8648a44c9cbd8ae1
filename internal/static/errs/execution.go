package errs

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRequest      = errors.New("invalid request")
	ErrUnsupportedLanguage = errors.New("unsupported language")
	ErrSandboxUnavailable  = errors.New("sandbox unavailable")
	ErrExecutionTimeout    = errors.New("execution timed out")
	ErrPersistenceFailure  = errors.New("failed to save submission")
	ErrNotFound            = errors.New("not found")
)

// SandboxError carries the upstream response of a failed sandbox call.
type SandboxError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *SandboxError) Error() string {
	if e.Err != nil && e.StatusCode == 0 {
		return fmt.Sprintf("%s: %v", ErrSandboxUnavailable, e.Err)
	}
	return fmt.Sprintf("%s: status %d: %s", ErrSandboxUnavailable, e.StatusCode, e.Body)
}

func (e *SandboxError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrSandboxUnavailable, e.Err}
	}
	return []error{ErrSandboxUnavailable}
}

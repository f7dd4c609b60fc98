package fsutil

import "fmt"

// WriteError reports a failed filesystem write.
type WriteError struct {
	// Message is the error message.
	Message string
	// Path is the destination path.
	Path string
	// Cause is the underlying error (if any).
	Cause error
}

// Error implements the error interface.
func (e *WriteError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (file: %s): %v", e.Message, e.Path, e.Cause)
	}
	return fmt.Sprintf("%s (file: %s)", e.Message, e.Path)
}

// Unwrap returns the underlying cause error for error unwrapping.
func (e *WriteError) Unwrap() error {
	return e.Cause
}

func newWriteError(message, path string, cause error) *WriteError {
	return &WriteError{
		Message: message,
		Path:    path,
		Cause:   cause,
	}
}

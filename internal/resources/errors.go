package resources

import (
	"errors"
	"fmt"
)

// ErrUnsupportedSource is returned by Unzip for source types it cannot read.
var ErrUnsupportedSource = errors.New("source must be a file path (string), raw zip data ([]byte), or an io.Reader")

// DownloadError represents a failed download.
type DownloadError struct {
	// URL is the requested URL.
	URL string
	// StatusCode is the HTTP status returned, or 0 if none.
	StatusCode int
	// Message is the human-readable error message.
	Message string
	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *DownloadError) Error() string {
	msg := fmt.Sprintf("%s (url: %s)", e.Message, e.URL)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s: status code %d", msg, e.StatusCode)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying cause error.
func (e *DownloadError) Unwrap() error {
	return e.Cause
}

func newDownloadError(url string, statusCode int, message string, cause error) *DownloadError {
	return &DownloadError{
		URL:        url,
		StatusCode: statusCode,
		Message:    message,
		Cause:      cause,
	}
}

// ExtractError represents a failed archive extraction.
type ExtractError struct {
	// Entry is the archive entry name, empty for archive-level failures.
	Entry string
	// Message is the human-readable error message.
	Message string
	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *ExtractError) Error() string {
	msg := e.Message
	if e.Entry != "" {
		msg = fmt.Sprintf("%s (entry: %s)", msg, e.Entry)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying cause error.
func (e *ExtractError) Unwrap() error {
	return e.Cause
}

func newExtractError(entry, message string, cause error) *ExtractError {
	return &ExtractError{
		Entry:   entry,
		Message: message,
		Cause:   cause,
	}
}

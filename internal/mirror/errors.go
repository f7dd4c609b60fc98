package mirror

import (
	"errors"
	"fmt"
)

// RemoteListingError is returned when a directory listing fails.
// It is fatal: the whole mirror operation stops.
type RemoteListingError struct {
	// Location is the listing that failed.
	Location Location
	// StatusCode is the HTTP status returned, or 0 if no response was received.
	StatusCode int
	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *RemoteListingError) Error() string {
	path := e.Location.Path
	if path == "" {
		path = "/"
	}
	msg := fmt.Sprintf("failed to list %s path %q at %s", e.Location.Repository, path, e.Location.Branch)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s: status code %d", msg, e.StatusCode)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s (caused by: %v)", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying cause for error wrapping.
func (e *RemoteListingError) Unwrap() error {
	return e.Cause
}

// NewRemoteListingError creates a RemoteListingError.
func NewRemoteListingError(loc Location, statusCode int, cause error) *RemoteListingError {
	return &RemoteListingError{
		Location:   loc,
		StatusCode: statusCode,
		Cause:      cause,
	}
}

// FileFetchError is recorded when a single file could not be downloaded or
// written. The mirror logs it and moves on to the next entry.
type FileFetchError struct {
	// Path is the file path inside the repository.
	Path string
	// URL is the download URL.
	URL string
	// StatusCode is the HTTP status returned, or 0 if none.
	StatusCode int
	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *FileFetchError) Error() string {
	msg := fmt.Sprintf("failed to download file %s", e.Path)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s: status code %d", msg, e.StatusCode)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s (caused by: %v)", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying cause for error wrapping.
func (e *FileFetchError) Unwrap() error {
	return e.Cause
}

// NewFileFetchError creates a FileFetchError.
func NewFileFetchError(entry Entry, statusCode int, cause error) *FileFetchError {
	return &FileFetchError{
		Path:       entry.Path,
		URL:        entry.DownloadURL,
		StatusCode: statusCode,
		Cause:      cause,
	}
}

// ListingStatus returns the HTTP status carried by a RemoteListingError in
// err's chain, or 0.
func ListingStatus(err error) int {
	var listErr *RemoteListingError
	if errors.As(err, &listErr) {
		return listErr.StatusCode
	}
	return 0
}

var (
	errNoDownloadURL = errors.New("entry has no download URL")
	errInvalidName   = errors.New("entry name is not a single path component")
)

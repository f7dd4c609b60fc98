package app

import "fmt"

// AppErrorType represents the type of application error.
type AppErrorType int

const (
	// MirrorFailed indicates a repository mirror aborted.
	MirrorFailed AppErrorType = iota
	// DownloadFailed indicates a resource download failed.
	DownloadFailed
	// ExtractFailed indicates archive extraction failed.
	ExtractFailed
	// FormatFailed indicates array formatting failed.
	FormatFailed
	// DisplayFailed indicates image loading or rendering failed.
	DisplayFailed
	// ConfigInitFailed indicates configuration file creation failed.
	ConfigInitFailed
	// ValidationFailed indicates validation failed.
	ValidationFailed
)

// AppError represents an application-layer error.
type AppError struct {
	// Type is the error type.
	Type AppErrorType
	// Message is the error message.
	Message string
	// Cause is the underlying error.
	Cause error
}

// Error returns the error message.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError creates a new AppError.
func NewAppError(errType AppErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// NewMirrorError creates a mirror error.
func NewMirrorError(message string, cause error) *AppError {
	return NewAppError(MirrorFailed, message, cause)
}

// NewDownloadError creates a download error.
func NewDownloadError(message string, cause error) *AppError {
	return NewAppError(DownloadFailed, message, cause)
}

// NewExtractError creates an extraction error.
func NewExtractError(message string, cause error) *AppError {
	return NewAppError(ExtractFailed, message, cause)
}

// NewFormatError creates a format error.
func NewFormatError(message string, cause error) *AppError {
	return NewAppError(FormatFailed, message, cause)
}

// NewDisplayError creates a display error.
func NewDisplayError(message string, cause error) *AppError {
	return NewAppError(DisplayFailed, message, cause)
}

// NewConfigInitError creates a config init error.
func NewConfigInitError(message string, cause error) *AppError {
	return NewAppError(ConfigInitFailed, message, cause)
}

// NewValidationError creates a validation error.
func NewValidationError(message string, cause error) *AppError {
	return NewAppError(ValidationFailed, message, cause)
}

package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Catalog errors
	ErrPackageNotFound ErrorCode = "PACKAGE_NOT_FOUND"
	ErrResolution      ErrorCode = "RESOLUTION"
	ErrIndexLoad       ErrorCode = "INDEX_LOAD"

	// Run-level errors
	ErrPlatformVersion    ErrorCode = "PLATFORM_VERSION"
	ErrDependencyDeclined ErrorCode = "DEPENDENCY_DECLINED"

	// Transfer errors
	ErrTransport ErrorCode = "TRANSPORT"

	// Installer errors
	ErrZipOpen            ErrorCode = "ZIP_OPEN"
	ErrZipExtract         ErrorCode = "ZIP_EXTRACT"
	ErrDestExists         ErrorCode = "DEST_EXISTS"
	ErrDestIsLink         ErrorCode = "DEST_IS_LINK"
	ErrDestNotFound       ErrorCode = "DEST_NOT_FOUND"
	ErrInvalidDestination ErrorCode = "INVALID_DESTINATION"

	// FileSystem errors
	ErrFileAccess    ErrorCode = "FILE_ACCESS"
	ErrFileWrite     ErrorCode = "FILE_WRITE"
	ErrSymlinkCreate ErrorCode = "SYMLINK_CREATE"
	ErrDirCreate     ErrorCode = "DIR_CREATE"
	ErrCopy          ErrorCode = "COPY"
	ErrRename        ErrorCode = "RENAME"
)

// GpmError represents a structured error with code and details
type GpmError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *GpmError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *GpmError) Unwrap() error {
	return e.Wrapped
}

// Is matches any GpmError carrying the same code
func (e *GpmError) Is(target error) bool {
	var targetErr *GpmError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new GpmError with the given code and message
func New(code ErrorCode, message string) *GpmError {
	return &GpmError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new GpmError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *GpmError {
	return &GpmError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a GpmError
func Wrap(err error, code ErrorCode, message string) *GpmError {
	if err == nil {
		return nil
	}
	return &GpmError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *GpmError {
	if err == nil {
		return nil
	}
	return &GpmError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *GpmError) WithDetail(key string, value interface{}) *GpmError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var gpmErr *GpmError
	if errors.As(err, &gpmErr) {
		return gpmErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a GpmError
func GetErrorCode(err error) ErrorCode {
	var gpmErr *GpmError
	if errors.As(err, &gpmErr) {
		return gpmErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a GpmError
func GetErrorDetails(err error) map[string]interface{} {
	var gpmErr *GpmError
	if errors.As(err, &gpmErr) {
		return gpmErr.Details
	}
	return nil
}

// Message returns the human message of a GpmError without the code prefix,
// falling back to err.Error() for foreign errors.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var gpmErr *GpmError
	if errors.As(err, &gpmErr) {
		return gpmErr.Message
	}
	return err.Error()
}

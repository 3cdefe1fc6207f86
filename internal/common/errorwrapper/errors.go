package errorwrapper

import (
	"errors"
	"fmt"
)

// Common error types used across the application
var (
	// ErrInvalidInput indicates invalid user input
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound indicates a resource was not found
	ErrNotFound = errors.New("not found")
	// ErrFileAccess indicates a watched file exists but could not be read
	ErrFileAccess = errors.New("file access failed")
	// ErrNetworkFailure indicates network connectivity issues or a rejected API call
	ErrNetworkFailure = errors.New("network failure")
	// ErrInvalidConfiguration indicates configuration issues
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrMissingCredentials indicates the notifier has no usable destination credentials
	ErrMissingCredentials = errors.New("missing credentials")
)

// WrapError wraps an error with additional context information
func WrapError(err error, message string) error {
	if err == nil {
		return fmt.Errorf("%s: <nil>", message)
	}
	return fmt.Errorf("%s: %w", message, err)
}

// NewError creates a new error with a formatted message
func NewError(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}

// ValidationError represents validation errors with field-specific information
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: field '%s' with value '%v': %s", e.Field, e.Value, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new validation error
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// ConfigError is raised when a configuration source (config file, watch list)
// is unreadable or malformed.
type ConfigError struct {
	Source  string
	Reason  string
	Wrapped error
}

func (e *ConfigError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("configuration error in '%s': %s: %v", e.Source, e.Reason, e.Wrapped)
	}
	return fmt.Sprintf("configuration error in '%s': %s", e.Source, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return e.Wrapped
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfiguration
}

// NewConfigError creates a new configuration error
func NewConfigError(source, reason string, wrapped error) *ConfigError {
	return &ConfigError{
		Source:  source,
		Reason:  reason,
		Wrapped: wrapped,
	}
}

// FileAccessError represents a watched file that is missing or unreadable.
type FileAccessError struct {
	Path    string
	Missing bool
	Wrapped error
}

func (e *FileAccessError) Error() string {
	if e.Missing {
		return fmt.Sprintf("file not found: %s", e.Path)
	}
	return fmt.Sprintf("cannot read file '%s': %v", e.Path, e.Wrapped)
}

func (e *FileAccessError) Unwrap() error {
	return e.Wrapped
}

func (e *FileAccessError) Is(target error) bool {
	if e.Missing {
		return target == ErrNotFound
	}
	return target == ErrFileAccess
}

// NewFileAccessError creates a new file access error
func NewFileAccessError(path string, missing bool, wrapped error) *FileAccessError {
	return &FileAccessError{
		Path:    path,
		Missing: missing,
		Wrapped: wrapped,
	}
}

// NotificationError represents a transport failure or a non-ok API response.
type NotificationError struct {
	Endpoint    string
	StatusCode  int
	ErrorCode   int // API-level code, when the service reports one
	Description string
	Wrapped     error
}

func (e *NotificationError) Error() string {
	switch {
	case e.Wrapped != nil:
		return fmt.Sprintf("notification to %s failed: %v", e.Endpoint, e.Wrapped)
	case e.StatusCode != 0:
		return fmt.Sprintf("notification to %s rejected (HTTP %d): %s", e.Endpoint, e.StatusCode, e.Description)
	default:
		return fmt.Sprintf("notification to %s rejected: %s", e.Endpoint, e.Description)
	}
}

func (e *NotificationError) Unwrap() error {
	return e.Wrapped
}

func (e *NotificationError) Is(target error) bool {
	return target == ErrNetworkFailure
}

// NewNotificationError creates a new notification error
func NewNotificationError(endpoint string, statusCode int, description string, wrapped error) *NotificationError {
	return &NotificationError{
		Endpoint:    endpoint,
		StatusCode:  statusCode,
		Description: description,
		Wrapped:     wrapped,
	}
}

// CredentialError is returned when the notifier is asked to send without a
// bot token or destination.
type CredentialError struct {
	Missing []string
}

func (e *CredentialError) Error() string {
	return fmt.Sprintf("notifier credentials not configured: missing %v", e.Missing)
}

func (e *CredentialError) Is(target error) bool {
	return target == ErrMissingCredentials
}

// NewCredentialError creates a new credential error
func NewCredentialError(missing ...string) *CredentialError {
	return &CredentialError{Missing: missing}
}

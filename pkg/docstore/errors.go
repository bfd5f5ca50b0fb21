package docstore

import (
	"errors"
	"fmt"

	"github.com/docbridge/docbridge/pkg/dbcapabilities"
)

// Standard store errors
var (
	// ErrOperationNotSupported is returned when an operation is not supported by the backend
	ErrOperationNotSupported = errors.New("operation not supported by this backend")

	// ErrSortNotSupported is returned for sort-parameterized search variants
	ErrSortNotSupported = errors.New("sort-parameterized search is not supported")

	// ErrConnectionClosed is returned when attempting to use a closed connection
	ErrConnectionClosed = errors.New("connection is closed")

	// ErrConnectionFailed is returned when a connection attempt fails
	ErrConnectionFailed = errors.New("connection failed")

	// ErrInvalidConfiguration is returned when the configuration is invalid
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrAdapterNotFound is returned when an adapter is not registered
	ErrAdapterNotFound = errors.New("adapter not found")

	// ErrStreamFailed is returned when a streamed key scan receives an
	// unrecognized signal; partial results accompany it
	ErrStreamFailed = errors.New("key stream failed")

	// ErrStreamTimeout is returned when a streamed key scan waits longer
	// than the chunk timeout; partial results accompany it
	ErrStreamTimeout = errors.New("key stream timed out")
)

// StoreError wraps backend-specific errors with operation context.
// This provides a consistent error structure across all backend types.
type StoreError struct {
	Backend   dbcapabilities.DatabaseID
	Operation string
	Cause     error
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	return fmt.Sprintf("[%s] %s: %v", e.Backend, e.Operation, e.Cause)
}

// Unwrap returns the underlying error.
func (e *StoreError) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target error.
func (e *StoreError) Is(target error) bool {
	return errors.Is(e.Cause, target)
}

// NewStoreError creates a new StoreError.
func NewStoreError(backend dbcapabilities.DatabaseID, operation string, cause error) *StoreError {
	return &StoreError{Backend: backend, Operation: operation, Cause: cause}
}

// WrapError wraps an error with backend and operation context.
// If the error is already a StoreError, it returns it as-is.
func WrapError(backend dbcapabilities.DatabaseID, operation string, err error) error {
	if err == nil {
		return nil
	}

	var storeErr *StoreError
	if errors.As(err, &storeErr) {
		return err
	}

	return NewStoreError(backend, operation, err)
}

// DecodeError reports a stored value that could not be coerced back into
// its declared field type (for example unparsable date text).
type DecodeError struct {
	Schema string
	Field  string
	Cause  error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s.%s: %v", e.Schema, e.Field, e.Cause)
}

// Unwrap returns the underlying error.
func (e *DecodeError) Unwrap() error {
	return e.Cause
}

// NewDecodeError creates a new DecodeError.
func NewDecodeError(schema, field string, cause error) *DecodeError {
	return &DecodeError{Schema: schema, Field: field, Cause: cause}
}

// ConnectionError is returned when a connection error occurs.
type ConnectionError struct {
	Backend dbcapabilities.DatabaseID
	Host    string
	Port    int
	Cause   error
}

// Error implements the error interface.
func (e *ConnectionError) Error() string {
	return fmt.Sprintf("failed to connect to %s at %s:%d: %v", e.Backend, e.Host, e.Port, e.Cause)
}

// Unwrap returns the underlying error.
func (e *ConnectionError) Unwrap() error {
	return e.Cause
}

// Is checks if the error is ErrConnectionFailed.
func (e *ConnectionError) Is(target error) bool {
	if errors.Is(target, ErrConnectionFailed) {
		return true
	}
	return errors.Is(e.Cause, target)
}

// NewConnectionError creates a new ConnectionError.
func NewConnectionError(backend dbcapabilities.DatabaseID, host string, port int, cause error) *ConnectionError {
	return &ConnectionError{Backend: backend, Host: host, Port: port, Cause: cause}
}

// ConfigurationError is returned when a configuration error occurs.
type ConfigurationError struct {
	Backend dbcapabilities.DatabaseID
	Field   string
	Reason  string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid configuration for %s: field '%s': %s", e.Backend, e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid configuration for %s: %s", e.Backend, e.Reason)
}

// Is checks if the error is ErrInvalidConfiguration.
func (e *ConfigurationError) Is(target error) bool {
	return errors.Is(target, ErrInvalidConfiguration)
}

// NewConfigurationError creates a new ConfigurationError.
func NewConfigurationError(backend dbcapabilities.DatabaseID, field, reason string) *ConfigurationError {
	return &ConfigurationError{Backend: backend, Field: field, Reason: reason}
}

// IsStreamPartial checks if an error indicates a streamed scan that ended
// early; the operation's other return values still carry partial results.
func IsStreamPartial(err error) bool {
	return errors.Is(err, ErrStreamFailed) || errors.Is(err, ErrStreamTimeout)
}

// IsConnectionError checks if an error is a connection error.
func IsConnectionError(err error) bool {
	return errors.Is(err, ErrConnectionFailed)
}

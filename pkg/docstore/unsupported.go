package docstore

import (
	"errors"
	"fmt"

	"github.com/docbridge/docbridge/pkg/dbcapabilities"
)

// UnsupportedOperationError reports an operation a backend cannot perform.
// Backends must report these explicitly rather than degrading best-effort.
type UnsupportedOperationError struct {
	Backend   dbcapabilities.DatabaseID
	Operation string
	Reason    string
}

// Error implements the error interface.
func (e *UnsupportedOperationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s does not support %s: %s", e.Backend, e.Operation, e.Reason)
	}
	return fmt.Sprintf("%s does not support %s", e.Backend, e.Operation)
}

// Is checks if the error is ErrOperationNotSupported.
func (e *UnsupportedOperationError) Is(target error) bool {
	return errors.Is(target, ErrOperationNotSupported)
}

// NewUnsupportedOperationError creates a new UnsupportedOperationError.
func NewUnsupportedOperationError(backend dbcapabilities.DatabaseID, operation, reason string) *UnsupportedOperationError {
	return &UnsupportedOperationError{Backend: backend, Operation: operation, Reason: reason}
}

// IsUnsupported checks if an error indicates an unsupported operation.
func IsUnsupported(err error) bool {
	return errors.Is(err, ErrOperationNotSupported) || errors.Is(err, ErrSortNotSupported)
}

package provider

import (
	"errors"
	"fmt"

	"github.com/sqlshape/sqlshape/pkg/dialect"
)

// Standard provider errors
var (
	// ErrProviderNotFound is returned when no provider is registered for a dialect
	ErrProviderNotFound = errors.New("provider not found")

	// ErrTypeNotFound is returned when a registry lookup misses
	ErrTypeNotFound = errors.New("type not found")

	// ErrCatalogQueryFailed is returned when a catalog query fails mid-pipeline
	ErrCatalogQueryFailed = errors.New("catalog query failed")

	// ErrSchemaNotFound is returned when the requested schema does not exist
	ErrSchemaNotFound = errors.New("schema not found")

	// ErrTableNotFound is returned when a single-table introspection misses
	ErrTableNotFound = errors.New("table not found")
)

// IntrospectionError wraps a catalog query failure with the dialect and the
// pipeline phase that failed. A failed phase aborts the whole introspection;
// no partial schema is ever returned alongside one of these.
type IntrospectionError struct {
	Dialect dialect.ID
	Phase   string
	Cause   error
}

// Error implements the error interface.
func (e *IntrospectionError) Error() string {
	return fmt.Sprintf("[%s] introspection phase %q: %v", e.Dialect, e.Phase, e.Cause)
}

// Unwrap returns the underlying error.
func (e *IntrospectionError) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches ErrCatalogQueryFailed or the wrapped cause.
func (e *IntrospectionError) Is(target error) bool {
	if errors.Is(target, ErrCatalogQueryFailed) {
		return true
	}
	return errors.Is(e.Cause, target)
}

// NewIntrospectionError creates a new IntrospectionError.
func NewIntrospectionError(id dialect.ID, phase string, cause error) *IntrospectionError {
	return &IntrospectionError{Dialect: id, Phase: phase, Cause: cause}
}

// WrapPhase wraps err with phase context unless it is nil or already an
// IntrospectionError.
func WrapPhase(id dialect.ID, phase string, err error) error {
	if err == nil {
		return nil
	}
	var ie *IntrospectionError
	if errors.As(err, &ie) {
		return err
	}
	return NewIntrospectionError(id, phase, err)
}

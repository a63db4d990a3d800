package nexo

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for common operations.
var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("nexo: entity not found")

	// ErrNotSingular is returned when a query that expects exactly one
	// result returns multiple results.
	ErrNotSingular = errors.New("nexo: entity not singular")
)

// UndefinedRelationError is returned when a relationship name is not
// declared on the owning model.
type UndefinedRelationError struct {
	model    string
	relation string
}

// NewUndefinedRelationError returns a new UndefinedRelationError for the
// given model and relationship name.
func NewUndefinedRelationError(model, relation string) *UndefinedRelationError {
	return &UndefinedRelationError{model: model, relation: relation}
}

// Error returns the error string.
func (e *UndefinedRelationError) Error() string {
	return fmt.Sprintf("nexo: relation %q is not defined on model %q", e.relation, e.model)
}

// Model returns the owning model name.
func (e *UndefinedRelationError) Model() string { return e.model }

// Relation returns the undefined relationship name.
func (e *UndefinedRelationError) Relation() string { return e.relation }

// IsUndefinedRelation returns true if the error is an UndefinedRelationError.
func IsUndefinedRelation(err error) bool {
	if err == nil {
		return false
	}
	var e *UndefinedRelationError
	return errors.As(err, &e)
}

// LazyDisabledError is returned when a relationship declared with
// Lazy(false) is accessed through the per-entity lazy accessor.
type LazyDisabledError struct {
	model    string
	relation string
}

// NewLazyDisabledError returns a new LazyDisabledError for the given model
// and relationship name.
func NewLazyDisabledError(model, relation string) *LazyDisabledError {
	return &LazyDisabledError{model: model, relation: relation}
}

// Error returns the error string.
func (e *LazyDisabledError) Error() string {
	return fmt.Sprintf("nexo: lazy loading is disabled for relation %q on model %q", e.relation, e.model)
}

// Model returns the owning model name.
func (e *LazyDisabledError) Model() string { return e.model }

// Relation returns the relationship name.
func (e *LazyDisabledError) Relation() string { return e.relation }

// IsLazyDisabled returns true if the error is a LazyDisabledError.
func IsLazyDisabled(err error) bool {
	if err == nil {
		return false
	}
	var e *LazyDisabledError
	return errors.As(err, &e)
}

// InvalidRelationError is a configuration error: a relationship declaration
// that cannot be resolved, detected at schema registration.
type InvalidRelationError struct {
	model    string
	relation string
	reason   string
}

// NewInvalidRelationError returns a new InvalidRelationError.
func NewInvalidRelationError(model, relation, reason string) *InvalidRelationError {
	return &InvalidRelationError{model: model, relation: relation, reason: reason}
}

// Error returns the error string.
func (e *InvalidRelationError) Error() string {
	return fmt.Sprintf("nexo: invalid relation %q on model %q: %s", e.relation, e.model, e.reason)
}

// Model returns the owning model name.
func (e *InvalidRelationError) Model() string { return e.model }

// Relation returns the relationship name.
func (e *InvalidRelationError) Relation() string { return e.relation }

// Reason returns the validation failure reason.
func (e *InvalidRelationError) Reason() string { return e.reason }

// IsInvalidRelation returns true if the error is an InvalidRelationError.
func IsInvalidRelation(err error) bool {
	if err == nil {
		return false
	}
	var e *InvalidRelationError
	return errors.As(err, &e)
}

// QueryError wraps a storage failure with the model and relationship being
// resolved. The underlying error is propagated verbatim through Unwrap.
type QueryError struct {
	Model    string // model being queried.
	Relation string // relationship being resolved; empty for base queries.
	Err      error  // underlying error.
}

// Error returns the error string.
func (e *QueryError) Error() string {
	if e.Relation != "" {
		return fmt.Sprintf("nexo: resolving %q on %s: %v", e.Relation, e.Model, e.Err)
	}
	return fmt.Sprintf("nexo: querying %s: %v", e.Model, e.Err)
}

// Unwrap returns the underlying error.
func (e *QueryError) Unwrap() error { return e.Err }

// IsQueryError returns true if the error is a QueryError.
func IsQueryError(err error) bool {
	if err == nil {
		return false
	}
	var e *QueryError
	return errors.As(err, &e)
}

// NotFoundError represents an error when an entity is not found.
type NotFoundError struct {
	model string
}

// Error returns the error string.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("nexo: %s not found", e.model)
}

// Is reports whether the target error matches NotFoundError.
// This allows errors.Is(notFoundErr, ErrNotFound) to return true.
func (e *NotFoundError) Is(err error) bool {
	return err == ErrNotFound
}

// Model returns the model name.
func (e *NotFoundError) Model() string { return e.model }

// IsNotFound returns true if the error is a NotFoundError.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	var e *NotFoundError
	return errors.As(err, &e) || errors.Is(err, ErrNotFound)
}

// NotSingularError represents an error when a query expects a singular
// result but receives multiple results.
type NotSingularError struct {
	model string
}

// Error returns the error string.
func (e *NotSingularError) Error() string {
	return fmt.Sprintf("nexo: %s not singular", e.model)
}

// Is reports whether the target error matches NotSingularError.
// This allows errors.Is(notSingularErr, ErrNotSingular) to return true.
func (e *NotSingularError) Is(err error) bool {
	return err == ErrNotSingular
}

// Model returns the model name.
func (e *NotSingularError) Model() string { return e.model }

// IsNotSingular returns true if the error is a NotSingularError.
func IsNotSingular(err error) bool {
	if err == nil {
		return false
	}
	var e *NotSingularError
	return errors.As(err, &e) || errors.Is(err, ErrNotSingular)
}

package topology

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Common sentinel errors
var (
	ErrDeviceNotFound  = errors.New("device not found")
	ErrLinkNotFound    = errors.New("link not found")
	ErrServiceNotFound = errors.New("service not found")
	ErrPathNotFound    = errors.New("no upstream path")
	ErrInvalidTopology = errors.New("invalid topology")
	ErrNotLoaded       = errors.New("topology not loaded")
)

// TopologyError provides structured error information for store operations.
type TopologyError struct {
	Op      string // Operation that failed (e.g., "Load", "GetDevice")
	Entity  string // Entity type (e.g., "device", "link", "service")
	ID      string // Entity ID (if applicable)
	Cause   error  // Underlying error
	Context string // Additional context
}

// Error implements the error interface.
func (e *TopologyError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s %s %q: %v", e.Op, e.Entity, e.ID, e.Cause)
	}
	if e.Context != "" {
		return fmt.Sprintf("%s %s (%s): %v", e.Op, e.Entity, e.Context, e.Cause)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Entity, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *TopologyError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error or its cause.
func (e *TopologyError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

// ErrorBuilder provides a fluent interface for building TopologyErrors.
type ErrorBuilder struct {
	err TopologyError
}

// NewError creates a new error builder with the given operation.
func NewError(op string) *ErrorBuilder {
	return &ErrorBuilder{err: TopologyError{Op: op}}
}

// Device sets the entity to "device" with the given ID.
func (b *ErrorBuilder) Device(id string) *ErrorBuilder {
	b.err.Entity = "device"
	b.err.ID = id
	return b
}

// Link sets the entity to "link" with the given ID.
func (b *ErrorBuilder) Link(id string) *ErrorBuilder {
	b.err.Entity = "link"
	b.err.ID = id
	return b
}

// Service sets the entity to "service" with the given ID.
func (b *ErrorBuilder) Service(id string) *ErrorBuilder {
	b.err.Entity = "service"
	b.err.ID = id
	return b
}

// Topology sets the entity to "topology".
func (b *ErrorBuilder) Topology() *ErrorBuilder {
	b.err.Entity = "topology"
	return b
}

// Context sets additional context information.
func (b *ErrorBuilder) Context(ctx string) *ErrorBuilder {
	b.err.Context = ctx
	return b
}

// Cause sets the underlying error cause.
func (b *ErrorBuilder) Cause(err error) *ErrorBuilder {
	b.err.Cause = err
	return b
}

// Err returns the error as an error interface.
func (b *ErrorBuilder) Err() error {
	return &b.err
}

// Convenience constructors for common error patterns

// DeviceNotFoundError creates a device not found error.
func DeviceNotFoundError(op, id string) error {
	return NewError(op).Device(id).Cause(ErrDeviceNotFound).Err()
}

// LinkNotFoundError creates a link not found error.
func LinkNotFoundError(op, id string) error {
	return NewError(op).Link(id).Cause(ErrLinkNotFound).Err()
}

// ServiceNotFoundError creates a service not found error.
func ServiceNotFoundError(op, id string) error {
	return NewError(op).Service(id).Cause(ErrServiceNotFound).Err()
}

// IsNotFound returns true if the error is any not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrDeviceNotFound) ||
		errors.Is(err, ErrLinkNotFound) ||
		errors.Is(err, ErrServiceNotFound)
}

// IsValidation returns true if the error came from load validation.
func IsValidation(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr) || errors.Is(err, ErrInvalidTopology)
}

// DanglingRef records a reference to an entity that does not exist in the
// topology being loaded.
type DanglingRef struct {
	Entity string `json:"entity"` // referring entity type
	ID     string `json:"id"`     // referring entity ID (or edge description)
	Field  string `json:"field"`  // field holding the bad reference
	Ref    string `json:"ref"`    // the nonexistent ID
}

func (d DanglingRef) String() string {
	return fmt.Sprintf("%s %q field %s references unknown id %q", d.Entity, d.ID, d.Field, d.Ref)
}

// ValidationError aggregates everything wrong with a topology submitted to
// Load. The load is rejected as a whole; prior state is untouched.
type ValidationError struct {
	Dangling []DanglingRef `json:"dangling,omitempty"`
	Problems []string      `json:"problems,omitempty"`
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Problems)+len(e.Dangling))
	msgs = append(msgs, e.Problems...)
	for _, d := range e.Dangling {
		msgs = append(msgs, d.String())
	}
	sort.Strings(msgs)
	return fmt.Sprintf("invalid topology: %s", strings.Join(msgs, "; "))
}

// Unwrap lets errors.Is match ErrInvalidTopology.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidTopology
}

func (e *ValidationError) addDangling(entity, id, field, ref string) {
	e.Dangling = append(e.Dangling, DanglingRef{Entity: entity, ID: id, Field: field, Ref: ref})
}

func (e *ValidationError) addProblem(format string, args ...any) {
	e.Problems = append(e.Problems, fmt.Sprintf(format, args...))
}

func (e *ValidationError) empty() bool {
	return len(e.Dangling) == 0 && len(e.Problems) == 0
}

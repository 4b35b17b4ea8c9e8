package parser

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
// Each matches the error struct of the same name.
var (
	// ErrMalformedReference indicates a $ref that is not #/<container>/<name>
	ErrMalformedReference = errors.New("malformed reference")

	// ErrMissingItems indicates an array schema without items
	ErrMissingItems = errors.New("array schema without items")

	// ErrUnsupportedSchemaShape indicates a schema matching none of the recognized shapes
	ErrUnsupportedSchemaShape = errors.New("unsupported schema shape")

	// ErrMissingOperationID indicates an operation without operationId
	ErrMissingOperationID = errors.New("missing operationId")

	// ErrUnresolvedParameterReference indicates a parameter $ref absent from the parameter table
	ErrUnresolvedParameterReference = errors.New("unresolved parameter reference")

	// ErrUnresolvedReference indicates a request body, response or header $ref
	// that names no component
	ErrUnresolvedReference = errors.New("unresolved reference")
)

// MalformedReferenceError reports a $ref that does not point into a known container.
type MalformedReferenceError struct {
	Ref string
	// Cause is the pointer parse error, if any
	Cause error
}

func (e *MalformedReferenceError) Error() string {
	msg := fmt.Sprintf("malformed reference %q", e.Ref)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *MalformedReferenceError) Unwrap() error { return e.Cause }

func (e *MalformedReferenceError) Is(target error) bool { return target == ErrMalformedReference }

// MissingItemsError reports an array schema that declares no items.
type MissingItemsError struct {
	// Pointer is the JSON pointer of the array schema
	Pointer string
}

func (e *MissingItemsError) Error() string {
	return fmt.Sprintf("array schema at %s has no items", e.Pointer)
}

func (e *MissingItemsError) Is(target error) bool { return target == ErrMissingItems }

// UnsupportedSchemaShapeError reports a schema that cannot be lowered.
type UnsupportedSchemaShapeError struct {
	Pointer string
	// Type is the raw type value, or "undefined" when absent
	Type string
}

func (e *UnsupportedSchemaShapeError) Error() string {
	return fmt.Sprintf("unsupported schema shape at %s (type %s)", e.Pointer, e.Type)
}

func (e *UnsupportedSchemaShapeError) Is(target error) bool {
	return target == ErrUnsupportedSchemaShape
}

// MissingOperationIDError reports an operation object without operationId.
type MissingOperationIDError struct {
	Method string
	Path   string
}

func (e *MissingOperationIDError) Error() string {
	return fmt.Sprintf("operation %s %s has no operationId", e.Method, e.Path)
}

func (e *MissingOperationIDError) Is(target error) bool { return target == ErrMissingOperationID }

// UnresolvedParameterReferenceError reports a parameter $ref missing from the parameter table.
type UnresolvedParameterReferenceError struct {
	Ref string
}

func (e *UnresolvedParameterReferenceError) Error() string {
	return fmt.Sprintf("parameter reference %q does not match any shared parameter", e.Ref)
}

func (e *UnresolvedParameterReferenceError) Is(target error) bool {
	return target == ErrUnresolvedParameterReference
}

// UnresolvedReferenceError reports a component $ref (request body, response,
// header) that names no component.
type UnresolvedReferenceError struct {
	Ref       string
	Container Container
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("reference %q does not match any entry of %s", e.Ref, e.Container)
}

func (e *UnresolvedReferenceError) Is(target error) bool { return target == ErrUnresolvedReference }

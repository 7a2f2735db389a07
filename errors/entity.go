package errors

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError reports a value that violates a declared format, length,
// or range constraint. Always caller-correctable.
type ValidationError struct {
	Attr   string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Attr, e.Reason)
}

// NewValidation creates a ValidationError for the given attribute.
func NewValidation(attr, format string, args ...any) error {
	return WithStack(&ValidationError{Attr: attr, Reason: fmt.Sprintf(format, args...)})
}

// IsValidation reports whether err is or wraps a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return As(err, &ve)
}

// TypeCoercionError reports a value that cannot be interpreted as the
// field's declared type.
type TypeCoercionError struct {
	Attr string
	Want string
}

func (e *TypeCoercionError) Error() string {
	return fmt.Sprintf("cannot coerce %s to %s", e.Attr, e.Want)
}

// NewTypeCoercion creates a TypeCoercionError for the given attribute.
func NewTypeCoercion(attr, want string) error {
	return WithStack(&TypeCoercionError{Attr: attr, Want: want})
}

// IsTypeCoercion reports whether err is or wraps a TypeCoercionError.
func IsTypeCoercion(err error) bool {
	var te *TypeCoercionError
	return As(err, &te)
}

// UnknownFieldError reports field names requested on serialization or update
// that are not part of the entity's public attribute set. Partial success is
// not allowed: the whole operation fails.
type UnknownFieldError struct {
	Fields []string
}

func (e *UnknownFieldError) Error() string {
	fields := append([]string(nil), e.Fields...)
	sort.Strings(fields)
	return fmt.Sprintf("unknown fields: %s", strings.Join(fields, ", "))
}

// NewUnknownField creates an UnknownFieldError naming every offending field.
func NewUnknownField(fields ...string) error {
	return WithStack(&UnknownFieldError{Fields: fields})
}

// IsUnknownField reports whether err is or wraps an UnknownFieldError.
func IsUnknownField(err error) bool {
	var ue *UnknownFieldError
	return As(err, &ue)
}

// RelationIntegrityError reports an operation that would create a join or
// reference pointing at a nonexistent counterpart.
type RelationIntegrityError struct {
	Relation string
	Missing  string
}

func (e *RelationIntegrityError) Error() string {
	return fmt.Sprintf("relation %s references missing %s", e.Relation, e.Missing)
}

// NewRelationIntegrity creates a RelationIntegrityError.
func NewRelationIntegrity(relation, missing string) error {
	return WithStack(&RelationIntegrityError{Relation: relation, Missing: missing})
}

// IsRelationIntegrity reports whether err is or wraps a RelationIntegrityError.
func IsRelationIntegrity(err error) bool {
	var re *RelationIntegrityError
	return As(err, &re)
}

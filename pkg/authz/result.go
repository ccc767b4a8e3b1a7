package authz

import (
	"encoding/json"
	"reflect"
	"slices"

	"github.com/dmitrymomot/authzkit/pkg/scope"
)

// Status is the resource-level verdict. It is advisory output: field
// redaction happens regardless of the verdict.
type Status string

const (
	StatusAuthorized   Status = "authorized"
	StatusUnauthorized Status = "unauthorized"
)

// Authorized reports whether the verdict passed.
func (s Status) Authorized() bool {
	return s == StatusAuthorized
}

// Result is the outcome of authorizing a single resource: the redacted copy,
// the requester scope that was evaluated, the verdict, and the names of the
// fields that were redacted, in declaration order. A Result is constructed
// once per authorization call and never mutated; Inner holds no references
// back into the original entity's guarded fields.
type Result[T any] struct {
	InputScope         scope.Scope
	Inner              T
	Status             Status
	UnauthorizedFields []string
}

// MarshalJSON writes the redacted inner value only. The scope, verdict and
// field list are evaluation metadata, not part of the disclosed payload.
func (r Result[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Inner)
}

// Equal reports structural equality with another result.
func (r Result[T]) Equal(other Result[T]) bool {
	return r.Status == other.Status &&
		r.InputScope.Equal(other.InputScope) &&
		slices.Equal(r.UnauthorizedFields, other.UnauthorizedFields) &&
		reflect.DeepEqual(r.Inner, other.Inner)
}

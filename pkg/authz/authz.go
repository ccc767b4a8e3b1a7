package authz

import (
	"fmt"

	"github.com/dmitrymomot/authzkit/pkg/scope"
)

// Redactor is the field-level half of an authorizable resource: it computes
// which field names a grant may not see, and builds an independent redacted
// copy given those names.
type Redactor[T any] interface {
	// UnauthorizedFields returns the names of fields whose declared scope
	// does not allow the grant, in declaration order. It fails only when a
	// declared rule itself is malformed.
	UnauthorizedFields(grant scope.Scope) ([]string, error)

	// Redacted builds a copy of the resource with the named fields replaced
	// by their declared fallbacks (or zero values); all other fields are
	// copied verbatim.
	Redacted(unauthorized []string) (T, error)
}

// Authorizable is the full capability a resource type supplies to the
// engine. Hand-written Authorize methods usually delegate to Run.
type Authorizable[T any] interface {
	Redactor[T]

	// Authorize runs the full procedure against an already-parsed grant.
	Authorize(grant scope.Scope) (Result[T], error)
}

// Authorize authorizes a single resource against a requester scope. The
// source may be a pre-built scope.Scope or raw text via scope.Text; a parse
// failure aborts before any field is evaluated.
func Authorize[T any](r Authorizable[T], src scope.Source) (Result[T], error) {
	grant, err := src.AuthScope()
	if err != nil {
		return Result[T]{}, fmt.Errorf("authz: requester scope: %w", err)
	}
	return r.Authorize(grant)
}

// Run implements the standard authorization procedure for a resource whose
// required scopes are declared as literals:
//
//  1. collect the field names the grant may not see,
//  2. build the redacted copy,
//  3. compute the verdict: StatusAuthorized iff any resource scope allows
//     the grant; a resource with no declared scopes behaves as if it
//     declared the empty scope.
//
// The verdict never gates steps 1–2. Malformed literals abort with a
// *ParseRuleError (aggregated into RuleErrors when several fail).
func Run[T any](r Redactor[T], grant scope.Scope, resourceScopes ...string) (Result[T], error) {
	required, errs := parseResourceScopes(resourceScopes)
	if err := combineErrors(errs); err != nil {
		return Result[T]{}, err
	}
	return run(r, grant, required)
}

// run is the shared core of Run and the rule-table engine; required scopes
// are already parsed here.
func run[T any](r Redactor[T], grant scope.Scope, required []scope.Scope) (Result[T], error) {
	unauthorized, err := r.UnauthorizedFields(grant)
	if err != nil {
		return Result[T]{}, err
	}

	inner, err := r.Redacted(unauthorized)
	if err != nil {
		return Result[T]{}, err
	}

	return Result[T]{
		InputScope:         grant,
		Inner:              inner,
		Status:             verdict(required, grant),
		UnauthorizedFields: unauthorized,
	}, nil
}

func verdict(required []scope.Scope, grant scope.Scope) Status {
	if len(required) == 0 {
		required = []scope.Scope{{}}
	}
	for _, s := range required {
		if s.AllowAccess(grant) {
			return StatusAuthorized
		}
	}
	return StatusUnauthorized
}

func parseResourceScopes(literals []string) ([]scope.Scope, []error) {
	parsed := make([]scope.Scope, 0, len(literals))
	var errs []error
	for _, lit := range literals {
		s, err := scope.Parse(lit)
		if err != nil {
			errs = append(errs, &ParseRuleError{Literal: lit, Err: err})
			continue
		}
		parsed = append(parsed, s)
	}
	return parsed, errs
}

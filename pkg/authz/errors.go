package authz

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotStruct is returned when a rule table is built for a non-struct type.
	ErrNotStruct = errors.New("authz: rule table target must be a struct type")

	// ErrUnknownField is returned when a declarative rule set names a field
	// the target type does not have.
	ErrUnknownField = errors.New("authz: rule set references unknown field")

	// ErrBadDefault is returned when a declared fallback literal cannot be
	// converted to the field's type.
	ErrBadDefault = errors.New("authz: cannot convert redaction fallback")
)

// ParseRuleError reports a scope literal inside a rule declaration that
// failed to parse. Field is empty for resource-level scopes.
type ParseRuleError struct {
	Field   string
	Literal string
	Err     error
}

func (e *ParseRuleError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("authz: resource scope %q: %v", e.Literal, e.Err)
	}
	return fmt.Sprintf("authz: field %q scope %q: %v", e.Field, e.Literal, e.Err)
}

func (e *ParseRuleError) Unwrap() error {
	return e.Err
}

// RuleErrors aggregates several rule declaration failures found in a single
// pass, so callers see all of them at once.
type RuleErrors []error

func (e RuleErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Unwrap exposes the individual failures to errors.Is and errors.As.
func (e RuleErrors) Unwrap() []error {
	return e
}

// combineErrors collapses the collected failures: nil for none, the error
// itself for one, a RuleErrors aggregate otherwise.
func combineErrors(errs []error) error {
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	default:
		return RuleErrors(errs)
	}
}

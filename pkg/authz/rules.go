package authz

import (
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/dmitrymomot/authzkit/pkg/scope"
)

// Struct tags read by Define.
const (
	// TagScope declares a field's required scope literal.
	TagScope = "scope"

	// TagRedact declares the literal a redacted field falls back to. Without
	// it a redacted field takes its type's zero value.
	TagRedact = "redact"
)

// fieldRule is one field's compiled declaration.
type fieldRule struct {
	name       string
	index      int
	required   scope.Scope
	guarded    bool
	fallback   reflect.Value
	hasDefault bool
}

// Rules is an immutable, pre-validated rule table for entity type T. Build
// one with Define (struct tags) or BindRules (declarative rule set); either
// way every scope literal is parsed eagerly so authorization itself cannot
// hit a rule parse error. A Rules value is safe for concurrent use.
type Rules[T any] struct {
	required []scope.Scope
	fields   []fieldRule
}

// Define builds the rule table for T from its struct tags, with the
// resource-level required scopes given as literals. All malformed literals
// and fallbacks are reported together.
func Define[T any](resourceScopes ...string) (*Rules[T], error) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s", ErrNotStruct, t)
	}

	required, errs := parseResourceScopes(resourceScopes)

	fields := make([]fieldRule, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}

		rule := fieldRule{name: fieldName(f), index: i}
		if lit, ok := f.Tag.Lookup(TagScope); ok {
			s, err := scope.Parse(lit)
			if err != nil {
				errs = append(errs, &ParseRuleError{Field: f.Name, Literal: lit, Err: err})
			} else {
				rule.required = s
				rule.guarded = true
			}
		}
		if lit, ok := f.Tag.Lookup(TagRedact); ok {
			v, err := fallbackValue(f.Type, lit)
			if err != nil {
				errs = append(errs, fmt.Errorf("%w: field %s: %v", ErrBadDefault, f.Name, err))
			} else {
				rule.fallback = v
				rule.hasDefault = true
			}
		}
		fields = append(fields, rule)
	}

	if err := combineErrors(errs); err != nil {
		return nil, err
	}
	return &Rules[T]{required: required, fields: fields}, nil
}

// UnauthorizedFields returns, in declaration order, the guarded fields whose
// scope does not allow the grant.
func (r *Rules[T]) UnauthorizedFields(grant scope.Scope) []string {
	var fields []string
	for _, f := range r.fields {
		if f.guarded && !f.required.AllowAccess(grant) {
			fields = append(fields, f.name)
		}
	}
	return fields
}

// Redacted returns an independent copy of entity with the named fields
// replaced by their declared fallbacks or zero values. Fields not named are
// copied verbatim.
func (r *Rules[T]) Redacted(entity T, unauthorized []string) T {
	out := entity
	if len(unauthorized) == 0 {
		return out
	}

	rv := reflect.ValueOf(&out).Elem()
	for _, f := range r.fields {
		if !slices.Contains(unauthorized, f.name) {
			continue
		}
		fv := rv.Field(f.index)
		if f.hasDefault {
			fv.Set(f.fallback)
		} else {
			fv.SetZero()
		}
	}
	return out
}

// Authorize runs the full procedure for one entity: field filter, redacted
// copy, any-of resource scope verdict. The verdict never gates redaction.
func (r *Rules[T]) Authorize(entity T, src scope.Source) (Result[T], error) {
	grant, err := src.AuthScope()
	if err != nil {
		return Result[T]{}, fmt.Errorf("authz: requester scope: %w", err)
	}
	return run[T](r.Bind(entity), grant, r.required)
}

// AuthorizeAll applies the rule table to each entity in order against one
// requester scope, with the collection adapter's semantics.
func (r *Rules[T]) AuthorizeAll(entities []T, src scope.Source) (Result[[]Result[T]], error) {
	items := make([]Authorizable[T], len(entities))
	for i, e := range entities {
		items[i] = r.Bind(e)
	}
	return AuthorizeAll(items, src)
}

// Bind pairs the rule table with a concrete entity value so plain structs
// satisfy Authorizable without hand-written methods.
func (r *Rules[T]) Bind(entity T) Bound[T] {
	return Bound[T]{rules: r, entity: entity}
}

// Bound is a rule table applied to one entity value. It carries no state of
// its own beyond the pair it forwards to.
type Bound[T any] struct {
	rules  *Rules[T]
	entity T
}

// UnauthorizedFields implements Redactor.
func (b Bound[T]) UnauthorizedFields(grant scope.Scope) ([]string, error) {
	return b.rules.UnauthorizedFields(grant), nil
}

// Redacted implements Redactor.
func (b Bound[T]) Redacted(unauthorized []string) (T, error) {
	return b.rules.Redacted(b.entity, unauthorized), nil
}

// Authorize implements Authorizable.
func (b Bound[T]) Authorize(grant scope.Scope) (Result[T], error) {
	return run[T](b, grant, b.rules.required)
}

// fieldName picks the name reported in UnauthorizedFields: the json tag name
// when one is present, the Go field name otherwise.
func fieldName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "" || tag == "-" {
		return f.Name
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return f.Name
	}
	return name
}

// fallbackValue converts a tag literal to a value of the field's type.
func fallbackValue(t reflect.Type, literal string) (reflect.Value, error) {
	v := reflect.New(t).Elem()

	switch t.Kind() {
	case reflect.String:
		v.SetString(literal)

	case reflect.Bool:
		b, err := strconv.ParseBool(literal)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("invalid bool literal %q", literal)
		}
		v.SetBool(b)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(literal, 10, t.Bits())
		if err != nil {
			return reflect.Value{}, fmt.Errorf("invalid int literal %q", literal)
		}
		v.SetInt(n)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(literal, 10, t.Bits())
		if err != nil {
			return reflect.Value{}, fmt.Errorf("invalid uint literal %q", literal)
		}
		v.SetUint(n)

	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(literal, t.Bits())
		if err != nil {
			return reflect.Value{}, fmt.Errorf("invalid float literal %q", literal)
		}
		v.SetFloat(n)

	default:
		return reflect.Value{}, fmt.Errorf("unsupported fallback for type %s", t)
	}

	return v, nil
}

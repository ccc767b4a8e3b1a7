package authz

import (
	"fmt"
	"reflect"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/authzkit/pkg/scope"
)

// RuleSet is a declarative rule table, typically loaded from YAML: the
// resource-level required scopes plus per-field scope and redaction
// fallback declarations.
//
//	scopes: ["admin"]
//	fields:
//	  title:  { scope: "read:title", default: "untitled" }
//	  secret: { scope: "admin" }
type RuleSet struct {
	Scopes []string            `yaml:"scopes" json:"scopes"`
	Fields map[string]RuleSpec `yaml:"fields" json:"fields"`
}

// RuleSpec declares the rule for a single field. Both parts are optional;
// pointers distinguish "absent" from the empty scope literal, which is a
// valid declaration (the bottom element, satisfied by any denial-free grant).
type RuleSpec struct {
	Scope   *string `yaml:"scope" json:"scope"`
	Default *string `yaml:"default" json:"default"`
}

// RuleSetFromYAML decodes a declarative rule set from YAML.
func RuleSetFromYAML(data []byte) (RuleSet, error) {
	var rs RuleSet
	if err := yaml.Unmarshal(data, &rs); err != nil {
		return RuleSet{}, fmt.Errorf("authz: decode rule set: %w", err)
	}
	return rs, nil
}

// BindRules builds the typed rule table for T from a declarative rule set.
// Field names are matched the same way Define reports them: json tag name
// first, Go field name otherwise. A set entry that matches no field on T is
// an ErrUnknownField; all declaration errors are reported together.
func BindRules[T any](rs RuleSet) (*Rules[T], error) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s", ErrNotStruct, t)
	}

	required, errs := parseResourceScopes(rs.Scopes)

	bound := make(map[string]bool, len(rs.Fields))
	fields := make([]fieldRule, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}

		rule := fieldRule{name: fieldName(f), index: i}
		if spec, ok := rs.Fields[rule.name]; ok {
			bound[rule.name] = true
			if spec.Scope != nil {
				s, err := scope.Parse(*spec.Scope)
				if err != nil {
					errs = append(errs, &ParseRuleError{Field: f.Name, Literal: *spec.Scope, Err: err})
				} else {
					rule.required = s
					rule.guarded = true
				}
			}
			if spec.Default != nil {
				v, err := fallbackValue(f.Type, *spec.Default)
				if err != nil {
					errs = append(errs, fmt.Errorf("%w: field %s: %v", ErrBadDefault, f.Name, err))
				} else {
					rule.fallback = v
					rule.hasDefault = true
				}
			}
		}
		fields = append(fields, rule)
	}

	var unknown []string
	for name := range rs.Fields {
		if !bound[name] {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownField, name))
	}

	if err := combineErrors(errs); err != nil {
		return nil, err
	}
	return &Rules[T]{required: required, fields: fields}, nil
}

package scope

import (
	"sort"
	"strings"
)

const (
	// Separator splits individual tokens inside scope text.
	Separator = " "

	// DenyPrefix marks a token as denied rather than required.
	DenyPrefix = "!"
)

// Ordering is the outcome of comparing two scopes. Scopes are only partially
// ordered, so Incomparable is a regular outcome, not an error.
type Ordering int

const (
	Incomparable Ordering = iota
	Less
	Equal
	Greater
)

// String returns a human-readable name for the ordering.
func (o Ordering) String() string {
	switch o {
	case Less:
		return "less"
	case Equal:
		return "equal"
	case Greater:
		return "greater"
	default:
		return "incomparable"
	}
}

// Scope is an immutable capability descriptor: a set of required ("allowed")
// tokens and a set of forbidden ("denied") tokens. The zero value is the
// empty scope, which every denial-free grant satisfies.
type Scope struct {
	allowed map[string]struct{}
	denied  map[string]struct{}
}

// validChar reports whether r may appear in scope text. The separator is a
// valid character of the text even though it never ends up inside a token.
func validChar(r rune) bool {
	switch {
	case r == '!', r == ' ':
		return true
	case r >= 0x23 && r <= 0x5b:
		return true
	case r >= 0x5d && r <= 0x7e:
		return true
	default:
		return false
	}
}

// Parse converts scope text into a Scope. Every character is validated before
// tokenizing; the first disallowed character aborts the parse with an
// InvalidCharacterError. Tokens prefixed with DenyPrefix land in the denied
// set with the prefix stripped, all other non-empty tokens land in the
// allowed set. Duplicates collapse, empty tokens are discarded.
func Parse(text string) (Scope, error) {
	for _, r := range text {
		if !validChar(r) {
			return Scope{}, &InvalidCharacterError{Char: r}
		}
	}

	allowed := make(map[string]struct{})
	denied := make(map[string]struct{})

	for _, token := range strings.Split(text, Separator) {
		switch {
		case token == "":
			// Consecutive, leading or trailing separators.
		case strings.HasPrefix(token, DenyPrefix):
			denied[strings.TrimPrefix(token, DenyPrefix)] = struct{}{}
		default:
			allowed[token] = struct{}{}
		}
	}

	return Scope{allowed: allowed, denied: denied}, nil
}

// MustParse is like Parse but panics on invalid text. Intended for
// package-level scope declarations and tests.
func MustParse(text string) Scope {
	s, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return s
}

// New builds a Scope from individual tokens, validating each the same way
// Parse does.
func New(tokens ...string) (Scope, error) {
	return Parse(strings.Join(tokens, Separator))
}

// Allowed returns the required tokens, sorted. Returns nil for an empty set.
func (s Scope) Allowed() []string {
	return sortedTokens(s.allowed, "")
}

// Denied returns the denied tokens, sorted, without the DenyPrefix. Returns
// nil for an empty set.
func (s Scope) Denied() []string {
	return sortedTokens(s.denied, "")
}

// IsEmpty reports whether the scope has no tokens at all.
func (s Scope) IsEmpty() bool {
	return len(s.allowed) == 0 && len(s.denied) == 0
}

// String returns the canonical text form: sorted allowed tokens followed by
// sorted denied tokens with the DenyPrefix restored, space-joined. Parsing
// the result yields an equal Scope.
func (s Scope) String() string {
	tokens := sortedTokens(s.allowed, "")
	tokens = append(tokens, sortedTokens(s.denied, DenyPrefix)...)
	return strings.Join(tokens, Separator)
}

// Equal reports whether both token sets match exactly.
func (s Scope) Equal(other Scope) bool {
	return setsEqual(s.allowed, other.allowed) && setsEqual(s.denied, other.denied)
}

// Compare orders s against other:
//
//  1. If either side has denied tokens that intersect the other side's
//     allowed tokens, the scopes are Incomparable.
//  2. Otherwise the allowed sets are compared by inclusion: equal sets are
//     Equal, a subset is Less, a superset is Greater, anything else is
//     Incomparable.
func (s Scope) Compare(other Scope) Ordering {
	if len(s.denied) > 0 || len(other.denied) > 0 {
		if intersects(s.denied, other.allowed) || intersects(other.denied, s.allowed) {
			return Incomparable
		}
	}

	n := intersectionSize(s.allowed, other.allowed)
	switch {
	case n == len(s.allowed) && n == len(other.allowed):
		return Equal
	case n == len(s.allowed):
		return Less
	case n == len(other.allowed):
		return Greater
	default:
		return Incomparable
	}
}

// PrivilegedTo reports whether s carries at least the privileges other
// requires: other <= s under Compare.
func (s Scope) PrivilegedTo(other Scope) bool {
	o := other.Compare(s)
	return o == Less || o == Equal
}

// AllowAccess treats s as a requirement and reports whether the grant
// satisfies it: s <= grant under Compare. A requirement with denial tokens is
// never satisfied by a grant that carries a denied token.
func (s Scope) AllowAccess(grant Scope) bool {
	o := s.Compare(grant)
	return o == Less || o == Equal
}

// AuthScope implements Source; a Scope is its own source.
func (s Scope) AuthScope() (Scope, error) {
	return s, nil
}

// MarshalText encodes the canonical text form.
func (s Scope) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses scope text in place.
func (s *Scope) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Source is anything that can produce a Scope: a Scope itself or raw text
// that still needs parsing. The authorization engine accepts a Source
// wherever a requester scope is expected.
type Source interface {
	AuthScope() (Scope, error)
}

// Text is raw scope text that parses when used as a Source.
type Text string

// AuthScope implements Source by parsing the text.
func (t Text) AuthScope() (Scope, error) {
	return Parse(string(t))
}

func sortedTokens(set map[string]struct{}, prefix string) []string {
	if len(set) == 0 {
		return nil
	}
	tokens := make([]string, 0, len(set))
	for token := range set {
		tokens = append(tokens, prefix+token)
	}
	sort.Strings(tokens)
	return tokens
}

func setsEqual(a, b map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for token := range a {
		if _, ok := b[token]; !ok {
			return false
		}
	}
	return true
}

func intersects(a, b map[string]struct{}) bool {
	return intersectionSize(a, b) > 0
}

func intersectionSize(a, b map[string]struct{}) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	n := 0
	for token := range a {
		if _, ok := b[token]; ok {
			n++
		}
	}
	return n
}

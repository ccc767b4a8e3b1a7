// Package scope implements capability scopes: small token sets that describe
// what a bearer is allowed to do, with optional denial tokens that describe
// what it must not be.
//
// A scope is written as a space-separated list of tokens, for example
// "read:user admin". A token prefixed with "!" is a denial token: the scope
// "!guest" means "anything except a guest grant". Scopes are immutable values
// and cheap to copy; all comparisons are pure functions over the two token
// sets.
//
// # Grammar
//
// Scope text is restricted to a subset of printable ASCII:
//
//   - '!' (0x21)
//   - 0x23–0x5B and 0x5D–0x7E (letters, digits, most punctuation)
//   - space (0x20), reserved as the token separator
//
// The double quote (0x22) and backslash (0x5C) are rejected, as is anything
// outside the ranges above. Empty tokens produced by repeated separators are
// discarded, and duplicate tokens collapse by set semantics.
//
// # Ordering
//
// Scopes form a partial order, not a total one. Compare returns one of Less,
// Equal, Greater or Incomparable:
//
//   - If either side denies a token the other side requires, the pair is
//     Incomparable. Denial always wins.
//   - Otherwise the allowed sets are compared by inclusion: a subset is Less,
//     a superset is Greater, equal sets are Equal, and overlapping but
//     non-nested sets are Incomparable.
//
// Two predicates cover the common questions:
//
//	grant.PrivilegedTo(required) // does grant carry at least required's privileges?
//	required.AllowAccess(grant)  // does grant satisfy this requirement?
//
// The empty scope "" is the bottom element: it is satisfied by every grant
// that does not trip a denial rule.
//
// # Usage
//
//	userScope := scope.MustParse("user read:user")
//
//	emailRule, err := scope.Parse("!guest")
//	if err != nil {
//	    // handle scope.InvalidCharacterError
//	}
//
//	if emailRule.AllowAccess(userScope) {
//	    // disclose the email field
//	}
//
// Anything that can produce a Scope — a Scope itself, or raw text via the
// Text type — implements the Source interface, which the authorization
// engine accepts wherever a scope is expected.
package scope

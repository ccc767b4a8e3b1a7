// Package authz implements field-level authorization for structured data.
//
// Given an entity and a requester's capability scope, the engine decides per
// field whether the field's value may be disclosed, rebuilds a redacted copy
// of the entity, and computes an overall authorized/unauthorized verdict. The
// verdict never gates redaction: callers always receive a structurally
// complete entity with unauthorized fields replaced by their declared
// fallbacks, even when the verdict is StatusUnauthorized.
//
// Scope semantics (parsing, the partial order, the AllowAccess predicate)
// live in the scope package; authz consumes them.
//
// # Authorizable resources
//
// A resource type supplies the Authorizable capability: it knows which of
// its fields a given grant may not see, how to build a redacted copy, and
// how to produce a full Result. Implementations can be hand-written — the
// Run helper supplies the standard procedure so an Authorize method stays a
// one-liner:
//
//	type User struct {
//	    Name  string
//	    Email string
//	}
//
//	func (u User) UnauthorizedFields(grant scope.Scope) ([]string, error) {
//	    var fields []string
//	    if !scope.MustParse("!guest").AllowAccess(grant) {
//	        fields = append(fields, "email")
//	    }
//	    return fields, nil
//	}
//
//	func (u User) Redacted(unauthorized []string) (User, error) {
//	    out := u
//	    if slices.Contains(unauthorized, "email") {
//	        out.Email = ""
//	    }
//	    return out, nil
//	}
//
//	func (u User) Authorize(grant scope.Scope) (authz.Result[User], error) {
//	    return authz.Run[User](u, grant, "admin")
//	}
//
//	res, err := authz.Authorize[User](user, scope.Text("guest"))
//
// # Rule tables
//
// Most types don't need hand-written plumbing. Define builds an immutable
// rule table from struct tags: the "scope" tag declares a field's required
// scope, the "redact" tag the literal the field falls back to when redacted
// (absent tag means the zero value):
//
//	type Article struct {
//	    ID     int    `json:"id"`
//	    Title  string `json:"title" scope:"read:title" redact:"untitled"`
//	    Secret string `json:"secret" scope:"admin"`
//	}
//
//	rules, err := authz.Define[Article]("admin")
//	res, err := rules.Authorize(article, scope.Text("read:title"))
//
// Field names reported in Result.UnauthorizedFields use the json tag name
// when one is present, the Go field name otherwise.
//
// The same tables can be declared externally and loaded from YAML:
//
//	scopes: ["admin"]
//	fields:
//	  title:  { scope: "read:title", default: "untitled" }
//	  secret: { scope: "admin" }
//
//	rs, err := authz.RuleSetFromYAML(data)
//	rules, err := authz.BindRules[Article](rs)
//
// # Collections
//
// AuthorizeAll extends authorization over an ordered sequence of resources.
// Items whose authorization fails are dropped from the output, and the
// adapter's own status is always StatusAuthorized regardless of per-item
// outcomes.
//
// # Errors
//
// Malformed scope literals inside rule declarations abort authorization with
// a *ParseRuleError before any field is evaluated; several failures in one
// pass aggregate into RuleErrors. All errors match with errors.Is/errors.As.
package authz

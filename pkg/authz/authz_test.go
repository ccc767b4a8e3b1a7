package authz_test

import (
	"slices"
	"testing"

	"github.com/dmitrymomot/authzkit/pkg/authz"
	"github.com/dmitrymomot/authzkit/pkg/scope"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// user is a hand-written Authorizable: username is public, email is hidden
// from guests, password needs admin. The resource itself requires admin.
type user struct {
	Username string
	Password string
	Email    string
}

func (u user) UnauthorizedFields(grant scope.Scope) ([]string, error) {
	var fields []string
	if !scope.MustParse("admin").AllowAccess(grant) {
		fields = append(fields, "password")
	}
	if !scope.MustParse("!guest").AllowAccess(grant) {
		fields = append(fields, "email")
	}
	return fields, nil
}

func (u user) Redacted(unauthorized []string) (user, error) {
	out := u
	if slices.Contains(unauthorized, "password") {
		out.Password = ""
	}
	if slices.Contains(unauthorized, "email") {
		out.Email = ""
	}
	return out, nil
}

func (u user) Authorize(grant scope.Scope) (authz.Result[user], error) {
	return authz.Run[user](u, grant, "admin")
}

// broken wraps a user with a resource scope declaration that cannot parse.
type broken struct {
	user
}

func (b broken) Authorize(grant scope.Scope) (authz.Result[user], error) {
	return authz.Run[user](b.user, grant, `bad"scope`)
}

func testUser() user {
	return user{Username: "jdoe", Password: "hunter2", Email: "jdoe@example.com"}
}

func TestAuthorize(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name         string
		grant        string
		status       authz.Status
		unauthorized []string
		want         user
	}{
		{
			name:         "guest sees username only",
			grant:        "guest",
			status:       authz.StatusUnauthorized,
			unauthorized: []string{"password", "email"},
			want:         user{Username: "jdoe"},
		},
		{
			name:         "regular user sees email",
			grant:        "regular",
			status:       authz.StatusUnauthorized,
			unauthorized: []string{"password"},
			want:         user{Username: "jdoe", Email: "jdoe@example.com"},
		},
		{
			name:   "admin sees everything",
			grant:  "admin",
			status: authz.StatusAuthorized,
			want:   testUser(),
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res, err := authz.Authorize[user](testUser(), scope.Text(tt.grant))
			require.NoError(t, err)

			assert.Equal(t, tt.status, res.Status)
			assert.Equal(t, tt.unauthorized, res.UnauthorizedFields)
			assert.Equal(t, tt.want, res.Inner)
			assert.True(t, res.InputScope.Equal(scope.MustParse(tt.grant)))
		})
	}
}

func TestAuthorizeAcceptsScopeValue(t *testing.T) {
	t.Parallel()

	grant := scope.MustParse("admin")
	res, err := authz.Authorize[user](testUser(), grant)
	require.NoError(t, err)
	assert.Equal(t, authz.StatusAuthorized, res.Status)
}

func TestAuthorizeBadRequesterScope(t *testing.T) {
	t.Parallel()

	_, err := authz.Authorize[user](testUser(), scope.Text(`admin\`))
	require.Error(t, err)
	assert.ErrorIs(t, err, scope.ErrInvalidCharacter)
}

func TestRedactionIndependentOfVerdict(t *testing.T) {
	t.Parallel()

	// The verdict fails for a guest, but the result still carries a
	// structurally complete, redacted entity.
	res, err := authz.Authorize[user](testUser(), scope.Text("guest"))
	require.NoError(t, err)

	assert.Equal(t, authz.StatusUnauthorized, res.Status)
	assert.Equal(t, "jdoe", res.Inner.Username)
	assert.Empty(t, res.Inner.Password)
	assert.Empty(t, res.Inner.Email)
}

func TestRunBadResourceScope(t *testing.T) {
	t.Parallel()

	_, err := broken{testUser()}.Authorize(scope.MustParse("admin"))
	require.Error(t, err)

	var ruleErr *authz.ParseRuleError
	require.ErrorAs(t, err, &ruleErr)
	assert.Empty(t, ruleErr.Field)
	assert.Equal(t, `bad"scope`, ruleErr.Literal)
	assert.ErrorIs(t, err, scope.ErrInvalidCharacter)
}

func TestRunAggregatesBadResourceScopes(t *testing.T) {
	t.Parallel()

	_, err := authz.Run[user](testUser(), scope.MustParse("admin"), `a"`, `b\`)
	require.Error(t, err)

	var agg authz.RuleErrors
	require.ErrorAs(t, err, &agg)
	assert.Len(t, agg, 2)
	assert.ErrorIs(t, err, scope.ErrInvalidCharacter)
}

func TestRunNoResourceScopes(t *testing.T) {
	t.Parallel()

	// No declared resource scopes behaves as the empty scope: authorized for
	// any denial-free grant.
	res, err := authz.Run[user](testUser(), scope.MustParse("guest"))
	require.NoError(t, err)
	assert.Equal(t, authz.StatusAuthorized, res.Status)
}

func TestAuthorizeIdempotent(t *testing.T) {
	t.Parallel()

	first, err := authz.Authorize[user](testUser(), scope.Text("regular"))
	require.NoError(t, err)
	second, err := authz.Authorize[user](testUser(), scope.Text("regular"))
	require.NoError(t, err)

	assert.True(t, first.Equal(second))
}

func TestAuthorizeDoesNotMutateSource(t *testing.T) {
	t.Parallel()

	src := testUser()
	_, err := authz.Authorize[user](src, scope.Text("guest"))
	require.NoError(t, err)
	assert.Equal(t, testUser(), src)
}

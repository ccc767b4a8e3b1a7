package authz_test

import (
	"testing"

	"github.com/dmitrymomot/authzkit/pkg/authz"
	"github.com/dmitrymomot/authzkit/pkg/scope"
)

func BenchmarkRulesAuthorize(b *testing.B) {
	rules, err := authz.Define[article]("admin")
	if err != nil {
		b.Fatal(err)
	}
	entity := testArticle()
	grant := scope.MustParse("read:title")

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = rules.Authorize(entity, grant)
	}
}

func BenchmarkAuthorizeAll(b *testing.B) {
	rules, err := authz.Define[article]("admin")
	if err != nil {
		b.Fatal(err)
	}
	entities := make([]article, 100)
	for i := range entities {
		entities[i] = testArticle()
	}
	grant := scope.MustParse("admin read:title")

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = rules.AuthorizeAll(entities, grant)
	}
}

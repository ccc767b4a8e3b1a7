package authz

import (
	"fmt"

	"github.com/dmitrymomot/authzkit/pkg/scope"
)

// AuthorizeAll authorizes an ordered sequence of resources against one
// requester scope, wrapping each accepted item's result in order.
//
// Items whose authorization fails (for example a malformed rule declaration)
// are dropped from the output rather than propagated, and the adapter's own
// status is always StatusAuthorized no matter how many items failed or were
// denied. Only a requester-scope parse failure makes the call itself error.
func AuthorizeAll[T any](items []Authorizable[T], src scope.Source) (Result[[]Result[T]], error) {
	grant, err := src.AuthScope()
	if err != nil {
		return Result[[]Result[T]]{}, fmt.Errorf("authz: requester scope: %w", err)
	}

	inner := make([]Result[T], 0, len(items))
	for _, item := range items {
		res, err := item.Authorize(grant)
		if err != nil {
			continue
		}
		inner = append(inner, res)
	}

	return Result[[]Result[T]]{
		InputScope: grant,
		Inner:      inner,
		Status:     StatusAuthorized,
	}, nil
}

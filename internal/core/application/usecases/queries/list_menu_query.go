package queries

import (
	"errors"

	"canteen/internal/pkg/guard"
)

var ErrListMenuQueryIsNotConstructed = errors.New(
	"ListMenuQuery must be created via NewListMenuQuery constructor",
)

// ListMenuQuery retrieves the items currently offered for sale. This is a
// parameterless query backing the public menu endpoint.
type ListMenuQuery struct {
	guard guard.ConstructorGuard
}

// NewListMenuQuery creates a query for the active menu.
func NewListMenuQuery() ListMenuQuery {
	return ListMenuQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q ListMenuQuery) Validate() error {
	return q.guard.Validate(ErrListMenuQueryIsNotConstructed)
}

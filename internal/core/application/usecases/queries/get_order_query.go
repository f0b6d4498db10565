package queries

import (
	"errors"

	"canteen/internal/core/domain/model/kernel"
	"canteen/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one order for tracking. The requester identity is
// part of the query: customers may only read their own orders, elevated
// roles may read any.
type GetOrderQuery struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	requesterID   kernel.UUID
	requesterRole kernel.Role

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a validated order lookup query.
func NewGetOrderQuery(orderID, requesterID kernel.UUID, requesterRole kernel.Role) (GetOrderQuery, error) {
	query := GetOrderQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		query.setOrderID(orderID),
		query.setRequesterID(requesterID),
		query.setRequesterRole(requesterRole),
	); err != nil {
		return GetOrderQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the id of the order to read.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// RequesterID returns the id of the caller.
func (q GetOrderQuery) RequesterID() kernel.UUID {
	return q.requesterID
}

// RequesterRole returns the role of the caller.
func (q GetOrderQuery) RequesterRole() kernel.Role {
	return q.requesterRole
}

func (q *GetOrderQuery) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	q.orderID = orderID
	return nil
}

func (q *GetOrderQuery) setRequesterID(requesterID kernel.UUID) error {
	if err := requesterID.Validate(); err != nil {
		return err
	}

	q.requesterID = requesterID
	return nil
}

func (q *GetOrderQuery) setRequesterRole(requesterRole kernel.Role) error {
	if err := requesterRole.Validate(); err != nil {
		return err
	}

	q.requesterRole = requesterRole
	return nil
}

package queries

import (
	"errors"
	"time"

	"canteen/internal/core/domain/model/kernel"
	"canteen/internal/core/domain/model/order"
	"canteen/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery retrieves orders across all customers for the staff
// dashboard, optionally narrowed by status and creation time window.
// Zero-valued filters mean "no constraint".
type ListOrdersQuery struct { //nolint:recvcheck //using for validation
	requesterRole kernel.Role
	status        order.Status
	from          time.Time
	to            time.Time

	guard guard.ConstructorGuard
}

// NewListOrdersQuery creates a validated dashboard listing query. The to
// filter names a day and is widened to cover it entirely, so from == to
// lists every order of that single day.
func NewListOrdersQuery(
	requesterRole kernel.Role,
	status order.Status,
	from, to time.Time,
) (ListOrdersQuery, error) {
	query := ListOrdersQuery{
		from:  from,
		guard: guard.NewConstructorGuard(),
	}
	if !to.IsZero() {
		query.to = to.UTC().Truncate(24 * time.Hour).Add(24 * time.Hour)
	}

	if err := errors.Join(
		query.setRequesterRole(requesterRole),
		query.setStatus(status),
	); err != nil {
		return ListOrdersQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// RequesterRole returns the role of the caller.
func (q ListOrdersQuery) RequesterRole() kernel.Role {
	return q.requesterRole
}

// Status returns the status filter, StatusUnknown when unfiltered.
func (q ListOrdersQuery) Status() order.Status {
	return q.status
}

// From returns the inclusive lower bound on creation time, zero when
// unfiltered.
func (q ListOrdersQuery) From() time.Time {
	return q.from
}

// To returns the exclusive upper bound on creation time: the start of the
// day after the requested to day. Zero when unfiltered.
func (q ListOrdersQuery) To() time.Time {
	return q.to
}

func (q *ListOrdersQuery) setRequesterRole(requesterRole kernel.Role) error {
	if err := requesterRole.Validate(); err != nil {
		return err
	}

	q.requesterRole = requesterRole
	return nil
}

func (q *ListOrdersQuery) setStatus(status order.Status) error {
	if status != order.StatusUnknown {
		if err := status.Validate(); err != nil {
			return err
		}
	}

	q.status = status
	return nil
}

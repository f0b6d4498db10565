package queries

import (
	"errors"
	"time"

	"canteen/internal/core/domain/model/kernel"
	"canteen/internal/pkg/errs"
	"canteen/internal/pkg/guard"
)

var ErrGetDailySalesQueryIsNotConstructed = errors.New(
	"GetDailySalesQuery must be created via NewGetDailySalesQuery constructor",
)

// GetDailySalesQuery aggregates completed orders of one calendar day into
// a sales report.
type GetDailySalesQuery struct { //nolint:recvcheck //using for validation
	requesterRole kernel.Role
	day           time.Time

	guard guard.ConstructorGuard
}

// NewGetDailySalesQuery creates a validated sales report query. The day is
// truncated to midnight UTC.
func NewGetDailySalesQuery(requesterRole kernel.Role, day time.Time) (GetDailySalesQuery, error) {
	query := GetDailySalesQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		query.setRequesterRole(requesterRole),
		query.setDay(day),
	); err != nil {
		return GetDailySalesQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDailySalesQuery) Validate() error {
	return q.guard.Validate(ErrGetDailySalesQueryIsNotConstructed)
}

// RequesterRole returns the role of the caller.
func (q GetDailySalesQuery) RequesterRole() kernel.Role {
	return q.requesterRole
}

// Day returns the UTC midnight of the reported day.
func (q GetDailySalesQuery) Day() time.Time {
	return q.day
}

func (q *GetDailySalesQuery) setRequesterRole(requesterRole kernel.Role) error {
	if err := requesterRole.Validate(); err != nil {
		return err
	}

	q.requesterRole = requesterRole
	return nil
}

func (q *GetDailySalesQuery) setDay(day time.Time) error {
	if day.IsZero() {
		return errs.NewValueIsRequiredError("day")
	}

	q.day = day.UTC().Truncate(24 * time.Hour)
	return nil
}

// DailySalesResponse is the aggregated sales report for one day. Cancelled
// orders are excluded from the revenue figures but still show up in the
// status breakdown.
type DailySalesResponse struct {
	Day               time.Time
	OrderCount        int64
	TotalRevenue      int64
	AverageOrderValue float64
	CounterRevenue    int64
	OnlineRevenue     int64
	StatusBreakdown   []StatusCountResponse
	Items             []ItemSalesResponse
}

// StatusCountResponse is the per-status order count of a daily sales report.
type StatusCountResponse struct {
	Status string
	Count  int64
}

// ItemSalesResponse is the per-item breakdown of a daily sales report.
type ItemSalesResponse struct {
	Name     string
	Quantity int64
	Revenue  int64
}

package queries

import (
	"context"
	"time"

	"canteen/internal/core/domain/model/order"
	"canteen/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetDailySalesQueryHandler aggregates one day of orders into a sales report.
// Cancelled orders carry no revenue, so every revenue figure excludes them;
// the status breakdown covers all orders of the day including cancelled ones.
type GetDailySalesQueryHandler struct {
	db *gorm.DB
}

// NewGetDailySalesQueryHandler creates a handler for sales report queries.
func NewGetDailySalesQueryHandler(db *gorm.DB) GetDailySalesQueryHandler {
	return GetDailySalesQueryHandler{db: db}
}

// Handle executes the report query. Only elevated roles may read sales.
func (h GetDailySalesQueryHandler) Handle(
	ctx context.Context,
	query GetDailySalesQuery,
) (DailySalesResponse, error) {
	if err := query.Validate(); err != nil {
		return DailySalesResponse{}, err
	}

	if !query.RequesterRole().IsElevated() {
		return DailySalesResponse{}, errs.NewAuthorizationError("only staff can read sales reports")
	}

	dayStart := query.Day()
	dayEnd := dayStart.Add(24 * time.Hour)

	response := DailySalesResponse{
		Day:             dayStart,
		StatusBreakdown: make([]StatusCountResponse, 0),
		Items:           make([]ItemSalesResponse, 0),
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*),
			COALESCE(SUM(total_amount), 0),
			COALESCE(SUM(CASE WHEN payment_mode = 'counter' THEN total_amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN payment_mode = 'online' THEN total_amount ELSE 0 END), 0)
		FROM orders
		WHERE status <> ?
		  AND created_at >= ?
		  AND created_at < ?
	`, int(order.StatusCancelled), dayStart, dayEnd).Row()
	if err := row.Scan(
		&response.OrderCount,
		&response.TotalRevenue,
		&response.CounterRevenue,
		&response.OnlineRevenue,
	); err != nil {
		return DailySalesResponse{}, err
	}
	if response.OrderCount > 0 {
		response.AverageOrderValue = float64(response.TotalRevenue) / float64(response.OrderCount)
	}

	statusRows, err := h.db.WithContext(ctx).Raw(`
		SELECT status, COUNT(*)
		FROM orders
		WHERE created_at >= ?
		  AND created_at < ?
		GROUP BY status
		ORDER BY status
	`, dayStart, dayEnd).Rows()
	if err != nil {
		return DailySalesResponse{}, err
	}
	defer statusRows.Close()

	for statusRows.Next() {
		var (
			status int
			count  int64
		)
		if err = statusRows.Scan(&status, &count); err != nil {
			return DailySalesResponse{}, err
		}
		response.StatusBreakdown = append(response.StatusBreakdown, StatusCountResponse{
			Status: order.Status(status).String(),
			Count:  count,
		})
	}
	if err = statusRows.Err(); err != nil {
		return DailySalesResponse{}, err
	}

	itemRows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			l.name,
			SUM(l.quantity),
			SUM(l.unit_price * l.quantity)
		FROM order_lines l
		JOIN orders o ON o.id = l.order_id
		WHERE o.status <> ?
		  AND o.created_at >= ?
		  AND o.created_at < ?
		GROUP BY l.name
		ORDER BY SUM(l.quantity) DESC
	`, int(order.StatusCancelled), dayStart, dayEnd).Rows()
	if err != nil {
		return DailySalesResponse{}, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var item ItemSalesResponse
		if err = itemRows.Scan(&item.Name, &item.Quantity, &item.Revenue); err != nil {
			return DailySalesResponse{}, err
		}
		response.Items = append(response.Items, item)
	}
	if err = itemRows.Err(); err != nil {
		return DailySalesResponse{}, err
	}

	return response, nil
}

package queries

import (
	"context"

	"canteen/internal/core/domain/model/order"
	"canteen/internal/pkg/errs"

	"gorm.io/gorm"
)

// ListOrdersQueryHandler reads orders across all customers for the staff
// dashboard.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListOrdersQueryHandler creates a handler for dashboard listings.
func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle executes the listing. Only elevated roles may list across
// customers.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if !query.RequesterRole().IsElevated() {
		return nil, errs.NewAuthorizationError("only staff can list all orders")
	}

	sql := `SELECT ` + orderColumns + ` FROM orders WHERE 1=1`
	args := make([]any, 0, 3)

	if query.Status() != order.StatusUnknown {
		sql += ` AND status = ?`
		args = append(args, int(query.Status()))
	}
	if !query.From().IsZero() {
		sql += ` AND created_at >= ?`
		args = append(args, query.From())
	}
	if !query.To().IsZero() {
		sql += ` AND created_at < ?`
		args = append(args, query.To())
	}
	sql += ` ORDER BY created_at DESC`

	orderRows, err := scanOrderRows(h.db.WithContext(ctx).Raw(sql, args...))
	if err != nil {
		return nil, err
	}

	return assembleOrders(ctx, h.db, orderRows)
}

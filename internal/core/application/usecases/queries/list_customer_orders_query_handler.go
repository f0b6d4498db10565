package queries

import (
	"context"

	"gorm.io/gorm"
)

// ListCustomerOrdersQueryHandler reads one customer's orders from the
// database, most recent first.
type ListCustomerOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListCustomerOrdersQueryHandler creates a handler for customer order
// history queries.
func NewListCustomerOrdersQueryHandler(db *gorm.DB) ListCustomerOrdersQueryHandler {
	return ListCustomerOrdersQueryHandler{db: db}
}

// Handle executes the history query.
func (h ListCustomerOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListCustomerOrdersQuery,
) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orderRows, err := scanOrderRows(h.db.WithContext(ctx).Raw(
		`SELECT `+orderColumns+` FROM orders WHERE customer_id = ? ORDER BY created_at DESC`,
		query.CustomerID().Bytes(),
	))
	if err != nil {
		return nil, err
	}

	return assembleOrders(ctx, h.db, orderRows)
}

package queries

import (
	"context"

	"canteen/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderQueryHandler reads one order with its lines and status history.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single order lookups.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the lookup. A customer asking for someone else's order
// gets a not-authorized error, not a not-found one.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderResponse{}, err
	}

	orderRows, err := scanOrderRows(h.db.WithContext(ctx).Raw(
		`SELECT `+orderColumns+` FROM orders WHERE id = ?`,
		query.OrderID().Bytes(),
	))
	if err != nil {
		return OrderResponse{}, err
	}
	if len(orderRows) == 0 {
		return OrderResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	responses, err := assembleOrders(ctx, h.db, orderRows)
	if err != nil {
		return OrderResponse{}, err
	}

	response := responses[0]
	if !query.RequesterRole().IsElevated() && !response.CustomerID.IsEqual(query.RequesterID()) {
		return OrderResponse{}, errs.NewAuthorizationError("order belongs to another customer")
	}

	return response, nil
}

// Package queries contains read-only operations in the CQRS architecture.
// Query handlers go straight to the database and return response structs,
// bypassing the domain aggregates.
package queries

import (
	"context"
	"time"

	"canteen/internal/core/domain/model/kernel"
	"canteen/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderResponse is the read model of one order, complete with its line
// snapshots, status history, and the owner's public profile. Name and
// email stay empty when the customer has no directory entry.
type OrderResponse struct {
	ID            kernel.UUID
	CustomerID    kernel.UUID
	CustomerName  string
	CustomerEmail string
	Token         string
	Status        string
	PaymentMode   string
	TotalAmount   int64
	Lines         []OrderLineResponse
	History       []StatusChangeResponse
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OrderLineResponse is one line snapshot of an order read model.
type OrderLineResponse struct {
	ItemID    kernel.UUID
	Name      string
	UnitPrice int64
	Quantity  int
	Subtotal  int64
}

// StatusChangeResponse is one entry of an order's status history.
type StatusChangeResponse struct {
	Status string
	At     time.Time
}

type orderRow struct {
	ID          uuid.UUID
	CustomerID  uuid.UUID
	Token       string
	PaymentMode string
	TotalAmount int64
	Status      int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

const orderColumns = `
	id,
	customer_id,
	token,
	payment_mode,
	total_amount,
	status,
	created_at,
	updated_at
`

func scanOrderRows(db *gorm.DB) ([]orderRow, error) {
	rows, err := db.Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []orderRow
	for rows.Next() {
		var row orderRow
		err = rows.Scan(
			&row.ID,
			&row.CustomerID,
			&row.Token,
			&row.PaymentMode,
			&row.TotalAmount,
			&row.Status,
			&row.CreatedAt,
			&row.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// assembleOrders turns order rows into responses, loading the lines,
// history, and owner profiles of every listed order in batched queries.
func assembleOrders(ctx context.Context, db *gorm.DB, orderRows []orderRow) ([]OrderResponse, error) {
	responses := make([]OrderResponse, 0, len(orderRows))
	if len(orderRows) == 0 {
		return responses, nil
	}

	ids := make([]uuid.UUID, 0, len(orderRows))
	index := make(map[uuid.UUID]int, len(orderRows))
	customerIDs := make([]uuid.UUID, 0, len(orderRows))
	seenCustomers := make(map[uuid.UUID]bool, len(orderRows))
	for i, row := range orderRows {
		ids = append(ids, row.ID)
		index[row.ID] = i
		if !seenCustomers[row.CustomerID] {
			seenCustomers[row.CustomerID] = true
			customerIDs = append(customerIDs, row.CustomerID)
		}

		id, err := kernel.UUIDFromBytes(row.ID[:])
		if err != nil {
			return nil, err
		}
		customerID, err := kernel.UUIDFromBytes(row.CustomerID[:])
		if err != nil {
			return nil, err
		}

		responses = append(responses, OrderResponse{
			ID:          id,
			CustomerID:  customerID,
			Token:       row.Token,
			Status:      order.Status(row.Status).String(),
			PaymentMode: row.PaymentMode,
			TotalAmount: row.TotalAmount,
			Lines:       make([]OrderLineResponse, 0, 2),
			History:     make([]StatusChangeResponse, 0, 2),
			CreatedAt:   row.CreatedAt,
			UpdatedAt:   row.UpdatedAt,
		})
	}

	lineRows, err := db.WithContext(ctx).Raw(`
		SELECT
			order_id,
			item_id,
			name,
			unit_price,
			quantity
		FROM order_lines
		WHERE order_id IN ?
		ORDER BY order_id, pos
	`, ids).Rows()
	if err != nil {
		return nil, err
	}
	defer lineRows.Close()

	for lineRows.Next() {
		var orderID, itemID uuid.UUID
		var name string
		var unitPrice int64
		var quantity int

		if err = lineRows.Scan(&orderID, &itemID, &name, &unitPrice, &quantity); err != nil {
			return nil, err
		}

		lineItemID, idErr := kernel.UUIDFromBytes(itemID[:])
		if idErr != nil {
			return nil, idErr
		}

		i := index[orderID]
		responses[i].Lines = append(responses[i].Lines, OrderLineResponse{
			ItemID:    lineItemID,
			Name:      name,
			UnitPrice: unitPrice,
			Quantity:  quantity,
			Subtotal:  unitPrice * int64(quantity),
		})
	}
	if err = lineRows.Err(); err != nil {
		return nil, err
	}

	historyRows, err := db.WithContext(ctx).Raw(`
		SELECT
			order_id,
			status,
			at
		FROM order_status_history
		WHERE order_id IN ?
		ORDER BY order_id, seq
	`, ids).Rows()
	if err != nil {
		return nil, err
	}
	defer historyRows.Close()

	for historyRows.Next() {
		var orderID uuid.UUID
		var status int
		var at time.Time

		if err = historyRows.Scan(&orderID, &status, &at); err != nil {
			return nil, err
		}

		i := index[orderID]
		responses[i].History = append(responses[i].History, StatusChangeResponse{
			Status: order.Status(status).String(),
			At:     at,
		})
	}
	if err = historyRows.Err(); err != nil {
		return nil, err
	}

	type profileRow struct {
		Name  string
		Email string
	}
	profiles := make(map[uuid.UUID]profileRow, len(customerIDs))

	profileRows, err := db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			email
		FROM users
		WHERE id IN ?
	`, customerIDs).Rows()
	if err != nil {
		return nil, err
	}
	defer profileRows.Close()

	for profileRows.Next() {
		var userID uuid.UUID
		var profile profileRow

		if err = profileRows.Scan(&userID, &profile.Name, &profile.Email); err != nil {
			return nil, err
		}
		profiles[userID] = profile
	}
	if err = profileRows.Err(); err != nil {
		return nil, err
	}

	for i, row := range orderRows {
		if profile, ok := profiles[row.CustomerID]; ok {
			responses[i].CustomerName = profile.Name
			responses[i].CustomerEmail = profile.Email
		}
	}

	return responses, nil
}

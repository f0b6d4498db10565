package http

import (
	"time"

	"canteen/internal/core/application/usecases/queries"
)

// Error is the JSON shape of every error response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// PlaceOrderRequest is the JSON body of POST /api/v1/orders.
type PlaceOrderRequest struct {
	Items       []PlaceOrderItem `json:"items"`
	PaymentMode string           `json:"paymentMode"`
}

// PlaceOrderItem is one cart line of a placement request.
type PlaceOrderItem struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
}

// ChangeStatusRequest is the JSON body of PATCH /api/v1/orders/:id/status.
type ChangeStatusRequest struct {
	Status string `json:"status"`
}

// OrderLine is one line snapshot in an order response.
type OrderLine struct {
	ItemID    string `json:"itemId"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unitPrice"`
	Quantity  int    `json:"quantity"`
	Subtotal  int64  `json:"subtotal"`
}

// StatusChange is one status history entry in an order response.
type StatusChange struct {
	Status string    `json:"status"`
	At     time.Time `json:"at"`
}

// Order is the JSON shape of one order.
type Order struct {
	ID            string         `json:"id"`
	CustomerID    string         `json:"customerId"`
	CustomerName  string         `json:"customerName,omitempty"`
	CustomerEmail string         `json:"customerEmail,omitempty"`
	Token         string         `json:"token"`
	Status        string         `json:"status"`
	PaymentMode   string         `json:"paymentMode"`
	TotalAmount   int64          `json:"totalAmount"`
	Lines         []OrderLine    `json:"items"`
	History       []StatusChange `json:"statusHistory"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

// MenuItem is the JSON shape of one catalog item.
type MenuItem struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description,omitempty"`
	Category       string `json:"category"`
	Price          int64  `json:"price"`
	AvailableStock int    `json:"availableStock"`
	IsVeg          bool   `json:"isVeg"`
}

// DailySales is the JSON shape of the daily sales report.
type DailySales struct {
	Day               string        `json:"day"`
	OrderCount        int64         `json:"orderCount"`
	TotalRevenue      int64         `json:"totalRevenue"`
	AverageOrderValue float64       `json:"averageOrderValue"`
	CounterRevenue    int64         `json:"counterRevenue"`
	OnlineRevenue     int64         `json:"onlineRevenue"`
	StatusBreakdown   []StatusCount `json:"statusBreakdown"`
	Items             []ItemSales   `json:"items"`
}

// StatusCount is the per-status order count in a daily sales report.
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// ItemSales is the per-item breakdown in a daily sales report.
type ItemSales struct {
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
	Revenue  int64  `json:"revenue"`
}

func orderFromResponse(response queries.OrderResponse) Order {
	lines := make([]OrderLine, 0, len(response.Lines))
	for _, line := range response.Lines {
		lines = append(lines, OrderLine{
			ItemID:    line.ItemID.String(),
			Name:      line.Name,
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
			Subtotal:  line.Subtotal,
		})
	}

	history := make([]StatusChange, 0, len(response.History))
	for _, entry := range response.History {
		history = append(history, StatusChange{Status: entry.Status, At: entry.At})
	}

	return Order{
		ID:            response.ID.String(),
		CustomerID:    response.CustomerID.String(),
		CustomerName:  response.CustomerName,
		CustomerEmail: response.CustomerEmail,
		Token:         response.Token,
		Status:        response.Status,
		PaymentMode:   response.PaymentMode,
		TotalAmount:   response.TotalAmount,
		Lines:         lines,
		History:       history,
		CreatedAt:     response.CreatedAt,
		UpdatedAt:     response.UpdatedAt,
	}
}

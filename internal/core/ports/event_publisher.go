package ports

import (
	"context"
	"time"

	"canteen/internal/core/domain/model/order"
)

// Audiences for order events. AudienceOps reaches every staff consumer;
// OwnerAudience scopes an event to the customer who placed the order.
const (
	AudienceOps         = "ops"
	ownerAudiencePrefix = "owner."
)

// OwnerAudience returns the audience addressing a single customer.
func OwnerAudience(customerID string) string {
	return ownerAudiencePrefix + customerID
}

// OrderEvent is the wire shape of a single order notification. It embeds
// the fully resolved order so consumers (staff dashboards, the owner's
// client) can render it without a follow-up read.
type OrderEvent struct {
	Type       string       `json:"type"`
	OrderID    string       `json:"orderId"`
	Token      string       `json:"token"`
	Status     string       `json:"status"`
	Message    string       `json:"message"`
	Order      OrderPayload `json:"order"`
	OccurredAt time.Time    `json:"occurredAt"`
}

// OrderPayload is the resolved order carried inside an OrderEvent: line
// snapshots, totals, and the owner's public profile where one is known.
type OrderPayload struct {
	ID            string             `json:"id"`
	CustomerID    string             `json:"customerId"`
	CustomerName  string             `json:"customerName,omitempty"`
	CustomerEmail string             `json:"customerEmail,omitempty"`
	Token         string             `json:"token"`
	Status        string             `json:"status"`
	PaymentMode   string             `json:"paymentMode"`
	TotalAmount   int64              `json:"totalAmount"`
	Lines         []OrderLinePayload `json:"items"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

// OrderLinePayload is one line snapshot inside an order event payload.
type OrderLinePayload struct {
	ItemID    string `json:"itemId"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unitPrice"`
	Quantity  int    `json:"quantity"`
	Subtotal  int64  `json:"subtotal"`
}

// KioskOrder is one entry of a kiosk board snapshot.
type KioskOrder struct {
	Token  string `json:"token"`
	Status string `json:"status"`
}

// KioskSnapshot is the full state of the pickup board, pushed
// periodically so kiosk displays can recover from missed deltas.
type KioskSnapshot struct {
	Type       string       `json:"type"`
	Orders     []KioskOrder `json:"orders"`
	OccurredAt time.Time    `json:"occurredAt"`
}

// EventPublisher fans order lifecycle events out to interested audiences.
// Implementations must not be transactional: handlers publish only after
// the owning transaction has committed, and treat publish failures as
// non-fatal.
type EventPublisher interface {
	// PublishOrderPlaced announces a freshly created order to ops and
	// to the owning customer.
	PublishOrderPlaced(ctx context.Context, aggregate *order.Order) error

	// PublishOrderStatusChanged announces a status transition to ops
	// and to the owning customer.
	PublishOrderStatusChanged(ctx context.Context, aggregate *order.Order) error

	// PublishKioskSnapshot pushes the current pickup board to ops.
	PublishKioskSnapshot(ctx context.Context, snapshot KioskSnapshot) error
}

// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, converting between domain entities and database rows.
package orderrepo

import (
	"time"

	"canteen/internal/core/domain/model/kernel"
	"canteen/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The pickup token carries a unique index: a duplicate token is a data
// corruption signal, not a normal business outcome.
type OrderDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID  uuid.UUID `gorm:"type:uuid;index"`
	Token       string    `gorm:"uniqueIndex"`
	PaymentMode string    `gorm:"type:varchar(16)"`
	TotalAmount int64
	Status      int              `gorm:"index"`
	Lines       []OrderLineDTO   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	History     []OrderStatusDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time        `gorm:"index"`
	UpdatedAt   time.Time
}

// TableName overrides GORM's default naming to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderLineDTO is one immutable line snapshot of an order. Pos preserves the
// cart order.
type OrderLineDTO struct {
	OrderID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Pos       int       `gorm:"primaryKey"`
	ItemID    uuid.UUID `gorm:"type:uuid"`
	Name      string
	UnitPrice int64
	Quantity  int
}

// TableName overrides GORM's default naming to use "order_lines".
func (OrderLineDTO) TableName() string {
	return "order_lines"
}

// OrderStatusDTO is one append-only status history entry. Seq preserves the
// commit order of transitions.
type OrderStatusDTO struct {
	OrderID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq     int       `gorm:"primaryKey"`
	Status  int
	At      time.Time
}

// TableName overrides GORM's default naming to use "order_status_history".
func (OrderStatusDTO) TableName() string {
	return "order_status_history"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	id := aggregate.ID().Bytes()

	lines := make([]OrderLineDTO, 0, len(aggregate.Lines()))
	for pos, line := range aggregate.Lines() {
		lines = append(lines, OrderLineDTO{
			OrderID:   id,
			Pos:       pos,
			ItemID:    line.ItemID().Bytes(),
			Name:      line.Name(),
			UnitPrice: line.UnitPrice(),
			Quantity:  line.Quantity(),
		})
	}

	history := make([]OrderStatusDTO, 0, len(aggregate.History()))
	for seq, entry := range aggregate.History() {
		history = append(history, OrderStatusDTO{
			OrderID: id,
			Seq:     seq,
			Status:  int(entry.Status),
			At:      entry.At,
		})
	}

	return OrderDTO{
		ID:          id,
		CustomerID:  aggregate.CustomerID().Bytes(),
		Token:       aggregate.Token().String(),
		PaymentMode: aggregate.PaymentMode().String(),
		TotalAmount: aggregate.TotalAmount(),
		Status:      int(aggregate.Status()),
		Lines:       lines,
		History:     history,
		CreatedAt:   aggregate.CreatedAt(),
		UpdatedAt:   aggregate.UpdatedAt(),
	}
}

// toDomain converts a database DTO, with its preloaded lines and history,
// back to an order aggregate.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	token, err := order.TokenFromString(dto.Token)
	if err != nil {
		return nil, err
	}

	paymentMode, err := order.PaymentModeFromString(dto.PaymentMode)
	if err != nil {
		return nil, err
	}

	lines := make([]order.Line, 0, len(dto.Lines))
	for _, lineDTO := range dto.Lines {
		itemID, itemErr := kernel.UUIDFromBytes(lineDTO.ItemID[:])
		if itemErr != nil {
			return nil, itemErr
		}

		line, lineErr := order.NewLine(itemID, lineDTO.Name, lineDTO.UnitPrice, lineDTO.Quantity)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	history := make([]order.HistoryEntry, 0, len(dto.History))
	for _, entry := range dto.History {
		history = append(history, order.HistoryEntry{
			Status: order.Status(entry.Status),
			At:     entry.At,
		})
	}

	return order.RestoreOrder(
		id,
		customerID,
		token,
		lines,
		paymentMode,
		dto.TotalAmount,
		order.Status(dto.Status),
		history,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}

package commands

import (
	"context"
	"log/slog"
	"time"

	"canteen/internal/core/domain/model/kernel"
	"canteen/internal/core/domain/model/order"
	"canteen/internal/core/domain/services"
	"canteen/internal/core/ports"
)

// PlaceOrderCommandHandler turns a validated cart into a durable order.
// Stock reservation, token allocation, and order persistence happen in one
// transaction; any failure rolls back all of it, including the counter
// increment. Events go out only after the transaction commits.
type PlaceOrderCommandHandler struct {
	uowFactory PlaceOrderUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewPlaceOrderCommandHandler creates a handler for order placement.
// publisher may be nil when no broker is configured; placement then
// proceeds without notifications.
func NewPlaceOrderCommandHandler(
	uowFactory PlaceOrderUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the placement command.
//
// Each cart line locks its catalog row before reserving stock, so two
// concurrent orders for the last unit serialize and exactly one succeeds.
// The token sequence is drawn inside the same transaction; a rollback
// releases both the stock and the sequence number.
func (h PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	assembler := services.NewOrderAssembler()
	menuRepo := uow.MenuItemRepository()
	lines := make([]order.Line, 0, len(cmd.Cart()))
	for _, cartLine := range cmd.Cart() {
		item, err := menuRepo.GetForUpdate(ctx, cartLine.ItemID)
		if err != nil {
			return nil, err
		}

		line, err := assembler.Assemble(item, cartLine.Quantity)
		if err != nil {
			return nil, err
		}

		if err = menuRepo.Update(ctx, item); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	seq, err := uow.SequenceGenerator().Next(ctx, ports.OrderCounterName)
	if err != nil {
		return nil, err
	}

	token, err := order.NewToken(seq)
	if err != nil {
		return nil, err
	}

	aggregate, err := order.NewOrder(
		kernel.NewUUID(),
		cmd.CustomerID(),
		token,
		lines,
		cmd.PaymentMode(),
		time.Now().UTC(),
	)
	if err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.publishPlaced(ctx, aggregate)

	return aggregate, nil
}

// publishPlaced notifies audiences about the committed order. The order is
// already durable at this point, so a broker failure is logged and swallowed
// rather than surfaced to the customer.
func (h PlaceOrderCommandHandler) publishPlaced(ctx context.Context, aggregate *order.Order) {
	if h.publisher == nil {
		return
	}

	if err := h.publisher.PublishOrderPlaced(ctx, aggregate); err != nil {
		h.logger.Warn("failed to publish order placed event",
			"orderId", aggregate.ID().String(),
			"token", aggregate.Token().String(),
			"error", err)
	}
}

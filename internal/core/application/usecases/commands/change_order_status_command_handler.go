package commands

import (
	"context"
	"log/slog"
	"time"

	"canteen/internal/core/domain/model/order"
	"canteen/internal/core/ports"
	"canteen/internal/pkg/errs"
)

// ChangeOrderStatusCommandHandler advances an order through its lifecycle.
// The order row is locked for the duration of the transaction, so two
// concurrent transitions on the same order serialize and the loser fails
// the state machine check instead of silently overwriting.
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewChangeOrderStatusCommandHandler creates a handler for status changes.
// publisher may be nil when no broker is configured.
func NewChangeOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the status change command. Only elevated roles may
// transition orders. On success the updated order carries exactly one new
// history entry, and both the ops and owner audiences are notified after
// commit.
func (h ChangeOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd ChangeOrderStatusCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if !cmd.ActorRole().IsElevated() {
		return nil, errs.NewAuthorizationError("only staff can change order status")
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = aggregate.AdvanceStatus(cmd.Next(), time.Now().UTC()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.publishStatusChanged(ctx, aggregate)

	return aggregate, nil
}

func (h ChangeOrderStatusCommandHandler) publishStatusChanged(ctx context.Context, aggregate *order.Order) {
	if h.publisher == nil {
		return
	}

	if err := h.publisher.PublishOrderStatusChanged(ctx, aggregate); err != nil {
		h.logger.Warn("failed to publish order status event",
			"orderId", aggregate.ID().String(),
			"token", aggregate.Token().String(),
			"status", aggregate.Status().String(),
			"error", err)
	}
}

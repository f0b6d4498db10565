package commands

import (
	"context"
	"time"

	"canteen/internal/core/ports"
)

// PublishKioskSnapshotCommandHandler reads every non-terminal order and
// broadcasts the resulting board to the ops audience. Reads happen inside
// a transaction so the snapshot is a consistent cut of the board.
type PublishKioskSnapshotCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
}

// NewPublishKioskSnapshotCommandHandler creates a handler for board broadcasts.
func NewPublishKioskSnapshotCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
) PublishKioskSnapshotCommandHandler {
	return PublishKioskSnapshotCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the snapshot command. With no publisher configured the
// command is a no-op.
func (h PublishKioskSnapshotCommandHandler) Handle(ctx context.Context, cmd PublishKioskSnapshotCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if h.publisher == nil {
		return nil
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	active, err := uow.OrderRepository().GetAllActive(ctx)
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	snapshot := ports.KioskSnapshot{
		Type:       "kiosk_snapshot",
		Orders:     make([]ports.KioskOrder, 0, len(active)),
		OccurredAt: time.Now().UTC(),
	}
	for _, aggregate := range active {
		snapshot.Orders = append(snapshot.Orders, ports.KioskOrder{
			Token:  aggregate.Token().String(),
			Status: aggregate.Status().String(),
		})
	}

	return h.publisher.PublishKioskSnapshot(ctx, snapshot)
}

package commands_test

import (
	"testing"
	"time"

	"canteen/internal/core/application/usecases/commands"
	"canteen/internal/core/domain/model/order"
	"canteen/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPublishKioskSnapshotCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	first := newPlacedOrder(t)
	second := newPlacedOrder(t)
	require.NoError(t, second.AdvanceStatus(order.StatusInPreparation, time.Now().UTC()))

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	publisher := new(MockEventPublisher)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetAllActive", ctx).Return([]*order.Order{first, second}, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		publisher.On("PublishKioskSnapshot", ctx, mock.AnythingOfType("ports.KioskSnapshot")).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPublishKioskSnapshotCommandHandler(factory, publisher)
	cmd := commands.NewPublishKioskSnapshotCommand()
	require.NoError(t, h.Handle(ctx, cmd))

	snapshot := publisher.Calls[0].Arguments.Get(1).(ports.KioskSnapshot)
	assert.Equal(t, "kiosk_snapshot", snapshot.Type)
	require.Len(t, snapshot.Orders, 2)
	assert.Equal(t, first.Token().String(), snapshot.Orders[0].Token)
	assert.Equal(t, "Placed", snapshot.Orders[0].Status)
	assert.Equal(t, "In Preparation", snapshot.Orders[1].Status)
	publisher.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestPublishKioskSnapshotCommandHandler_Handle_NilPublisherIsNoOp(t *testing.T) {
	ctx := t.Context()
	factory := new(MockOrderUoWFactory)

	h := commands.NewPublishKioskSnapshotCommandHandler(factory, nil)
	cmd := commands.NewPublishKioskSnapshotCommand()

	require.NoError(t, h.Handle(ctx, cmd))
	factory.AssertNotCalled(t, "Create")
}

func TestPublishKioskSnapshotCommandHandler_Handle_NotConstructed(t *testing.T) {
	ctx := t.Context()
	factory := new(MockOrderUoWFactory)

	h := commands.NewPublishKioskSnapshotCommandHandler(factory, new(MockEventPublisher))
	err := h.Handle(ctx, commands.PublishKioskSnapshotCommand{})

	require.ErrorIs(t, err, commands.ErrPublishKioskSnapshotCommandIsNotConstructed)
}

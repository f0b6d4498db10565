package commands

import (
	"errors"

	"canteen/internal/pkg/guard"
)

var ErrPublishKioskSnapshotCommandIsNotConstructed = errors.New(
	"PublishKioskSnapshotCommand must be created via NewPublishKioskSnapshotCommand constructor",
)

// PublishKioskSnapshotCommand triggers a full pickup-board broadcast.
// This is a parameterless command run on a schedule so kiosk displays
// that missed delta events converge on the real state.
type PublishKioskSnapshotCommand struct {
	guard guard.ConstructorGuard
}

// NewPublishKioskSnapshotCommand creates a command to broadcast the board.
func NewPublishKioskSnapshotCommand() PublishKioskSnapshotCommand {
	return PublishKioskSnapshotCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c *PublishKioskSnapshotCommand) Validate() error {
	return c.guard.Validate(ErrPublishKioskSnapshotCommandIsNotConstructed)
}

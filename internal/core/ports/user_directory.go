package ports

import (
	"context"

	"canteen/internal/core/domain/model/kernel"
)

// UserProfile is the read-only slice of account data the order flow needs
// for receipts and notifications. Accounts are owned by another system;
// this engine never writes them.
type UserProfile struct {
	ID    kernel.UUID
	Name  string
	Email string
	Role  kernel.Role
}

// UserDirectory looks up account profiles.
type UserDirectory interface {
	// Get retrieves the profile for the given user id.
	Get(ctx context.Context, id kernel.UUID) (UserProfile, error)
}

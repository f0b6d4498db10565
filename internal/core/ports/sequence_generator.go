package ports

import "context"

// OrderCounterName is the counter row backing order token numbers.
const OrderCounterName = "orderToken"

// SequenceGenerator hands out strictly increasing sequence numbers from a
// named counter. Next must be called inside the same transaction that
// persists the order so a rolled-back order never burns a visible token.
type SequenceGenerator interface {
	// Next atomically increments the named counter and returns the new
	// value. The first call on a fresh counter returns 1.
	Next(ctx context.Context, name string) (int64, error)
}

package order

import (
	"errors"
	"time"

	"canteen/internal/core/domain/model/kernel"
	"canteen/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through NewOrder or RestoreOrder.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

// HistoryEntry is one append-only audit record of the order's lifecycle.
type HistoryEntry struct {
	Status Status
	At     time.Time
}

// Order is the aggregate root for a placed canteen order.
//
// Invariants:
//   - at least one line; every line is an immutable snapshot
//   - totalAmount equals the sum of line subtotals at creation time and is
//     never recomputed, even if catalog prices change later
//   - the token is assigned exactly once, at creation, and never reused
//   - statusHistory starts with the creation status; every accepted
//     transition appends exactly one entry; entries are never removed
type Order struct {
	id          kernel.UUID
	customerID  kernel.UUID
	token       Token
	lines       []Line
	paymentMode PaymentMode
	totalAmount int64
	status      Status
	history     []HistoryEntry
	createdAt   time.Time
	updatedAt   time.Time

	isConstructed bool
}

// NewOrder creates an order in StatusPlaced from validated line snapshots.
// The total is computed here, server-side, and fixed for the order's
// lifetime. The history is seeded with the creation status.
func NewOrder(id, customerID kernel.UUID, token Token, lines []Line, paymentMode PaymentMode, now time.Time) (*Order, error) {
	o := &Order{
		status:        StatusPlaced,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setToken(token),
		o.setLines(lines),
		o.setPaymentMode(paymentMode),
	); err != nil {
		return nil, err
	}

	for _, l := range o.lines {
		o.totalAmount += l.Subtotal()
	}
	o.history = []HistoryEntry{{Status: StatusPlaced, At: now}}

	return o, nil
}

// RestoreOrder reconstructs an order from persistence. The persisted total is
// trusted as-is and never recomputed from the lines, since catalog edits after
// creation must not affect it. History must be non-empty and is taken in its
// persisted commit order.
func RestoreOrder(
	id, customerID kernel.UUID,
	token Token,
	lines []Line,
	paymentMode PaymentMode,
	totalAmount int64,
	status Status,
	history []HistoryEntry,
	createdAt, updatedAt time.Time,
) (*Order, error) {
	o := &Order{
		totalAmount:   totalAmount,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setToken(token),
		o.setLines(lines),
		o.setPaymentMode(paymentMode),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	if len(history) == 0 {
		return nil, errs.NewValueIsRequiredError("statusHistory")
	}

	o.status = status
	o.history = append([]HistoryEntry(nil), history...)

	return o, nil
}

// Validate ensures the Order was constructed through NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the identifier of the customer who placed the order.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// Token returns the human-presentable order token.
func (o *Order) Token() Token {
	return o.token
}

// Lines returns the order's line snapshots in cart order.
func (o *Order) Lines() []Line {
	return append([]Line(nil), o.lines...)
}

// PaymentMode returns the recorded payment method label.
func (o *Order) PaymentMode() PaymentMode {
	return o.paymentMode
}

// TotalAmount returns the total fixed at creation time.
func (o *Order) TotalAmount() int64 {
	return o.totalAmount
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// History returns the append-only status audit trail in commit order.
func (o *Order) History() []HistoryEntry {
	return append([]HistoryEntry(nil), o.history...)
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the last mutation timestamp.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// AdvanceStatus moves the order to next if the state machine allows it and
// appends exactly one history entry. A rejected transition leaves both the
// status and the history untouched.
//
// Concurrent AdvanceStatus calls on the same order must be serialized by the
// caller (the repository locks the order row for update) so interleaved
// history entries are never lost or reordered relative to commit order.
func (o *Order) AdvanceStatus(next Status, now time.Time) error {
	newStatus, err := o.status.Advance(next)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.history = append(o.history, HistoryEntry{Status: newStatus, At: now})
	o.updatedAt = now
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setToken(token Token) error {
	if err := token.Validate(); err != nil {
		return err
	}
	o.token = token
	return nil
}

func (o *Order) setLines(lines []Line) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("order must contain at least one line")
	}
	for _, l := range lines {
		if err := l.Validate(); err != nil {
			return err
		}
	}
	o.lines = append([]Line(nil), lines...)
	return nil
}

func (o *Order) setPaymentMode(mode PaymentMode) error {
	if err := mode.Validate(); err != nil {
		return err
	}
	o.paymentMode = mode
	return nil
}

package order

import (
	"fmt"

	"canteen/internal/pkg/errs"
)

// Status represents the lifecycle state of an order. It implements a strict
// forward-only state machine:
//
//	Placed ──> InPreparation ──> Ready ──> Completed
//	   │             │             │
//	   └─────────────┴─────────────┴──> Cancelled
//
// Skipping a state is rejected, and Completed and Cancelled are terminal:
// no transition ever leaves them, which keeps the audit history coherent.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusPlaced is the initial status assigned when an order is created.
	StatusPlaced

	// StatusInPreparation indicates the kitchen has started on the order.
	StatusInPreparation

	// StatusReady indicates the order is ready for pickup at the counter.
	StatusReady

	// StatusCompleted indicates the order was handed over. Terminal.
	StatusCompleted

	// StatusCancelled indicates the order was cancelled before completion.
	// Terminal; reachable from any non-terminal state.
	StatusCancelled
)

func getValidStatusStrings() map[Status]string {
	return map[Status]string{
		StatusPlaced:        "Placed",
		StatusInPreparation: "In Preparation",
		StatusReady:         "Ready",
		StatusCompleted:     "Completed",
		StatusCancelled:     "Cancelled",
	}
}

// StatusFromString parses the human-facing status name used on the wire and
// in persistence ("Placed", "In Preparation", ...).
func StatusFromString(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is one of the defined states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status, e.g. "In Preparation".
// Implements fmt.Stringer and is safe on any value.
func (s Status) String() string {
	if str, ok := getValidStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further transition may leave this status.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Advance transitions to next, enforcing the strict forward-only policy.
//
// Valid transitions:
//   - one step forward along Placed -> InPreparation -> Ready -> Completed
//   - any non-terminal state -> Cancelled
//
// Everything else (skipping a state, re-entering the current state, or
// leaving a terminal state) returns a ConflictError naming the current
// status so the caller can decide how to proceed.
func (s Status) Advance(next Status) (Status, error) {
	if err := next.Validate(); err != nil {
		return StatusUnknown, err
	}
	if s.IsTerminal() {
		return StatusUnknown, errs.NewConflictError("status",
			fmt.Sprintf("order is already %s", s))
	}
	if next == StatusCancelled {
		return StatusCancelled, nil
	}
	if next == s+1 {
		return next, nil
	}
	return StatusUnknown, errs.NewConflictError("status",
		fmt.Sprintf("cannot move from %s to %s", s, next))
}

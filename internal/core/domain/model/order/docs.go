// Package order contains the Order aggregate root and its value objects:
// line snapshots, the token derived from the order sequence, the payment
// mode label, and the lifecycle status state machine with its append-only
// history. The aggregate exclusively owns its lines and history; the catalog
// is referenced only through snapshotted line data.
package order

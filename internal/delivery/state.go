// Package delivery drives carrier assignment for paid orders: which orders
// may be assigned, the confirmation step, the update call and the guard
// against assigning the same order twice in one session.
package delivery

import "marketplace-admin/internal/order"

// State is the per-order assignment state shown to the operator and used to
// gate actions.
type State string

const (
	// Ready: confirmed, no carrier yet. Assignment actions enabled.
	StateReady State = "ready"
	// Assigning: a request for this order is in flight.
	StateAssigning State = "assigning"
	// Assigned: a carrier is set, or the order was assigned in this session.
	StateAssigned State = "assigned"
	// NotReady: not confirmed yet (for example awaiting a bank transfer).
	StateNotReady State = "not_ready"
)

// ActionsEnabled reports whether carrier buttons are usable in s.
func (s State) ActionsEnabled() bool {
	return s == StateReady
}

// DeriveState computes the single state of o. inFlight and clicked are the
// session's transient flags for o.
func DeriveState(o order.Order, inFlight, clicked bool) State {
	switch {
	case inFlight:
		return StateAssigning
	case clicked || o.DeliveryMethod.IsCarrier():
		return StateAssigned
	case o.Status != order.StatusConfirmed:
		return StateNotReady
	default:
		return StateReady
	}
}

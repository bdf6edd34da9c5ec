package models

// OrderStatus is the workflow state of an order. Values are persisted
// verbatim, so the display strings double as the canonical identifiers.
type OrderStatus string

const (
	StatusPending        OrderStatus = "Pending"
	StatusConfirmed      OrderStatus = "Confirmed"
	StatusOutOfWarehouse OrderStatus = "Out of Warehouse"
	StatusInTransit      OrderStatus = "In Transit"
	StatusDelivered      OrderStatus = "Delivered"
	StatusPaid           OrderStatus = "Paid"
	StatusCompleted      OrderStatus = "Completed"
	StatusCancelled      OrderStatus = "Cancelled"
)

// representativeTransitions is the linear fulfilment workflow available to
// non-admin users. Completed and Cancelled are terminal.
var representativeTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:        {StatusConfirmed, StatusCancelled},
	StatusConfirmed:      {StatusOutOfWarehouse, StatusCancelled},
	StatusOutOfWarehouse: {StatusInTransit, StatusCancelled},
	StatusInTransit:      {StatusDelivered, StatusCancelled},
	StatusDelivered:      {StatusPaid},
	StatusPaid:           {StatusCompleted},
	StatusCompleted:      {},
	StatusCancelled:      {},
}

// Valid reports whether the status is one of the known workflow states.
func (s OrderStatus) Valid() bool {
	_, ok := representativeTransitions[s]
	return ok
}

// CanTransitionTo reports whether a move from s to next is legal for the
// given role. Admins may jump to any other state; representatives follow
// the linear workflow.
func (s OrderStatus) CanTransitionTo(next OrderStatus, role Role) bool {
	if !next.Valid() || next == s {
		return false
	}
	if role == RoleAdmin {
		return true
	}
	for _, allowed := range representativeTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

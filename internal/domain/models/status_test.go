package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusValid(t *testing.T) {
	for _, status := range []OrderStatus{
		StatusPending, StatusConfirmed, StatusOutOfWarehouse, StatusInTransit,
		StatusDelivered, StatusPaid, StatusCompleted, StatusCancelled,
	} {
		assert.True(t, status.Valid(), "%s should be a known status", status)
	}

	assert.False(t, OrderStatus("Shipped").Valid())
	assert.False(t, OrderStatus("").Valid())
}

func TestRepresentativeTransitions(t *testing.T) {
	tests := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusDelivered, false},
		{StatusPending, StatusCompleted, false},
		{StatusConfirmed, StatusOutOfWarehouse, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusPending, false},
		{StatusOutOfWarehouse, StatusInTransit, true},
		{StatusOutOfWarehouse, StatusCancelled, true},
		{StatusInTransit, StatusDelivered, true},
		{StatusInTransit, StatusCancelled, true},
		{StatusDelivered, StatusPaid, true},
		{StatusDelivered, StatusCancelled, false},
		{StatusPaid, StatusCompleted, true},
		{StatusPaid, StatusCancelled, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCompleted, StatusPending, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusCompleted, false},
	}

	for _, tt := range tests {
		got := tt.from.CanTransitionTo(tt.to, RoleRepresentative)
		assert.Equal(t, tt.allowed, got, "representative %s -> %s", tt.from, tt.to)
	}
}

func TestAdminTransitions(t *testing.T) {
	// Admins may move between any two distinct valid states, including out
	// of the terminal ones.
	assert.True(t, StatusPending.CanTransitionTo(StatusDelivered, RoleAdmin))
	assert.True(t, StatusCompleted.CanTransitionTo(StatusCancelled, RoleAdmin))
	assert.True(t, StatusCancelled.CanTransitionTo(StatusCompleted, RoleAdmin))

	assert.False(t, StatusPending.CanTransitionTo(StatusPending, RoleAdmin), "self-transition is never legal")
	assert.False(t, StatusPending.CanTransitionTo(OrderStatus("Shipped"), RoleAdmin), "unknown target is never legal")
}

package inspection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusMachine_ValidateTransition(t *testing.T) {
	machine := NewStatusMachine()

	allowed := []struct{ from, to BookingStatus }{
		{StatusScheduled, StatusInProgress},
		{StatusScheduled, StatusCompleted},
		{StatusScheduled, StatusCancelled},
		{StatusScheduled, StatusRescheduled},
		{StatusInProgress, StatusCompleted},
		{StatusInProgress, StatusCancelled},
		{StatusRescheduled, StatusInProgress},
		{StatusRescheduled, StatusCompleted},
		{StatusRescheduled, StatusCancelled},
	}
	for _, tc := range allowed {
		assert.NoError(t, machine.ValidateTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}

	// Same-state transitions are a no-op.
	assert.NoError(t, machine.ValidateTransition(StatusCompleted, StatusCompleted))

	// COMPLETED and CANCELLED are terminal in the rule table.
	err := machine.ValidateTransition(StatusCompleted, StatusInProgress)
	var transition *TransitionError
	require.ErrorAs(t, err, &transition)
	assert.Equal(t, "BOOKING_INVALID_TRANSITION", transition.Code)
	assert.Equal(t, StatusCompleted, transition.From)
	assert.Equal(t, StatusInProgress, transition.To)

	err = machine.ValidateTransition(StatusCancelled, StatusScheduled)
	require.ErrorAs(t, err, &transition)
	assert.Equal(t, "BOOKING_INVALID_TRANSITION", transition.Code)
}

func TestStatusMachine_UnknownStatus(t *testing.T) {
	machine := NewStatusMachine()

	err := machine.ValidateTransition(StatusScheduled, BookingStatus("ARCHIVED"))
	var transition *TransitionError
	require.ErrorAs(t, err, &transition)
	assert.Equal(t, "BOOKING_UNKNOWN_STATUS", transition.Code)
}

func TestStatusMachine_AllowedTransitions(t *testing.T) {
	machine := NewStatusMachine()

	assert.ElementsMatch(t,
		[]BookingStatus{StatusInProgress, StatusCompleted, StatusCancelled, StatusRescheduled},
		machine.AllowedTransitions(StatusScheduled))
	assert.Empty(t, machine.AllowedTransitions(StatusCompleted))
	assert.Empty(t, machine.AllowedTransitions(StatusCancelled))
}

func TestValidBookingStatus(t *testing.T) {
	for _, s := range AllBookingStatuses {
		assert.True(t, ValidBookingStatus(s))
	}
	assert.False(t, ValidBookingStatus("PENDING"))
	assert.False(t, ValidBookingStatus(""))
}

package inspection

import "fmt"

// TransitionRule defines an allowed booking status transition.
type TransitionRule struct {
	From BookingStatus
	To   BookingStatus
}

// DefaultBookingTransitions declares the intended status transitions.
// COMPLETED and CANCELLED are terminal here, but status updates that
// violate the table are still applied: existing callers rely on forcing
// a booking into COMPLETED or CANCELLED from any state, so the booking
// service validates against this table and logs violations instead of
// rejecting them.
var DefaultBookingTransitions = []TransitionRule{
	{From: StatusScheduled, To: StatusInProgress},
	{From: StatusScheduled, To: StatusCompleted},
	{From: StatusScheduled, To: StatusCancelled},
	{From: StatusScheduled, To: StatusRescheduled},
	{From: StatusInProgress, To: StatusCompleted},
	{From: StatusInProgress, To: StatusCancelled},
	{From: StatusRescheduled, To: StatusInProgress},
	{From: StatusRescheduled, To: StatusCompleted},
	{From: StatusRescheduled, To: StatusCancelled},
}

// StatusMachine validates booking status transitions against a rule table.
type StatusMachine struct {
	transitions []TransitionRule
}

// NewStatusMachine creates a machine with the default rules.
func NewStatusMachine() *StatusMachine {
	return &StatusMachine{transitions: DefaultBookingTransitions}
}

// ValidateTransition checks if a transition from->to is allowed.
// Same-state transitions are a no-op and always allowed.
func (m *StatusMachine) ValidateTransition(from, to BookingStatus) error {
	if from == to {
		return nil
	}
	if !ValidBookingStatus(to) {
		return &TransitionError{
			Code:    "BOOKING_UNKNOWN_STATUS",
			From:    from,
			To:      to,
			Message: fmt.Sprintf("unknown booking status %q", to),
		}
	}
	for _, t := range m.transitions {
		if t.From == from && t.To == to {
			return nil
		}
	}
	return &TransitionError{
		Code:    "BOOKING_INVALID_TRANSITION",
		From:    from,
		To:      to,
		Message: fmt.Sprintf("no transition defined from %s to %s", from, to),
	}
}

// AllowedTransitions returns all valid target states from the given state.
func (m *StatusMachine) AllowedTransitions(from BookingStatus) []BookingStatus {
	var allowed []BookingStatus
	for _, t := range m.transitions {
		if t.From == from {
			allowed = append(allowed, t.To)
		}
	}
	return allowed
}

// TransitionError is a structured error for invalid status transitions.
type TransitionError struct {
	Code    string        `json:"code"`
	From    BookingStatus `json:"from"`
	To      BookingStatus `json:"to"`
	Message string        `json:"message"`
}

func (e *TransitionError) Error() string {
	return e.Message
}

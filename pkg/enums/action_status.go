package enums

import "fmt"

// ActionStatus captures the lifecycle of an invite or join request.
// Sent is the only non-terminal state.
type ActionStatus string

const (
	ActionStatusSent     ActionStatus = "sent"
	ActionStatusAccepted ActionStatus = "accepted"
	ActionStatusRejected ActionStatus = "rejected"
)

var validActionStatuses = []ActionStatus{
	ActionStatusSent,
	ActionStatusAccepted,
	ActionStatusRejected,
}

// String implements fmt.Stringer.
func (s ActionStatus) String() string {
	return string(s)
}

// IsValid reports whether the value matches a known ActionStatus.
func (s ActionStatus) IsValid() bool {
	for _, candidate := range validActionStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is allowed from the status.
func (s ActionStatus) IsTerminal() bool {
	return s == ActionStatusAccepted || s == ActionStatusRejected
}

// IsDecision reports whether the status is a valid response to a sent action.
func (s ActionStatus) IsDecision() bool {
	return s == ActionStatusAccepted || s == ActionStatusRejected
}

// ParseActionStatus converts raw input into an ActionStatus.
func ParseActionStatus(value string) (ActionStatus, error) {
	for _, candidate := range validActionStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid action status %q", value)
}

package enums

import "fmt"

// ActionKind distinguishes the two membership workflows sharing the actions table.
type ActionKind string

const (
	ActionKindInvite      ActionKind = "invite"
	ActionKindJoinRequest ActionKind = "join_request"
)

var validActionKinds = []ActionKind{
	ActionKindInvite,
	ActionKindJoinRequest,
}

// String implements fmt.Stringer.
func (k ActionKind) String() string {
	return string(k)
}

// IsValid reports whether the value is a known ActionKind.
func (k ActionKind) IsValid() bool {
	for _, candidate := range validActionKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParseActionKind converts raw input into an ActionKind.
func ParseActionKind(value string) (ActionKind, error) {
	for _, candidate := range validActionKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid action kind %q", value)
}

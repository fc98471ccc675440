package model

import "fmt"

// Status is the lifecycle state of a borrow request.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusDeclined Status = "declined"
	StatusReturned Status = "returned"
)

// ParseStatus rejects unknown strings at the deserialization boundary.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.Valid() {
		return "", fmt.Errorf("unknown request status %q", s)
	}
	return status, nil
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusDeclined, StatusReturned:
		return true
	}
	return false
}

// Terminal states accept no further transitions. Declined is terminal:
// a declined request cannot be revived, the requester files a new one.
func (s Status) Terminal() bool {
	return s == StatusDeclined || s == StatusReturned
}

// CanTransitionTo encodes the state machine:
// pending -> approved | declined, approved -> returned.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusApproved || next == StatusDeclined
	case StatusApproved:
		return next == StatusReturned
	}
	return false
}

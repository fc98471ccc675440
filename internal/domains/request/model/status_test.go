package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	for _, valid := range []string{"pending", "approved", "declined", "returned"} {
		status, err := ParseStatus(valid)
		require.NoError(t, err)
		assert.Equal(t, valid, string(status))
	}

	_, err := ParseStatus("cancelled")
	assert.Error(t, err)

	_, err = ParseStatus("")
	assert.Error(t, err)
}

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    Status
		to      Status
		allowed bool
	}{
		{"pending to approved", StatusPending, StatusApproved, true},
		{"pending to declined", StatusPending, StatusDeclined, true},
		{"pending to returned", StatusPending, StatusReturned, false},
		{"approved to returned", StatusApproved, StatusReturned, true},
		{"approved to declined", StatusApproved, StatusDeclined, false},
		{"approved to pending", StatusApproved, StatusPending, false},
		{"declined to approved", StatusDeclined, StatusApproved, false},
		{"declined to pending", StatusDeclined, StatusPending, false},
		{"returned to approved", StatusReturned, StatusApproved, false},
		{"returned to returned", StatusReturned, StatusReturned, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestStatusTerminal(t *testing.T) {
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusApproved.Terminal())
	assert.True(t, StatusDeclined.Terminal())
	assert.True(t, StatusReturned.Terminal())
}

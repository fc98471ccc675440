package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Validation must be a pure format check. The suite (and production sign-in)
// runs in environments without DNS, so no rule here may touch the network.
func TestCreateSessionRequestValidate(t *testing.T) {
	valid := CreateSessionRequest{
		ExternalID: "google-123",
		Email:      "Jo.Hn@gmail.com",
		Name:       "John",
	}
	assert.NoError(t, valid.Validate())

	t.Run("rejects malformed email", func(t *testing.T) {
		bad := valid
		bad.Email = "not-an-email"
		assert.Error(t, bad.Validate())
	})

	t.Run("requires external id", func(t *testing.T) {
		bad := valid
		bad.ExternalID = ""
		assert.Error(t, bad.Validate())
	})
}

func TestInviteUserRequestValidate(t *testing.T) {
	valid := InviteUserRequest{
		Email: "friend@nonexistent-domain-zz.example",
		Name:  "Friend",
	}
	assert.NoError(t, valid.Validate())

	t.Run("rejects malformed email", func(t *testing.T) {
		bad := valid
		bad.Email = "@@"
		assert.Error(t, bad.Validate())
	})

	t.Run("requires name", func(t *testing.T) {
		bad := valid
		bad.Name = ""
		assert.Error(t, bad.Validate())
	})
}

package model

import (
	"time"

	"github.com/google/uuid"
)

// User is a member of the lending circle. Accounts are created by an admin
// invite and linked to an external identity on first sign-in.
type User struct {
	ID              uuid.UUID `json:"id"`
	Email           string    `json:"email"`
	NormalizedEmail string    `json:"-"`
	Name            string    `json:"name"`
	AvatarURL       *string   `json:"avatar_url"`
	Admin           bool      `json:"admin"`

	// Subject from the identity provider. Nil until first sign-in.
	ExternalID *string `json:"-"`

	InvitedBy *uuid.UUID `json:"invited_by"`
	LastLogin *time.Time `json:"last_login"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsLinked reports whether an external identity has signed in as this user.
func (u *User) IsLinked() bool {
	return u.ExternalID != nil && *u.ExternalID != ""
}

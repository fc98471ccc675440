package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

// CreateSessionRequest carries the provider-verified profile from the
// sign-in flow. The gateway in front of this API has already authenticated
// the user with the identity provider.
type CreateSessionRequest struct {
	ExternalID string  `json:"external_id" binding:"required"`
	Email      string  `json:"email" binding:"required"`
	Name       string  `json:"name"`
	AvatarURL  *string `json:"avatar_url,omitempty"`
}

func (r CreateSessionRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ExternalID, validation.Required.Error("external_id is required")),
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			// Format check only. is.Email resolves MX records over live DNS,
			// which would fail every sign-in on an unreachable resolver.
			is.EmailFormat.Error("invalid email format"),
		),
		validation.Field(&r.Name, validation.Length(0, 100)),
	)
}

// SessionResponse is the issued session token plus the linked user.
type SessionResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// InviteUserRequest - admin adds a member to the invite list.
type InviteUserRequest struct {
	Email string `json:"email" binding:"required"`
	Name  string `json:"name" binding:"required"`
	Admin bool   `json:"admin"`
}

func (r InviteUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.EmailFormat.Error("invalid email format"),
			validation.Length(5, 255),
		),
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, 100),
		),
	)
}

// UpdateProfileRequest - user updates their own display name.
type UpdateProfileRequest struct {
	Name string `json:"name" binding:"required"`
}

func (r UpdateProfileRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, 100),
		),
	)
}

// UserResponse is the public representation of a member.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
	Admin     bool      `json:"admin"`
	Linked    bool      `json:"linked"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		AvatarURL: u.AvatarURL,
		Admin:     u.Admin,
		Linked:    u.IsLinked(),
		CreatedAt: u.CreatedAt,
	}
}

// ListUsersRequest - directory listing with pagination.
type ListUsersRequest struct {
	Search string `form:"search"`
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}

func (r *ListUsersRequest) SetDefaults() {
	if r.Page == 0 {
		r.Page = 1
	}
	if r.Limit == 0 {
		r.Limit = 50
	}
	if r.Limit > 100 {
		r.Limit = 100
	}
}

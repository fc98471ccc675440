package shared

import "github.com/google/uuid"

// Principal is the authenticated identity attached to a request. Core
// services receive it explicitly instead of reading ambient state, so
// authorization checks stay unit-testable.
type Principal struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	AvatarURL string    `json:"avatar_url"`
	Admin     bool      `json:"admin"`
}

package service

import (
	"context"

	"github.com/google/uuid"

	"friendshavestuff-backend/internal/domains/user/model"
	"friendshavestuff-backend/internal/shared"
)

type ServiceInterface interface {
	// CreateSession links a provider-verified identity to an invited user
	// and issues a session token.
	CreateSession(ctx context.Context, req model.CreateSessionRequest) (*model.SessionResponse, error)

	GetUser(ctx context.Context, id uuid.UUID) (*model.UserResponse, error)
	ListUsers(ctx context.Context, req model.ListUsersRequest) ([]model.UserResponse, int, error)
	UpdateProfile(ctx context.Context, principal shared.Principal, req model.UpdateProfileRequest) (*model.UserResponse, error)

	// Admin operations.
	InviteUser(ctx context.Context, principal shared.Principal, req model.InviteUserRequest) (*model.UserResponse, error)
	RemoveUser(ctx context.Context, principal shared.Principal, id uuid.UUID) error
}

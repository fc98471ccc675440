package service

import (
	"context"

	"github.com/google/uuid"

	"friendshavestuff-backend/internal/domains/request/model"
	"friendshavestuff-backend/internal/shared"
)

// Notifier is the slice of the notification dispatcher the ledger needs.
// All calls are fire-and-forget: the dispatcher logs its own failures.
type Notifier interface {
	RequestCreated(ctx context.Context, payload shared.RequestCreatedPayload)
	StatusChanged(ctx context.Context, payload shared.StatusChangedPayload)
}

type ServiceInterface interface {
	CreateRequest(ctx context.Context, principal shared.Principal, req model.CreateRequestRequest) (*model.RequestResponse, error)
	GetRequest(ctx context.Context, principal shared.Principal, id uuid.UUID) (*model.RequestResponse, error)
	ListMine(ctx context.Context, principal shared.Principal, req model.ListRequestsRequest) ([]model.RequestResponse, int, error)
	ListIncoming(ctx context.Context, principal shared.Principal, req model.ListRequestsRequest) ([]model.RequestResponse, int, error)

	Approve(ctx context.Context, principal shared.Principal, id uuid.UUID) (*model.RequestResponse, error)
	Decline(ctx context.Context, principal shared.Principal, id uuid.UUID, req model.DeclineRequestRequest) (*model.RequestResponse, error)
	MarkReturned(ctx context.Context, principal shared.Principal, id uuid.UUID) (*model.RequestResponse, error)

	// GetItemRequests backs the item page: viewer's focal request, approved
	// calendar, and borrowing history.
	GetItemRequests(ctx context.Context, principal shared.Principal, itemID uuid.UUID) (*model.ItemRequestsResponse, error)
}

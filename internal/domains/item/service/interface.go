package service

import (
	"context"

	"github.com/google/uuid"

	"friendshavestuff-backend/internal/domains/item/model"
	"friendshavestuff-backend/internal/shared"
)

// ImageStore is the slice of object storage the catalog needs.
type ImageStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// TaskQueue enqueues background cleanup work. Fire-and-forget.
type TaskQueue interface {
	DeleteItemImages(ctx context.Context, payload shared.DeleteItemImagesPayload)
}

type ServiceInterface interface {
	CreateItem(ctx context.Context, principal shared.Principal, req model.CreateItemRequest) (*model.ItemResponse, error)
	GetItem(ctx context.Context, id uuid.UUID) (*model.ItemResponse, error)
	ListItems(ctx context.Context, req model.ListItemsRequest) ([]model.ItemResponse, int, error)
	UpdateItem(ctx context.Context, principal shared.Principal, id uuid.UUID, req model.UpdateItemRequest) (*model.ItemResponse, error)
	SetBlackouts(ctx context.Context, principal shared.Principal, id uuid.UUID, req model.SetBlackoutsRequest) (*model.ItemResponse, error)
	UploadImages(ctx context.Context, principal shared.Principal, id uuid.UUID, images [][]byte) (*model.ItemResponse, error)
	DeleteItem(ctx context.Context, principal shared.Principal, id uuid.UUID) error
}

package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"friendshavestuff-backend/internal/domains/item/model"
)

type ListFilters struct {
	Category string
	OwnerID  *uuid.UUID
	Search   string
}

type ItemRepository interface {
	Create(ctx context.Context, item *model.Item) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Item, error)
	Update(ctx context.Context, item *model.Item) error
	List(ctx context.Context, filters ListFilters, page, limit int) ([]*model.Item, int, error)
	SetBlackouts(ctx context.Context, id uuid.UUID, dates []time.Time) error
	AppendImages(ctx context.Context, id uuid.UUID, urls []string) error

	// Delete path, all inside one transaction: decline the item's active
	// requests, drop its comment thread, then remove the row.
	DeclineActiveRequestsTx(ctx context.Context, tx pgx.Tx, itemID uuid.UUID) (int64, error)
	DeleteCommentsTx(ctx context.Context, tx pgx.Tx, itemID uuid.UUID) error
	DeleteTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) error

	GetOwnerSummary(ctx context.Context, ownerID uuid.UUID) (model.OwnerSummary, error)
	GetOwnerSummaries(ctx context.Context, ownerIDs []uuid.UUID) (map[uuid.UUID]model.OwnerSummary, error)
}

package repository

import (
	"context"

	"github.com/google/uuid"

	"friendshavestuff-backend/internal/domains/comment/model"
)

// ItemInfo is what the thread needs to know about its item.
type ItemInfo struct {
	ID      uuid.UUID
	OwnerID uuid.UUID
	Name    string
}

type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Comment, error)
	ListByItem(ctx context.Context, itemID uuid.UUID) ([]*model.Comment, error)

	// DeleteWithReplies removes a comment and its direct replies in one
	// statement; returns the number of rows removed.
	DeleteWithReplies(ctx context.Context, id uuid.UUID) (int64, error)

	GetItemInfo(ctx context.Context, itemID uuid.UUID) (*ItemInfo, error)
	GetAuthorSummaries(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]model.AuthorSummary, error)
	GetContact(ctx context.Context, userID uuid.UUID) (name, email string, err error)
}

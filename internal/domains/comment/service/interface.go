package service

import (
	"context"

	"github.com/google/uuid"

	"friendshavestuff-backend/internal/domains/comment/model"
	"friendshavestuff-backend/internal/shared"
)

// Notifier is the slice of the notification dispatcher the thread needs.
type Notifier interface {
	CommentPosted(ctx context.Context, payload shared.CommentPayload)
	ReplyPosted(ctx context.Context, payload shared.ReplyPayload)
}

type ServiceInterface interface {
	CreateComment(ctx context.Context, principal shared.Principal, itemID uuid.UUID, req model.CreateCommentRequest) (*model.CommentResponse, error)
	ListComments(ctx context.Context, itemID uuid.UUID) ([]model.CommentResponse, error)
	DeleteComment(ctx context.Context, principal shared.Principal, id uuid.UUID) (int64, error)
}

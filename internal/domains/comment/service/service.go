package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"friendshavestuff-backend/internal/domains/comment/model"
	"friendshavestuff-backend/internal/domains/comment/repository"
	"friendshavestuff-backend/internal/shared"
	"friendshavestuff-backend/pkg/logger"
)

type commentService struct {
	commentRepo repository.CommentRepository
	notifier    Notifier
}

func NewCommentService(commentRepo repository.CommentRepository, notifier Notifier) ServiceInterface {
	return &commentService{
		commentRepo: commentRepo,
		notifier:    notifier,
	}
}

func (s *commentService) CreateComment(ctx context.Context, principal shared.Principal, itemID uuid.UUID, req model.CreateCommentRequest) (*model.CommentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	item, err := s.commentRepo.GetItemInfo(ctx, itemID)
	if err != nil {
		if errors.Is(err, model.ErrItemNotFound) {
			return nil, model.NewItemNotFoundError()
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	var parent *model.Comment
	if req.ParentID != nil {
		parent, err = s.commentRepo.GetByID(ctx, *req.ParentID)
		if err != nil {
			if errors.Is(err, model.ErrCommentNotFound) {
				return nil, model.NewInvalidParentError("Parent comment does not exist")
			}
			return nil, fmt.Errorf("failed to get parent comment: %w", err)
		}
		if parent.ItemID != itemID {
			return nil, model.NewInvalidParentError("Parent comment belongs to a different item")
		}
		if parent.IsReply() {
			return nil, model.NewInvalidParentError("Replies cannot be nested further")
		}
	}

	comment := &model.Comment{
		ID:        uuid.New(),
		ItemID:    itemID,
		UserID:    principal.ID,
		ParentID:  req.ParentID,
		Text:      req.Text,
		CreatedAt: time.Now(),
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.notify(ctx, principal, item, comment, parent)

	resp := comment.ToResponse(model.AuthorSummary{
		ID:   principal.ID,
		Name: principal.Name,
	})
	return &resp, nil
}

// notify targets exactly one recipient: the parent author for a reply by
// someone else, or the item owner for a top-level comment by a non-owner.
func (s *commentService) notify(ctx context.Context, principal shared.Principal, item *repository.ItemInfo, comment *model.Comment, parent *model.Comment) {
	if parent != nil {
		if parent.UserID == principal.ID {
			return
		}
		_, parentEmail, err := s.commentRepo.GetContact(ctx, parent.UserID)
		if err != nil {
			logger.Error("Failed to resolve parent author contact for notification", err)
			return
		}
		s.notifier.ReplyPosted(ctx, shared.ReplyPayload{
			ParentAuthorEmail: parentEmail,
			ReplierEmail:      principal.Email,
			ReplierName:       principal.Name,
			ItemID:            item.ID.String(),
			ItemName:          item.Name,
			Text:              comment.Text,
		})
		return
	}

	if item.OwnerID == principal.ID {
		return
	}
	_, ownerEmail, err := s.commentRepo.GetContact(ctx, item.OwnerID)
	if err != nil {
		logger.Error("Failed to resolve owner contact for notification", err)
		return
	}
	s.notifier.CommentPosted(ctx, shared.CommentPayload{
		OwnerEmail:     ownerEmail,
		CommenterEmail: principal.Email,
		CommenterName:  principal.Name,
		ItemID:         item.ID.String(),
		ItemName:       item.Name,
		Text:           comment.Text,
	})
}

func (s *commentService) ListComments(ctx context.Context, itemID uuid.UUID) ([]model.CommentResponse, error) {
	if _, err := s.commentRepo.GetItemInfo(ctx, itemID); err != nil {
		if errors.Is(err, model.ErrItemNotFound) {
			return nil, model.NewItemNotFoundError()
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	comments, err := s.commentRepo.ListByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]bool)
	var ids []uuid.UUID
	for _, c := range comments {
		if !seen[c.UserID] {
			seen[c.UserID] = true
			ids = append(ids, c.UserID)
		}
	}

	authors, err := s.commentRepo.GetAuthorSummaries(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		if _, ok := authors[id]; !ok {
			authors[id] = model.AuthorSummary{ID: id, Name: "Former member"}
		}
	}

	return model.BuildThread(comments, authors), nil
}

// DeleteComment removes the author's comment. A top-level comment takes its
// direct replies with it; a reply goes alone. Returns the rows removed.
func (s *commentService) DeleteComment(ctx context.Context, principal shared.Principal, id uuid.UUID) (int64, error) {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrCommentNotFound) {
			return 0, model.NewCommentNotFoundError()
		}
		return 0, fmt.Errorf("failed to get comment: %w", err)
	}

	if comment.UserID != principal.ID {
		return 0, model.NewUnauthorizedError("Only the author can delete a comment")
	}

	deleted, err := s.commentRepo.DeleteWithReplies(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrCommentNotFound) {
			return 0, model.NewCommentNotFoundError()
		}
		return 0, err
	}

	return deleted, nil
}

package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// CreateCommentRequest - post a comment or a reply on an item.
type CreateCommentRequest struct {
	Text     string     `json:"text" binding:"required"`
	ParentID *uuid.UUID `json:"parent_id,omitempty"`
}

func (r CreateCommentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Text,
			validation.Required.Error("text is required"),
			validation.Length(1, 2000),
		),
	)
}

// AuthorSummary embeds the author profile in thread responses.
type AuthorSummary struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
}

// CommentResponse is one thread node. Replies are grouped under their parent
// regardless of global creation order.
type CommentResponse struct {
	ID        uuid.UUID         `json:"id"`
	ItemID    uuid.UUID         `json:"item_id"`
	Author    AuthorSummary     `json:"author"`
	Text      string            `json:"text"`
	ParentID  *uuid.UUID        `json:"parent_id,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	Replies   []CommentResponse `json:"replies,omitempty"`
}

func (c *Comment) ToResponse(author AuthorSummary) CommentResponse {
	return CommentResponse{
		ID:        c.ID,
		ItemID:    c.ItemID,
		Author:    author,
		Text:      c.Text,
		ParentID:  c.ParentID,
		CreatedAt: c.CreatedAt,
	}
}

// BuildThread nests replies under their top-level parents. Input order is
// creation-time ascending and is preserved at both levels. Replies whose
// parent is missing are dropped.
func BuildThread(comments []*Comment, authors map[uuid.UUID]AuthorSummary) []CommentResponse {
	thread := make([]CommentResponse, 0)
	index := make(map[uuid.UUID]int)

	for _, c := range comments {
		if c.IsReply() {
			continue
		}
		thread = append(thread, c.ToResponse(authors[c.UserID]))
		index[c.ID] = len(thread) - 1
	}

	for _, c := range comments {
		if !c.IsReply() {
			continue
		}
		if i, ok := index[*c.ParentID]; ok {
			thread[i].Replies = append(thread[i].Replies, c.ToResponse(authors[c.UserID]))
		}
	}

	return thread
}

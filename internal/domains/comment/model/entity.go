package model

import (
	"time"

	"github.com/google/uuid"
)

// Comment is one message on an item's thread. Nesting is exactly one level:
// a comment either has no parent (top-level) or points at a top-level one.
type Comment struct {
	ID       uuid.UUID  `json:"id"`
	ItemID   uuid.UUID  `json:"item_id"`
	UserID   uuid.UUID  `json:"user_id"`
	ParentID *uuid.UUID `json:"parent_id"`

	Text string `json:"text"`

	CreatedAt time.Time `json:"created_at"`
}

// IsReply reports whether the comment sits under a parent.
func (c *Comment) IsReply() bool {
	return c.ParentID != nil
}

package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildThread(t *testing.T) {
	itemID := uuid.New()
	alice := uuid.New()
	bob := uuid.New()
	authors := map[uuid.UUID]AuthorSummary{
		alice: {ID: alice, Name: "Alice"},
		bob:   {ID: bob, Name: "Bob"},
	}

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	mk := func(user uuid.UUID, parent *uuid.UUID, text string, offset time.Duration) *Comment {
		return &Comment{
			ID:        uuid.New(),
			ItemID:    itemID,
			UserID:    user,
			ParentID:  parent,
			Text:      text,
			CreatedAt: base.Add(offset),
		}
	}

	first := mk(alice, nil, "first", 0)
	second := mk(bob, nil, "second", time.Hour)
	replyToFirst := mk(bob, &first.ID, "reply", 2*time.Hour)
	lateReplyToFirst := mk(alice, &first.ID, "late reply", 3*time.Hour)

	// Creation order interleaves the reply between the top-level comments.
	thread := BuildThread([]*Comment{first, second, replyToFirst, lateReplyToFirst}, authors)

	require.Len(t, thread, 2)
	assert.Equal(t, "first", thread[0].Text)
	assert.Equal(t, "Alice", thread[0].Author.Name)
	assert.Equal(t, "second", thread[1].Text)
	assert.Empty(t, thread[1].Replies)

	require.Len(t, thread[0].Replies, 2)
	assert.Equal(t, "reply", thread[0].Replies[0].Text)
	assert.Equal(t, "late reply", thread[0].Replies[1].Text)

	t.Run("orphan replies are dropped", func(t *testing.T) {
		ghost := uuid.New()
		orphan := mk(bob, &ghost, "orphan", 4*time.Hour)

		thread := BuildThread([]*Comment{first, orphan}, authors)
		require.Len(t, thread, 1)
		assert.Empty(t, thread[0].Replies)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, BuildThread(nil, authors))
	})
}

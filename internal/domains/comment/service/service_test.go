package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"friendshavestuff-backend/internal/domains/comment/model"
	"friendshavestuff-backend/internal/domains/comment/repository"
	"friendshavestuff-backend/internal/shared"
)

type fakeCommentRepo struct {
	comments map[uuid.UUID]*model.Comment
	items    map[uuid.UUID]*repository.ItemInfo
	contacts map[uuid.UUID][2]string // name, email
	authors  map[uuid.UUID]model.AuthorSummary
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{
		comments: make(map[uuid.UUID]*model.Comment),
		items:    make(map[uuid.UUID]*repository.ItemInfo),
		contacts: make(map[uuid.UUID][2]string),
		authors:  make(map[uuid.UUID]model.AuthorSummary),
	}
}

func (f *fakeCommentRepo) Create(ctx context.Context, comment *model.Comment) error {
	f.comments[comment.ID] = comment
	return nil
}

func (f *fakeCommentRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Comment, error) {
	c, ok := f.comments[id]
	if !ok {
		return nil, model.ErrCommentNotFound
	}
	return c, nil
}

func (f *fakeCommentRepo) ListByItem(ctx context.Context, itemID uuid.UUID) ([]*model.Comment, error) {
	var out []*model.Comment
	for _, c := range f.comments {
		if c.ItemID == itemID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCommentRepo) DeleteWithReplies(ctx context.Context, id uuid.UUID) (int64, error) {
	var deleted int64
	for cid, c := range f.comments {
		if cid == id || (c.ParentID != nil && *c.ParentID == id) {
			delete(f.comments, cid)
			deleted++
		}
	}
	if deleted == 0 {
		return 0, model.ErrCommentNotFound
	}
	return deleted, nil
}

func (f *fakeCommentRepo) GetItemInfo(ctx context.Context, itemID uuid.UUID) (*repository.ItemInfo, error) {
	item, ok := f.items[itemID]
	if !ok {
		return nil, model.ErrItemNotFound
	}
	return item, nil
}

func (f *fakeCommentRepo) GetAuthorSummaries(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]model.AuthorSummary, error) {
	out := make(map[uuid.UUID]model.AuthorSummary)
	for _, id := range userIDs {
		if a, ok := f.authors[id]; ok {
			out[id] = a
		}
	}
	return out, nil
}

func (f *fakeCommentRepo) GetContact(ctx context.Context, userID uuid.UUID) (string, string, error) {
	c, ok := f.contacts[userID]
	if !ok {
		return "", "", errors.New("no contact")
	}
	return c[0], c[1], nil
}

type fakeThreadNotifier struct {
	comments []shared.CommentPayload
	replies  []shared.ReplyPayload
}

func (f *fakeThreadNotifier) CommentPosted(ctx context.Context, payload shared.CommentPayload) {
	f.comments = append(f.comments, payload)
}

func (f *fakeThreadNotifier) ReplyPosted(ctx context.Context, payload shared.ReplyPayload) {
	f.replies = append(f.replies, payload)
}

type threadFixture struct {
	repo     *fakeCommentRepo
	notifier *fakeThreadNotifier
	svc      ServiceInterface

	owner     shared.Principal
	commenter shared.Principal
	itemID    uuid.UUID
}

func newThreadFixture(t *testing.T) *threadFixture {
	t.Helper()

	repo := newFakeCommentRepo()
	notifier := &fakeThreadNotifier{}

	f := &threadFixture{
		repo:      repo,
		notifier:  notifier,
		svc:       NewCommentService(repo, notifier),
		owner:     shared.Principal{ID: uuid.New(), Name: "Olive Owner", Email: "olive@example.com"},
		commenter: shared.Principal{ID: uuid.New(), Name: "Cam Commenter", Email: "cam@example.com"},
		itemID:    uuid.New(),
	}

	repo.items[f.itemID] = &repository.ItemInfo{
		ID:      f.itemID,
		OwnerID: f.owner.ID,
		Name:    "Ladder",
	}
	repo.contacts[f.owner.ID] = [2]string{f.owner.Name, f.owner.Email}
	repo.contacts[f.commenter.ID] = [2]string{f.commenter.Name, f.commenter.Email}
	repo.authors[f.owner.ID] = model.AuthorSummary{ID: f.owner.ID, Name: f.owner.Name}
	repo.authors[f.commenter.ID] = model.AuthorSummary{ID: f.commenter.ID, Name: f.commenter.Name}

	return f
}

func (f *threadFixture) addComment(author shared.Principal, parentID *uuid.UUID) *model.Comment {
	c := &model.Comment{
		ID:        uuid.New(),
		ItemID:    f.itemID,
		UserID:    author.ID,
		ParentID:  parentID,
		Text:      "hello",
		CreatedAt: time.Now(),
	}
	f.repo.comments[c.ID] = c
	return c
}

func commentErrCode(t *testing.T, err error) string {
	t.Helper()
	var cmtErr *model.CommentError
	require.ErrorAs(t, err, &cmtErr)
	return cmtErr.Code
}

func TestCreateComment(t *testing.T) {
	ctx := context.Background()

	t.Run("top-level by non-owner notifies the owner", func(t *testing.T) {
		f := newThreadFixture(t)

		resp, err := f.svc.CreateComment(ctx, f.commenter, f.itemID, model.CreateCommentRequest{Text: "Can I borrow this?"})
		require.NoError(t, err)
		assert.Equal(t, f.commenter.ID, resp.Author.ID)

		require.Len(t, f.notifier.comments, 1)
		assert.Equal(t, f.owner.Email, f.notifier.comments[0].OwnerEmail)
		assert.Empty(t, f.notifier.replies)
	})

	t.Run("top-level by owner notifies nobody", func(t *testing.T) {
		f := newThreadFixture(t)

		_, err := f.svc.CreateComment(ctx, f.owner, f.itemID, model.CreateCommentRequest{Text: "Back from repairs"})
		require.NoError(t, err)
		assert.Empty(t, f.notifier.comments)
		assert.Empty(t, f.notifier.replies)
	})

	t.Run("reply notifies the parent author only", func(t *testing.T) {
		f := newThreadFixture(t)
		parent := f.addComment(f.commenter, nil)

		_, err := f.svc.CreateComment(ctx, f.owner, f.itemID, model.CreateCommentRequest{
			Text:     "Sure, any time",
			ParentID: &parent.ID,
		})
		require.NoError(t, err)

		require.Len(t, f.notifier.replies, 1)
		assert.Equal(t, f.commenter.Email, f.notifier.replies[0].ParentAuthorEmail)
		assert.Empty(t, f.notifier.comments)
	})

	t.Run("replying to yourself notifies nobody", func(t *testing.T) {
		f := newThreadFixture(t)
		parent := f.addComment(f.commenter, nil)

		_, err := f.svc.CreateComment(ctx, f.commenter, f.itemID, model.CreateCommentRequest{
			Text:     "Bumping this",
			ParentID: &parent.ID,
		})
		require.NoError(t, err)
		assert.Empty(t, f.notifier.replies)
		assert.Empty(t, f.notifier.comments)
	})

	t.Run("replies cannot nest", func(t *testing.T) {
		f := newThreadFixture(t)
		parent := f.addComment(f.commenter, nil)
		reply := f.addComment(f.owner, &parent.ID)

		_, err := f.svc.CreateComment(ctx, f.commenter, f.itemID, model.CreateCommentRequest{
			Text:     "Nested",
			ParentID: &reply.ID,
		})
		assert.Equal(t, model.ErrCodeInvalidParent, commentErrCode(t, err))
	})

	t.Run("parent must belong to the same item", func(t *testing.T) {
		f := newThreadFixture(t)
		otherItem := uuid.New()
		f.repo.items[otherItem] = &repository.ItemInfo{ID: otherItem, OwnerID: f.owner.ID, Name: "Drill"}
		parent := f.addComment(f.commenter, nil)
		parent.ItemID = otherItem

		_, err := f.svc.CreateComment(ctx, f.owner, f.itemID, model.CreateCommentRequest{
			Text:     "Wrong thread",
			ParentID: &parent.ID,
		})
		assert.Equal(t, model.ErrCodeInvalidParent, commentErrCode(t, err))
	})

	t.Run("missing parent", func(t *testing.T) {
		f := newThreadFixture(t)
		ghost := uuid.New()

		_, err := f.svc.CreateComment(ctx, f.commenter, f.itemID, model.CreateCommentRequest{
			Text:     "Orphan",
			ParentID: &ghost,
		})
		assert.Equal(t, model.ErrCodeInvalidParent, commentErrCode(t, err))
	})

	t.Run("unknown item", func(t *testing.T) {
		f := newThreadFixture(t)

		_, err := f.svc.CreateComment(ctx, f.commenter, uuid.New(), model.CreateCommentRequest{Text: "Hi"})
		assert.Equal(t, model.ErrCodeItemNotFound, commentErrCode(t, err))
	})
}

func TestDeleteComment(t *testing.T) {
	ctx := context.Background()

	t.Run("top-level takes its replies with it", func(t *testing.T) {
		f := newThreadFixture(t)
		parent := f.addComment(f.commenter, nil)
		f.addComment(f.owner, &parent.ID)
		f.addComment(f.commenter, &parent.ID)

		deleted, err := f.svc.DeleteComment(ctx, f.commenter, parent.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(3), deleted)
		assert.Empty(t, f.repo.comments)
	})

	t.Run("reply goes alone", func(t *testing.T) {
		f := newThreadFixture(t)
		parent := f.addComment(f.commenter, nil)
		reply := f.addComment(f.owner, &parent.ID)

		deleted, err := f.svc.DeleteComment(ctx, f.owner, reply.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), deleted)
		assert.Contains(t, f.repo.comments, parent.ID)
	})

	t.Run("only the author can delete", func(t *testing.T) {
		f := newThreadFixture(t)
		parent := f.addComment(f.commenter, nil)

		// Not even the item owner.
		_, err := f.svc.DeleteComment(ctx, f.owner, parent.ID)
		assert.Equal(t, model.ErrCodeUnauthorized, commentErrCode(t, err))
	})

	t.Run("unknown comment", func(t *testing.T) {
		f := newThreadFixture(t)

		_, err := f.svc.DeleteComment(ctx, f.commenter, uuid.New())
		assert.Equal(t, model.ErrCodeCommentNotFound, commentErrCode(t, err))
	})
}

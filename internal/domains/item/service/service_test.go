package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/jpeg"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"friendshavestuff-backend/internal/domains/item/model"
	"friendshavestuff-backend/internal/domains/item/repository"
	"friendshavestuff-backend/internal/infrastructure/storage"
	"friendshavestuff-backend/internal/shared"
)

type fakeItemRepo struct {
	items  map[uuid.UUID]*model.Item
	owners map[uuid.UUID]model.OwnerSummary

	getCalls int
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{
		items:  make(map[uuid.UUID]*model.Item),
		owners: make(map[uuid.UUID]model.OwnerSummary),
	}
}

func (f *fakeItemRepo) Create(ctx context.Context, item *model.Item) error {
	f.items[item.ID] = item
	return nil
}

func (f *fakeItemRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Item, error) {
	f.getCalls++
	item, ok := f.items[id]
	if !ok {
		return nil, model.ErrItemNotFound
	}
	clone := *item
	return &clone, nil
}

func (f *fakeItemRepo) Update(ctx context.Context, item *model.Item) error {
	f.items[item.ID] = item
	return nil
}

func (f *fakeItemRepo) List(ctx context.Context, filters repository.ListFilters, page, limit int) ([]*model.Item, int, error) {
	var out []*model.Item
	for _, item := range f.items {
		if filters.Category != "" && item.Category != filters.Category {
			continue
		}
		out = append(out, item)
	}
	return out, len(out), nil
}

func (f *fakeItemRepo) SetBlackouts(ctx context.Context, id uuid.UUID, dates []time.Time) error {
	item, ok := f.items[id]
	if !ok {
		return model.ErrItemNotFound
	}
	item.BlackoutDates = dates
	return nil
}

func (f *fakeItemRepo) AppendImages(ctx context.Context, id uuid.UUID, urls []string) error {
	item, ok := f.items[id]
	if !ok {
		return model.ErrItemNotFound
	}
	item.ImageURLs = append(item.ImageURLs, urls...)
	return nil
}

func (f *fakeItemRepo) DeclineActiveRequestsTx(ctx context.Context, tx pgx.Tx, itemID uuid.UUID) (int64, error) {
	return 0, nil
}

func (f *fakeItemRepo) DeleteCommentsTx(ctx context.Context, tx pgx.Tx, itemID uuid.UUID) error {
	return nil
}

func (f *fakeItemRepo) DeleteTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	delete(f.items, id)
	return nil
}

func (f *fakeItemRepo) GetOwnerSummary(ctx context.Context, ownerID uuid.UUID) (model.OwnerSummary, error) {
	if o, ok := f.owners[ownerID]; ok {
		return o, nil
	}
	return model.OwnerSummary{ID: ownerID, Name: "Former member"}, nil
}

func (f *fakeItemRepo) GetOwnerSummaries(ctx context.Context, ownerIDs []uuid.UUID) (map[uuid.UUID]model.OwnerSummary, error) {
	out := make(map[uuid.UUID]model.OwnerSummary)
	for _, id := range ownerIDs {
		if o, ok := f.owners[id]; ok {
			out[id] = o
		}
	}
	return out, nil
}

// memoryCache is a map-backed Cache for tests.
type memoryCache struct {
	entries map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]byte)}
}

func (m *memoryCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, ok := m.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, dest)
}

func (m *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.entries[key] = data
	return nil
}

func (m *memoryCache) Delete(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.entries, k)
	}
	return nil
}

func (m *memoryCache) DeletePattern(ctx context.Context, pattern string) error {
	prefix := strings.TrimSuffix(pattern, "*")
	for k := range m.entries {
		if strings.HasPrefix(k, prefix) {
			delete(m.entries, k)
		}
	}
	return nil
}

func (m *memoryCache) Ping(ctx context.Context) error { return nil }

type fakeStore struct {
	uploads []string
}

func (f *fakeStore) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	f.uploads = append(f.uploads, key)
	return "http://storage.local/" + key, nil
}

type fakeTaskQueue struct {
	deletes []shared.DeleteItemImagesPayload
}

func (f *fakeTaskQueue) DeleteItemImages(ctx context.Context, payload shared.DeleteItemImagesPayload) {
	f.deletes = append(f.deletes, payload)
}

type itemFixture struct {
	repo  *fakeItemRepo
	cache *memoryCache
	store *fakeStore
	tasks *fakeTaskQueue
	svc   ServiceInterface

	owner    shared.Principal
	stranger shared.Principal
	item     *model.Item
}

func newItemFixture(t *testing.T) *itemFixture {
	t.Helper()

	f := &itemFixture{
		repo:     newFakeItemRepo(),
		cache:    newMemoryCache(),
		store:    &fakeStore{},
		tasks:    &fakeTaskQueue{},
		owner:    shared.Principal{ID: uuid.New(), Name: "Olive Owner"},
		stranger: shared.Principal{ID: uuid.New(), Name: "Sam Stranger"},
	}
	f.svc = NewItemService(f.repo, nil, f.cache, f.store, storage.NewImageProcessor(), f.tasks)

	f.item = &model.Item{
		ID:        uuid.New(),
		OwnerID:   f.owner.ID,
		Name:      "Pressure washer",
		Category:  "Tools",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	f.repo.items[f.item.ID] = f.item
	f.repo.owners[f.owner.ID] = model.OwnerSummary{ID: f.owner.ID, Name: f.owner.Name}

	return f
}

func itemErrCode(t *testing.T, err error) string {
	t.Helper()
	var itemErr *model.ItemError
	require.ErrorAs(t, err, &itemErr)
	return itemErr.Code
}

func testJPEG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func TestGetItem(t *testing.T) {
	ctx := context.Background()

	t.Run("second read comes from cache", func(t *testing.T) {
		f := newItemFixture(t)

		first, err := f.svc.GetItem(ctx, f.item.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, f.repo.getCalls)
		assert.Equal(t, f.owner.Name, first.Owner.Name)

		second, err := f.svc.GetItem(ctx, f.item.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, f.repo.getCalls)
		assert.Equal(t, first.ID, second.ID)
	})

	t.Run("missing item", func(t *testing.T) {
		f := newItemFixture(t)

		_, err := f.svc.GetItem(ctx, uuid.New())
		assert.Equal(t, model.ErrCodeItemNotFound, itemErrCode(t, err))
	})

	t.Run("no images means placeholder cover", func(t *testing.T) {
		f := newItemFixture(t)

		resp, err := f.svc.GetItem(ctx, f.item.ID)
		require.NoError(t, err)
		assert.Equal(t, model.PlaceholderImageURL, resp.CoverURL)
		assert.Empty(t, resp.ImageURLs)
	})
}

func TestUpdateItem(t *testing.T) {
	ctx := context.Background()
	req := model.UpdateItemRequest{Name: "Washer 2000", Description: "Cleans decks", Category: "Tools"}

	t.Run("owner updates and cache is invalidated", func(t *testing.T) {
		f := newItemFixture(t)

		_, err := f.svc.GetItem(ctx, f.item.ID)
		require.NoError(t, err)
		require.NotEmpty(t, f.cache.entries)

		resp, err := f.svc.UpdateItem(ctx, f.owner, f.item.ID, req)
		require.NoError(t, err)
		assert.Equal(t, "Washer 2000", resp.Name)
		assert.NotContains(t, f.cache.entries, fmt.Sprintf("item:%s", f.item.ID))
	})

	t.Run("non-owner rejected", func(t *testing.T) {
		f := newItemFixture(t)

		_, err := f.svc.UpdateItem(ctx, f.stranger, f.item.ID, req)
		assert.Equal(t, model.ErrCodeUnauthorized, itemErrCode(t, err))
	})

	t.Run("admin may edit any listing", func(t *testing.T) {
		f := newItemFixture(t)
		admin := shared.Principal{ID: uuid.New(), Admin: true}

		_, err := f.svc.UpdateItem(ctx, admin, f.item.ID, req)
		assert.NoError(t, err)
	})
}

func TestSetBlackouts(t *testing.T) {
	f := newItemFixture(t)

	resp, err := f.svc.SetBlackouts(context.Background(), f.owner, f.item.ID, model.SetBlackoutsRequest{
		Dates: []string{"2026-10-05", "2026-10-01", "2026-10-05"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-10-01", "2026-10-05"}, resp.BlackoutDates)
}

func TestUploadImages(t *testing.T) {
	ctx := context.Background()

	t.Run("stores three variants per image", func(t *testing.T) {
		f := newItemFixture(t)

		resp, err := f.svc.UploadImages(ctx, f.owner, f.item.ID, [][]byte{testJPEG(t)})
		require.NoError(t, err)

		assert.Len(t, f.store.uploads, 3)
		require.Len(t, resp.ImageURLs, 1)
		assert.Contains(t, resp.ImageURLs[0], "_large.jpg")
		assert.Equal(t, resp.ImageURLs[0], resp.CoverURL)
	})

	t.Run("rejects junk bytes", func(t *testing.T) {
		f := newItemFixture(t)

		_, err := f.svc.UploadImages(ctx, f.owner, f.item.ID, [][]byte{[]byte("not an image")})
		assert.Equal(t, model.ErrCodeInvalidImage, itemErrCode(t, err))
	})

	t.Run("enforces the gallery cap", func(t *testing.T) {
		f := newItemFixture(t)
		for i := 0; i < model.MaxImagesPerItem; i++ {
			f.item.ImageURLs = append(f.item.ImageURLs, fmt.Sprintf("http://storage.local/%d.jpg", i))
		}

		_, err := f.svc.UploadImages(ctx, f.owner, f.item.ID, [][]byte{testJPEG(t)})
		assert.Equal(t, model.ErrCodeTooManyImages, itemErrCode(t, err))
		assert.Empty(t, f.store.uploads)
	})

	t.Run("only the owner uploads", func(t *testing.T) {
		f := newItemFixture(t)

		_, err := f.svc.UploadImages(ctx, f.stranger, f.item.ID, [][]byte{testJPEG(t)})
		assert.Equal(t, model.ErrCodeUnauthorized, itemErrCode(t, err))
	})
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"friendshavestuff-backend/internal/domains/item/model"
	"friendshavestuff-backend/internal/domains/item/repository"
	"friendshavestuff-backend/internal/infrastructure/storage"
	"friendshavestuff-backend/internal/shared"
	pkgcache "friendshavestuff-backend/pkg/cache"
	"friendshavestuff-backend/pkg/database"
	"friendshavestuff-backend/pkg/logger"
)

const (
	itemCacheTTL = 5 * time.Minute
	listCacheTTL = time.Minute
)

type itemService struct {
	itemRepo  repository.ItemRepository
	pool      *pgxpool.Pool
	cache     pkgcache.Cache
	store     ImageStore
	processor *storage.ImageProcessor
	tasks     TaskQueue
}

func NewItemService(
	itemRepo repository.ItemRepository,
	pool *pgxpool.Pool,
	cache pkgcache.Cache,
	store ImageStore,
	processor *storage.ImageProcessor,
	tasks TaskQueue,
) ServiceInterface {
	return &itemService{
		itemRepo:  itemRepo,
		pool:      pool,
		cache:     cache,
		store:     store,
		processor: processor,
		tasks:     tasks,
	}
}

func (s *itemService) CreateItem(ctx context.Context, principal shared.Principal, req model.CreateItemRequest) (*model.ItemResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	item := &model.Item{
		ID:            uuid.New(),
		OwnerID:       principal.ID,
		Name:          req.Name,
		Description:   req.Description,
		Category:      req.Category,
		ImageURLs:     []string{},
		BlackoutDates: []time.Time{},
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}

	s.invalidateListCache(ctx)

	resp := item.ToResponse(model.OwnerSummary{
		ID:   principal.ID,
		Name: principal.Name,
	})
	return &resp, nil
}

func (s *itemService) GetItem(ctx context.Context, id uuid.UUID) (*model.ItemResponse, error) {
	cacheKey := fmt.Sprintf("item:%s", id)

	var cached model.ItemResponse
	if hit, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
		return &cached, nil
	}

	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrItemNotFound) {
			return nil, model.NewItemNotFoundError()
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	owner, err := s.itemRepo.GetOwnerSummary(ctx, item.OwnerID)
	if err != nil {
		return nil, err
	}

	resp := item.ToResponse(owner)

	if err := s.cache.Set(ctx, cacheKey, resp, itemCacheTTL); err != nil {
		logger.Error("Failed to cache item", err)
	}

	return &resp, nil
}

func (s *itemService) ListItems(ctx context.Context, req model.ListItemsRequest) ([]model.ItemResponse, int, error) {
	req.SetDefaults()

	owner := ""
	if req.OwnerID != nil {
		owner = req.OwnerID.String()
	}
	cacheKey := fmt.Sprintf("items:list:%s:%s:%s:%d:%d",
		req.Category, owner, req.Search, req.Page, req.Limit)

	type cachedList struct {
		Items []model.ItemResponse `json:"items"`
		Total int                  `json:"total"`
	}

	var cached cachedList
	if hit, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
		return cached.Items, cached.Total, nil
	}

	items, total, err := s.itemRepo.List(ctx, repository.ListFilters{
		Category: req.Category,
		OwnerID:  req.OwnerID,
		Search:   req.Search,
	}, req.Page, req.Limit)
	if err != nil {
		return nil, 0, err
	}

	owners, err := s.ownerSummariesFor(ctx, items)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]model.ItemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, item.ToResponse(owners[item.OwnerID]))
	}

	if err := s.cache.Set(ctx, cacheKey, cachedList{Items: responses, Total: total}, listCacheTTL); err != nil {
		logger.Error("Failed to cache item list", err)
	}

	return responses, total, nil
}

func (s *itemService) UpdateItem(ctx context.Context, principal shared.Principal, id uuid.UUID, req model.UpdateItemRequest) (*model.ItemResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	item, err := s.getOwned(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	item.Name = req.Name
	item.Description = req.Description
	item.Category = req.Category

	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}

	s.invalidateItemCache(ctx, id)

	return s.buildResponse(ctx, item)
}

func (s *itemService) SetBlackouts(ctx context.Context, principal shared.Principal, id uuid.UUID, req model.SetBlackoutsRequest) (*model.ItemResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	dates, err := req.ParseDates()
	if err != nil {
		return nil, err
	}

	item, err := s.getOwned(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	normalized := model.NormalizeBlackouts(dates)
	if err := s.itemRepo.SetBlackouts(ctx, id, normalized); err != nil {
		return nil, err
	}
	item.BlackoutDates = normalized

	s.invalidateItemCache(ctx, id)

	return s.buildResponse(ctx, item)
}

func (s *itemService) UploadImages(ctx context.Context, principal shared.Principal, id uuid.UUID, images [][]byte) (*model.ItemResponse, error) {
	item, err := s.getOwned(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	if len(item.ImageURLs)+len(images) > model.MaxImagesPerItem {
		return nil, model.NewTooManyImagesError()
	}

	var urls []string
	for _, data := range images {
		if err := s.processor.ValidateImage(data); err != nil {
			return nil, model.NewInvalidImageError(err)
		}

		variants, err := s.processor.ProcessImage(data)
		if err != nil {
			return nil, model.NewInvalidImageError(err)
		}

		imageID := uuid.New()
		var largeURL string
		for variant, body := range variants {
			key := fmt.Sprintf("items/%s/%s_%s.jpg", item.ID, imageID, variant)
			url, err := s.store.Upload(ctx, key, body, "image/jpeg")
			if err != nil {
				return nil, fmt.Errorf("failed to store image: %w", err)
			}
			if variant == "large" {
				largeURL = url
			}
		}
		urls = append(urls, largeURL)
	}

	if err := s.itemRepo.AppendImages(ctx, id, urls); err != nil {
		return nil, err
	}
	item.ImageURLs = append(item.ImageURLs, urls...)

	s.invalidateItemCache(ctx, id)

	return s.buildResponse(ctx, item)
}

// DeleteItem removes a listing. Active requests are force-declined in the
// same transaction, the comment thread goes with the item, and stored images
// are cleaned up by a background task.
func (s *itemService) DeleteItem(ctx context.Context, principal shared.Principal, id uuid.UUID) error {
	item, err := s.getOwned(ctx, principal, id)
	if err != nil {
		return err
	}

	err = database.WithTransaction(ctx, s.pool, func(tx pgx.Tx) error {
		declined, err := s.itemRepo.DeclineActiveRequestsTx(ctx, tx, item.ID)
		if err != nil {
			return err
		}
		if declined > 0 {
			logger.Info("Declined active requests for deleted item", map[string]interface{}{
				"item_id":  item.ID.String(),
				"declined": declined,
			})
		}

		if err := s.itemRepo.DeleteCommentsTx(ctx, tx, item.ID); err != nil {
			return err
		}

		return s.itemRepo.DeleteTx(ctx, tx, item.ID)
	})
	if err != nil {
		return err
	}

	s.tasks.DeleteItemImages(ctx, shared.DeleteItemImagesPayload{ItemID: item.ID.String()})
	s.invalidateItemCache(ctx, id)

	return nil
}

// getOwned loads the item and checks the caller may modify it.
func (s *itemService) getOwned(ctx context.Context, principal shared.Principal, id uuid.UUID) (*model.Item, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrItemNotFound) {
			return nil, model.NewItemNotFoundError()
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	if item.OwnerID != principal.ID && !principal.Admin {
		return nil, model.NewUnauthorizedError("Only the owner can modify this item")
	}

	return item, nil
}

func (s *itemService) buildResponse(ctx context.Context, item *model.Item) (*model.ItemResponse, error) {
	owner, err := s.itemRepo.GetOwnerSummary(ctx, item.OwnerID)
	if err != nil {
		return nil, err
	}

	resp := item.ToResponse(owner)
	return &resp, nil
}

func (s *itemService) ownerSummariesFor(ctx context.Context, items []*model.Item) (map[uuid.UUID]model.OwnerSummary, error) {
	seen := make(map[uuid.UUID]bool)
	var ids []uuid.UUID
	for _, item := range items {
		if !seen[item.OwnerID] {
			seen[item.OwnerID] = true
			ids = append(ids, item.OwnerID)
		}
	}

	owners, err := s.itemRepo.GetOwnerSummaries(ctx, ids)
	if err != nil {
		return nil, err
	}

	for _, id := range ids {
		if _, ok := owners[id]; !ok {
			owners[id] = model.OwnerSummary{ID: id, Name: "Former member"}
		}
	}

	return owners, nil
}

func (s *itemService) invalidateItemCache(ctx context.Context, id uuid.UUID) {
	if err := s.cache.Delete(ctx, fmt.Sprintf("item:%s", id)); err != nil {
		logger.Error("Failed to invalidate item cache", err)
	}
	s.invalidateListCache(ctx)
}

func (s *itemService) invalidateListCache(ctx context.Context) {
	if err := s.cache.DeletePattern(ctx, "items:list:*"); err != nil {
		logger.Error("Failed to invalidate item list cache", err)
	}
}

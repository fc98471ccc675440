package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"friendshavestuff-backend/internal/shared"
	"friendshavestuff-backend/pkg/logger"
)

// PrefixRemover deletes every stored object under a key prefix.
type PrefixRemover interface {
	DeleteByPrefix(ctx context.Context, prefix string) error
}

// DeleteImagesHandler removes an item's stored images after the item row is
// gone. Runs on the maintenance queue so a storage outage only delays cleanup.
type DeleteImagesHandler struct {
	storage PrefixRemover
}

func NewDeleteImagesHandler(storage PrefixRemover) *DeleteImagesHandler {
	return &DeleteImagesHandler{storage: storage}
}

func (h *DeleteImagesHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.DeleteItemImagesPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Error("Failed to unmarshal DeleteItemImages payload", err)
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	prefix := fmt.Sprintf("items/%s/", payload.ItemID)
	if err := h.storage.DeleteByPrefix(ctx, prefix); err != nil {
		logger.Error("Failed to delete item images", err)
		return fmt.Errorf("delete item images: %w", err)
	}

	logger.Info("Deleted stored images for item", map[string]interface{}{
		"itemId": payload.ItemID,
	})
	return nil
}

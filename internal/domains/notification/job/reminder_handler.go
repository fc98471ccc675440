package job

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"friendshavestuff-backend/internal/domains/request/repository"
	"friendshavestuff-backend/internal/infrastructure/email"
	"friendshavestuff-backend/internal/shared"
	"friendshavestuff-backend/pkg/logger"
)

const defaultReminderAfterHours = 72

// PendingReminderHandler sweeps borrow requests that sat in pending longer
// than the configured window and nudges the owner by email.
type PendingReminderHandler struct {
	requestRepo  repository.RequestRepository
	emailService email.EmailService
}

func NewPendingReminderHandler(requestRepo repository.RequestRepository, emailService email.EmailService) *PendingReminderHandler {
	return &PendingReminderHandler{
		requestRepo:  requestRepo,
		emailService: emailService,
	}
}

func (h *PendingReminderHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.PendingReminderSweepPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Error("Failed to unmarshal PendingReminderSweep payload", err)
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	hours := payload.OlderThanHours
	if hours <= 0 {
		hours = defaultReminderAfterHours
	}
	cutoff := time.Now().Add(-time.Duration(hours) * time.Hour)

	stale, err := h.requestRepo.ListPendingOlderThan(ctx, cutoff)
	if err != nil {
		logger.Error("Failed to list stale pending requests", err)
		return fmt.Errorf("list stale pending requests: %w", err)
	}

	logger.Info("Pending reminder sweep started", map[string]interface{}{
		"cutoff": cutoff,
		"count":  len(stale),
	})

	sent := 0
	for _, req := range stale {
		item, err := h.requestRepo.GetItemSnapshot(ctx, req.ItemID)
		if err != nil {
			logger.Error("Failed to load item for pending reminder", err)
			continue
		}
		ownerName, ownerEmail, err := h.requestRepo.GetContact(ctx, req.OwnerID)
		if err != nil {
			logger.Error("Failed to resolve owner contact for pending reminder", err)
			continue
		}
		requesterName, _, err := h.requestRepo.GetContact(ctx, req.RequesterID)
		if err != nil {
			requesterName = "A friend"
		}

		msg := email.Message{
			To:      ownerEmail,
			Subject: fmt.Sprintf("Reminder: %s is still waiting on your %s", requesterName, item.Name),
			Body: fmt.Sprintf(
				"Hi %s,\n\n%s asked to borrow your item \"%s\" on %s and the request is still pending.\n\nOpen the app to approve or decline it.\n",
				ownerName, requesterName, item.Name, req.CreatedAt.Format(dateFormat),
			),
		}

		if err := h.emailService.Send(ctx, msg); err != nil {
			logger.Error("Failed to send pending reminder email", err)
			continue
		}
		sent++
	}

	logger.Info("Pending reminder sweep finished", map[string]interface{}{
		"stale": len(stale),
		"sent":  sent,
	})
	return nil
}

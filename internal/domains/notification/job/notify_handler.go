package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"friendshavestuff-backend/internal/infrastructure/email"
	"friendshavestuff-backend/internal/shared"
	"friendshavestuff-backend/pkg/logger"
)

const dateFormat = "Jan 2, 2006"

// ============================================
// Request Created Handler
// ============================================

type RequestCreatedHandler struct {
	emailService email.EmailService
}

func NewRequestCreatedHandler(emailService email.EmailService) *RequestCreatedHandler {
	return &RequestCreatedHandler{emailService: emailService}
}

func (h *RequestCreatedHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.RequestCreatedPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Error("Failed to unmarshal RequestCreated payload", err)
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	dates := payload.StartDate.Format(dateFormat)
	if !payload.EndDate.Equal(payload.StartDate) {
		dates = fmt.Sprintf("%s to %s", dates, payload.EndDate.Format(dateFormat))
	}

	msg := email.Message{
		To:      payload.OwnerEmail,
		Subject: fmt.Sprintf("%s wants to borrow your %s", payload.RequesterName, payload.ItemName),
		Body: fmt.Sprintf(
			"Hi,\n\n%s (%s) asked to borrow your item \"%s\" for %s.\n\nOpen the app to approve or decline the request.\n",
			payload.RequesterName, payload.RequesterEmail, payload.ItemName, dates,
		),
	}

	if err := h.emailService.Send(ctx, msg); err != nil {
		logger.Error("Failed to send request created email", err)
		return fmt.Errorf("send request created email: %w", err)
	}

	logger.Info("Request created email sent", map[string]interface{}{
		"to":     payload.OwnerEmail,
		"itemId": payload.ItemID,
	})
	return nil
}

// ============================================
// Status Changed Handler
// ============================================

type StatusChangedHandler struct {
	emailService email.EmailService
}

func NewStatusChangedHandler(emailService email.EmailService) *StatusChangedHandler {
	return &StatusChangedHandler{emailService: emailService}
}

func (h *StatusChangedHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.StatusChangedPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Error("Failed to unmarshal StatusChanged payload", err)
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	var subject, lead string
	switch payload.Status {
	case "approved":
		subject = fmt.Sprintf("Your request for %s was approved", payload.ItemName)
		lead = fmt.Sprintf("%s approved your request to borrow \"%s\".", payload.OwnerName, payload.ItemName)
	case "declined":
		subject = fmt.Sprintf("Your request for %s was declined", payload.ItemName)
		lead = fmt.Sprintf("%s declined your request to borrow \"%s\".", payload.OwnerName, payload.ItemName)
	case "returned":
		subject = fmt.Sprintf("%s was marked as returned", payload.ItemName)
		lead = fmt.Sprintf("%s marked \"%s\" as returned. Thanks for bringing it back.", payload.OwnerName, payload.ItemName)
	default:
		subject = fmt.Sprintf("Your request for %s was updated", payload.ItemName)
		lead = fmt.Sprintf("Your request to borrow \"%s\" is now %s.", payload.ItemName, payload.Status)
	}

	body := "Hi,\n\n" + lead + "\n"
	if payload.Message != "" {
		body += fmt.Sprintf("\nThey added a note:\n%s\n", payload.Message)
	}

	msg := email.Message{
		To:      payload.RequesterEmail,
		Subject: subject,
		Body:    body,
	}

	if err := h.emailService.Send(ctx, msg); err != nil {
		logger.Error("Failed to send status changed email", err)
		return fmt.Errorf("send status changed email: %w", err)
	}

	logger.Info("Status changed email sent", map[string]interface{}{
		"to":     payload.RequesterEmail,
		"itemId": payload.ItemID,
		"status": payload.Status,
	})
	return nil
}

// ============================================
// Comment Handler
// ============================================

type CommentHandler struct {
	emailService email.EmailService
}

func NewCommentHandler(emailService email.EmailService) *CommentHandler {
	return &CommentHandler{emailService: emailService}
}

func (h *CommentHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.CommentPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Error("Failed to unmarshal Comment payload", err)
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	msg := email.Message{
		To:      payload.OwnerEmail,
		Subject: fmt.Sprintf("%s commented on your %s", payload.CommenterName, payload.ItemName),
		Body: fmt.Sprintf(
			"Hi,\n\n%s commented on your item \"%s\":\n\n%s\n",
			payload.CommenterName, payload.ItemName, payload.Text,
		),
	}

	if err := h.emailService.Send(ctx, msg); err != nil {
		logger.Error("Failed to send comment email", err)
		return fmt.Errorf("send comment email: %w", err)
	}

	logger.Info("Comment email sent", map[string]interface{}{
		"to":     payload.OwnerEmail,
		"itemId": payload.ItemID,
	})
	return nil
}

// ============================================
// Reply Handler
// ============================================

type ReplyHandler struct {
	emailService email.EmailService
}

func NewReplyHandler(emailService email.EmailService) *ReplyHandler {
	return &ReplyHandler{emailService: emailService}
}

func (h *ReplyHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.ReplyPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Error("Failed to unmarshal Reply payload", err)
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	msg := email.Message{
		To:      payload.ParentAuthorEmail,
		Subject: fmt.Sprintf("%s replied to your comment on %s", payload.ReplierName, payload.ItemName),
		Body: fmt.Sprintf(
			"Hi,\n\n%s replied to your comment on \"%s\":\n\n%s\n",
			payload.ReplierName, payload.ItemName, payload.Text,
		),
	}

	if err := h.emailService.Send(ctx, msg); err != nil {
		logger.Error("Failed to send reply email", err)
		return fmt.Errorf("send reply email: %w", err)
	}

	logger.Info("Reply email sent", map[string]interface{}{
		"to":     payload.ParentAuthorEmail,
		"itemId": payload.ItemID,
	})
	return nil
}

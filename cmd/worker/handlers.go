package main

import (
	"github.com/hibiken/asynq"

	itemJob "friendshavestuff-backend/internal/domains/item/job"
	notifyJob "friendshavestuff-backend/internal/domains/notification/job"
	"friendshavestuff-backend/internal/shared"
	"friendshavestuff-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	// Notification handlers
	requestCreated *notifyJob.RequestCreatedHandler
	statusChanged  *notifyJob.StatusChangedHandler
	comment        *notifyJob.CommentHandler
	reply          *notifyJob.ReplyHandler

	// Maintenance handlers
	pendingReminder  *notifyJob.PendingReminderHandler
	deleteItemImages *itemJob.DeleteImagesHandler
}

// initializeHandlers creates all job handlers with their dependencies
func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		requestCreated: notifyJob.NewRequestCreatedHandler(c.EmailService),
		statusChanged:  notifyJob.NewStatusChangedHandler(c.EmailService),
		comment:        notifyJob.NewCommentHandler(c.EmailService),
		reply:          notifyJob.NewReplyHandler(c.EmailService),

		pendingReminder:  notifyJob.NewPendingReminderHandler(c.RequestRepo, c.EmailService),
		deleteItemImages: itemJob.NewDeleteImagesHandler(c.Storage),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	// Notification tasks
	mux.HandleFunc(shared.TypeNotifyRequestCreated, h.requestCreated.ProcessTask)
	mux.HandleFunc(shared.TypeNotifyStatusChanged, h.statusChanged.ProcessTask)
	mux.HandleFunc(shared.TypeNotifyComment, h.comment.ProcessTask)
	mux.HandleFunc(shared.TypeNotifyReply, h.reply.ProcessTask)

	// Maintenance tasks
	mux.HandleFunc(shared.TypePendingReminderSweep, h.pendingReminder.ProcessTask)
	mux.HandleFunc(shared.TypeDeleteItemImages, h.deleteItemImages.ProcessTask)
}

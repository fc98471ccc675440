package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"friendshavestuff-backend/internal/shared"
	"friendshavestuff-backend/pkg/logger"
)

// Dispatcher enqueues notification and maintenance tasks for the worker.
// Every method is fire and forget: a failed enqueue is logged and dropped
// so the mutation that triggered it is never rolled back.
type Dispatcher struct {
	asynqClient *asynq.Client
}

func NewDispatcher(asynqClient *asynq.Client) *Dispatcher {
	return &Dispatcher{asynqClient: asynqClient}
}

func (d *Dispatcher) enqueue(taskType string, payload interface{}, queue string, opts ...asynq.Option) {
	data, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal task payload: "+taskType, err)
		return
	}

	task := asynq.NewTask(taskType, data)
	opts = append([]asynq.Option{asynq.Queue(queue), asynq.MaxRetry(3), asynq.Timeout(1 * time.Minute)}, opts...)

	info, err := d.asynqClient.Enqueue(task, opts...)
	if err != nil {
		logger.Error("Failed to enqueue task: "+taskType, err)
		return
	}

	logger.Info("Enqueued task", map[string]interface{}{
		"type":  taskType,
		"queue": info.Queue,
		"id":    info.ID,
	})
}

func (d *Dispatcher) RequestCreated(ctx context.Context, payload shared.RequestCreatedPayload) {
	d.enqueue(shared.TypeNotifyRequestCreated, payload, shared.QueueNotification)
}

func (d *Dispatcher) StatusChanged(ctx context.Context, payload shared.StatusChangedPayload) {
	d.enqueue(shared.TypeNotifyStatusChanged, payload, shared.QueueNotification)
}

func (d *Dispatcher) CommentPosted(ctx context.Context, payload shared.CommentPayload) {
	d.enqueue(shared.TypeNotifyComment, payload, shared.QueueNotification)
}

func (d *Dispatcher) ReplyPosted(ctx context.Context, payload shared.ReplyPayload) {
	d.enqueue(shared.TypeNotifyReply, payload, shared.QueueNotification)
}

func (d *Dispatcher) DeleteItemImages(ctx context.Context, payload shared.DeleteItemImagesPayload) {
	d.enqueue(shared.TypeDeleteItemImages, payload, shared.QueueMaintenance, asynq.MaxRetry(5))
}

package shared

import "time"

// Asynq task types and queues.
const (
	TypeNotifyRequestCreated = "notify:request_created"
	TypeNotifyStatusChanged  = "notify:status_changed"
	TypeNotifyComment        = "notify:comment"
	TypeNotifyReply          = "notify:reply"
	TypePendingReminderSweep = "notify:pending_reminder_sweep"
	TypeDeleteItemImages     = "item:delete_images"

	QueueNotification = "default"
	QueueMaintenance  = "low"
)

// RequestCreatedPayload notifies an owner about a new borrow request.
type RequestCreatedPayload struct {
	OwnerEmail     string    `json:"ownerEmail"`
	RequesterEmail string    `json:"requesterEmail"`
	RequesterName  string    `json:"requesterName"`
	ItemID         string    `json:"itemId"`
	ItemName       string    `json:"itemName"`
	StartDate      time.Time `json:"startDate"`
	EndDate        time.Time `json:"endDate"`
}

// StatusChangedPayload notifies a requester about an approve/decline/return.
type StatusChangedPayload struct {
	RequesterEmail string    `json:"requesterEmail"`
	OwnerEmail     string    `json:"ownerEmail"`
	OwnerName      string    `json:"ownerName"`
	ItemID         string    `json:"itemId"`
	ItemName       string    `json:"itemName"`
	Status         string    `json:"status"`
	Message        string    `json:"message,omitempty"`
	StartDate      time.Time `json:"startDate"`
	EndDate        time.Time `json:"endDate"`
}

// CommentPayload notifies an item owner about a top-level comment.
type CommentPayload struct {
	OwnerEmail     string `json:"ownerEmail"`
	CommenterEmail string `json:"commenterEmail"`
	CommenterName  string `json:"commenterName"`
	ItemID         string `json:"itemId"`
	ItemName       string `json:"itemName"`
	Text           string `json:"text"`
}

// ReplyPayload notifies a parent comment's author about a reply.
type ReplyPayload struct {
	ParentAuthorEmail string `json:"parentAuthorEmail"`
	ReplierEmail      string `json:"replierEmail"`
	ReplierName       string `json:"replierName"`
	ItemID            string `json:"itemId"`
	ItemName          string `json:"itemName"`
	Text              string `json:"text"`
}

// PendingReminderSweepPayload triggers the stale-pending-request sweep.
type PendingReminderSweepPayload struct {
	OlderThanHours int `json:"olderThanHours"`
}

// DeleteItemImagesPayload removes stored images after an item is deleted.
type DeleteItemImagesPayload struct {
	ItemID string `json:"itemId"`
}

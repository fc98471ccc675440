package model

import (
	"time"

	"github.com/google/uuid"

	"friendshavestuff-backend/internal/domains/request/availability"
)

// BorrowRequest is one row in the borrow ledger. The owner is denormalized
// at creation so status transitions can be authorized without joining items.
type BorrowRequest struct {
	ID          uuid.UUID `json:"id"`
	ItemID      uuid.UUID `json:"item_id"`
	RequesterID uuid.UUID `json:"requester_id"`
	OwnerID     uuid.UUID `json:"owner_id"`

	Status    Status     `json:"status"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`

	Message        *string `json:"message"`
	DeclineMessage *string `json:"decline_message"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EffectiveEnd is the last day the request covers.
func (r *BorrowRequest) EffectiveEnd() time.Time {
	return availability.NormalizeEnd(r.StartDate, r.EndDate)
}

// InHistory reports whether the request belongs to an item's borrowing
// history: returned, or approved with its last day already past.
func (r *BorrowRequest) InHistory(now time.Time) bool {
	switch r.Status {
	case StatusReturned:
		return true
	case StatusApproved:
		return r.EffectiveEnd().Before(availability.Day(now))
	}
	return false
}

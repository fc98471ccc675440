package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"friendshavestuff-backend/internal/domains/request/model"
)

// ItemSnapshot is what the ledger needs to know about an item when creating
// a request: who owns it and which days are blacked out.
type ItemSnapshot struct {
	ID           uuid.UUID
	OwnerID      uuid.UUID
	Name         string
	BlackoutDays []time.Time
}

type RequestRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.BorrowRequest, error)
	ListByItem(ctx context.Context, itemID uuid.UUID) ([]*model.BorrowRequest, error)
	ListByRequester(ctx context.Context, requesterID uuid.UUID, page, limit int) ([]*model.BorrowRequest, int, error)
	ListIncoming(ctx context.Context, ownerID uuid.UUID, page, limit int) ([]*model.BorrowRequest, int, error)

	// Transactional create path. GetItemForUpdate locks the item row so two
	// concurrent creates against the same item serialize; the caller then
	// re-reads approved bookings and inserts inside the same transaction.
	GetItemForUpdate(ctx context.Context, tx pgx.Tx, itemID uuid.UUID) (*ItemSnapshot, error)
	ListApprovedByItemTx(ctx context.Context, tx pgx.Tx, itemID uuid.UUID) ([]*model.BorrowRequest, error)
	CreateTx(ctx context.Context, tx pgx.Tx, request *model.BorrowRequest) error

	// UpdateStatus transitions id from one status to another in a single
	// conditional UPDATE. model.ErrConflict when the row was not in `from`.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to model.Status, declineMessage *string) error

	ListPendingOlderThan(ctx context.Context, cutoff time.Time) ([]*model.BorrowRequest, error)

	GetItemSnapshot(ctx context.Context, itemID uuid.UUID) (*ItemSnapshot, error)
	GetContact(ctx context.Context, userID uuid.UUID) (name, email string, err error)

	GetRequesterSummary(ctx context.Context, userID uuid.UUID) (model.UserSummary, error)
	GetRequesterSummaries(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]model.UserSummary, error)
}

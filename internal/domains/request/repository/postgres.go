package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"friendshavestuff-backend/internal/domains/request/model"
)

const requestColumns = `
	id, item_id, requester_id, owner_id, status, start_date, end_date,
	message, decline_message, created_at, updated_at
`

type postgresRequestRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRequestRepository(pool *pgxpool.Pool) RequestRepository {
	return &postgresRequestRepository{pool: pool}
}

func scanRequest(row pgx.Row) (*model.BorrowRequest, error) {
	request := &model.BorrowRequest{}
	var status string

	err := row.Scan(
		&request.ID,
		&request.ItemID,
		&request.RequesterID,
		&request.OwnerID,
		&status,
		&request.StartDate,
		&request.EndDate,
		&request.Message,
		&request.DeclineMessage,
		&request.CreatedAt,
		&request.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	parsed, err := model.ParseStatus(status)
	if err != nil {
		return nil, fmt.Errorf("corrupt request row %s: %w", request.ID, err)
	}
	request.Status = parsed

	return request, nil
}

func (r *postgresRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.BorrowRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM borrow_requests WHERE id = $1`

	request, err := scanRequest(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to get request: %w", err)
	}

	return request, nil
}

func (r *postgresRequestRepository) ListByItem(ctx context.Context, itemID uuid.UUID) ([]*model.BorrowRequest, error) {
	query := `
		SELECT ` + requestColumns + `
		FROM borrow_requests
		WHERE item_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	defer rows.Close()

	return collectRequests(rows)
}

func (r *postgresRequestRepository) ListByRequester(ctx context.Context, requesterID uuid.UUID, page, limit int) ([]*model.BorrowRequest, int, error) {
	query := `
		SELECT ` + requestColumns + `
		FROM borrow_requests
		WHERE requester_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, requesterID, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list requests: %w", err)
	}
	defer rows.Close()

	requests, err := collectRequests(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM borrow_requests WHERE requester_id = $1`
	if err := r.pool.QueryRow(ctx, countQuery, requesterID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count requests: %w", err)
	}

	return requests, total, nil
}

func (r *postgresRequestRepository) ListIncoming(ctx context.Context, ownerID uuid.UUID, page, limit int) ([]*model.BorrowRequest, int, error) {
	query := `
		SELECT ` + requestColumns + `
		FROM borrow_requests
		WHERE owner_id = $1
		ORDER BY
			CASE WHEN status = 'pending' THEN 0 ELSE 1 END,
			created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, ownerID, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list incoming requests: %w", err)
	}
	defer rows.Close()

	requests, err := collectRequests(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM borrow_requests WHERE owner_id = $1`
	if err := r.pool.QueryRow(ctx, countQuery, ownerID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count incoming requests: %w", err)
	}

	return requests, total, nil
}

// GetItemForUpdate locks the item row for the duration of the transaction.
func (r *postgresRequestRepository) GetItemForUpdate(ctx context.Context, tx pgx.Tx, itemID uuid.UUID) (*ItemSnapshot, error) {
	query := `
		SELECT id, owner_id, name, blackout_dates
		FROM items
		WHERE id = $1
		FOR UPDATE
	`

	snapshot := &ItemSnapshot{}
	var blackouts []time.Time

	err := tx.QueryRow(ctx, query, itemID).Scan(
		&snapshot.ID,
		&snapshot.OwnerID,
		&snapshot.Name,
		pq.Array(&blackouts),
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to lock item: %w", err)
	}

	snapshot.BlackoutDays = blackouts
	return snapshot, nil
}

func (r *postgresRequestRepository) ListApprovedByItemTx(ctx context.Context, tx pgx.Tx, itemID uuid.UUID) ([]*model.BorrowRequest, error) {
	query := `
		SELECT ` + requestColumns + `
		FROM borrow_requests
		WHERE item_id = $1 AND status = 'approved'
	`

	rows, err := tx.Query(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved bookings: %w", err)
	}
	defer rows.Close()

	return collectRequests(rows)
}

func (r *postgresRequestRepository) CreateTx(ctx context.Context, tx pgx.Tx, request *model.BorrowRequest) error {
	query := `
		INSERT INTO borrow_requests (
			id, item_id, requester_id, owner_id, status, start_date, end_date,
			message, decline_message, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := tx.Exec(ctx, query,
		request.ID,
		request.ItemID,
		request.RequesterID,
		request.OwnerID,
		string(request.Status),
		request.StartDate,
		request.EndDate,
		request.Message,
		request.DeclineMessage,
		request.CreatedAt,
		request.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	return nil
}

// UpdateStatus is the conditional transition. The WHERE status clause makes
// concurrent approvals race-safe: the loser matches zero rows and gets a
// conflict instead of silently double-transitioning.
func (r *postgresRequestRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to model.Status, declineMessage *string) error {
	query := `
		UPDATE borrow_requests
		SET status = $3,
			decline_message = COALESCE($4, decline_message),
			updated_at = NOW()
		WHERE id = $1 AND status = $2
	`

	result, err := r.pool.Exec(ctx, query, id, string(from), string(to), declineMessage)
	if err != nil {
		return fmt.Errorf("failed to update request status: %w", err)
	}

	if result.RowsAffected() == 0 {
		// Distinguish a missing row from a lost race.
		if _, getErr := r.GetByID(ctx, id); errors.Is(getErr, model.ErrRequestNotFound) {
			return model.ErrRequestNotFound
		}
		return model.ErrConflict
	}

	return nil
}

func (r *postgresRequestRepository) ListPendingOlderThan(ctx context.Context, cutoff time.Time) ([]*model.BorrowRequest, error) {
	query := `
		SELECT ` + requestColumns + `
		FROM borrow_requests
		WHERE status = 'pending' AND created_at < $1
		ORDER BY created_at ASC
	`

	rows, err := r.pool.Query(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to list stale pending requests: %w", err)
	}
	defer rows.Close()

	return collectRequests(rows)
}

// GetItemSnapshot is the lock-free read used outside the create transaction.
func (r *postgresRequestRepository) GetItemSnapshot(ctx context.Context, itemID uuid.UUID) (*ItemSnapshot, error) {
	query := `SELECT id, owner_id, name, blackout_dates FROM items WHERE id = $1`

	snapshot := &ItemSnapshot{}
	var blackouts []time.Time

	err := r.pool.QueryRow(ctx, query, itemID).Scan(
		&snapshot.ID,
		&snapshot.OwnerID,
		&snapshot.Name,
		pq.Array(&blackouts),
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	snapshot.BlackoutDays = blackouts
	return snapshot, nil
}

func (r *postgresRequestRepository) GetContact(ctx context.Context, userID uuid.UUID) (string, string, error) {
	query := `SELECT name, email FROM users WHERE id = $1`

	var name, email string
	err := r.pool.QueryRow(ctx, query, userID).Scan(&name, &email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", "", fmt.Errorf("no contact for user %s", userID)
		}
		return "", "", fmt.Errorf("failed to get contact: %w", err)
	}

	return name, email, nil
}

func (r *postgresRequestRepository) GetRequesterSummary(ctx context.Context, userID uuid.UUID) (model.UserSummary, error) {
	query := `SELECT id, name, avatar_url FROM users WHERE id = $1`

	var summary model.UserSummary
	err := r.pool.QueryRow(ctx, query, userID).Scan(&summary.ID, &summary.Name, &summary.AvatarURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Removed members still appear on old requests.
			return model.UserSummary{ID: userID, Name: "Former member"}, nil
		}
		return model.UserSummary{}, fmt.Errorf("failed to get requester profile: %w", err)
	}

	return summary, nil
}

func (r *postgresRequestRepository) GetRequesterSummaries(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]model.UserSummary, error) {
	summaries := make(map[uuid.UUID]model.UserSummary, len(userIDs))
	if len(userIDs) == 0 {
		return summaries, nil
	}

	query := `SELECT id, name, avatar_url FROM users WHERE id = ANY($1)`

	rows, err := r.pool.Query(ctx, query, userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get requester profiles: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var summary model.UserSummary
		if err := rows.Scan(&summary.ID, &summary.Name, &summary.AvatarURL); err != nil {
			return nil, fmt.Errorf("failed to scan requester profile: %w", err)
		}
		summaries[summary.ID] = summary
	}

	return summaries, nil
}

func collectRequests(rows pgx.Rows) ([]*model.BorrowRequest, error) {
	var requests []*model.BorrowRequest
	for rows.Next() {
		request, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan request: %w", err)
		}
		requests = append(requests, request)
	}
	return requests, nil
}

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

	"friendshavestuff-backend/internal/domains/item/model"
)

const itemColumns = `
	id, owner_id, name, description, category, image_urls, blackout_dates,
	created_at, updated_at
`

type postgresItemRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresItemRepository(pool *pgxpool.Pool) ItemRepository {
	return &postgresItemRepository{pool: pool}
}

func scanItem(row pgx.Row) (*model.Item, error) {
	item := &model.Item{}
	var images []string
	var blackouts []time.Time

	err := row.Scan(
		&item.ID,
		&item.OwnerID,
		&item.Name,
		&item.Description,
		&item.Category,
		pq.Array(&images),
		pq.Array(&blackouts),
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	item.ImageURLs = images
	item.BlackoutDates = blackouts
	return item, nil
}

func (r *postgresItemRepository) Create(ctx context.Context, item *model.Item) error {
	query := `
		INSERT INTO items (
			id, owner_id, name, description, category, image_urls,
			blackout_dates, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		item.ID,
		item.OwnerID,
		item.Name,
		item.Description,
		item.Category,
		pq.Array(item.ImageURLs),
		pq.Array(item.BlackoutDates),
		item.CreatedAt,
		item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}

	return nil
}

func (r *postgresItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`

	item, err := scanItem(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	return item, nil
}

func (r *postgresItemRepository) Update(ctx context.Context, item *model.Item) error {
	query := `
		UPDATE items
		SET
			name = $2,
			description = $3,
			category = $4,
			updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		item.ID,
		item.Name,
		item.Description,
		item.Category,
	)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrItemNotFound
	}

	return nil
}

func (r *postgresItemRepository) List(ctx context.Context, filters ListFilters, page, limit int) ([]*model.Item, int, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM items WHERE 1=1`

	args := []interface{}{}
	argCount := 1

	if filters.Category != "" {
		clause := fmt.Sprintf(" AND category = $%d", argCount)
		query += clause
		countQuery += clause
		args = append(args, filters.Category)
		argCount++
	}

	if filters.OwnerID != nil {
		clause := fmt.Sprintf(" AND owner_id = $%d", argCount)
		query += clause
		countQuery += clause
		args = append(args, *filters.OwnerID)
		argCount++
	}

	if filters.Search != "" {
		clause := fmt.Sprintf(" AND (name ILIKE $%d OR description ILIKE $%d)", argCount, argCount)
		query += clause
		countQuery += clause
		args = append(args, "%"+filters.Search+"%")
		argCount++
	}

	query += " ORDER BY created_at DESC"
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argCount, argCount+1)

	rows, err := r.pool.Query(ctx, query, append(args, limit, (page-1)*limit)...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	var items []*model.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count items: %w", err)
	}

	return items, total, nil
}

func (r *postgresItemRepository) SetBlackouts(ctx context.Context, id uuid.UUID, dates []time.Time) error {
	query := `
		UPDATE items
		SET blackout_dates = $2, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query, id, pq.Array(dates))
	if err != nil {
		return fmt.Errorf("failed to set blackout dates: %w", err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrItemNotFound
	}

	return nil
}

func (r *postgresItemRepository) AppendImages(ctx context.Context, id uuid.UUID, urls []string) error {
	query := `
		UPDATE items
		SET image_urls = image_urls || $2, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query, id, pq.Array(urls))
	if err != nil {
		return fmt.Errorf("failed to append images: %w", err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrItemNotFound
	}

	return nil
}

// DeclineActiveRequestsTx force-declines the item's open ledger entries so a
// deleted listing leaves no live bookings behind. Runs as raw SQL because the
// cascade bypasses the normal one-step transition rules on purpose.
func (r *postgresItemRepository) DeclineActiveRequestsTx(ctx context.Context, tx pgx.Tx, itemID uuid.UUID) (int64, error) {
	query := `
		UPDATE borrow_requests
		SET status = 'declined', updated_at = NOW()
		WHERE item_id = $1 AND status IN ('pending', 'approved')
	`

	result, err := tx.Exec(ctx, query, itemID)
	if err != nil {
		return 0, fmt.Errorf("failed to decline active requests: %w", err)
	}

	return result.RowsAffected(), nil
}

func (r *postgresItemRepository) DeleteCommentsTx(ctx context.Context, tx pgx.Tx, itemID uuid.UUID) error {
	if _, err := tx.Exec(ctx, `DELETE FROM comments WHERE item_id = $1`, itemID); err != nil {
		return fmt.Errorf("failed to delete item comments: %w", err)
	}
	return nil
}

func (r *postgresItemRepository) DeleteTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	result, err := tx.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrItemNotFound
	}

	return nil
}

func (r *postgresItemRepository) GetOwnerSummary(ctx context.Context, ownerID uuid.UUID) (model.OwnerSummary, error) {
	query := `SELECT id, name, avatar_url FROM users WHERE id = $1`

	var summary model.OwnerSummary
	err := r.pool.QueryRow(ctx, query, ownerID).Scan(&summary.ID, &summary.Name, &summary.AvatarURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.OwnerSummary{ID: ownerID, Name: "Former member"}, nil
		}
		return model.OwnerSummary{}, fmt.Errorf("failed to get owner profile: %w", err)
	}

	return summary, nil
}

func (r *postgresItemRepository) GetOwnerSummaries(ctx context.Context, ownerIDs []uuid.UUID) (map[uuid.UUID]model.OwnerSummary, error) {
	summaries := make(map[uuid.UUID]model.OwnerSummary, len(ownerIDs))
	if len(ownerIDs) == 0 {
		return summaries, nil
	}

	query := `SELECT id, name, avatar_url FROM users WHERE id = ANY($1)`

	rows, err := r.pool.Query(ctx, query, ownerIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get owner profiles: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var summary model.OwnerSummary
		if err := rows.Scan(&summary.ID, &summary.Name, &summary.AvatarURL); err != nil {
			return nil, fmt.Errorf("failed to scan owner profile: %w", err)
		}
		summaries[summary.ID] = summary
	}

	return summaries, nil
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"friendshavestuff-backend/internal/domains/comment/model"
)

const commentColumns = `id, item_id, user_id, parent_id, text, created_at`

type postgresCommentRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresCommentRepository(pool *pgxpool.Pool) CommentRepository {
	return &postgresCommentRepository{pool: pool}
}

func scanComment(row pgx.Row) (*model.Comment, error) {
	comment := &model.Comment{}
	err := row.Scan(
		&comment.ID,
		&comment.ItemID,
		&comment.UserID,
		&comment.ParentID,
		&comment.Text,
		&comment.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return comment, nil
}

func (r *postgresCommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	query := `
		INSERT INTO comments (id, item_id, user_id, parent_id, text, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		comment.ID,
		comment.ItemID,
		comment.UserID,
		comment.ParentID,
		comment.Text,
		comment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	return nil
}

func (r *postgresCommentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE id = $1`

	comment, err := scanComment(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}

	return comment, nil
}

func (r *postgresCommentRepository) ListByItem(ctx context.Context, itemID uuid.UUID) ([]*model.Comment, error) {
	query := `
		SELECT ` + commentColumns + `
		FROM comments
		WHERE item_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.pool.Query(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	var comments []*model.Comment
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, comment)
	}

	return comments, nil
}

func (r *postgresCommentRepository) DeleteWithReplies(ctx context.Context, id uuid.UUID) (int64, error) {
	query := `DELETE FROM comments WHERE id = $1 OR parent_id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete comment: %w", err)
	}

	if result.RowsAffected() == 0 {
		return 0, model.ErrCommentNotFound
	}

	return result.RowsAffected(), nil
}

func (r *postgresCommentRepository) GetItemInfo(ctx context.Context, itemID uuid.UUID) (*ItemInfo, error) {
	query := `SELECT id, owner_id, name FROM items WHERE id = $1`

	info := &ItemInfo{}
	err := r.pool.QueryRow(ctx, query, itemID).Scan(&info.ID, &info.OwnerID, &info.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	return info, nil
}

func (r *postgresCommentRepository) GetAuthorSummaries(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]model.AuthorSummary, error) {
	summaries := make(map[uuid.UUID]model.AuthorSummary, len(userIDs))
	if len(userIDs) == 0 {
		return summaries, nil
	}

	query := `SELECT id, name, avatar_url FROM users WHERE id = ANY($1)`

	rows, err := r.pool.Query(ctx, query, userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get author profiles: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var summary model.AuthorSummary
		if err := rows.Scan(&summary.ID, &summary.Name, &summary.AvatarURL); err != nil {
			return nil, fmt.Errorf("failed to scan author profile: %w", err)
		}
		summaries[summary.ID] = summary
	}

	return summaries, nil
}

func (r *postgresCommentRepository) GetContact(ctx context.Context, userID uuid.UUID) (string, string, error) {
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

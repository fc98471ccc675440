package repository

import (
	"context"

	"github.com/google/uuid"

	"friendshavestuff-backend/internal/domains/user/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByNormalizedEmail(ctx context.Context, normalizedEmail string) (*model.User, error)
	GetByExternalID(ctx context.Context, externalID string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, search string, page, limit int) ([]*model.User, int, error)
	CountAdmins(ctx context.Context) (int, error)
}

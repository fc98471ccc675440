package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"friendshavestuff-backend/internal/domains/user/model"
	"friendshavestuff-backend/internal/shared"
	appjwt "friendshavestuff-backend/pkg/jwt"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	for _, u := range f.users {
		if u.NormalizedEmail == user.NormalizedEmail {
			return model.ErrAlreadyInvited
		}
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, model.ErrUserNotFound
}

func (f *fakeUserRepo) GetByNormalizedEmail(ctx context.Context, normalizedEmail string) (*model.User, error) {
	for _, u := range f.users {
		if u.NormalizedEmail == normalizedEmail {
			return u, nil
		}
	}
	return nil, model.ErrUserNotFound
}

func (f *fakeUserRepo) GetByExternalID(ctx context.Context, externalID string) (*model.User, error) {
	for _, u := range f.users {
		if u.ExternalID != nil && *u.ExternalID == externalID {
			return u, nil
		}
	}
	return nil, model.ErrUserNotFound
}

func (f *fakeUserRepo) Update(ctx context.Context, user *model.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return model.ErrUserNotFound
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.users[id]; !ok {
		return model.ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) List(ctx context.Context, search string, page, limit int) ([]*model.User, int, error) {
	var out []*model.User
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, len(out), nil
}

func (f *fakeUserRepo) CountAdmins(ctx context.Context) (int, error) {
	count := 0
	for _, u := range f.users {
		if u.Admin {
			count++
		}
	}
	return count, nil
}

func userErrCode(t *testing.T, err error) string {
	t.Helper()
	var userErr *model.UserError
	require.ErrorAs(t, err, &userErr)
	return userErr.Code
}

func invite(repo *fakeUserRepo, email string, admin bool) *model.User {
	u := &model.User{
		ID:              uuid.New(),
		Email:           email,
		NormalizedEmail: model.NormalizeEmail(email),
		Name:            "Invited Friend",
		Admin:           admin,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
	repo.users[u.ID] = u
	return u
}

func newUserService(repo *fakeUserRepo) ServiceInterface {
	return NewUserService(repo, appjwt.NewManager("test-secret"))
}

func TestCreateSession(t *testing.T) {
	ctx := context.Background()

	t.Run("invited email links and signs in", func(t *testing.T) {
		repo := newFakeUserRepo()
		invited := invite(repo, "friend@example.com", false)
		svc := newUserService(repo)

		resp, err := svc.CreateSession(ctx, model.CreateSessionRequest{
			ExternalID: "google-123",
			Email:      "friend@example.com",
			Name:       "Friend Fresh",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, invited.ID, resp.User.ID)
		assert.Equal(t, "Friend Fresh", resp.User.Name)

		stored := repo.users[invited.ID]
		require.NotNil(t, stored.ExternalID)
		assert.Equal(t, "google-123", *stored.ExternalID)
		assert.NotNil(t, stored.LastLogin)
	})

	t.Run("returning user matches by external id even after email change", func(t *testing.T) {
		repo := newFakeUserRepo()
		linked := invite(repo, "friend@example.com", false)
		extID := "google-123"
		linked.ExternalID = &extID
		svc := newUserService(repo)

		resp, err := svc.CreateSession(ctx, model.CreateSessionRequest{
			ExternalID: "google-123",
			Email:      "different@example.com",
			Name:       "Friend",
		})
		require.NoError(t, err)
		assert.Equal(t, linked.ID, resp.User.ID)
	})

	t.Run("gmail dot variant matches the invite", func(t *testing.T) {
		repo := newFakeUserRepo()
		invited := invite(repo, "john@gmail.com", false)
		svc := newUserService(repo)

		resp, err := svc.CreateSession(ctx, model.CreateSessionRequest{
			ExternalID: "google-456",
			Email:      "Jo.Hn@gmail.com",
			Name:       "John",
		})
		require.NoError(t, err)
		assert.Equal(t, invited.ID, resp.User.ID)
	})

	t.Run("uninvited email is rejected", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := newUserService(repo)

		_, err := svc.CreateSession(ctx, model.CreateSessionRequest{
			ExternalID: "google-789",
			Email:      "stranger@example.com",
			Name:       "Stranger",
		})
		assert.Equal(t, model.ErrCodeNotInvited, userErrCode(t, err))
	})
}

func TestInviteUser(t *testing.T) {
	ctx := context.Background()
	admin := shared.Principal{ID: uuid.New(), Admin: true}
	member := shared.Principal{ID: uuid.New()}

	t.Run("admin invites", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := newUserService(repo)

		resp, err := svc.InviteUser(ctx, admin, model.InviteUserRequest{
			Email: "new@example.com",
			Name:  "New Friend",
		})
		require.NoError(t, err)
		assert.Equal(t, "new@example.com", resp.Email)
		assert.False(t, resp.Linked)
	})

	t.Run("non-admin cannot invite", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := newUserService(repo)

		_, err := svc.InviteUser(ctx, member, model.InviteUserRequest{
			Email: "new@example.com",
			Name:  "New Friend",
		})
		assert.Equal(t, model.ErrCodeUnauthorized, userErrCode(t, err))
	})

	t.Run("duplicate invite", func(t *testing.T) {
		repo := newFakeUserRepo()
		invite(repo, "new@example.com", false)
		svc := newUserService(repo)

		_, err := svc.InviteUser(ctx, admin, model.InviteUserRequest{
			Email: "new@example.com",
			Name:  "New Friend",
		})
		assert.Equal(t, model.ErrCodeAlreadyInvited, userErrCode(t, err))
	})
}

func TestRemoveUser(t *testing.T) {
	ctx := context.Background()

	t.Run("admin removes a member", func(t *testing.T) {
		repo := newFakeUserRepo()
		adminUser := invite(repo, "admin@example.com", true)
		target := invite(repo, "member@example.com", false)
		svc := newUserService(repo)

		err := svc.RemoveUser(ctx, shared.Principal{ID: adminUser.ID, Admin: true}, target.ID)
		require.NoError(t, err)
		assert.NotContains(t, repo.users, target.ID)
	})

	t.Run("last admin cannot be removed", func(t *testing.T) {
		repo := newFakeUserRepo()
		adminUser := invite(repo, "admin@example.com", true)
		svc := newUserService(repo)

		err := svc.RemoveUser(ctx, shared.Principal{ID: adminUser.ID, Admin: true}, adminUser.ID)
		assert.Equal(t, model.ErrCodeLastAdmin, userErrCode(t, err))
		assert.Contains(t, repo.users, adminUser.ID)
	})

	t.Run("second admin can be removed", func(t *testing.T) {
		repo := newFakeUserRepo()
		first := invite(repo, "admin@example.com", true)
		second := invite(repo, "other-admin@example.com", true)
		svc := newUserService(repo)

		err := svc.RemoveUser(ctx, shared.Principal{ID: first.ID, Admin: true}, second.ID)
		require.NoError(t, err)
	})

	t.Run("non-admin cannot remove", func(t *testing.T) {
		repo := newFakeUserRepo()
		target := invite(repo, "member@example.com", false)
		svc := newUserService(repo)

		err := svc.RemoveUser(ctx, shared.Principal{ID: uuid.New()}, target.ID)
		assert.Equal(t, model.ErrCodeUnauthorized, userErrCode(t, err))
	})
}

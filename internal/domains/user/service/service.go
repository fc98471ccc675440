package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"friendshavestuff-backend/internal/domains/user/model"
	"friendshavestuff-backend/internal/domains/user/repository"
	"friendshavestuff-backend/internal/shared"
	appjwt "friendshavestuff-backend/pkg/jwt"
	"friendshavestuff-backend/pkg/logger"
)

type userService struct {
	userRepo   repository.UserRepository
	jwtManager *appjwt.Manager
}

func NewUserService(userRepo repository.UserRepository, jwtManager *appjwt.Manager) ServiceInterface {
	return &userService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
	}
}

// CreateSession matches the sign-in profile against the invite list.
// Matching order: previously linked external ID first, then normalized
// email. An email with no invite is rejected so strangers cannot join.
func (s *userService) CreateSession(ctx context.Context, req model.CreateSessionRequest) (*model.SessionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByExternalID(ctx, req.ExternalID)
	if errors.Is(err, model.ErrUserNotFound) {
		user, err = s.linkByEmail(ctx, req)
	}
	if err != nil {
		return nil, err
	}

	// Refresh profile fields from the provider and stamp last_login on
	// every sign-in.
	if req.Name != "" {
		user.Name = req.Name
	}
	if req.AvatarURL != nil {
		user.AvatarURL = req.AvatarURL
	}
	now := time.Now()
	user.LastLogin = &now
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to refresh profile: %w", err)
	}

	avatarURL := ""
	if user.AvatarURL != nil {
		avatarURL = *user.AvatarURL
	}

	token, err := s.jwtManager.GenerateSessionToken(user.ID.String(), user.Email, user.Name, avatarURL, user.Admin)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}

	return &model.SessionResponse{
		Token: token,
		User:  user.ToResponse(),
	}, nil
}

// linkByEmail attaches an external identity to an invited but unlinked user.
// Matching tries the exact invited email first, then the normalized form, so
// jo.hn@gmail.com finds an invite written as john@gmail.com.
func (s *userService) linkByEmail(ctx context.Context, req model.CreateSessionRequest) (*model.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if errors.Is(err, model.ErrUserNotFound) {
		user, err = s.userRepo.GetByNormalizedEmail(ctx, model.NormalizeEmail(req.Email))
	}
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.NewNotInvitedError()
		}
		return nil, fmt.Errorf("failed to look up invite: %w", err)
	}

	externalID := req.ExternalID
	user.ExternalID = &externalID
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to link identity: %w", err)
	}

	logger.Info("Linked external identity to invited user", map[string]interface{}{
		"user_id": user.ID.String(),
	})

	return user, nil
}

func (s *userService) GetUser(ctx context.Context, id uuid.UUID) (*model.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.NewUserNotFoundError()
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	resp := user.ToResponse()
	return &resp, nil
}

func (s *userService) ListUsers(ctx context.Context, req model.ListUsersRequest) ([]model.UserResponse, int, error) {
	req.SetDefaults()

	users, total, err := s.userRepo.List(ctx, req.Search, req.Page, req.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	responses := make([]model.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, u.ToResponse())
	}

	return responses, total, nil
}

func (s *userService) UpdateProfile(ctx context.Context, principal shared.Principal, req model.UpdateProfileRequest) (*model.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, principal.ID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.NewUserNotFoundError()
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	user.Name = req.Name
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	resp := user.ToResponse()
	return &resp, nil
}

func (s *userService) InviteUser(ctx context.Context, principal shared.Principal, req model.InviteUserRequest) (*model.UserResponse, error) {
	if !principal.Admin {
		return nil, model.NewUnauthorizedError("Only admins can invite members")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	invitedBy := principal.ID
	user := &model.User{
		ID:              uuid.New(),
		Email:           req.Email,
		NormalizedEmail: model.NormalizeEmail(req.Email),
		Name:            req.Name,
		Admin:           req.Admin,
		InvitedBy:       &invitedBy,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, model.ErrAlreadyInvited) {
			return nil, model.NewAlreadyInvitedError(req.Email)
		}
		return nil, fmt.Errorf("failed to invite user: %w", err)
	}

	resp := user.ToResponse()
	return &resp, nil
}

func (s *userService) RemoveUser(ctx context.Context, principal shared.Principal, id uuid.UUID) error {
	if !principal.Admin {
		return model.NewUnauthorizedError("Only admins can remove members")
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return model.NewUserNotFoundError()
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	if user.Admin {
		admins, err := s.userRepo.CountAdmins(ctx)
		if err != nil {
			return err
		}
		if admins <= 1 {
			return model.NewLastAdminError()
		}
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to remove user: %w", err)
	}

	return nil
}

package users

import (
	"context"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/quizhubhq/quizhub-backend/pkg/config"
	"github.com/quizhubhq/quizhub-backend/pkg/db/models"
	errs "github.com/quizhubhq/quizhub-backend/pkg/errors"
	"github.com/quizhubhq/quizhub-backend/pkg/pagination"
	"github.com/quizhubhq/quizhub-backend/pkg/security"
)

type userStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	List(ctx context.Context, page pagination.Params) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type accessPolicy interface {
	RequireAuthenticated(actor *models.User) error
	CanManageSelf(actor *models.User, targetID uuid.UUID) error
}

// Service implements the account operations. Reads require a signed-in
// actor; writes require the account holder or a superuser.
type Service struct {
	users    userStore
	policy   accessPolicy
	password config.PasswordConfig
}

func NewService(users userStore, policy accessPolicy, password config.PasswordConfig) *Service {
	return &Service{users: users, policy: policy, password: password}
}

func (s *Service) Get(ctx context.Context, actor *models.User, id uuid.UUID) (UserResponse, error) {
	if err := s.policy.RequireAuthenticated(actor); err != nil {
		return UserResponse{}, err
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return UserResponse{}, err
	}
	return ToUserResponse(user), nil
}

func (s *Service) List(ctx context.Context, actor *models.User, page pagination.Params) ([]UserResponse, error) {
	if err := s.policy.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	list, err := s.users.List(ctx, page)
	if err != nil {
		return nil, err
	}
	return ToUserResponses(list), nil
}

func (s *Service) Update(ctx context.Context, actor *models.User, id uuid.UUID, req UpdateUserRequest) (UserResponse, error) {
	if err := s.policy.CanManageSelf(actor, id); err != nil {
		return UserResponse{}, err
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return UserResponse{}, err
	}

	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Phones != nil {
		user.Phones = pq.StringArray(*req.Phones)
	}
	if req.Password != nil {
		hash, err := security.HashPassword(*req.Password, s.password)
		if err != nil {
			return UserResponse{}, errs.Wrap(errs.CodeInternal, err, "hashing password")
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		return UserResponse{}, err
	}
	return ToUserResponse(user), nil
}

func (s *Service) Delete(ctx context.Context, actor *models.User, id uuid.UUID) error {
	if err := s.policy.CanManageSelf(actor, id); err != nil {
		return err
	}
	return s.users.Delete(ctx, id)
}

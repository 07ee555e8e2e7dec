package users

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/quizhubhq/quizhub-backend/pkg/config"
	"github.com/quizhubhq/quizhub-backend/pkg/db/models"
	errs "github.com/quizhubhq/quizhub-backend/pkg/errors"
	"github.com/quizhubhq/quizhub-backend/pkg/pagination"
)

type stubUserStore struct {
	byID    map[uuid.UUID]*models.User
	updated *models.User
	deleted []uuid.UUID
}

func newStubUserStore(users ...*models.User) *stubUserStore {
	s := &stubUserStore{byID: map[uuid.UUID]*models.User{}}
	for _, u := range users {
		s.byID[u.ID] = u
	}
	return s
}

func (s *stubUserStore) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	user, ok := s.byID[id]
	if !ok {
		return nil, errs.New(errs.CodeNotFound, "user not found")
	}
	clone := *user
	return &clone, nil
}

func (s *stubUserStore) List(_ context.Context, _ pagination.Params) ([]models.User, error) {
	out := make([]models.User, 0, len(s.byID))
	for _, u := range s.byID {
		out = append(out, *u)
	}
	return out, nil
}

func (s *stubUserStore) Update(_ context.Context, user *models.User) error {
	s.updated = user
	s.byID[user.ID] = user
	return nil
}

func (s *stubUserStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := s.byID[id]; !ok {
		return errs.New(errs.CodeNotFound, "user not found")
	}
	delete(s.byID, id)
	s.deleted = append(s.deleted, id)
	return nil
}

type allowSelfPolicy struct{}

func (allowSelfPolicy) RequireAuthenticated(actor *models.User) error {
	if actor == nil {
		return errs.New(errs.CodeUnauthorized, "authentication required")
	}
	return nil
}

func (allowSelfPolicy) CanManageSelf(actor *models.User, targetID uuid.UUID) error {
	if actor == nil {
		return errs.New(errs.CodeUnauthorized, "authentication required")
	}
	if actor.IsSuperuser || actor.ID == targetID {
		return nil
	}
	return errs.New(errs.CodeForbidden, "not allowed")
}

func testService(users ...*models.User) (*Service, *stubUserStore) {
	store := newStubUserStore(users...)
	cfg := config.PasswordConfig{ArgonMemoryKB: 8, ArgonTime: 1, ArgonParallelism: 1, ArgonSaltLen: 8, ArgonKeyLen: 16}
	return NewService(store, allowSelfPolicy{}, cfg), store
}

func TestGetRequiresAuthentication(t *testing.T) {
	user := &models.User{ID: uuid.New(), Email: "a@example.com"}
	service, _ := testService(user)

	if _, err := service.Get(context.Background(), nil, user.ID); !errs.HasCode(err, errs.CodeUnauthorized) {
		t.Fatalf("expected UNAUTHORIZED, got %v", err)
	}
	resp, err := service.Get(context.Background(), user, user.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if resp.Email != "a@example.com" {
		t.Errorf("expected email to round-trip, got %q", resp.Email)
	}
}

func TestUpdateReHashesPassword(t *testing.T) {
	user := &models.User{ID: uuid.New(), Username: "alice", PasswordHash: "old"}
	service, store := testService(user)

	password := "new-password-123"
	resp, err := service.Update(context.Background(), user, user.ID, UpdateUserRequest{Password: &password})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if store.updated == nil || store.updated.PasswordHash == "old" {
		t.Fatal("expected password hash to change")
	}
	if store.updated.PasswordHash == password {
		t.Fatal("expected password to be hashed, not stored raw")
	}
	if resp.Username != "alice" {
		t.Errorf("expected untouched fields to persist, got %q", resp.Username)
	}
}

func TestUpdateForbiddenForOtherUser(t *testing.T) {
	target := &models.User{ID: uuid.New()}
	actor := &models.User{ID: uuid.New()}
	service, _ := testService(target, actor)

	name := "evil"
	if _, err := service.Update(context.Background(), actor, target.ID, UpdateUserRequest{Username: &name}); !errs.HasCode(err, errs.CodeForbidden) {
		t.Fatalf("expected FORBIDDEN, got %v", err)
	}
}

func TestSuperuserCanDeleteAnyAccount(t *testing.T) {
	target := &models.User{ID: uuid.New()}
	super := &models.User{ID: uuid.New(), IsSuperuser: true}
	service, store := testService(target, super)

	if err := service.Delete(context.Background(), super, target.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(store.deleted) != 1 || store.deleted[0] != target.ID {
		t.Fatal("expected target account to be deleted")
	}
}

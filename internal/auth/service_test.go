package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/quizhubhq/quizhub-backend/pkg/auth"
	"github.com/quizhubhq/quizhub-backend/pkg/auth/session"
	"github.com/quizhubhq/quizhub-backend/pkg/config"
	"github.com/quizhubhq/quizhub-backend/pkg/db/models"
	errs "github.com/quizhubhq/quizhub-backend/pkg/errors"
)

type stubUserStore struct {
	byEmail map[string]*models.User
}

func newStubUserStore() *stubUserStore {
	return &stubUserStore{byEmail: map[string]*models.User{}}
}

func (s *stubUserStore) Create(_ context.Context, user *models.User) error {
	if _, ok := s.byEmail[user.Email]; ok {
		return errs.New(errs.CodeConflict, "a user with this email already exists")
	}
	user.ID = uuid.New()
	s.byEmail[user.Email] = user
	return nil
}

func (s *stubUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	user, ok := s.byEmail[email]
	if !ok {
		return nil, errs.New(errs.CodeNotFound, "user not found")
	}
	return user, nil
}

type stubSessions struct {
	byJTI   map[string]string
	counter int
}

func newStubSessions() *stubSessions {
	return &stubSessions{byJTI: map[string]string{}}
}

func (s *stubSessions) Generate(_ context.Context, jti string) (string, error) {
	s.counter++
	token := "refresh-" + jti
	s.byJTI[jti] = token
	return token, nil
}

func (s *stubSessions) Rotate(_ context.Context, oldJTI, refreshToken, newJTI string) (string, error) {
	stored, ok := s.byJTI[oldJTI]
	if !ok || stored != refreshToken {
		return "", session.ErrInvalidRefreshToken
	}
	delete(s.byJTI, oldJTI)
	return s.Generate(context.Background(), newJTI)
}

func (s *stubSessions) Revoke(_ context.Context, jti string) error {
	delete(s.byJTI, jti)
	return nil
}

func newTestService() (*Service, *stubUserStore, *stubSessions) {
	store := newStubUserStore()
	sessions := newStubSessions()
	jwtCfg := config.JWTConfig{Secret: "test-secret", Issuer: "quizhub-test", ExpirationMinutes: 15}
	pwCfg := config.PasswordConfig{ArgonMemoryKB: 8, ArgonTime: 1, ArgonParallelism: 1, ArgonSaltLen: 8, ArgonKeyLen: 16}
	return NewService(store, sessions, jwtCfg, pwCfg, nil), store, sessions
}

func register(t *testing.T, service *Service) {
	t.Helper()
	_, err := service.Register(context.Background(), RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "correct-horse-1",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
}

func TestRegisterHashesPasswordAndRejectsDuplicates(t *testing.T) {
	service, store, _ := newTestService()
	register(t, service)

	stored := store.byEmail["alice@example.com"]
	if stored.PasswordHash == "correct-horse-1" || stored.PasswordHash == "" {
		t.Fatal("expected hashed credential in storage")
	}
	if !stored.IsActive {
		t.Error("expected new accounts to be active")
	}

	_, err := service.Register(context.Background(), RegisterRequest{
		Username: "alice2",
		Email:    "alice@example.com",
		Password: "another-pass-1",
	})
	if !errs.HasCode(err, errs.CodeConflict) {
		t.Fatalf("expected CONFLICT for duplicate email, got %v", err)
	}
}

func TestLoginIssuesTokenPair(t *testing.T) {
	service, _, sessions := newTestService()
	register(t, service)

	tokens, err := service.Login(context.Background(), LoginRequest{
		Email:    "alice@example.com",
		Password: "correct-horse-1",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if tokens.TokenType != "bearer" {
		t.Errorf("expected bearer token type, got %q", tokens.TokenType)
	}

	claims, err := auth.ParseAccessToken(config.JWTConfig{Secret: "test-secret", Issuer: "quizhub-test", ExpirationMinutes: 15}, tokens.AccessToken)
	if err != nil {
		t.Fatalf("parse minted token: %v", err)
	}
	if claims.Subject != "alice@example.com" {
		t.Errorf("expected the login as subject, got %q", claims.Subject)
	}
	if sessions.byJTI[claims.ID] != tokens.RefreshToken {
		t.Error("expected refresh token stored under the access token jti")
	}
}

func TestLoginFailuresAreUniform(t *testing.T) {
	service, store, _ := newTestService()
	register(t, service)

	// Wrong password and unknown email produce the same error code.
	_, wrongPw := service.Login(context.Background(), LoginRequest{Email: "alice@example.com", Password: "nope"})
	_, unknown := service.Login(context.Background(), LoginRequest{Email: "ghost@example.com", Password: "nope"})
	if !errs.HasCode(wrongPw, errs.CodeUnauthorized) || !errs.HasCode(unknown, errs.CodeUnauthorized) {
		t.Fatalf("expected UNAUTHORIZED for both, got %v and %v", wrongPw, unknown)
	}

	store.byEmail["alice@example.com"].IsActive = false
	_, disabled := service.Login(context.Background(), LoginRequest{Email: "alice@example.com", Password: "correct-horse-1"})
	if !errs.HasCode(disabled, errs.CodeForbidden) {
		t.Fatalf("expected FORBIDDEN for disabled account, got %v", disabled)
	}
}

func TestRefreshRotatesSession(t *testing.T) {
	service, _, _ := newTestService()
	register(t, service)

	tokens, err := service.Login(context.Background(), LoginRequest{
		Email:    "alice@example.com",
		Password: "correct-horse-1",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	refreshed, err := service.Refresh(context.Background(), RefreshRequest{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	})
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if refreshed.AccessToken == tokens.AccessToken {
		t.Error("expected a new access token")
	}
	if refreshed.RefreshToken == tokens.RefreshToken {
		t.Error("expected a new refresh token")
	}

	// The spent pair cannot be replayed.
	_, err = service.Refresh(context.Background(), RefreshRequest{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	})
	if !errs.HasCode(err, errs.CodeUnauthorized) {
		t.Fatalf("expected UNAUTHORIZED for replay, got %v", err)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	service, _, sessions := newTestService()
	register(t, service)

	tokens, err := service.Login(context.Background(), LoginRequest{
		Email:    "alice@example.com",
		Password: "correct-horse-1",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := service.Logout(context.Background(), tokens.AccessToken); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if len(sessions.byJTI) != 0 {
		t.Fatal("expected session to be revoked")
	}

	// Refresh after logout fails.
	_, err = service.Refresh(context.Background(), RefreshRequest{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	})
	if !errs.HasCode(err, errs.CodeUnauthorized) {
		t.Fatalf("expected UNAUTHORIZED after logout, got %v", err)
	}
}

package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/quizhubhq/quizhub-backend/internal/users"
	"github.com/quizhubhq/quizhub-backend/pkg/auth"
	"github.com/quizhubhq/quizhub-backend/pkg/auth/session"
	"github.com/quizhubhq/quizhub-backend/pkg/config"
	"github.com/quizhubhq/quizhub-backend/pkg/db/models"
	errs "github.com/quizhubhq/quizhub-backend/pkg/errors"
	"github.com/quizhubhq/quizhub-backend/pkg/logger"
	"github.com/quizhubhq/quizhub-backend/pkg/security"
)

type RegisterRequest struct {
	Username string   `json:"username" validate:"required,min=1,max=120"`
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password" validate:"required,min=8"`
	Phones   []string `json:"phones" validate:"omitempty,dive,min=3"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	AccessToken  string `json:"access_token" validate:"required"`
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

type userStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

type sessionManager interface {
	Generate(ctx context.Context, jti string) (string, error)
	Rotate(ctx context.Context, oldJTI, refreshToken, newJTI string) (string, error)
	Revoke(ctx context.Context, jti string) error
}

// Service implements sign-up and the token lifecycle.
type Service struct {
	users    userStore
	sessions sessionManager
	jwt      config.JWTConfig
	password config.PasswordConfig
	log      *logger.Logger
}

func NewService(users userStore, sessions sessionManager, jwt config.JWTConfig, password config.PasswordConfig, log *logger.Logger) *Service {
	return &Service{users: users, sessions: sessions, jwt: jwt, password: password, log: log}
}

// Register creates a local account.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (users.UserResponse, error) {
	hash, err := security.HashPassword(req.Password, s.password)
	if err != nil {
		return users.UserResponse{}, errs.Wrap(errs.CodeInternal, err, "hashing password")
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Phones:       pq.StringArray(req.Phones),
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return users.UserResponse{}, err
	}
	if s.log != nil {
		s.log.Info(s.log.WithUserID(ctx, user.ID.String()), "user registered")
	}
	return users.ToUserResponse(user), nil
}

// Login exchanges credentials for an access token and a refresh token. All
// credential failures look identical to the caller.
func (s *Service) Login(ctx context.Context, req LoginRequest) (TokenResponse, error) {
	invalid := errs.New(errs.CodeUnauthorized, "invalid credentials")

	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errs.HasCode(err, errs.CodeNotFound) {
			return TokenResponse{}, invalid
		}
		return TokenResponse{}, err
	}
	ok, err := security.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil || !ok {
		return TokenResponse{}, invalid
	}
	if !user.IsActive {
		return TokenResponse{}, errs.New(errs.CodeForbidden, "account is disabled")
	}

	return s.issueTokens(ctx, user)
}

// Refresh rotates the session behind an expired access token. The old
// refresh token is spent whether or not the exchange succeeds past
// validation.
func (s *Service) Refresh(ctx context.Context, req RefreshRequest) (TokenResponse, error) {
	claims, err := auth.ParseAccessTokenAllowExpired(s.jwt, req.AccessToken)
	if err != nil {
		return TokenResponse{}, errs.New(errs.CodeUnauthorized, "invalid access token")
	}

	user, err := s.users.FindByEmail(ctx, claims.Subject)
	if err != nil {
		if errs.HasCode(err, errs.CodeNotFound) {
			return TokenResponse{}, errs.New(errs.CodeUnauthorized, "no account for this login")
		}
		return TokenResponse{}, err
	}
	if !user.IsActive {
		return TokenResponse{}, errs.New(errs.CodeForbidden, "account is disabled")
	}

	newJTI := uuid.NewString()
	refreshToken, err := s.sessions.Rotate(ctx, claims.ID, req.RefreshToken, newJTI)
	if err != nil {
		if errors.Is(err, session.ErrInvalidRefreshToken) {
			return TokenResponse{}, errs.New(errs.CodeUnauthorized, "invalid refresh token")
		}
		return TokenResponse{}, errs.Wrap(errs.CodeDependency, err, "rotating session")
	}

	accessToken, err := auth.MintAccessToken(s.jwt, time.Now(), auth.AccessTokenPayload{
		UserID: user.ID,
		Login:  user.Email,
		JTI:    newJTI,
	})
	if err != nil {
		return TokenResponse{}, errs.Wrap(errs.CodeInternal, err, "minting access token")
	}

	return TokenResponse{AccessToken: accessToken, RefreshToken: refreshToken, TokenType: "bearer"}, nil
}

// Logout revokes the session behind the presented access token. Expired
// tokens are accepted so a stale client can still sign out.
func (s *Service) Logout(ctx context.Context, accessToken string) error {
	claims, err := auth.ParseAccessTokenAllowExpired(s.jwt, accessToken)
	if err != nil {
		return errs.New(errs.CodeUnauthorized, "invalid access token")
	}
	if err := s.sessions.Revoke(ctx, claims.ID); err != nil {
		return errs.Wrap(errs.CodeDependency, err, "revoking session")
	}
	return nil
}

func (s *Service) issueTokens(ctx context.Context, user *models.User) (TokenResponse, error) {
	jti := uuid.NewString()
	accessToken, err := auth.MintAccessToken(s.jwt, time.Now(), auth.AccessTokenPayload{
		UserID: user.ID,
		Login:  user.Email,
		JTI:    jti,
	})
	if err != nil {
		return TokenResponse{}, errs.Wrap(errs.CodeInternal, err, "minting access token")
	}

	refreshToken, err := s.sessions.Generate(ctx, jti)
	if err != nil {
		return TokenResponse{}, errs.Wrap(errs.CodeDependency, err, "creating session")
	}

	if s.log != nil {
		s.log.Info(s.log.WithUserID(ctx, user.ID.String()), "user logged in")
	}
	return TokenResponse{AccessToken: accessToken, RefreshToken: refreshToken, TokenType: "bearer"}, nil
}

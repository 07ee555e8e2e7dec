// Package identity resolves bearer tokens to accounts. Two strategies are
// tried in order: tokens minted by this service, then tokens signed by the
// configured external provider. External logins provision an account on
// first sight.
package identity

import (
	"context"
	"strings"

	"github.com/quizhubhq/quizhub-backend/pkg/auth"
	"github.com/quizhubhq/quizhub-backend/pkg/config"
	"github.com/quizhubhq/quizhub-backend/pkg/db/models"
	"github.com/quizhubhq/quizhub-backend/pkg/enums"
	errs "github.com/quizhubhq/quizhub-backend/pkg/errors"
	"github.com/quizhubhq/quizhub-backend/pkg/logger"
	"github.com/quizhubhq/quizhub-backend/pkg/security"
)

const tempPasswordLength = 32

type userStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}

type externalVerifier interface {
	Verify(ctx context.Context, token string) (*auth.ExternalClaims, error)
}

// Verifier resolves a raw bearer token to a stored user.
type Verifier struct {
	users    userStore
	external externalVerifier
	jwt      config.JWTConfig
	password config.PasswordConfig
	log      *logger.Logger
}

// NewVerifier builds the resolver; external may be nil when no provider is
// configured.
func NewVerifier(users userStore, external externalVerifier, jwt config.JWTConfig, password config.PasswordConfig, log *logger.Logger) *Verifier {
	return &Verifier{users: users, external: external, jwt: jwt, password: password, log: log}
}

// Resolve validates the token and returns the account behind it together
// with the strategy that verified it. Local tokens require an existing
// account; external tokens provision one on first login.
func (v *Verifier) Resolve(ctx context.Context, token string) (*models.User, enums.TrustSource, error) {
	if strings.TrimSpace(token) == "" {
		return nil, "", errs.New(errs.CodeUnauthorized, "missing bearer token")
	}

	if claims, err := auth.ParseAccessToken(v.jwt, token); err == nil {
		user, err := v.users.FindByEmail(ctx, claims.Subject)
		if err != nil {
			if errs.HasCode(err, errs.CodeNotFound) {
				return nil, "", errs.New(errs.CodeUnauthorized, "no account for this login")
			}
			return nil, "", err
		}
		return user, enums.TrustSourceLocal, nil
	}

	if v.external == nil {
		return nil, "", errs.New(errs.CodeUnauthorized, "invalid token")
	}

	claims, err := v.external.Verify(ctx, token)
	if err != nil {
		return nil, "", errs.New(errs.CodeUnauthorized, "invalid token")
	}

	user, err := v.resolveExternalAccount(ctx, claims.Email)
	if err != nil {
		return nil, "", err
	}
	return user, enums.TrustSourceExternal, nil
}

// resolveExternalAccount finds the account for a federated login, creating
// it on first sight. The placeholder credential is random so the account
// cannot be entered through the password flow.
func (v *Verifier) resolveExternalAccount(ctx context.Context, email string) (*models.User, error) {
	user, err := v.users.FindByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errs.HasCode(err, errs.CodeNotFound) {
		return nil, err
	}

	temp, err := security.GenerateTempPassword(tempPasswordLength)
	if err != nil {
		return nil, errs.Wrap(errs.CodeInternal, err, "generating placeholder credential")
	}
	hash, err := security.HashPassword(temp, v.password)
	if err != nil {
		return nil, errs.Wrap(errs.CodeInternal, err, "hashing placeholder credential")
	}

	fresh := &models.User{
		Username:     email,
		Email:        email,
		PasswordHash: hash,
		IsActive:     true,
	}
	if err := v.users.Create(ctx, fresh); err != nil {
		// Two first logins can race; the loser reads the winner's row.
		if errs.HasCode(err, errs.CodeConflict) {
			return v.users.FindByEmail(ctx, email)
		}
		return nil, err
	}
	if v.log != nil {
		v.log.Info(v.log.WithUserID(ctx, fresh.ID.String()), "provisioned account for external login")
	}
	return fresh, nil
}

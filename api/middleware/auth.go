package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/quizhubhq/quizhub-backend/api/responses"
	"github.com/quizhubhq/quizhub-backend/pkg/db/models"
	"github.com/quizhubhq/quizhub-backend/pkg/enums"
	errs "github.com/quizhubhq/quizhub-backend/pkg/errors"
	"github.com/quizhubhq/quizhub-backend/pkg/logger"
)

// identityResolver turns a bearer token into an account.
type identityResolver interface {
	Resolve(ctx context.Context, token string) (*models.User, enums.TrustSource, error)
}

// Authenticator guards routes behind bearer authentication.
type Authenticator struct {
	identity identityResolver
	log      *logger.Logger
}

func NewAuthenticator(identity identityResolver, log *logger.Logger) *Authenticator {
	return &Authenticator{identity: identity, log: log}
}

// Require rejects requests without a valid bearer token and stores the
// resolved actor in the request context.
func (a *Authenticator) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := bearerToken(r)
		if err != nil {
			responses.WriteError(w, r, a.log, err)
			return
		}

		user, source, err := a.identity.Resolve(r.Context(), token)
		if err != nil {
			responses.WriteError(w, r, a.log, err)
			return
		}

		ctx := WithActor(r.Context(), user, source)
		if a.log != nil {
			ctx = a.log.WithUserID(ctx, user.ID.String())
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", errs.New(errs.CodeUnauthorized, "missing authorization header")
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", errs.New(errs.CodeUnauthorized, "authorization header must be a bearer token")
	}
	return strings.TrimSpace(token), nil
}

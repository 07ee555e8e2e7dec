package middleware

import (
	"context"

	"github.com/quizhubhq/quizhub-backend/pkg/db/models"
	"github.com/quizhubhq/quizhub-backend/pkg/enums"
)

type ctxKey int

const (
	actorKey ctxKey = iota
	trustKey
	requestIDKey
)

// WithActor stores the authenticated user and the strategy that verified
// the token.
func WithActor(ctx context.Context, user *models.User, source enums.TrustSource) context.Context {
	ctx = context.WithValue(ctx, actorKey, user)
	return context.WithValue(ctx, trustKey, source)
}

// ActorFromContext returns the authenticated user, or nil on anonymous
// requests.
func ActorFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(actorKey).(*models.User)
	return user
}

// TrustFromContext returns how the request's token was verified.
func TrustFromContext(ctx context.Context) enums.TrustSource {
	source, _ := ctx.Value(trustKey).(enums.TrustSource)
	return source
}

// WithRequestID stores the request id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext returns the request id, or "" when absent.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

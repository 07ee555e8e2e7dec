// Package session manages refresh tokens tied to access token jtis.
//
// Each login stores an opaque refresh token in redis keyed by the access
// token's jti. Refresh presents the expired access token plus the refresh
// token; rotation replaces both so a stolen refresh token is good for at
// most one exchange.
package session

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/quizhubhq/quizhub-backend/pkg/redis"
)

// ErrInvalidRefreshToken signals a missing, mismatched, or expired session.
var ErrInvalidRefreshToken = errors.New("invalid refresh token")

// sessionStore is the redis surface the manager needs.
type sessionStore interface {
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

// sessionKeyer maps an access token jti to its storage key.
type sessionKeyer func(jti string) string

// Manager issues, rotates, and revokes refresh sessions.
type Manager struct {
	store sessionStore
	keyer sessionKeyer
	ttl   time.Duration
}

// NewManager builds a Manager storing sessions in the given store with the
// given TTL.
func NewManager(store sessionStore, ttl time.Duration) *Manager {
	return &Manager{
		store: store,
		keyer: redis.AccessSessionKey,
		ttl:   ttl,
	}
}

// Generate creates a fresh refresh token for the jti and persists it.
func (m *Manager) Generate(ctx context.Context, jti string) (string, error) {
	if jti == "" {
		return "", fmt.Errorf("jti is required")
	}

	token, err := newRefreshToken()
	if err != nil {
		return "", err
	}
	if err := m.store.Set(ctx, m.keyer(jti), token, m.ttl); err != nil {
		return "", fmt.Errorf("storing session: %w", err)
	}
	return token, nil
}

// Validate checks that the presented refresh token matches the stored one.
func (m *Manager) Validate(ctx context.Context, jti, refreshToken string) error {
	if jti == "" || refreshToken == "" {
		return ErrInvalidRefreshToken
	}

	stored, err := m.store.Get(ctx, m.keyer(jti))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrInvalidRefreshToken
		}
		return fmt.Errorf("loading session: %w", err)
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(refreshToken)) != 1 {
		return ErrInvalidRefreshToken
	}
	return nil
}

// Rotate validates the old session, revokes it, and issues a new refresh
// token under the new jti.
func (m *Manager) Rotate(ctx context.Context, oldJTI, refreshToken, newJTI string) (string, error) {
	if err := m.Validate(ctx, oldJTI, refreshToken); err != nil {
		return "", err
	}
	if err := m.store.Del(ctx, m.keyer(oldJTI)); err != nil {
		return "", fmt.Errorf("revoking session: %w", err)
	}
	return m.Generate(ctx, newJTI)
}

// Revoke removes the session for the jti. Revoking an absent session is not
// an error.
func (m *Manager) Revoke(ctx context.Context, jti string) error {
	if jti == "" {
		return nil
	}
	if err := m.store.Del(ctx, m.keyer(jti)); err != nil {
		return fmt.Errorf("revoking session: %w", err)
	}
	return nil
}

func newRefreshToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating refresh token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

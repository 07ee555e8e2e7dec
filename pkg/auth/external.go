package auth

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"

	"github.com/quizhubhq/quizhub-backend/pkg/config"
)

// ExternalClaims is what the federated provider's token yields after
// verification: the email claim is the subject used to resolve (or
// provision) the local account.
type ExternalClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// ExternalVerifier validates tokens signed by the external identity
// provider. Signing keys are fetched from the provider's published JWKS by
// key id; the keyfunc client caches and refreshes them in the background.
type ExternalVerifier struct {
	cfg config.ExternalIdentityConfig

	mu      sync.Mutex
	keyfunc keyfunc.Keyfunc
}

// NewExternalVerifier builds a verifier for the configured provider. The
// JWKS is fetched lazily on first use so boot does not depend on the
// provider being reachable.
func NewExternalVerifier(cfg config.ExternalIdentityConfig) (*ExternalVerifier, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("external identity domain is required")
	}
	return &ExternalVerifier{cfg: cfg}, nil
}

// Verify validates signature, audience, and issuer, returning the embedded
// email claim.
func (v *ExternalVerifier) Verify(ctx context.Context, tokenString string) (*ExternalClaims, error) {
	kf, err := v.keyfuncFor(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading jwks: %w", err)
	}

	claims := &ExternalClaims{}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
	}
	if v.cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(v.cfg.Audience))
	}
	if v.cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.cfg.Issuer))
	}

	if _, err := jwt.ParseWithClaims(tokenString, claims, kf.Keyfunc, opts...); err != nil {
		return nil, err
	}
	if strings.TrimSpace(claims.Email) == "" {
		return nil, fmt.Errorf("token has no email claim")
	}
	return claims, nil
}

func (v *ExternalVerifier) keyfuncFor(ctx context.Context) (keyfunc.Keyfunc, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.keyfunc != nil {
		return v.keyfunc, nil
	}
	kf, err := keyfunc.NewDefaultCtx(ctx, []string{v.cfg.JWKSURL()})
	if err != nil {
		return nil, err
	}
	v.keyfunc = kf
	return kf, nil
}

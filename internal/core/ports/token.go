package ports

import (
	"context"
	"time"

	"github.com/ocupalli/occupational-health/internal/core/domain"
)

// TokenIssuer signs access tokens for a claim set.
type TokenIssuer interface {
	Issue(ctx context.Context, claims domain.Claims) (string, error)
}

// TokenValidator verifies access tokens and recovers their claims.
// Failures wrap one of domain.ErrTokenMalformed, domain.ErrTokenSignatureInvalid,
// domain.ErrTokenExpired or domain.ErrTokenRevoked.
type TokenValidator interface {
	Validate(ctx context.Context, token string) (*domain.Claims, error)
}

// TokenRevocationStore is the server-side blacklist consulted during
// validation. Entries only need to live until the token would expire anyway.
type TokenRevocationStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// PasswordHasher hashes and verifies secrets.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	// Compare reports whether plaintext matches hash. A mismatch is not an
	// error; only a malformed stored hash is.
	Compare(hash, plaintext string) (bool, error)
}

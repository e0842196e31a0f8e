package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/ocupalli/occupational-health/internal/core/domain"
	"github.com/ocupalli/occupational-health/internal/core/ports"
)

const defaultTokenTTL = 24 * time.Hour

// KeySource resolves the HMAC signing key. Call sites only see this
// indirection, so a rotating source can replace StaticKey without changes.
type KeySource interface {
	SigningKey(ctx context.Context) ([]byte, error)
}

// StaticKey is a KeySource fixed at startup.
type StaticKey []byte

func (k StaticKey) SigningKey(context.Context) ([]byte, error) {
	if len(k) == 0 {
		return nil, errors.New("signing key is empty")
	}
	return k, nil
}

// accessClaims is the JWT payload.
type accessClaims struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and validates HS256 access tokens.
type TokenService struct {
	keys        KeySource
	ttl         time.Duration
	revocations ports.TokenRevocationStore
	now         func() time.Time
}

type TokenOption func(*TokenService)

// WithRevocationStore makes Validate reject blacklisted token ids.
func WithRevocationStore(store ports.TokenRevocationStore) TokenOption {
	return func(s *TokenService) { s.revocations = store }
}

// WithClock overrides the time source used for iat/exp.
func WithClock(now func() time.Time) TokenOption {
	return func(s *TokenService) { s.now = now }
}

func NewTokenService(keys KeySource, ttl time.Duration, opts ...TokenOption) *TokenService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	s := &TokenService{keys: keys, ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TTL returns the lifetime given to issued tokens.
func (s *TokenService) TTL() time.Duration { return s.ttl }

func (s *TokenService) Issue(ctx context.Context, c domain.Claims) (string, error) {
	key, err := s.keys.SigningKey(ctx)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	now := s.now()
	claims := accessClaims{
		UserID:   c.UserID,
		Username: c.Username,
		Role:     c.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   c.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return signed, nil
}

func (s *TokenService) Validate(ctx context.Context, token string) (*domain.Claims, error) {
	key, err := s.keys.SigningKey(ctx)
	if err != nil {
		return nil, fmt.Errorf("validate token: %w", err)
	}

	var claims accessClaims
	_, err = jwt.ParseWithClaims(token, &claims,
		func(*jwt.Token) (any, error) { return key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, classifyTokenError(err)
	}
	if claims.UserID == "" || claims.Username == "" {
		return nil, fmt.Errorf("%w: missing identity claims", domain.ErrTokenMalformed)
	}

	if s.revocations != nil && claims.ID != "" {
		revoked, err := s.revocations.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, fmt.Errorf("validate token: revocation lookup: %w", err)
		}
		if revoked {
			return nil, domain.ErrTokenRevoked
		}
	}

	out := &domain.Claims{
		UserID:   claims.UserID,
		Username: claims.Username,
		Role:     claims.Role,
		TokenID:  claims.ID,
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}

// classifyTokenError maps jwt parse failures onto the domain token errors.
// The signature is checked before time-based claims, so a forged expired
// token reports a signature failure.
func classifyTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %w", domain.ErrTokenSignatureInvalid, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %w", domain.ErrTokenExpired, err)
	default:
		return fmt.Errorf("%w: %w", domain.ErrTokenMalformed, err)
	}
}

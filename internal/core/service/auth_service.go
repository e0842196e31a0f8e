package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ocupalli/occupational-health/internal/core/domain"
	"github.com/ocupalli/occupational-health/internal/core/ports"
)

const (
	MsgMissingCredentials = "Usuário e senha são obrigatórios"
	MsgInvalidCredentials = "Credenciais inválidas"
	MsgNotAuthenticated   = "Não autenticado"
	MsgUserNotFound       = "Usuário não encontrado"
)

// AuthService implements login, identity lookup and logout.
type AuthService struct {
	users       ports.UserRepository
	hasher      ports.PasswordHasher
	tokens      ports.TokenIssuer
	revocations ports.TokenRevocationStore
	dummyHash   string
	now         func() time.Time
	logger      zerolog.Logger
}

// NewAuthService wires the auth flow. revocations may be nil, in which case
// logout is a stateless acknowledgement.
func NewAuthService(
	users ports.UserRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenIssuer,
	revocations ports.TokenRevocationStore,
	logger zerolog.Logger,
) (*AuthService, error) {
	// Compared against when the username is unknown so both failure paths
	// pay for one hash comparison.
	dummy, err := hasher.Hash("dummy-password-for-timing")
	if err != nil {
		return nil, fmt.Errorf("auth service: %w", err)
	}
	return &AuthService{
		users:       users,
		hasher:      hasher,
		tokens:      tokens,
		revocations: revocations,
		dummyHash:   dummy,
		now:         time.Now,
		logger:      logger,
	}, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, domain.NewValidationError(MsgMissingCredentials)
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			return nil, fmt.Errorf("login: %w", err)
		}
		_, _ = s.hasher.Compare(s.dummyHash, password)
		s.logger.Info().Str("username", username).Msg("login rejected: unknown user")
		return nil, domain.NewUnauthorizedError(MsgInvalidCredentials, nil)
	}

	ok, err := s.hasher.Compare(user.PasswordHash, password)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if !ok {
		s.logger.Info().Str("username", username).Msg("login rejected: wrong password")
		return nil, domain.NewUnauthorizedError(MsgInvalidCredentials, nil)
	}

	token, err := s.tokens.Issue(ctx, domain.Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	})
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("login succeeded")
	return &ports.LoginResult{User: withoutSecret(user), Token: token}, nil
}

func (s *AuthService) Me(ctx context.Context, claims *domain.Claims) (*domain.User, error) {
	if claims == nil {
		return nil, domain.NewUnauthorizedError(MsgNotAuthenticated, nil)
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.NewNotFoundError(MsgUserNotFound)
		}
		return nil, fmt.Errorf("me: %w", err)
	}
	return withoutSecret(user), nil
}

// Logout revokes the presented token when a revocation store is configured.
// Without one, discarding the token is left to the client.
func (s *AuthService) Logout(ctx context.Context, claims *domain.Claims) error {
	if s.revocations == nil || claims == nil || claims.TokenID == "" {
		return nil
	}

	ttl := claims.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	if err := s.revocations.Revoke(ctx, claims.TokenID, ttl); err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	s.logger.Info().Str("user_id", claims.UserID).Str("token_id", claims.TokenID).Msg("token revoked")
	return nil
}

func withoutSecret(u *domain.User) *domain.User {
	clone := *u
	clone.PasswordHash = ""
	return &clone
}

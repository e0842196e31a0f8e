package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ocupalli/occupational-health/internal/core/domain"
	"github.com/ocupalli/occupational-health/internal/core/ports"
)

const minPasswordLength = 6

// UserService manages user accounts.
type UserService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, hasher ports.PasswordHasher, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, hasher: hasher, logger: logger}
}

func (s *UserService) CreateUser(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	in.Nome = strings.TrimSpace(in.Nome)
	in.Username = strings.TrimSpace(in.Username)
	if in.Role == "" {
		in.Role = domain.RoleUser
	}

	switch {
	case in.Nome == "":
		return nil, domain.NewValidationError("Nome é obrigatório")
	case in.Username == "":
		return nil, domain.NewValidationError("Usuário é obrigatório")
	case len(in.Password) < minPasswordLength:
		return nil, domain.NewValidationError(fmt.Sprintf("Senha deve ter no mínimo %d caracteres", minPasswordLength))
	case !domain.ValidRole(in.Role):
		return nil, domain.NewValidationError("Role inválida")
	}

	if _, err := s.repo.FindByUsername(ctx, in.Username); err == nil {
		return nil, domain.NewDuplicateFieldError("username", in.Username)
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("create user: %w", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Nome:         in.Nome,
		Username:     in.Username,
		PasswordHash: hash,
		Role:         in.Role,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			return nil, domain.NewDuplicateFieldError("username", in.Username)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID).Str("username", user.Username).Str("role", user.Role).Msg("user created")
	return withoutSecret(user), nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	out := make([]*domain.User, len(users))
	for i, u := range users {
		out[i] = withoutSecret(u)
	}
	return out, nil
}

// EnsureAdmin creates an ADMIN account unless the username already exists.
// It reports whether an account was created.
func (s *UserService) EnsureAdmin(ctx context.Context, nome, username, password string) (bool, error) {
	if username == "" || password == "" {
		return false, nil
	}
	if nome == "" {
		nome = "Administrador"
	}

	_, err := s.CreateUser(ctx, ports.CreateUserInput{
		Nome:     nome,
		Username: username,
		Password: password,
		Role:     domain.RoleAdmin,
	})
	var dup *domain.DuplicateFieldError
	switch {
	case err == nil:
		return true, nil
	case errors.As(err, &dup):
		return false, nil
	default:
		return false, fmt.Errorf("bootstrap admin: %w", err)
	}
}

package ports

import (
	"context"

	"github.com/ocupalli/occupational-health/internal/core/domain"
)

// LoginResult is returned by a successful login.
type LoginResult struct {
	User  *domain.User
	Token string
}

// AuthService implements the login / me / logout flow.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	// Me re-reads the caller's user record. A nil claims value means the
	// request was never authenticated.
	Me(ctx context.Context, claims *domain.Claims) (*domain.User, error)
	Logout(ctx context.Context, claims *domain.Claims) error
}

// CreateUserInput carries the data needed to create a user account.
type CreateUserInput struct {
	Nome     string
	Username string
	Password string
	Role     string
}

// UserService manages user accounts.
type UserService interface {
	CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
}

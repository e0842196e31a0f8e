package ports

import (
	"context"

	"github.com/ocupalli/occupational-health/internal/core/domain"
)

// UserRepository defines persistence operations for users.
// Lookups return domain.ErrUserNotFound when no record matches; Create
// returns domain.ErrDuplicateKey when the username is taken.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}

package ports

import (
	"context"

	"github.com/ocupalli/occupational-health/internal/core/domain"
)

// Mapping repositories return domain.ErrNotFound when a lookup matches
// nothing and domain.ErrDuplicateKey when a unique index rejects a write.

type RiskCategoryRepository interface {
	Create(ctx context.Context, c *domain.RiskCategory) error
	FindByID(ctx context.Context, id string) (*domain.RiskCategory, error)
	FindByName(ctx context.Context, name string) (*domain.RiskCategory, error)
	List(ctx context.Context) ([]*domain.RiskCategory, error)
	Update(ctx context.Context, c *domain.RiskCategory) error
	Delete(ctx context.Context, id string) error
}

// RiskFilter narrows a risk listing. Zero values mean "no filter".
type RiskFilter struct {
	Type       domain.RiskType
	CategoryID string
	IsGlobal   *bool
	Active     *bool
	Search     string // case-insensitive match on name, description or code
}

type RiskRepository interface {
	Create(ctx context.Context, r *domain.Risk) error
	FindByID(ctx context.Context, id string) (*domain.Risk, error)
	FindByName(ctx context.Context, name string) (*domain.Risk, error)
	FindByCode(ctx context.Context, code string) (*domain.Risk, error)
	List(ctx context.Context, filter RiskFilter) ([]*domain.Risk, error)
	Update(ctx context.Context, r *domain.Risk) error
	CountByCategory(ctx context.Context, categoryID string) (int64, error)
}

type EnvironmentRepository interface {
	Create(ctx context.Context, e *domain.Environment) error
	FindByID(ctx context.Context, id string) (*domain.Environment, error)
	FindByCompanyAndName(ctx context.Context, companyID, name string) (*domain.Environment, error)
	List(ctx context.Context, companyID string, active *bool) ([]*domain.Environment, error)
	Delete(ctx context.Context, id string) error
}

type JobRepository interface {
	Create(ctx context.Context, j *domain.Job) error
	FindByID(ctx context.Context, id string) (*domain.Job, error)
	AddEnvironment(ctx context.Context, jobID, environmentID string) error
	CountByMainEnvironment(ctx context.Context, environmentID string) (int64, error)
}

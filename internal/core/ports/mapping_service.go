package ports

import (
	"context"
	"time"

	"github.com/ocupalli/occupational-health/internal/core/domain"
)

// RiskCategoryInput carries the writable fields of a risk category.
type RiskCategoryInput struct {
	Name        string
	Description string
	Color       string
	Icon        string
}

// RiskCategoryUpdate carries a partial update; nil fields are left unchanged.
type RiskCategoryUpdate struct {
	Name        *string
	Description *string
	Color       *string
	Icon        *string
}

type RiskCategoryService interface {
	Create(ctx context.Context, in RiskCategoryInput) (*domain.RiskCategory, error)
	List(ctx context.Context) ([]*domain.RiskCategory, error)
	Get(ctx context.Context, id string) (*domain.RiskCategory, error)
	Update(ctx context.Context, id string, in RiskCategoryUpdate) (*domain.RiskCategory, error)
	Delete(ctx context.Context, id string) error
}

// RiskInput carries the writable fields of a risk.
type RiskInput struct {
	CategoryID      string
	Type            domain.RiskType
	Code            string
	Name            string
	Description     string
	SourceGenerator string
	HealthEffects   string
	ControlMeasures string
	AllowsIntensity bool
	IsGlobal        *bool // defaults to true
}

// RiskUpdate carries a partial update; nil fields are left unchanged.
type RiskUpdate struct {
	Type            *domain.RiskType
	Code            *string
	Name            *string
	Description     *string
	SourceGenerator *string
	HealthEffects   *string
	ControlMeasures *string
	AllowsIntensity *bool
	IsGlobal        *bool
	Active          *bool
}

type RiskService interface {
	Create(ctx context.Context, in RiskInput) (*domain.Risk, error)
	List(ctx context.Context, filter RiskFilter) ([]*domain.Risk, error)
	Get(ctx context.Context, id string) (*domain.Risk, error)
	Update(ctx context.Context, id string, in RiskUpdate) (*domain.Risk, error)
	// Delete deactivates the risk; risks are never removed.
	Delete(ctx context.Context, id string) (*domain.Risk, error)
}

// EnvironmentInput carries the writable fields of an environment.
type EnvironmentInput struct {
	CompanyID           string
	Name                string
	Description         string
	LocationType        domain.EnvironmentLocationType
	RegisteredInESocial bool
	PreviousESocialCode string
	ValidityStart       *time.Time
}

type EnvironmentService interface {
	Create(ctx context.Context, in EnvironmentInput) (*domain.Environment, error)
	List(ctx context.Context, companyID string, active *bool) ([]*domain.Environment, error)
	Get(ctx context.Context, id string) (*domain.Environment, error)
	Delete(ctx context.Context, id string) error
}

// JobInput carries the data needed to map a new job.
type JobInput struct {
	CompanyID         string
	Title             string
	CBO               string
	MainEnvironmentID string
	EnvironmentIDs    []string
	Notes             string
}

type JobService interface {
	Create(ctx context.Context, in JobInput) (*domain.Job, error)
	Get(ctx context.Context, id string) (*domain.Job, error)
	AddEnvironment(ctx context.Context, jobID, environmentID string) (*domain.Job, error)
}

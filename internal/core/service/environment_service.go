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

const msgEnvironmentNotFound = "Ambiente não encontrado"

type EnvironmentService struct {
	repo   ports.EnvironmentRepository
	jobs   ports.JobRepository
	logger zerolog.Logger
}

func NewEnvironmentService(repo ports.EnvironmentRepository, jobs ports.JobRepository, logger zerolog.Logger) *EnvironmentService {
	return &EnvironmentService{repo: repo, jobs: jobs, logger: logger}
}

func (s *EnvironmentService) Create(ctx context.Context, in ports.EnvironmentInput) (*domain.Environment, error) {
	if err := validateEnvironment(in); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)

	// Names are unique per company, not globally.
	_, err := s.repo.FindByCompanyAndName(ctx, in.CompanyID, name)
	switch {
	case err == nil:
		return nil, domain.NewDuplicateFieldError("name", name+" (nesta empresa)")
	case !errors.Is(err, domain.ErrNotFound):
		return nil, fmt.Errorf("create environment: %w", err)
	}

	locationType := in.LocationType
	if locationType == "" {
		locationType = domain.LocationEmployerEstablishment
	}

	now := time.Now().UTC()
	env := &domain.Environment{
		ID:                  uuid.NewString(),
		CompanyID:           in.CompanyID,
		Name:                name,
		Description:         in.Description,
		LocationType:        locationType,
		RegisteredInESocial: in.RegisteredInESocial,
		PreviousESocialCode: in.PreviousESocialCode,
		ValidityStart:       in.ValidityStart,
		Active:              true,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := s.repo.Create(ctx, env); err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			return nil, domain.NewDuplicateFieldError("name", name+" (nesta empresa)")
		}
		return nil, fmt.Errorf("create environment: %w", err)
	}

	s.logger.Info().Str("environment_id", env.ID).Str("company_id", env.CompanyID).Msg("environment created")
	return env, nil
}

func (s *EnvironmentService) List(ctx context.Context, companyID string, active *bool) ([]*domain.Environment, error) {
	envs, err := s.repo.List(ctx, companyID, active)
	if err != nil {
		return nil, fmt.Errorf("list environments: %w", err)
	}
	return envs, nil
}

func (s *EnvironmentService) Get(ctx context.Context, id string) (*domain.Environment, error) {
	env, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewNotFoundError(msgEnvironmentNotFound)
		}
		return nil, fmt.Errorf("get environment: %w", err)
	}
	return env, nil
}

// Delete removes an environment no job uses as its main environment.
func (s *EnvironmentService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	count, err := s.jobs.CountByMainEnvironment(ctx, id)
	if err != nil {
		return fmt.Errorf("delete environment: %w", err)
	}
	if count > 0 {
		return domain.NewCannotDeleteDependencyError("ambiente", count, "cargos")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete environment: %w", err)
	}
	s.logger.Info().Str("environment_id", id).Msg("environment deleted")
	return nil
}

func validateEnvironment(in ports.EnvironmentInput) error {
	switch {
	case strings.TrimSpace(in.CompanyID) == "":
		return domain.NewValidationError("Empresa é obrigatória")
	case strings.TrimSpace(in.Name) == "":
		return domain.NewValidationError("Nome do ambiente é obrigatório")
	}
	switch in.LocationType {
	case "", domain.LocationEmployerEstablishment, domain.LocationThirdPartyEstablishment, domain.LocationMobile:
	default:
		return domain.NewValidationError("Tipo de localização inválido")
	}
	if in.RegisteredInESocial {
		if in.PreviousESocialCode == "" {
			return domain.NewValidationError("Código anterior do eSocial é obrigatório quando registeredInESocial = true")
		}
		if in.ValidityStart == nil {
			return domain.NewValidationError("Data de início da validade é obrigatória quando registeredInESocial = true")
		}
	}
	return nil
}

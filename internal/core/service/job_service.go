package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ocupalli/occupational-health/internal/core/domain"
	"github.com/ocupalli/occupational-health/internal/core/ports"
)

const (
	msgJobNotFound        = "Cargo não encontrado"
	msgEnvironmentNotInCo = "O ambiente não pertence à mesma empresa do cargo"
)

type JobService struct {
	repo         ports.JobRepository
	environments ports.EnvironmentRepository
	logger       zerolog.Logger
}

func NewJobService(repo ports.JobRepository, environments ports.EnvironmentRepository, logger zerolog.Logger) *JobService {
	return &JobService{repo: repo, environments: environments, logger: logger}
}

func (s *JobService) Create(ctx context.Context, in ports.JobInput) (*domain.Job, error) {
	title := strings.TrimSpace(in.Title)
	switch {
	case strings.TrimSpace(in.CompanyID) == "":
		return nil, domain.NewValidationError("Empresa é obrigatória")
	case title == "":
		return nil, domain.NewValidationError("Título do cargo é obrigatório")
	}

	if in.MainEnvironmentID != "" {
		if err := s.checkEnvironment(ctx, in.MainEnvironmentID, in.CompanyID); err != nil {
			return nil, err
		}
	}

	envIDs := make([]string, 0, len(in.EnvironmentIDs))
	for _, id := range in.EnvironmentIDs {
		if slices.Contains(envIDs, id) {
			continue
		}
		if err := s.checkEnvironment(ctx, id, in.CompanyID); err != nil {
			return nil, err
		}
		envIDs = append(envIDs, id)
	}

	now := time.Now().UTC()
	job := &domain.Job{
		ID:                uuid.NewString(),
		CompanyID:         in.CompanyID,
		Title:             title,
		CBO:               in.CBO,
		MainEnvironmentID: in.MainEnvironmentID,
		EnvironmentIDs:    envIDs,
		Notes:             in.Notes,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.repo.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}

	s.logger.Info().Str("job_id", job.ID).Str("company_id", job.CompanyID).Msg("job created")
	return job, nil
}

func (s *JobService) Get(ctx context.Context, id string) (*domain.Job, error) {
	job, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewNotFoundError(msgJobNotFound)
		}
		return nil, fmt.Errorf("get job: %w", err)
	}
	return job, nil
}

func (s *JobService) AddEnvironment(ctx context.Context, jobID, environmentID string) (*domain.Job, error) {
	job, err := s.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if err := s.checkEnvironment(ctx, environmentID, job.CompanyID); err != nil {
		return nil, err
	}
	if slices.Contains(job.EnvironmentIDs, environmentID) {
		return nil, domain.NewDuplicateFieldError("environmentId", environmentID)
	}

	if err := s.repo.AddEnvironment(ctx, jobID, environmentID); err != nil {
		return nil, fmt.Errorf("add job environment: %w", err)
	}
	job.EnvironmentIDs = append(job.EnvironmentIDs, environmentID)
	return job, nil
}

// checkEnvironment requires the environment to exist and belong to companyID.
func (s *JobService) checkEnvironment(ctx context.Context, environmentID, companyID string) error {
	env, err := s.environments.FindByID(ctx, environmentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NewNotFoundError(msgEnvironmentNotFound)
		}
		return fmt.Errorf("check environment: %w", err)
	}
	if env.CompanyID != companyID {
		return domain.NewInvalidRelationshipError(msgEnvironmentNotInCo)
	}
	return nil
}

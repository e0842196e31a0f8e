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

const msgRiskNotFound = "Risco não encontrado"

type RiskService struct {
	repo       ports.RiskRepository
	categories ports.RiskCategoryRepository
	logger     zerolog.Logger
}

func NewRiskService(repo ports.RiskRepository, categories ports.RiskCategoryRepository, logger zerolog.Logger) *RiskService {
	return &RiskService{repo: repo, categories: categories, logger: logger}
}

func (s *RiskService) Create(ctx context.Context, in ports.RiskInput) (*domain.Risk, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewValidationError("Nome do risco é obrigatório")
	}
	if !domain.ValidRiskType(in.Type) {
		return nil, domain.NewValidationError("Tipo de risco inválido")
	}

	if _, err := s.categories.FindByID(ctx, in.CategoryID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewNotFoundError(msgRiskCategoryNotFound)
		}
		return nil, fmt.Errorf("create risk: %w", err)
	}

	if err := s.ensureUnique(ctx, "", name, in.Code); err != nil {
		return nil, err
	}

	isGlobal := true
	if in.IsGlobal != nil {
		isGlobal = *in.IsGlobal
	}

	now := time.Now().UTC()
	r := &domain.Risk{
		ID:              uuid.NewString(),
		CategoryID:      in.CategoryID,
		Type:            in.Type,
		Code:            in.Code,
		Name:            name,
		Description:     in.Description,
		SourceGenerator: in.SourceGenerator,
		HealthEffects:   in.HealthEffects,
		ControlMeasures: in.ControlMeasures,
		AllowsIntensity: in.AllowsIntensity,
		IsGlobal:        isGlobal,
		Active:          true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.repo.Create(ctx, r); err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			return nil, s.duplicateRisk(ctx, r)
		}
		return nil, fmt.Errorf("create risk: %w", err)
	}

	s.logger.Info().Str("risk_id", r.ID).Str("type", string(r.Type)).Msg("risk created")
	return r, nil
}

func (s *RiskService) List(ctx context.Context, filter ports.RiskFilter) ([]*domain.Risk, error) {
	if filter.Type != "" && !domain.ValidRiskType(filter.Type) {
		return nil, domain.NewValidationError("Tipo de risco inválido")
	}
	risks, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list risks: %w", err)
	}
	return risks, nil
}

func (s *RiskService) Get(ctx context.Context, id string) (*domain.Risk, error) {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewNotFoundError(msgRiskNotFound)
		}
		return nil, fmt.Errorf("get risk: %w", err)
	}
	return r, nil
}

func (s *RiskService) Update(ctx context.Context, id string, in ports.RiskUpdate) (*domain.Risk, error) {
	r, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	var name, code string
	if in.Name != nil {
		name = strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.NewValidationError("Nome do risco é obrigatório")
		}
	}
	if in.Code != nil {
		code = *in.Code
	}
	if err := s.ensureUnique(ctx, id, name, code); err != nil {
		return nil, err
	}

	if in.Type != nil {
		if !domain.ValidRiskType(*in.Type) {
			return nil, domain.NewValidationError("Tipo de risco inválido")
		}
		r.Type = *in.Type
	}
	if in.Name != nil {
		r.Name = name
	}
	if in.Code != nil {
		r.Code = code
	}
	setString(&r.Description, in.Description)
	setString(&r.SourceGenerator, in.SourceGenerator)
	setString(&r.HealthEffects, in.HealthEffects)
	setString(&r.ControlMeasures, in.ControlMeasures)
	setBool(&r.AllowsIntensity, in.AllowsIntensity)
	setBool(&r.IsGlobal, in.IsGlobal)
	setBool(&r.Active, in.Active)
	r.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, r); err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			return nil, s.duplicateRisk(ctx, r)
		}
		return nil, fmt.Errorf("update risk: %w", err)
	}
	return r, nil
}

// Delete is a soft delete: the risk stays referenced by existing mappings.
func (s *RiskService) Delete(ctx context.Context, id string) (*domain.Risk, error) {
	r, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	r.Active = false
	r.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, r); err != nil {
		return nil, fmt.Errorf("deactivate risk: %w", err)
	}
	s.logger.Info().Str("risk_id", id).Msg("risk deactivated")
	return r, nil
}

// ensureUnique checks name and code against every risk other than selfID.
// Empty values are skipped.
func (s *RiskService) ensureUnique(ctx context.Context, selfID, name, code string) error {
	if name != "" {
		existing, err := s.repo.FindByName(ctx, name)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("check risk name: %w", err)
		}
		if err == nil && existing.ID != selfID {
			return domain.NewDuplicateFieldError("name", name)
		}
	}
	if code != "" {
		existing, err := s.repo.FindByCode(ctx, code)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("check risk code: %w", err)
		}
		if err == nil && existing.ID != selfID {
			return domain.NewDuplicateFieldError("code", code)
		}
	}
	return nil
}

// duplicateRisk resolves which unique index a concurrent write hit on r.
func (s *RiskService) duplicateRisk(ctx context.Context, r *domain.Risk) error {
	if err := s.ensureUnique(ctx, r.ID, r.Name, r.Code); err != nil {
		return err
	}
	if r.Code != "" {
		return domain.NewDuplicateFieldError("code", r.Code)
	}
	return domain.NewDuplicateFieldError("name", r.Name)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

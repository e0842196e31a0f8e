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

const msgRiskCategoryNotFound = "Categoria de risco não encontrada"

type RiskCategoryService struct {
	repo   ports.RiskCategoryRepository
	risks  ports.RiskRepository
	logger zerolog.Logger
}

func NewRiskCategoryService(repo ports.RiskCategoryRepository, risks ports.RiskRepository, logger zerolog.Logger) *RiskCategoryService {
	return &RiskCategoryService{repo: repo, risks: risks, logger: logger}
}

func (s *RiskCategoryService) Create(ctx context.Context, in ports.RiskCategoryInput) (*domain.RiskCategory, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewValidationError("Nome da categoria é obrigatório")
	}

	if err := s.ensureNameFree(ctx, name, ""); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	c := &domain.RiskCategory{
		ID:          uuid.NewString(),
		Name:        name,
		Description: in.Description,
		Color:       in.Color,
		Icon:        in.Icon,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			return nil, domain.NewDuplicateFieldError("name", name)
		}
		return nil, fmt.Errorf("create risk category: %w", err)
	}

	s.logger.Info().Str("category_id", c.ID).Str("name", c.Name).Msg("risk category created")
	return c, nil
}

func (s *RiskCategoryService) List(ctx context.Context) ([]*domain.RiskCategory, error) {
	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list risk categories: %w", err)
	}
	for _, c := range categories {
		if c.RiskCount, err = s.risks.CountByCategory(ctx, c.ID); err != nil {
			return nil, fmt.Errorf("list risk categories: %w", err)
		}
	}
	return categories, nil
}

func (s *RiskCategoryService) Get(ctx context.Context, id string) (*domain.RiskCategory, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewNotFoundError(msgRiskCategoryNotFound)
		}
		return nil, fmt.Errorf("get risk category: %w", err)
	}
	if c.RiskCount, err = s.risks.CountByCategory(ctx, c.ID); err != nil {
		return nil, fmt.Errorf("get risk category: %w", err)
	}
	return c, nil
}

func (s *RiskCategoryService) Update(ctx context.Context, id string, in ports.RiskCategoryUpdate) (*domain.RiskCategory, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.NewValidationError("Nome da categoria é obrigatório")
		}
		if err := s.ensureNameFree(ctx, name, id); err != nil {
			return nil, err
		}
		c.Name = name
	}
	if in.Description != nil {
		c.Description = *in.Description
	}
	if in.Color != nil {
		c.Color = *in.Color
	}
	if in.Icon != nil {
		c.Icon = *in.Icon
	}
	c.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, c); err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			return nil, domain.NewDuplicateFieldError("name", c.Name)
		}
		return nil, fmt.Errorf("update risk category: %w", err)
	}
	return c, nil
}

// Delete removes a category that no risk references.
func (s *RiskCategoryService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	count, err := s.risks.CountByCategory(ctx, id)
	if err != nil {
		return fmt.Errorf("delete risk category: %w", err)
	}
	if count > 0 {
		return domain.NewCannotDeleteDependencyError("categoria", count, "riscos")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete risk category: %w", err)
	}
	s.logger.Info().Str("category_id", id).Msg("risk category deleted")
	return nil
}

// ensureNameFree fails with DUPLICATE_FIELD when another category (not
// selfID) already uses name.
func (s *RiskCategoryService) ensureNameFree(ctx context.Context, name, selfID string) error {
	existing, err := s.repo.FindByName(ctx, name)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("check risk category name: %w", err)
	case existing.ID != selfID:
		return domain.NewDuplicateFieldError("name", name)
	}
	return nil
}

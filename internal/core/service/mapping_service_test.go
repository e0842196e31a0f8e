package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/ocupalli/occupational-health/internal/core/domain"
	"github.com/ocupalli/occupational-health/internal/core/ports"
)

func ptr[T any](v T) *T { return &v }

func TestRiskCategoryService_DeleteWithDependents(t *testing.T) {
	categories, risks := newStubCategoryRepo(), newStubRiskRepo()
	svc := NewRiskCategoryService(categories, risks, zerolog.Nop())
	riskSvc := NewRiskService(risks, categories, zerolog.Nop())

	cat, err := svc.Create(context.Background(), ports.RiskCategoryInput{Name: "Químicos"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	for _, name := range []string{"Benzeno", "Tolueno", "Xileno"} {
		if _, err := riskSvc.Create(context.Background(), ports.RiskInput{CategoryID: cat.ID, Type: domain.RiskChemical, Name: name}); err != nil {
			t.Fatalf("create risk %s: %v", name, err)
		}
	}

	err = svc.Delete(context.Background(), cat.ID)

	var de *domain.CannotDeleteDependencyError
	if !errors.As(err, &de) {
		t.Fatalf("expected CannotDeleteDependencyError, got %v", err)
	}
	fields := de.Fields()
	if fields["entity"] != "categoria" || fields["dependentCount"] != int64(3) || fields["dependentEntity"] != "riscos" {
		t.Fatalf("unexpected fields: %+v", fields)
	}
	if _, ok := categories.items[cat.ID]; !ok {
		t.Fatalf("category must not be deleted")
	}
}

func TestRiskCategoryService_DeleteEmpty(t *testing.T) {
	categories := newStubCategoryRepo()
	svc := NewRiskCategoryService(categories, newStubRiskRepo(), zerolog.Nop())

	cat, _ := svc.Create(context.Background(), ports.RiskCategoryInput{Name: "Físicos"})
	if err := svc.Delete(context.Background(), cat.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(categories.items) != 0 {
		t.Fatalf("category not deleted")
	}
}

func TestRiskCategoryService_DuplicateName(t *testing.T) {
	svc := NewRiskCategoryService(newStubCategoryRepo(), newStubRiskRepo(), zerolog.Nop())

	first, _ := svc.Create(context.Background(), ports.RiskCategoryInput{Name: "Físicos"})
	second, _ := svc.Create(context.Background(), ports.RiskCategoryInput{Name: "Químicos"})

	_, err := svc.Create(context.Background(), ports.RiskCategoryInput{Name: "Físicos"})
	var dup *domain.DuplicateFieldError
	if !errors.As(err, &dup) || dup.Field != "name" {
		t.Fatalf("expected duplicate name on create, got %v", err)
	}

	_, err = svc.Update(context.Background(), second.ID, ports.RiskCategoryUpdate{Name: ptr("Físicos")})
	if !errors.As(err, &dup) {
		t.Fatalf("expected duplicate name on update, got %v", err)
	}

	// Renaming to its own name is not a conflict.
	if _, err := svc.Update(context.Background(), first.ID, ports.RiskCategoryUpdate{Name: ptr("Físicos"), Color: ptr("#ff0000")}); err != nil {
		t.Fatalf("self update: %v", err)
	}
}

func TestRiskCategoryService_GetNotFound(t *testing.T) {
	svc := NewRiskCategoryService(newStubCategoryRepo(), newStubRiskRepo(), zerolog.Nop())

	var nf *domain.NotFoundError
	if _, err := svc.Get(context.Background(), "missing"); !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestRiskService_Create(t *testing.T) {
	categories, risks := newStubCategoryRepo(), newStubRiskRepo()
	catSvc := NewRiskCategoryService(categories, risks, zerolog.Nop())
	svc := NewRiskService(risks, categories, zerolog.Nop())
	cat, _ := catSvc.Create(context.Background(), ports.RiskCategoryInput{Name: "Físicos"})

	risk, err := svc.Create(context.Background(), ports.RiskInput{CategoryID: cat.ID, Type: domain.RiskPhysical, Code: "01.01.001", Name: "Ruído"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !risk.Active || !risk.IsGlobal {
		t.Fatalf("expected active global risk, got %+v", risk)
	}

	var dup *domain.DuplicateFieldError
	_, err = svc.Create(context.Background(), ports.RiskInput{CategoryID: cat.ID, Type: domain.RiskPhysical, Name: "Ruído"})
	if !errors.As(err, &dup) || dup.Field != "name" {
		t.Fatalf("expected duplicate name, got %v", err)
	}
	_, err = svc.Create(context.Background(), ports.RiskInput{CategoryID: cat.ID, Type: domain.RiskPhysical, Code: "01.01.001", Name: "Vibração"})
	if !errors.As(err, &dup) || dup.Field != "code" {
		t.Fatalf("expected duplicate code, got %v", err)
	}

	var nf *domain.NotFoundError
	if _, err := svc.Create(context.Background(), ports.RiskInput{CategoryID: "missing", Type: domain.RiskPhysical, Name: "Calor"}); !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError for unknown category, got %v", err)
	}

	var ve *domain.ValidationError
	if _, err := svc.Create(context.Background(), ports.RiskInput{CategoryID: cat.ID, Type: "RADIOACTIVE", Name: "Radiação"}); !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError for unknown type, got %v", err)
	}
}

func TestRiskService_DeleteIsSoft(t *testing.T) {
	categories, risks := newStubCategoryRepo(), newStubRiskRepo()
	cat, _ := NewRiskCategoryService(categories, risks, zerolog.Nop()).Create(context.Background(), ports.RiskCategoryInput{Name: "Ergonômicos"})
	svc := NewRiskService(risks, categories, zerolog.Nop())
	risk, _ := svc.Create(context.Background(), ports.RiskInput{CategoryID: cat.ID, Type: domain.RiskErgonomic, Name: "Postura"})

	deleted, err := svc.Delete(context.Background(), risk.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if deleted.Active {
		t.Fatalf("expected inactive risk")
	}
	stored, ok := risks.items[risk.ID]
	if !ok || stored.Active {
		t.Fatalf("risk must remain stored and inactive: %+v", stored)
	}

	active, _ := svc.List(context.Background(), ports.RiskFilter{Active: ptr(true)})
	if len(active) != 0 {
		t.Fatalf("expected no active risks, got %d", len(active))
	}
}

func TestRiskService_ListRejectsUnknownType(t *testing.T) {
	svc := NewRiskService(newStubRiskRepo(), newStubCategoryRepo(), zerolog.Nop())

	var ve *domain.ValidationError
	if _, err := svc.List(context.Background(), ports.RiskFilter{Type: "NOISE"}); !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestEnvironmentService_Create(t *testing.T) {
	svc := NewEnvironmentService(newStubEnvironmentRepo(), newStubJobRepo(), zerolog.Nop())

	env, err := svc.Create(context.Background(), ports.EnvironmentInput{CompanyID: "co-1", Name: "Galpão"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if env.LocationType != domain.LocationEmployerEstablishment || !env.Active {
		t.Fatalf("unexpected defaults: %+v", env)
	}

	_, err = svc.Create(context.Background(), ports.EnvironmentInput{CompanyID: "co-1", Name: "Galpão"})
	var dup *domain.DuplicateFieldError
	if !errors.As(err, &dup) || dup.Value != "Galpão (nesta empresa)" {
		t.Fatalf("expected per-company duplicate, got %v", err)
	}

	if _, err := svc.Create(context.Background(), ports.EnvironmentInput{CompanyID: "co-2", Name: "Galpão"}); err != nil {
		t.Fatalf("same name in another company must be allowed: %v", err)
	}
}

func TestEnvironmentService_ESocialRule(t *testing.T) {
	svc := NewEnvironmentService(newStubEnvironmentRepo(), newStubJobRepo(), zerolog.Nop())
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	for _, in := range []ports.EnvironmentInput{
		{CompanyID: "co-1", Name: "A", RegisteredInESocial: true, ValidityStart: &start},
		{CompanyID: "co-1", Name: "B", RegisteredInESocial: true, PreviousESocialCode: "X1"},
	} {
		var ve *domain.ValidationError
		if _, err := svc.Create(context.Background(), in); !errors.As(err, &ve) {
			t.Fatalf("%s: expected ValidationError, got %v", in.Name, err)
		}
	}

	if _, err := svc.Create(context.Background(), ports.EnvironmentInput{
		CompanyID: "co-1", Name: "C", RegisteredInESocial: true, PreviousESocialCode: "X1", ValidityStart: &start,
	}); err != nil {
		t.Fatalf("complete eSocial data must be accepted: %v", err)
	}
}

func TestEnvironmentService_DeleteWithJobs(t *testing.T) {
	envs, jobs := newStubEnvironmentRepo(), newStubJobRepo()
	envSvc := NewEnvironmentService(envs, jobs, zerolog.Nop())
	jobSvc := NewJobService(jobs, envs, zerolog.Nop())

	env, _ := envSvc.Create(context.Background(), ports.EnvironmentInput{CompanyID: "co-1", Name: "Galpão"})
	for _, title := range []string{"Operador", "Soldador"} {
		if _, err := jobSvc.Create(context.Background(), ports.JobInput{CompanyID: "co-1", Title: title, MainEnvironmentID: env.ID}); err != nil {
			t.Fatalf("create job: %v", err)
		}
	}

	err := envSvc.Delete(context.Background(), env.ID)
	var de *domain.CannotDeleteDependencyError
	if !errors.As(err, &de) {
		t.Fatalf("expected CannotDeleteDependencyError, got %v", err)
	}
	if de.Entity != "ambiente" || de.DependentCount != 2 || de.DependentEntity != "cargos" {
		t.Fatalf("unexpected payload: %+v", de)
	}
}

func TestJobService_InvalidRelationship(t *testing.T) {
	envs, jobs := newStubEnvironmentRepo(), newStubJobRepo()
	envSvc := NewEnvironmentService(envs, jobs, zerolog.Nop())
	svc := NewJobService(jobs, envs, zerolog.Nop())

	other, _ := envSvc.Create(context.Background(), ports.EnvironmentInput{CompanyID: "co-2", Name: "Externo"})

	_, err := svc.Create(context.Background(), ports.JobInput{CompanyID: "co-1", Title: "Operador", MainEnvironmentID: other.ID})
	var ir *domain.InvalidRelationshipError
	if !errors.As(err, &ir) {
		t.Fatalf("expected InvalidRelationshipError, got %v", err)
	}
	if ir.Code() != domain.CodeInvalidRelationship || ir.Fields() != nil {
		t.Fatalf("INVALID_RELATIONSHIP carries only a message")
	}

	var nf *domain.NotFoundError
	if _, err := svc.Create(context.Background(), ports.JobInput{CompanyID: "co-1", Title: "Operador", MainEnvironmentID: "missing"}); !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestJobService_AddEnvironment(t *testing.T) {
	envs, jobs := newStubEnvironmentRepo(), newStubJobRepo()
	envSvc := NewEnvironmentService(envs, jobs, zerolog.Nop())
	svc := NewJobService(jobs, envs, zerolog.Nop())

	main, _ := envSvc.Create(context.Background(), ports.EnvironmentInput{CompanyID: "co-1", Name: "Galpão"})
	extra, _ := envSvc.Create(context.Background(), ports.EnvironmentInput{CompanyID: "co-1", Name: "Escritório"})
	foreign, _ := envSvc.Create(context.Background(), ports.EnvironmentInput{CompanyID: "co-2", Name: "Galpão"})
	job, _ := svc.Create(context.Background(), ports.JobInput{CompanyID: "co-1", Title: "Operador", MainEnvironmentID: main.ID})

	updated, err := svc.AddEnvironment(context.Background(), job.ID, extra.ID)
	if err != nil {
		t.Fatalf("AddEnvironment: %v", err)
	}
	if len(updated.EnvironmentIDs) != 1 || updated.EnvironmentIDs[0] != extra.ID {
		t.Fatalf("unexpected environments: %v", updated.EnvironmentIDs)
	}

	var dup *domain.DuplicateFieldError
	if _, err := svc.AddEnvironment(context.Background(), job.ID, extra.ID); !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateFieldError, got %v", err)
	}

	var ir *domain.InvalidRelationshipError
	if _, err := svc.AddEnvironment(context.Background(), job.ID, foreign.ID); !errors.As(err, &ir) {
		t.Fatalf("expected InvalidRelationshipError, got %v", err)
	}
}

// racingRiskRepo stores rival right before the write and reports the unique
// index violation, as if another request had committed first.
type racingRiskRepo struct {
	*stubRiskRepo
	rival *domain.Risk
}

func (r *racingRiskRepo) race() error {
	if r.rival == nil {
		return nil
	}
	r.items[r.rival.ID] = r.rival
	r.rival = nil
	return domain.ErrDuplicateKey
}

func (r *racingRiskRepo) Create(ctx context.Context, risk *domain.Risk) error {
	if err := r.race(); err != nil {
		return err
	}
	return r.stubRiskRepo.Create(ctx, risk)
}

func (r *racingRiskRepo) Update(ctx context.Context, risk *domain.Risk) error {
	if err := r.race(); err != nil {
		return err
	}
	return r.stubRiskRepo.Update(ctx, risk)
}

func TestRiskService_DuplicateKeyReportsCollidingField(t *testing.T) {
	categories := newStubCategoryRepo()
	risks := &racingRiskRepo{stubRiskRepo: newStubRiskRepo()}
	cat, _ := NewRiskCategoryService(categories, risks, zerolog.Nop()).Create(context.Background(), ports.RiskCategoryInput{Name: "Físicos"})
	svc := NewRiskService(risks, categories, zerolog.Nop())

	risks.rival = &domain.Risk{ID: "rival-1", CategoryID: cat.ID, Type: domain.RiskPhysical, Code: "01.01.001", Name: "Ruído contínuo"}
	_, err := svc.Create(context.Background(), ports.RiskInput{CategoryID: cat.ID, Type: domain.RiskPhysical, Code: "01.01.001", Name: "Ruído"})
	var dup *domain.DuplicateFieldError
	if !errors.As(err, &dup) || dup.Field != "code" || dup.Value != "01.01.001" {
		t.Fatalf("create: expected duplicate code, got %v", err)
	}

	risk, err := svc.Create(context.Background(), ports.RiskInput{CategoryID: cat.ID, Type: domain.RiskPhysical, Code: "01.01.002", Name: "Vibração"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	risks.rival = &domain.Risk{ID: "rival-2", CategoryID: cat.ID, Type: domain.RiskPhysical, Code: "01.01.003", Name: "Calor"}
	_, err = svc.Update(context.Background(), risk.ID, ports.RiskUpdate{Name: ptr("Calor")})
	dup = nil
	if !errors.As(err, &dup) || dup.Field != "name" || dup.Value != "Calor" {
		t.Fatalf("update: expected duplicate name, got %v", err)
	}
}

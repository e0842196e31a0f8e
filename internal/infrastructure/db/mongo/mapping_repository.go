package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ocupalli/occupational-health/internal/core/domain"
	"github.com/ocupalli/occupational-health/internal/core/ports"
)

const (
	collectionRiskCategories = "risk_categories"
	collectionRisks          = "risks"
	collectionEnvironments   = "environments"
	collectionJobs           = "jobs"
)

var byName = options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

// --- Risk categories ---

type RiskCategoryRepository struct {
	col *mongo.Collection
}

func NewRiskCategoryRepository(db *mongo.Database) *RiskCategoryRepository {
	return &RiskCategoryRepository{col: db.Collection(collectionRiskCategories)}
}

func (r *RiskCategoryRepository) Create(ctx context.Context, c *domain.RiskCategory) error {
	return insert(ctx, r.col, c)
}

func (r *RiskCategoryRepository) FindByID(ctx context.Context, id string) (*domain.RiskCategory, error) {
	return findOne[domain.RiskCategory](ctx, r.col, bson.M{"_id": id})
}

func (r *RiskCategoryRepository) FindByName(ctx context.Context, name string) (*domain.RiskCategory, error) {
	return findOne[domain.RiskCategory](ctx, r.col, bson.M{"name": name})
}

func (r *RiskCategoryRepository) List(ctx context.Context) ([]*domain.RiskCategory, error) {
	return findMany[domain.RiskCategory](ctx, r.col, bson.M{}, byName)
}

func (r *RiskCategoryRepository) Update(ctx context.Context, c *domain.RiskCategory) error {
	return replace(ctx, r.col, c.ID, c)
}

func (r *RiskCategoryRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.col, id)
}

// --- Risks ---

type RiskRepository struct {
	col *mongo.Collection
}

func NewRiskRepository(db *mongo.Database) *RiskRepository {
	return &RiskRepository{col: db.Collection(collectionRisks)}
}

func (r *RiskRepository) Create(ctx context.Context, risk *domain.Risk) error {
	return insert(ctx, r.col, risk)
}

func (r *RiskRepository) FindByID(ctx context.Context, id string) (*domain.Risk, error) {
	return findOne[domain.Risk](ctx, r.col, bson.M{"_id": id})
}

func (r *RiskRepository) FindByName(ctx context.Context, name string) (*domain.Risk, error) {
	return findOne[domain.Risk](ctx, r.col, bson.M{"name": name})
}

func (r *RiskRepository) FindByCode(ctx context.Context, code string) (*domain.Risk, error) {
	return findOne[domain.Risk](ctx, r.col, bson.M{"code": code})
}

// List applies the filter fields that are set; search is a case-insensitive
// substring match on name, description or code.
func (r *RiskRepository) List(ctx context.Context, f ports.RiskFilter) ([]*domain.Risk, error) {
	filter := bson.M{}
	if f.Type != "" {
		filter["type"] = string(f.Type)
	}
	if f.CategoryID != "" {
		filter["category_id"] = f.CategoryID
	}
	if f.IsGlobal != nil {
		filter["is_global"] = *f.IsGlobal
	}
	if f.Active != nil {
		filter["active"] = *f.Active
	}
	if f.Search != "" {
		rx := primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"name": rx},
			bson.M{"description": rx},
			bson.M{"code": rx},
		}
	}

	return findMany[domain.Risk](ctx, r.col, filter, byName)
}

func (r *RiskRepository) Update(ctx context.Context, risk *domain.Risk) error {
	return replace(ctx, r.col, risk.ID, risk)
}

func (r *RiskRepository) CountByCategory(ctx context.Context, categoryID string) (int64, error) {
	return count(ctx, r.col, bson.M{"category_id": categoryID})
}

// --- Environments ---

type EnvironmentRepository struct {
	col *mongo.Collection
}

func NewEnvironmentRepository(db *mongo.Database) *EnvironmentRepository {
	return &EnvironmentRepository{col: db.Collection(collectionEnvironments)}
}

func (r *EnvironmentRepository) Create(ctx context.Context, e *domain.Environment) error {
	return insert(ctx, r.col, e)
}

func (r *EnvironmentRepository) FindByID(ctx context.Context, id string) (*domain.Environment, error) {
	return findOne[domain.Environment](ctx, r.col, bson.M{"_id": id})
}

func (r *EnvironmentRepository) FindByCompanyAndName(ctx context.Context, companyID, name string) (*domain.Environment, error) {
	return findOne[domain.Environment](ctx, r.col, bson.M{"company_id": companyID, "name": name})
}

func (r *EnvironmentRepository) List(ctx context.Context, companyID string, active *bool) ([]*domain.Environment, error) {
	filter := bson.M{}
	if companyID != "" {
		filter["company_id"] = companyID
	}
	if active != nil {
		filter["active"] = *active
	}
	return findMany[domain.Environment](ctx, r.col, filter, byName)
}

func (r *EnvironmentRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.col, id)
}

// --- Jobs ---

type JobRepository struct {
	col *mongo.Collection
}

func NewJobRepository(db *mongo.Database) *JobRepository {
	return &JobRepository{col: db.Collection(collectionJobs)}
}

func (r *JobRepository) Create(ctx context.Context, j *domain.Job) error {
	return insert(ctx, r.col, j)
}

func (r *JobRepository) FindByID(ctx context.Context, id string) (*domain.Job, error) {
	return findOne[domain.Job](ctx, r.col, bson.M{"_id": id})
}

// AddEnvironment links an environment to the job; linking twice is a no-op.
func (r *JobRepository) AddEnvironment(ctx context.Context, jobID, environmentID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": jobID},
		bson.M{"$addToSet": bson.M{"environment_ids": environmentID}},
	)
	if err != nil {
		return fmt.Errorf("add job environment: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *JobRepository) CountByMainEnvironment(ctx context.Context, environmentID string) (int64, error) {
	return count(ctx, r.col, bson.M{"main_environment_id": environmentID})
}

// --- shared helpers ---

func insert(ctx context.Context, col *mongo.Collection, doc any) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateKey
		}
		return fmt.Errorf("insert into %s: %w", col.Name(), err)
	}
	return nil
}

// findOne decodes the first match, or returns domain.ErrNotFound.
func findOne[T any](ctx context.Context, col *mongo.Collection, filter bson.M) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var out T
	if err := col.FindOne(ctx, filter).Decode(&out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find in %s: %w", col.Name(), err)
	}
	return &out, nil
}

func findMany[T any](ctx context.Context, col *mongo.Collection, filter bson.M, opts *options.FindOptions) ([]*T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find in %s: %w", col.Name(), err)
	}
	out := []*T{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", col.Name(), err)
	}
	return out, nil
}

func replace(ctx context.Context, col *mongo.Collection, id string, doc any) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := col.ReplaceOne(ctx, bson.M{"_id": id}, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateKey
		}
		return fmt.Errorf("replace in %s: %w", col.Name(), err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func deleteByID(ctx context.Context, col *mongo.Collection, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete from %s: %w", col.Name(), err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func count(ctx context.Context, col *mongo.Collection, filter bson.M) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := col.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", col.Name(), err)
	}
	return n, nil
}

package repository

import (
	"context"

	"github.com/krisnabayu-afk/Flux-version-0.4/internal/apperr"
	"github.com/krisnabayu-afk/Flux-version-0.4/internal/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type SiteRepository struct {
	col *mongo.Collection
}

func NewSiteRepository(db *mongo.Database) *SiteRepository {
	return &SiteRepository{col: db.Collection(ColSites)}
}

func (r *SiteRepository) Get(ctx context.Context, id string) (*models.Site, error) {
	return findByID[models.Site](ctx, r.col, "site", id)
}

// Find lists sites by name. Soft-deleted sites are included unless
// activeOnly is set.
func (r *SiteRepository) Find(ctx context.Context, activeOnly bool) ([]models.Site, error) {
	q := bson.M{}
	if activeOnly {
		q["status"] = models.SiteActive
	}
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	return findAll[models.Site](ctx, r.col, q, opts)
}

func (r *SiteRepository) Insert(ctx context.Context, s *models.Site) error {
	_, err := r.col.InsertOne(ctx, s)
	return apperr.Wrap(err, "insert site")
}

func (r *SiteRepository) UpdateFields(ctx context.Context, id string, set bson.M) error {
	return setByID(ctx, r.col, "site", id, set)
}

type CategoryRepository struct {
	col *mongo.Collection
}

func NewCategoryRepository(db *mongo.Database) *CategoryRepository {
	return &CategoryRepository{col: db.Collection(ColCategories)}
}

func (r *CategoryRepository) Get(ctx context.Context, id string) (*models.ActivityCategory, error) {
	return findByID[models.ActivityCategory](ctx, r.col, "category", id)
}

func (r *CategoryRepository) FindAll(ctx context.Context) ([]models.ActivityCategory, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	return findAll[models.ActivityCategory](ctx, r.col, bson.M{}, opts)
}

func (r *CategoryRepository) Insert(ctx context.Context, c *models.ActivityCategory) error {
	_, err := r.col.InsertOne(ctx, c)
	if isDuplicateKey(err) {
		return apperr.Conflict("category already exists")
	}
	return apperr.Wrap(err, "insert category")
}

func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.col, "category", id)
}

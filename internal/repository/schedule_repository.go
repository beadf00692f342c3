package repository

import (
	"context"
	"time"

	"github.com/krisnabayu-afk/Flux-version-0.4/internal/apperr"
	"github.com/krisnabayu-afk/Flux-version-0.4/internal/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type ScheduleFilter struct {
	UserID    string
	Divisions []models.Division
	// StartFrom/StartTo bound start_date, both inclusive.
	StartFrom *time.Time
	StartTo   *time.Time
	// ActiveOn keeps schedules whose [start, end] covers the instant.
	ActiveOn *time.Time
}

func (f ScheduleFilter) bson() bson.M {
	q := bson.M{}
	if f.UserID != "" {
		q["user_id"] = f.UserID
	}
	if len(f.Divisions) > 0 {
		q["division"] = divisionsIn(f.Divisions)
	}
	start := bson.M{}
	if f.StartFrom != nil {
		start["$gte"] = *f.StartFrom
	}
	if f.StartTo != nil {
		start["$lte"] = *f.StartTo
	}
	if f.ActiveOn != nil {
		start["$lte"] = *f.ActiveOn
		q["end_date"] = bson.M{"$gte": *f.ActiveOn}
	}
	if len(start) > 0 {
		q["start_date"] = start
	}
	return q
}

type ScheduleRepository struct {
	col *mongo.Collection
}

func NewScheduleRepository(db *mongo.Database) *ScheduleRepository {
	return &ScheduleRepository{col: db.Collection(ColSchedules)}
}

func (r *ScheduleRepository) Get(ctx context.Context, id string) (*models.Schedule, error) {
	return findByID[models.Schedule](ctx, r.col, "schedule", id)
}

func (r *ScheduleRepository) Find(ctx context.Context, f ScheduleFilter) ([]models.Schedule, error) {
	opts := options.Find().SetSort(bson.D{{Key: "start_date", Value: 1}}).SetLimit(10 * defaultListLimit)
	return findAll[models.Schedule](ctx, r.col, f.bson(), opts)
}

func (r *ScheduleRepository) Insert(ctx context.Context, s *models.Schedule) error {
	_, err := r.col.InsertOne(ctx, s)
	return apperr.Wrap(err, "insert schedule")
}

func (r *ScheduleRepository) UpdateFields(ctx context.Context, id string, set bson.M) error {
	return setByID(ctx, r.col, "schedule", id, set)
}

func (r *ScheduleRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.col, "schedule", id)
}

// IDsInDivisions lists schedule ids owned by the given divisions.
func (r *ScheduleRepository) IDsInDivisions(ctx context.Context, divisions []models.Division) ([]string, error) {
	opts := options.Find().SetProjection(bson.M{"id": 1})
	rows, err := findAll[idRow](ctx, r.col, bson.M{"division": divisionsIn(divisions)}, opts)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	return ids, nil
}

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

type ActivityFilter struct {
	UserID    string
	Divisions []models.Division
}

type ActivityRepository struct {
	col *mongo.Collection
}

func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{col: db.Collection(ColActivities)}
}

func (r *ActivityRepository) Get(ctx context.Context, id string) (*models.Activity, error) {
	return findByID[models.Activity](ctx, r.col, "activity", id)
}

func (r *ActivityRepository) Insert(ctx context.Context, a *models.Activity) error {
	if a.ProgressUpdates == nil {
		a.ProgressUpdates = []models.ProgressUpdate{}
	}
	_, err := r.col.InsertOne(ctx, a)
	return apperr.Wrap(err, "insert activity")
}

// scheduleLogOrder breaks created_at ties (millisecond precision in the
// store) by _id, which grows with insertion order.
var scheduleLogOrder = bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}

// FindBySchedule returns a schedule's log oldest first.
func (r *ActivityRepository) FindBySchedule(ctx context.Context, scheduleID string) ([]models.Activity, error) {
	opts := options.Find().SetSort(scheduleLogOrder)
	return findAll[models.Activity](ctx, r.col, bson.M{"schedule_id": scheduleID}, opts)
}

// Find lists activities newest first.
func (r *ActivityRepository) Find(ctx context.Context, f ActivityFilter) ([]models.Activity, error) {
	q := bson.M{}
	if f.UserID != "" {
		q["user_id"] = f.UserID
	}
	if len(f.Divisions) > 0 {
		q["division"] = divisionsIn(f.Divisions)
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(defaultListLimit)
	return findAll[models.Activity](ctx, r.col, q, opts)
}

func (r *ActivityRepository) PushProgress(ctx context.Context, id string, u models.ProgressUpdate) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"id": id}, bson.M{
		"$push": bson.M{"progress_updates": u},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return apperr.Wrap(err, "push progress update")
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("activity", id)
	}
	return nil
}

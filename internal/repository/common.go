package repository

import (
	"context"
	"errors"

	"github.com/krisnabayu-afk/Flux-version-0.4/internal/apperr"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	ColUsers         = "users"
	ColSchedules     = "schedules"
	ColShiftChanges  = "shift_change_requests"
	ColActivities    = "activities"
	ColReports       = "reports"
	ColTickets       = "tickets"
	ColSites         = "sites"
	ColCategories    = "activity_categories"
	ColNotifications = "notifications"
	defaultListLimit = 1000
)

type idRow struct {
	ID string `bson:"id"`
}

// isDuplicateKey matches the unique index violation (11000).
func isDuplicateKey(err error) bool {
	var we mongo.WriteException
	if errors.As(err, &we) && len(we.WriteErrors) > 0 && we.WriteErrors[0].Code == 11000 {
		return true
	}
	return mongo.IsDuplicateKeyError(err)
}

func findByID[T any](ctx context.Context, col *mongo.Collection, entity, id string) (*T, error) {
	var out T
	err := col.FindOne(ctx, bson.M{"id": id}).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound(entity, id)
	}
	if err != nil {
		return nil, apperr.Wrap(err, "find "+entity)
	}
	return &out, nil
}

func findAll[T any](ctx context.Context, col *mongo.Collection, filter bson.M, opts *options.FindOptionsBuilder) ([]T, error) {
	if opts == nil {
		opts = options.Find()
	}
	cur, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, apperr.Wrap(err, "find "+col.Name())
	}
	defer cur.Close(ctx)

	out := []T{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, apperr.Wrap(err, "decode "+col.Name())
	}
	return out, nil
}

// setByID applies $set to one document and maps a miss to NotFound.
func setByID(ctx context.Context, col *mongo.Collection, entity, id string, set bson.M) error {
	res, err := col.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return apperr.Wrap(err, "update "+entity)
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound(entity, id)
	}
	return nil
}

// setIf applies $set only when filter still matches; a miss means another
// request changed the document first.
func setIf(ctx context.Context, col *mongo.Collection, entity string, filter, update bson.M) error {
	res, err := col.UpdateOne(ctx, filter, update)
	if err != nil {
		return apperr.Wrap(err, "update "+entity)
	}
	if res.MatchedCount == 0 {
		return apperr.Conflict(entity + " was modified by another request")
	}
	return nil
}

func deleteByID(ctx context.Context, col *mongo.Collection, entity, id string) error {
	res, err := col.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return apperr.Wrap(err, "delete "+entity)
	}
	if res.DeletedCount == 0 {
		return apperr.NotFound(entity, id)
	}
	return nil
}

func divisionsIn[T ~string](ds []T) bson.M {
	vals := make([]string, len(ds))
	for i, d := range ds {
		vals[i] = string(d)
	}
	return bson.M{"$in": vals}
}

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

type ShiftChangeFilter struct {
	Status      models.ShiftChangeStatus
	RequestedBy string
	// ScheduleIDs, when non-nil, restricts to these schedules; an empty
	// slice matches nothing.
	ScheduleIDs []string
}

func (f ShiftChangeFilter) bson() bson.M {
	q := bson.M{}
	if f.Status != "" {
		q["status"] = f.Status
	}
	if f.RequestedBy != "" {
		q["requested_by"] = f.RequestedBy
	}
	if f.ScheduleIDs != nil {
		q["schedule_id"] = bson.M{"$in": f.ScheduleIDs}
	}
	return q
}

type ShiftChangeRepository struct {
	col *mongo.Collection
}

func NewShiftChangeRepository(db *mongo.Database) *ShiftChangeRepository {
	return &ShiftChangeRepository{col: db.Collection(ColShiftChanges)}
}

func (r *ShiftChangeRepository) Get(ctx context.Context, id string) (*models.ShiftChangeRequest, error) {
	return findByID[models.ShiftChangeRequest](ctx, r.col, "shift change request", id)
}

func (r *ShiftChangeRepository) Find(ctx context.Context, f ShiftChangeFilter) ([]models.ShiftChangeRequest, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(defaultListLimit)
	return findAll[models.ShiftChangeRequest](ctx, r.col, f.bson(), opts)
}

func (r *ShiftChangeRepository) Insert(ctx context.Context, req *models.ShiftChangeRequest) error {
	_, err := r.col.InsertOne(ctx, req)
	return apperr.Wrap(err, "insert shift change request")
}

// ReviewIfPending commits a review only while the request is pending.
func (r *ShiftChangeRepository) ReviewIfPending(ctx context.Context, id string, set bson.M) error {
	return setIf(ctx, r.col, "shift change request",
		bson.M{"id": id, "status": models.ShiftChangePending},
		bson.M{"$set": set},
	)
}

// ReopenIfApprovedBy puts an approval by reviewer back to pending. It undoes
// a review whose schedule move could not be written.
func (r *ShiftChangeRepository) ReopenIfApprovedBy(ctx context.Context, id, reviewer string, at time.Time) error {
	return setIf(ctx, r.col, "shift change request",
		bson.M{"id": id, "status": models.ShiftChangeApproved, "reviewed_by": reviewer},
		bson.M{
			"$set":   bson.M{"status": models.ShiftChangePending, "updated_at": at},
			"$unset": bson.M{"reviewed_by": "", "reviewed_at": "", "review_comment": ""},
		},
	)
}

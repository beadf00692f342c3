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

type ReportFilter struct {
	SiteID          string
	CurrentApprover string
}

type ReportRepository struct {
	col *mongo.Collection
}

func NewReportRepository(db *mongo.Database) *ReportRepository {
	return &ReportRepository{col: db.Collection(ColReports)}
}

func (r *ReportRepository) Get(ctx context.Context, id string) (*models.Report, error) {
	return findByID[models.Report](ctx, r.col, "report", id)
}

func (r *ReportRepository) Find(ctx context.Context, f ReportFilter) ([]models.Report, error) {
	q := bson.M{}
	if f.SiteID != "" {
		q["site_id"] = f.SiteID
	}
	if f.CurrentApprover != "" {
		q["current_approver"] = f.CurrentApprover
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(defaultListLimit)
	return findAll[models.Report](ctx, r.col, q, opts)
}

func (r *ReportRepository) Insert(ctx context.Context, rep *models.Report) error {
	if rep.Comments == nil {
		rep.Comments = []models.Comment{}
	}
	_, err := r.col.InsertOne(ctx, rep)
	return apperr.Wrap(err, "insert report")
}

// TransitionIf applies an approval step only if status and current
// approver are still what the caller authorized against.
func (r *ReportRepository) TransitionIf(ctx context.Context, id string, status models.ReportStatus, approver *string, set bson.M) error {
	filter := bson.M{"id": id, "status": status, "current_approver": approver}
	return setIf(ctx, r.col, "report", filter, bson.M{"$set": set})
}

// UpdateIfVersion applies an owner edit against the version that was read
// and bumps the version counter.
func (r *ReportRepository) UpdateIfVersion(ctx context.Context, id string, version int, set bson.M) error {
	filter := bson.M{"id": id, "version": version}
	return setIf(ctx, r.col, "report", filter, bson.M{"$set": set, "$inc": bson.M{"version": 1}})
}

func (r *ReportRepository) PushComment(ctx context.Context, id string, c models.Comment) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"id": id}, bson.M{
		"$push": bson.M{"comments": c},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return apperr.Wrap(err, "push report comment")
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("report", id)
	}
	return nil
}

func (r *ReportRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.col, "report", id)
}

// CountBySubmitter groups reports created in [from, to) by submitter name.
func (r *ReportRepository) CountBySubmitter(ctx context.Context, from, to time.Time, categoryID string) ([]models.SubmitterCount, error) {
	match := bson.M{"created_at": bson.M{"$gte": from, "$lt": to}}
	if categoryID != "" {
		match["category_id"] = categoryID
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$submitted_by_name"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "name", Value: "$_id"},
			{Key: "value", Value: "$count"},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "value", Value: -1}, {Key: "name", Value: 1}}}},
	}
	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, apperr.Wrap(err, "aggregate report statistics")
	}
	defer cur.Close(ctx)

	out := []models.SubmitterCount{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, apperr.Wrap(err, "decode report statistics")
	}
	return out, nil
}

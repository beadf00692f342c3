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

type TicketFilter struct {
	SiteID   string
	Division models.Division
	OpenOnly bool
}

type TicketRepository struct {
	col *mongo.Collection
}

func NewTicketRepository(db *mongo.Database) *TicketRepository {
	return &TicketRepository{col: db.Collection(ColTickets)}
}

func (r *TicketRepository) Get(ctx context.Context, id string) (*models.Ticket, error) {
	return findByID[models.Ticket](ctx, r.col, "ticket", id)
}

func (r *TicketRepository) Find(ctx context.Context, f TicketFilter) ([]models.Ticket, error) {
	q := bson.M{}
	if f.SiteID != "" {
		q["site_id"] = f.SiteID
	}
	if f.Division != "" {
		q["assigned_to_division"] = f.Division
	}
	if f.OpenOnly {
		q["status"] = bson.M{"$ne": models.TicketClosed}
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(defaultListLimit)
	return findAll[models.Ticket](ctx, r.col, q, opts)
}

func (r *TicketRepository) Insert(ctx context.Context, t *models.Ticket) error {
	if t.Comments == nil {
		t.Comments = []models.TicketComment{}
	}
	_, err := r.col.InsertOne(ctx, t)
	return apperr.Wrap(err, "insert ticket")
}

func (r *TicketRepository) UpdateFields(ctx context.Context, id string, set bson.M) error {
	return setByID(ctx, r.col, "ticket", id, set)
}

// CloseIf closes the ticket only if its linked report is still the one
// that was checked.
func (r *TicketRepository) CloseIf(ctx context.Context, id string, linkedReportID *string) error {
	return setIf(ctx, r.col, "ticket",
		bson.M{"id": id, "linked_report_id": linkedReportID},
		bson.M{"$set": bson.M{"status": models.TicketClosed, "updated_at": time.Now().UTC()}},
	)
}

func (r *TicketRepository) PushComment(ctx context.Context, id string, c models.TicketComment) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"id": id}, bson.M{
		"$push": bson.M{"comments": c},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return apperr.Wrap(err, "push ticket comment")
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("ticket", id)
	}
	return nil
}

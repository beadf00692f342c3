package repository

import (
	"context"
	"errors"
	"time"

	"github.com/krisnabayu-afk/Flux-version-0.4/internal/apperr"
	"github.com/krisnabayu-afk/Flux-version-0.4/internal/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type NotificationRepository struct {
	col *mongo.Collection
}

func NewNotificationRepository(db *mongo.Database) *NotificationRepository {
	return &NotificationRepository{col: db.Collection(ColNotifications)}
}

func (r *NotificationRepository) Insert(ctx context.Context, n *models.Notification) error {
	_, err := r.col.InsertOne(ctx, n)
	return err
}

// FindByUser returns the newest notifications addressed to userID.
func (r *NotificationRepository) FindByUser(ctx context.Context, userID string, limit int64) ([]models.Notification, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(limit)
	return findAll[models.Notification](ctx, r.col, bson.M{"user_id": userID}, opts)
}

// MarkRead flags a notification as read and returns it. Only the
// addressee can mark it.
func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID string) (*models.Notification, error) {
	filter := bson.M{"id": id, "user_id": userID}
	update := bson.M{"$set": bson.M{"read": true, "read_at": time.Now().UTC()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var n models.Notification
	err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&n)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("notification", id)
	}
	if err != nil {
		return nil, apperr.Wrap(err, "mark notification read")
	}
	return &n, nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{"user_id": userID, "read": false})
}

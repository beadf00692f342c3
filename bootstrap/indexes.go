package bootstrap

import (
	"context"
	"fmt"

	repo "github.com/krisnabayu-afk/Flux-version-0.4/internal/repository"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

func uniqueOn(name string, keys ...string) mongo.IndexModel {
	d := bson.D{}
	for _, k := range keys {
		d = append(d, bson.E{Key: k, Value: 1})
	}
	return mongo.IndexModel{Keys: d, Options: options.Index().SetUnique(true).SetName(name)}
}

func indexOn(name string, keys bson.D) mongo.IndexModel {
	return mongo.IndexModel{Keys: keys, Options: options.Index().SetName(name)}
}

// collectionIndexes lists the indexes every collection needs. Each entity
// is addressed by its string id, so each gets a unique id index.
func collectionIndexes() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		repo.ColUsers: {
			uniqueOn("uniq_id", "id"),
			uniqueOn("uniq_email", "email"),
			indexOn("role_division_status", bson.D{{Key: "role", Value: 1}, {Key: "division", Value: 1}, {Key: "account_status", Value: 1}}),
		},
		repo.ColSchedules: {
			uniqueOn("uniq_id", "id"),
			indexOn("user_start", bson.D{{Key: "user_id", Value: 1}, {Key: "start_date", Value: 1}}),
			indexOn("division", bson.D{{Key: "division", Value: 1}}),
		},
		repo.ColShiftChanges: {
			uniqueOn("uniq_id", "id"),
			indexOn("status_schedule", bson.D{{Key: "status", Value: 1}, {Key: "schedule_id", Value: 1}}),
			indexOn("requested_by", bson.D{{Key: "requested_by", Value: 1}}),
		},
		repo.ColActivities: {
			uniqueOn("uniq_id", "id"),
			indexOn("schedule_created", bson.D{{Key: "schedule_id", Value: 1}, {Key: "created_at", Value: 1}}),
		},
		repo.ColReports: {
			uniqueOn("uniq_id", "id"),
			indexOn("current_approver", bson.D{{Key: "current_approver", Value: 1}}),
			indexOn("site_created", bson.D{{Key: "site_id", Value: 1}, {Key: "created_at", Value: -1}}),
		},
		repo.ColTickets: {
			uniqueOn("uniq_id", "id"),
			indexOn("division_status", bson.D{{Key: "assigned_to_division", Value: 1}, {Key: "status", Value: 1}}),
		},
		repo.ColSites:      {uniqueOn("uniq_id", "id")},
		repo.ColCategories: {uniqueOn("uniq_id", "id"), uniqueOn("uniq_name", "name")},
		repo.ColNotifications: {
			uniqueOn("uniq_id", "id"),
			indexOn("user_read_created", bson.D{{Key: "user_id", Value: 1}, {Key: "read", Value: 1}, {Key: "created_at", Value: -1}}),
		},
	}
}

// EnsureIndexes creates the indexes; existing ones with the same spec are left alone.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for col, models := range collectionIndexes() {
		if _, err := db.Collection(col).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("indexes on %s: %w", col, err)
		}
	}
	return nil
}

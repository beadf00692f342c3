package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/krisnabayu-afk/Flux-version-0.4/internal/apperr"
	"github.com/krisnabayu-afk/Flux-version-0.4/internal/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type UserFilter struct {
	Role        models.Role
	ExcludeRole models.Role
	Divisions   []models.Division
	Status      models.AccountStatus
}

func (f UserFilter) bson() bson.M {
	q := bson.M{}
	switch {
	case f.Role != "":
		q["role"] = f.Role
	case f.ExcludeRole != "":
		q["role"] = bson.M{"$ne": f.ExcludeRole}
	}
	if len(f.Divisions) > 0 {
		q["division"] = divisionsIn(f.Divisions)
	}
	if f.Status != "" {
		q["account_status"] = f.Status
	}
	return q
}

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(ColUsers)}
}

func (r *UserRepository) Get(ctx context.Context, id string) (*models.User, error) {
	return findByID[models.User](ctx, r.col, "user", id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := r.col.FindOne(ctx, bson.M{"email": strings.ToLower(email)}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("user", email)
	}
	if err != nil {
		return nil, apperr.Wrap(err, "find user by email")
	}
	return &u, nil
}

// FindApprover returns the first approved user holding role, restricted to
// division when it is set. It returns nil, nil when nobody qualifies.
func (r *UserRepository) FindApprover(ctx context.Context, role models.Role, division *models.Division) (*models.User, error) {
	q := bson.M{"role": role, "account_status": models.AccountApproved}
	if division != nil {
		q["division"] = *division
	}
	var u models.User
	err := r.col.FindOne(ctx, q, options.FindOne().SetSort(bson.D{{Key: "created_at", Value: 1}})).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Wrap(err, "find approver")
	}
	return &u, nil
}

func (r *UserRepository) Find(ctx context.Context, f UserFilter) ([]models.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}).SetLimit(defaultListLimit)
	return findAll[models.User](ctx, r.col, f.bson(), opts)
}

func (r *UserRepository) Insert(ctx context.Context, u *models.User) error {
	u.Email = strings.ToLower(u.Email)
	_, err := r.col.InsertOne(ctx, u)
	if isDuplicateKey(err) {
		return apperr.Conflict("email already registered")
	}
	return apperr.Wrap(err, "insert user")
}

func (r *UserRepository) UpdateFields(ctx context.Context, id string, set bson.M) error {
	return setByID(ctx, r.col, "user", id, set)
}

// SetStatusIfPending commits an account review only while the account is
// still pending.
func (r *UserRepository) SetStatusIfPending(ctx context.Context, id string, status models.AccountStatus, reviewerID string) error {
	return setIf(ctx, r.col, "user",
		bson.M{"id": id, "account_status": models.AccountPending},
		bson.M{"$set": bson.M{"account_status": status, "reviewed_by": reviewerID}},
	)
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.col, "user", id)
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}

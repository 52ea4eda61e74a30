package repository

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/services/marketplace-api/internal/domain"
)

type MongoUserRepository struct{ col *mongo.Collection }

func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{col: db.Collection(colUsers)}
}

func (r *MongoUserRepository) Create(ctx context.Context, u *domain.User) error {
	if u.ID == "" {
		u.ID = primitive.NewObjectID().Hex()
	}
	now := time.Now().UTC()
	u.CreatedAt, u.UpdatedAt = now, now
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	_, err := r.col.InsertOne(ctx, u)
	return translate(err, "user")
}

func (r *MongoUserRepository) ByID(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, translate(err, "user")
	}
	return &u, nil
}

func (r *MongoUserRepository) ByIDs(ctx context.Context, ids []string) ([]domain.User, error) {
	out := []domain.User{}
	if len(ids) == 0 {
		return out, nil
	}
	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, translate(err, "users")
	}
	if err := cur.All(ctx, &out); err != nil {
		return nil, translate(err, "users")
	}
	return out, nil
}

func (r *MongoUserRepository) ByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := r.col.FindOne(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(email))}).Decode(&u)
	if err != nil {
		return nil, translate(err, "user")
	}
	return &u, nil
}

func (r *MongoUserRepository) UpdateProfile(ctx context.Context, id string, role domain.Role, upd domain.ProfileUpdate) (*domain.User, error) {
	filter := bson.M{"_id": id}
	if role != "" {
		filter["role"] = role
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var u domain.User
	err := r.col.FindOneAndUpdate(ctx, filter, bson.M{"$set": profileSet(upd, time.Now().UTC())}, opts).Decode(&u)
	if err != nil {
		return nil, translate(err, "user")
	}
	return &u, nil
}

func (r *MongoUserRepository) ListGuides(ctx context.Context, f domain.GuideFilter) ([]domain.User, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "rating", Value: -1}, {Key: "name", Value: 1}}).
		SetLimit(defaultListLimit)
	return r.find(ctx, guideFilter(f), opts)
}

func (r *MongoUserRepository) List(ctx context.Context, role domain.Role, query string) ([]domain.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(defaultListLimit)
	return r.find(ctx, userListFilter(role, query), opts)
}

func (r *MongoUserRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]domain.User, error) {
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, translate(err, "users")
	}
	out := []domain.User{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, translate(err, "users")
	}
	return out, nil
}

func (r *MongoUserRepository) CountByRole(ctx context.Context, role domain.Role) (int64, error) {
	filter := bson.M{}
	if role != "" {
		filter["role"] = role
	}
	n, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return 0, translate(err, "users")
	}
	return n, nil
}

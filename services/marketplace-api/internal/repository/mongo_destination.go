package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/services/marketplace-api/internal/domain"
)

type MongoDestinationRepository struct{ col *mongo.Collection }

func NewMongoDestinationRepository(db *mongo.Database) *MongoDestinationRepository {
	return &MongoDestinationRepository{col: db.Collection(colDestinations)}
}

func (r *MongoDestinationRepository) Create(ctx context.Context, d *domain.Destination) error {
	if d.ID == "" {
		d.ID = primitive.NewObjectID().Hex()
	}
	now := time.Now().UTC()
	d.CreatedAt, d.UpdatedAt = now, now
	_, err := r.col.InsertOne(ctx, d)
	return translate(err, "destination")
}

func (r *MongoDestinationRepository) ByID(ctx context.Context, id string) (*domain.Destination, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoDestinationRepository) BySlug(ctx context.Context, slug string) (*domain.Destination, error) {
	return r.findOne(ctx, bson.M{"slug": slug})
}

func (r *MongoDestinationRepository) findOne(ctx context.Context, filter bson.M) (*domain.Destination, error) {
	var d domain.Destination
	if err := r.col.FindOne(ctx, filter).Decode(&d); err != nil {
		return nil, translate(err, "destination")
	}
	return &d, nil
}

func (r *MongoDestinationRepository) Update(ctx context.Context, d *domain.Destination) error {
	d.UpdatedAt = time.Now().UTC()
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": d.ID}, bson.M{"$set": bson.M{
		"name":        d.Name,
		"slug":        d.Slug,
		"country":     d.Country,
		"description": d.Description,
		"imageUrl":    d.ImageURL,
		"updatedAt":   d.UpdatedAt,
	}})
	if err != nil {
		return translate(err, "destination")
	}
	if res.MatchedCount == 0 {
		return notFound("destination")
	}
	return nil
}

func (r *MongoDestinationRepository) List(ctx context.Context, query string) ([]domain.Destination, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}}).SetLimit(defaultListLimit)
	cur, err := r.col.Find(ctx, destinationFilter(query), opts)
	if err != nil {
		return nil, translate(err, "destinations")
	}
	out := []domain.Destination{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, translate(err, "destinations")
	}
	return out, nil
}

func (r *MongoDestinationRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, translate(err, "destinations")
	}
	return n, nil
}

// EnsureIndexes creates the unique and lookup indexes the repositories rely on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	specs := map[string][]mongo.IndexModel{
		colUsers: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "role", Value: 1}, {Key: "location", Value: 1}}},
		},
		colTours: {
			{Keys: bson.D{{Key: "guideId", Value: 1}}},
		},
		colBookings: {
			{Keys: bson.D{{Key: "travelerId", Value: 1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "guideId", Value: 1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "chargeId", Value: 1}}, Options: options.Index().SetSparse(true)},
		},
		colDestinations: {
			{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
	}
	for col, models := range specs {
		if _, err := db.Collection(col).Indexes().CreateMany(ctx, models); err != nil {
			return translate(err, "create indexes on "+col)
		}
	}
	return nil
}

package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/pkg/apperr"
	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/services/marketplace-api/internal/domain"
)

type MongoTourRepository struct{ col *mongo.Collection }

func NewMongoTourRepository(db *mongo.Database) *MongoTourRepository {
	return &MongoTourRepository{col: db.Collection(colTours)}
}

func (r *MongoTourRepository) Create(ctx context.Context, t *domain.Tour) error {
	if t.ID == "" {
		t.ID = primitive.NewObjectID().Hex()
	}
	now := time.Now().UTC()
	t.CreatedAt, t.UpdatedAt = now, now
	_, err := r.col.InsertOne(ctx, t)
	return translate(err, "tour")
}

func (r *MongoTourRepository) ByID(ctx context.Context, id string) (*domain.Tour, error) {
	var t domain.Tour
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&t); err != nil {
		return nil, translate(err, "tour")
	}
	return &t, nil
}

func (r *MongoTourRepository) ByIDs(ctx context.Context, ids []string) ([]domain.Tour, error) {
	out := []domain.Tour{}
	if len(ids) == 0 {
		return out, nil
	}
	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, translate(err, "tours")
	}
	if err := cur.All(ctx, &out); err != nil {
		return nil, translate(err, "tours")
	}
	return out, nil
}

func (r *MongoTourRepository) Update(ctx context.Context, t *domain.Tour) error {
	t.UpdatedAt = time.Now().UTC()
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": t.ID, "guideId": t.GuideID}, bson.M{"$set": bson.M{
		"title":           t.Title,
		"description":     t.Description,
		"price":           t.Price,
		"duration":        t.Duration,
		"location":        t.Location,
		"imageUrl":        t.ImageURL,
		"maxParticipants": t.MaxParticipants,
		"availableSpots":  t.AvailableSpots,
		"date":            t.Date,
		"updatedAt":       t.UpdatedAt,
	}})
	if err != nil {
		return translate(err, "tour")
	}
	if res.MatchedCount == 0 {
		return notFound("tour")
	}
	return nil
}

func (r *MongoTourRepository) List(ctx context.Context, f domain.TourFilter) ([]domain.Tour, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}}).SetLimit(defaultListLimit)
	cur, err := r.col.Find(ctx, tourFilter(f), opts)
	if err != nil {
		return nil, translate(err, "tours")
	}
	out := []domain.Tour{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, translate(err, "tours")
	}
	return out, nil
}

func (r *MongoTourRepository) ReserveSpots(ctx context.Context, id string, n int) error {
	filter, update := reserveSpotsQuery(id, n, time.Now().UTC())
	res, err := r.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return translate(err, "tour")
	}
	if res.MatchedCount == 1 {
		return nil
	}
	if _, err := r.ByID(ctx, id); err != nil {
		return err
	}
	return apperr.E(apperr.Validation, "not enough spots available for this tour")
}

func (r *MongoTourRepository) ReleaseSpots(ctx context.Context, id string, n int) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, releaseSpotsPipeline(n, time.Now().UTC()))
	if err != nil {
		return translate(err, "tour")
	}
	if res.MatchedCount == 0 {
		return notFound("tour")
	}
	return nil
}

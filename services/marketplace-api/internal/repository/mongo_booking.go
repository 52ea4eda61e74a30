package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/services/marketplace-api/internal/domain"
)

type MongoBookingRepository struct{ col *mongo.Collection }

func NewMongoBookingRepository(db *mongo.Database) *MongoBookingRepository {
	return &MongoBookingRepository{col: db.Collection(colBookings)}
}

func (r *MongoBookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	if b.ID == "" {
		b.ID = primitive.NewObjectID().Hex()
	}
	now := time.Now().UTC()
	b.CreatedAt, b.UpdatedAt = now, now
	_, err := r.col.InsertOne(ctx, b)
	return translate(err, "booking")
}

func (r *MongoBookingRepository) ByID(ctx context.Context, id string) (*domain.Booking, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoBookingRepository) ByIDForGuide(ctx context.Context, id, guideID string) (*domain.Booking, error) {
	return r.findOne(ctx, bson.M{"_id": id, "guideId": guideID})
}

func (r *MongoBookingRepository) findOne(ctx context.Context, filter bson.M) (*domain.Booking, error) {
	var b domain.Booking
	if err := r.col.FindOne(ctx, filter).Decode(&b); err != nil {
		return nil, translate(err, "booking")
	}
	return &b, nil
}

func (r *MongoBookingRepository) List(ctx context.Context, f domain.BookingFilter) ([]domain.Booking, error) {
	limit := int64(f.Limit)
	if limit <= 0 {
		limit = defaultListLimit
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(limit)
	cur, err := r.col.Find(ctx, bookingFilter(f), opts)
	if err != nil {
		return nil, translate(err, "bookings")
	}
	out := []domain.Booking{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, translate(err, "bookings")
	}
	return out, nil
}

func (r *MongoBookingRepository) Count(ctx context.Context, f domain.BookingFilter) (int64, error) {
	n, err := r.col.CountDocuments(ctx, bookingFilter(f))
	if err != nil {
		return 0, translate(err, "bookings")
	}
	return n, nil
}

func (r *MongoBookingRepository) UpdateStatus(ctx context.Context, id string, from, to domain.BookingStatus, at time.Time) (*domain.Booking, error) {
	filter, set := statusTransitionQuery(id, from, to, at, time.Now().UTC())
	return r.guarded(ctx, id, filter, set, errStatusChanged)
}

func (r *MongoBookingRepository) AttachCharge(ctx context.Context, id, chargeID string) (*domain.Booking, error) {
	filter, set := attachChargeQuery(id, chargeID, time.Now().UTC())
	return r.guarded(ctx, id, filter, set, errPaymentChanged)
}

func (r *MongoBookingRepository) UpdatePayment(ctx context.Context, id string, from, to domain.PaymentStatus) (*domain.Booking, error) {
	filter, set := paymentTransitionQuery(id, from, to, time.Now().UTC())
	return r.guarded(ctx, id, filter, set, errPaymentChanged)
}

// guarded applies set when filter still matches. No match is NotFound for an
// unknown id and lost otherwise.
func (r *MongoBookingRepository) guarded(ctx context.Context, id string, filter, set bson.M, lost error) (*domain.Booking, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var b domain.Booking
	err := r.col.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&b)
	if errors.Is(err, mongo.ErrNoDocuments) {
		if _, ferr := r.ByID(ctx, id); ferr != nil {
			return nil, ferr
		}
		return nil, lost
	}
	if err != nil {
		return nil, translate(err, "booking")
	}
	return &b, nil
}

func (r *MongoBookingRepository) MarkPaidByCharge(ctx context.Context, chargeID string) (*domain.Booking, bool, error) {
	filter, set := markPaidByChargeQuery(chargeID, time.Now().UTC())
	res, err := r.col.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return nil, false, translate(err, "booking")
	}
	b, err := r.findOne(ctx, bson.M{"chargeId": chargeID})
	if err != nil {
		return nil, false, err
	}
	return b, res.ModifiedCount > 0, nil
}

package repository

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/services/marketplace-api/internal/domain"
)

// Guarded writes. Each filter carries the condition, so a lost race matches
// nothing instead of overwriting.

func reserveSpotsQuery(id string, n int, now time.Time) (filter, update bson.M) {
	return bson.M{"_id": id, "availableSpots": bson.M{"$gte": n}},
		bson.M{"$inc": bson.M{"availableSpots": -n}, "$set": bson.M{"updatedAt": now}}
}

// releaseSpotsPipeline never lets availableSpots climb past maxParticipants.
func releaseSpotsPipeline(n int, now time.Time) mongo.Pipeline {
	capped := bson.D{{Key: "$min", Value: bson.A{
		bson.D{{Key: "$add", Value: bson.A{"$availableSpots", n}}},
		"$maxParticipants",
	}}}
	return mongo.Pipeline{{{Key: "$set", Value: bson.D{
		{Key: "availableSpots", Value: capped},
		{Key: "updatedAt", Value: now},
	}}}}
}

func statusTransitionQuery(id string, from, to domain.BookingStatus, at, now time.Time) (filter, set bson.M) {
	set = bson.M{"status": to, "updatedAt": now}
	if to == domain.BookingCancelled {
		set["cancelledAt"] = at.UTC()
	}
	return bson.M{"_id": id, "status": from}, set
}

// chargeId is omitted until a charge is attached, so null covers the missing field.
func attachChargeQuery(id, chargeID string, now time.Time) (filter, set bson.M) {
	return bson.M{
			"_id":           id,
			"paymentStatus": domain.PaymentUnpaid,
			"chargeId":      bson.M{"$in": bson.A{nil, ""}},
			"status":        bson.M{"$in": domain.OpenBookingStatuses},
		},
		bson.M{"chargeId": chargeID, "updatedAt": now}
}

func paymentTransitionQuery(id string, from, to domain.PaymentStatus, now time.Time) (filter, set bson.M) {
	return bson.M{"_id": id, "paymentStatus": from},
		bson.M{"paymentStatus": to, "updatedAt": now}
}

func markPaidByChargeQuery(chargeID string, now time.Time) (filter, set bson.M) {
	return bson.M{
			"chargeId":      chargeID,
			"paymentStatus": domain.PaymentUnpaid,
			"status":        bson.M{"$ne": domain.BookingCancelled},
		},
		bson.M{"paymentStatus": domain.PaymentPaid, "updatedAt": now}
}

package repository

import (
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/services/marketplace-api/internal/domain"
)

const (
	colUsers        = "users"
	colTours        = "tours"
	colBookings     = "bookings"
	colDestinations = "destinations"
)

func containsI(s string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(strings.TrimSpace(s)), Options: "i"}
}

func equalsI(s string) primitive.Regex {
	return primitive.Regex{Pattern: "^" + regexp.QuoteMeta(strings.TrimSpace(s)) + "$", Options: "i"}
}

func guideFilter(f domain.GuideFilter) bson.M {
	q := bson.M{"role": domain.RoleGuide}
	if f.Location != "" {
		q["location"] = containsI(f.Location)
	}
	// a regex against an array field matches when any element matches
	if f.Language != "" {
		q["languages"] = equalsI(f.Language)
	}
	if f.Specialty != "" {
		q["specialties"] = equalsI(f.Specialty)
	}
	price := bson.M{}
	if f.PriceMin != nil {
		price["$gte"] = *f.PriceMin
	}
	if f.PriceMax != nil {
		price["$lte"] = *f.PriceMax
	}
	if len(price) > 0 {
		q["pricePerDay"] = price
	}
	if f.MinRating != nil {
		q["rating"] = bson.M{"$gte": *f.MinRating}
	}
	return q
}

func userListFilter(role domain.Role, query string) bson.M {
	q := bson.M{}
	if role != "" {
		q["role"] = role
	}
	if s := strings.TrimSpace(query); s != "" {
		q["$or"] = bson.A{bson.M{"name": containsI(s)}, bson.M{"email": containsI(s)}}
	}
	return q
}

func profileSet(upd domain.ProfileUpdate, now time.Time) bson.M {
	set := bson.M{"updatedAt": now}
	if upd.Name != nil {
		set["name"] = strings.TrimSpace(*upd.Name)
	}
	if upd.Phone != nil {
		set["phone"] = *upd.Phone
	}
	if upd.Location != nil {
		set["location"] = *upd.Location
	}
	if upd.AvatarURL != nil {
		set["avatarUrl"] = *upd.AvatarURL
	}
	if upd.About != nil {
		set["about"] = *upd.About
	}
	if upd.Website != nil {
		set["website"] = *upd.Website
	}
	if upd.Languages != nil {
		set["languages"] = *upd.Languages
	}
	if upd.Specialties != nil {
		set["specialties"] = *upd.Specialties
	}
	if upd.Experience != nil {
		set["experience"] = *upd.Experience
	}
	if upd.PricePerDay != nil {
		set["pricePerDay"] = *upd.PricePerDay
	}
	return set
}

func tourFilter(f domain.TourFilter) bson.M {
	q := bson.M{}
	if f.GuideID != "" {
		q["guideId"] = f.GuideID
	}
	if f.Location != "" {
		q["location"] = containsI(f.Location)
	}
	return q
}

func bookingFilter(f domain.BookingFilter) bson.M {
	q := bson.M{}
	if f.TravelerID != "" {
		q["travelerId"] = f.TravelerID
	}
	if f.GuideID != "" {
		q["guideId"] = f.GuideID
	}
	if len(f.Statuses) > 0 {
		q["status"] = bson.M{"$in": f.Statuses}
	}
	created := bson.M{}
	if !f.CreatedFrom.IsZero() {
		created["$gte"] = f.CreatedFrom
	}
	if !f.CreatedTo.IsZero() {
		created["$lt"] = f.CreatedTo
	}
	if len(created) > 0 {
		q["createdAt"] = created
	}
	return q
}

func destinationFilter(query string) bson.M {
	s := strings.TrimSpace(query)
	if s == "" {
		return bson.M{}
	}
	return bson.M{"$or": bson.A{bson.M{"name": containsI(s)}, bson.M{"country": containsI(s)}}}
}

package domain

import (
	"time"

	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/pkg/apperr"
)

type Tour struct {
	ID              string    `gorm:"primaryKey" bson:"_id" json:"id"`
	Title           string    `bson:"title" json:"title"`
	Description     string    `bson:"description" json:"description"`
	Price           float64   `bson:"price" json:"price"`
	Duration        int       `bson:"duration" json:"duration"` // days
	Location        string    `gorm:"index" bson:"location" json:"location"`
	ImageURL        string    `bson:"imageUrl" json:"image"`
	GuideID         string    `gorm:"index" bson:"guideId" json:"guideId"`
	MaxParticipants int       `bson:"maxParticipants" json:"maxParticipants"`
	AvailableSpots  int       `bson:"availableSpots" json:"availableSpots"`
	Date            time.Time `bson:"date" json:"date"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (t *Tour) Validate() error {
	switch {
	case trim(t.Title) == "":
		return apperr.E(apperr.Validation, "title is required")
	case trim(t.Description) == "":
		return apperr.E(apperr.Validation, "description is required")
	case trim(t.Location) == "":
		return apperr.E(apperr.Validation, "location is required")
	case t.Price < 0:
		return apperr.E(apperr.Validation, "price cannot be negative")
	case t.Duration < 1:
		return apperr.E(apperr.Validation, "duration must be at least 1")
	case t.MaxParticipants < 1:
		return apperr.E(apperr.Validation, "maxParticipants must be at least 1")
	case t.AvailableSpots < 0 || t.AvailableSpots > t.MaxParticipants:
		return apperr.E(apperr.Validation, "availableSpots must be between 0 and maxParticipants")
	case t.Date.IsZero():
		return apperr.E(apperr.Validation, "date is required")
	}
	return nil
}

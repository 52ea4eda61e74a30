package domain

import (
	"time"

	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/pkg/apperr"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "unpaid"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:   {BookingConfirmed, BookingCancelled},
	BookingConfirmed: {BookingCompleted, BookingCancelled},
}

// OpenBookingStatuses can still take a payment or a cancellation.
var OpenBookingStatuses = []BookingStatus{BookingPending, BookingConfirmed}

func ParseBookingStatus(s string) (BookingStatus, error) {
	switch st := BookingStatus(s); st {
	case BookingPending, BookingConfirmed, BookingCompleted, BookingCancelled:
		return st, nil
	}
	return "", apperr.E(apperr.Validation, "Invalid status")
}

func (s BookingStatus) IsTerminal() bool {
	return s == BookingCompleted || s == BookingCancelled
}

func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Booking struct {
	ID            string        `gorm:"primaryKey" bson:"_id" json:"id"`
	TravelerID    string        `gorm:"index" bson:"travelerId" json:"travelerId"`
	GuideID       string        `gorm:"index" bson:"guideId" json:"guideId"`
	TourID        string        `gorm:"index" bson:"tourId" json:"tourId"`
	Date          time.Time     `bson:"date" json:"date"`
	Participants  int           `bson:"participants" json:"participants"`
	TotalPrice    float64       `bson:"totalPrice" json:"totalPrice"`
	Status        BookingStatus `gorm:"index" bson:"status" json:"status"`
	PaymentStatus PaymentStatus `bson:"paymentStatus" json:"paymentStatus"`
	ChargeID      string        `gorm:"index" bson:"chargeId,omitempty" json:"-"`
	CancelledAt   *time.Time    `bson:"cancelledAt,omitempty" json:"cancelledAt,omitempty"`
	CreatedAt     time.Time     `gorm:"index" bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time     `bson:"updatedAt" json:"updatedAt"`
}

func (b *Booking) Validate() error {
	if b.Participants < 1 {
		return apperr.E(apperr.Validation, "participants must be at least 1")
	}
	if b.TotalPrice < 0 {
		return apperr.E(apperr.Validation, "totalPrice cannot be negative")
	}
	if b.TravelerID == "" || b.GuideID == "" || b.TourID == "" {
		return apperr.E(apperr.Validation, "booking needs a traveler, a guide and a tour")
	}
	if b.Date.IsZero() {
		return apperr.E(apperr.Validation, "date is required")
	}
	return nil
}

// BookingDetail is a booking with the names the dashboards display.
type BookingDetail struct {
	Booking
	TravelerName  string `json:"travelerName"`
	TravelerEmail string `json:"travelerEmail"`
	GuideName     string `json:"guideName"`
	GuideEmail    string `json:"-"`
	TourTitle     string `json:"tourName"`
	TourLocation  string `json:"tourLocation"`
}

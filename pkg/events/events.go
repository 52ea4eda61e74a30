// Package events holds the booking routing keys and payloads shared by the
// marketplace API (publisher) and the notification worker (consumer).
package events

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	RKBookingCreated   = "booking.created"
	RKBookingConfirmed = "booking.confirmed"
	RKBookingCancelled = "booking.cancelled"
	RKBookingCompleted = "booking.completed"
	RKBookingPaid      = "booking.paid"
)

// KeyForStatus maps a booking status to the routing key announcing it.
func KeyForStatus(status string) (string, bool) {
	switch status {
	case "confirmed":
		return RKBookingConfirmed, true
	case "cancelled":
		return RKBookingCancelled, true
	case "completed":
		return RKBookingCompleted, true
	}
	return "", false
}

// BookingEvent carries enough to write an email without reading the database.
type BookingEvent struct {
	BookingID     string    `json:"booking_id"`
	TourID        string    `json:"tour_id"`
	TourTitle     string    `json:"tour_title"`
	TourLocation  string    `json:"tour_location"`
	TravelerName  string    `json:"traveler_name"`
	TravelerEmail string    `json:"traveler_email"`
	GuideName     string    `json:"guide_name"`
	GuideEmail    string    `json:"guide_email"`
	Date          time.Time `json:"date"`
	Participants  int       `json:"participants"`
	TotalPrice    float64   `json:"total_price"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	OccurredAt    time.Time `json:"occurred_at"`
}

func Decode[T any](b []byte) (T, error) {
	var t T
	if err := json.Unmarshal(b, &t); err != nil {
		var zero T
		return zero, fmt.Errorf("decode payload failed: %w", err)
	}
	return t, nil
}

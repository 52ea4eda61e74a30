package service

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/pkg/events"
	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/services/marketplace-api/internal/domain"
	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/services/marketplace-api/internal/payment"
	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/services/marketplace-api/internal/repository"
)

var tracer = otel.Tracer("marketplace-api/service")

// Publisher is satisfied by mq.Publisher and notify.Dispatcher.
type Publisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

type Payments interface {
	Charge(ctx context.Context, in payment.ChargeRequest) (*payment.Charge, error)
	Refund(ctx context.Context, chargeID string, amount int64) error
	VerifyEvent(ctx context.Context, eventID string) (*payment.Event, error)
}

// enrichBookings joins traveler, guide and tour names onto bookings.
func enrichBookings(ctx context.Context, users repository.UserRepository, tours repository.TourRepository, bs []domain.Booking) ([]domain.BookingDetail, error) {
	out := make([]domain.BookingDetail, 0, len(bs))
	if len(bs) == 0 {
		return out, nil
	}
	userIDs := map[string]struct{}{}
	tourIDs := map[string]struct{}{}
	for _, b := range bs {
		userIDs[b.TravelerID] = struct{}{}
		userIDs[b.GuideID] = struct{}{}
		tourIDs[b.TourID] = struct{}{}
	}
	us, err := users.ByIDs(ctx, keys(userIDs))
	if err != nil {
		return nil, err
	}
	ts, err := tours.ByIDs(ctx, keys(tourIDs))
	if err != nil {
		return nil, err
	}
	byUser := make(map[string]domain.User, len(us))
	for _, u := range us {
		byUser[u.ID] = u
	}
	byTour := make(map[string]domain.Tour, len(ts))
	for _, t := range ts {
		byTour[t.ID] = t
	}
	for _, b := range bs {
		traveler, guide, tour := byUser[b.TravelerID], byUser[b.GuideID], byTour[b.TourID]
		out = append(out, domain.BookingDetail{
			Booking:       b,
			TravelerName:  traveler.Name,
			TravelerEmail: traveler.Email,
			GuideName:     guide.Name,
			GuideEmail:    guide.Email,
			TourTitle:     tour.Title,
			TourLocation:  tour.Location,
		})
	}
	return out, nil
}

func keys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func bookingEvent(d domain.BookingDetail, at time.Time) events.BookingEvent {
	return events.BookingEvent{
		BookingID:     d.ID,
		TourID:        d.TourID,
		TourTitle:     d.TourTitle,
		TourLocation:  d.TourLocation,
		TravelerName:  d.TravelerName,
		TravelerEmail: d.TravelerEmail,
		GuideName:     d.GuideName,
		GuideEmail:    d.GuideEmail,
		Date:          d.Date,
		Participants:  d.Participants,
		TotalPrice:    d.TotalPrice,
		Status:        string(d.Status),
		PaymentStatus: string(d.PaymentStatus),
		OccurredAt:    at,
	}
}

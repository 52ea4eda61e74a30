package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/pkg/apperr"
	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/pkg/events"
	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/services/marketplace-api/internal/domain"
	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/services/marketplace-api/internal/payment"
	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/services/marketplace-api/internal/repository"
)

var errBookingNotFound = apperr.E(apperr.NotFound, "booking not found")

type BookingSvc struct {
	bookings repository.BookingRepository
	tours    repository.TourRepository
	users    repository.UserRepository
	pub      Publisher
	payments Payments // nil when no gateway is configured
	currency string
	log      zerolog.Logger
	now      func() time.Time
}

type BookingDeps struct {
	Bookings repository.BookingRepository
	Tours    repository.TourRepository
	Users    repository.UserRepository
	Pub      Publisher
	Payments Payments
	Currency string
	Log      zerolog.Logger
}

func NewBookingSvc(d BookingDeps) *BookingSvc {
	return &BookingSvc{
		bookings: d.Bookings,
		tours:    d.Tours,
		users:    d.Users,
		pub:      d.Pub,
		payments: d.Payments,
		currency: d.Currency,
		log:      d.Log,
		now:      time.Now,
	}
}

type CreateBookingInput struct {
	TourID       string     `json:"tourId"`
	Date         *time.Time `json:"date"`
	Participants int        `json:"participants"`
	TotalPrice   *float64   `json:"totalPrice"`
}

func (in CreateBookingInput) validate() error {
	if in.TourID == "" {
		return apperr.E(apperr.Validation, "tourId is required")
	}
	if in.Participants < 1 {
		return apperr.E(apperr.Validation, "participants must be at least 1")
	}
	if in.TotalPrice != nil && *in.TotalPrice < 0 {
		return apperr.E(apperr.Validation, "totalPrice cannot be negative")
	}
	return nil
}

// Create books a tour for travelerID and holds the spots. The notification
// is best-effort: a publish failure is logged and the booking still stands.
func (s *BookingSvc) Create(ctx context.Context, travelerID string, in CreateBookingInput) (*domain.BookingDetail, error) {
	ctx, span := tracer.Start(ctx, "BookingSvc.Create")
	defer span.End()

	if err := in.validate(); err != nil {
		return nil, err
	}
	tour, err := s.tours.ByID(ctx, in.TourID)
	if err != nil {
		return nil, err
	}

	b := &domain.Booking{
		TravelerID:    travelerID,
		GuideID:       tour.GuideID,
		TourID:        tour.ID,
		Date:          tour.Date,
		Participants:  in.Participants,
		TotalPrice:    tour.Price * float64(in.Participants),
		Status:        domain.BookingPending,
		PaymentStatus: domain.PaymentUnpaid,
	}
	if in.Date != nil {
		b.Date = in.Date.UTC()
	}
	if in.TotalPrice != nil {
		b.TotalPrice = *in.TotalPrice
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}

	if err := s.tours.ReserveSpots(ctx, tour.ID, b.Participants); err != nil {
		return nil, err
	}
	if err := s.bookings.Create(ctx, b); err != nil {
		if rerr := s.tours.ReleaseSpots(context.WithoutCancel(ctx), tour.ID, b.Participants); rerr != nil {
			s.log.Error().Err(rerr).Str("tour_id", tour.ID).Msg("release spots after failed booking")
		}
		return nil, err
	}

	d, err := s.detail(ctx, b)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.RKBookingCreated, d)
	return d, nil
}

// ListFor scopes bookings by the caller's role.
func (s *BookingSvc) ListFor(ctx context.Context, userID string, role domain.Role) ([]domain.BookingDetail, error) {
	ctx, span := tracer.Start(ctx, "BookingSvc.ListFor")
	defer span.End()

	var f domain.BookingFilter
	switch role {
	case domain.RoleTraveler:
		f.TravelerID = userID
	case domain.RoleGuide:
		f.GuideID = userID
	case domain.RoleAdmin:
	default:
		return nil, apperr.E(apperr.Forbidden, "Forbidden")
	}
	return s.list(ctx, f)
}

func (s *BookingSvc) ListAll(ctx context.Context, status string) ([]domain.BookingDetail, error) {
	ctx, span := tracer.Start(ctx, "BookingSvc.ListAll")
	defer span.End()

	var f domain.BookingFilter
	if status != "" {
		st, err := domain.ParseBookingStatus(status)
		if err != nil {
			return nil, err
		}
		f.Statuses = []domain.BookingStatus{st}
	}
	return s.list(ctx, f)
}

func (s *BookingSvc) list(ctx context.Context, f domain.BookingFilter) ([]domain.BookingDetail, error) {
	bs, err := s.bookings.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return enrichBookings(ctx, s.users, s.tours, bs)
}

func (s *BookingSvc) Get(ctx context.Context, userID string, role domain.Role, id string) (*domain.BookingDetail, error) {
	ctx, span := tracer.Start(ctx, "BookingSvc.Get")
	defer span.End()

	b, err := s.bookings.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if role != domain.RoleAdmin && b.TravelerID != userID && b.GuideID != userID {
		return nil, errBookingNotFound
	}
	return s.detail(ctx, b)
}

// UpdateStatusAsGuide moves a booking owned by guideID along the status graph.
func (s *BookingSvc) UpdateStatusAsGuide(ctx context.Context, guideID, id, status string) (*domain.BookingDetail, error) {
	ctx, span := tracer.Start(ctx, "BookingSvc.UpdateStatusAsGuide")
	defer span.End()

	next, err := domain.ParseBookingStatus(status)
	if err != nil {
		return nil, err
	}
	b, err := s.bookings.ByIDForGuide(ctx, id, guideID)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, b, next)
}

func (s *BookingSvc) CancelAsTraveler(ctx context.Context, travelerID, id string) (*domain.BookingDetail, error) {
	ctx, span := tracer.Start(ctx, "BookingSvc.CancelAsTraveler")
	defer span.End()

	b, err := s.bookings.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.TravelerID != travelerID {
		return nil, errBookingNotFound
	}
	return s.transition(ctx, b, domain.BookingCancelled)
}

func (s *BookingSvc) transition(ctx context.Context, b *domain.Booking, next domain.BookingStatus) (*domain.BookingDetail, error) {
	if !b.Status.CanTransitionTo(next) {
		return nil, apperr.E(apperr.Validation, "cannot change a "+string(b.Status)+" booking to "+string(next))
	}
	updated, err := s.bookings.UpdateStatus(ctx, b.ID, b.Status, next, s.now())
	if err != nil {
		return nil, err
	}
	if next == domain.BookingCancelled {
		updated, err = s.unwind(ctx, updated)
		if err != nil {
			return nil, err
		}
	}

	d, err := s.detail(ctx, updated)
	if err != nil {
		return nil, err
	}
	if key, ok := events.KeyForStatus(string(next)); ok {
		s.publish(ctx, key, d)
	}
	return d, nil
}

// unwind gives the spots back and refunds a paid booking after cancellation.
func (s *BookingSvc) unwind(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	if err := s.tours.ReleaseSpots(ctx, b.TourID, b.Participants); err != nil && !apperr.Is(err, apperr.NotFound) {
		return nil, err
	}
	if b.PaymentStatus != domain.PaymentPaid || b.ChargeID == "" || s.payments == nil {
		return b, nil
	}
	return s.refund(ctx, b, domain.PaymentPaid)
}

// refund claims the payment status before calling the gateway, so a charge is
// refunded at most once however many paths reach it. A failed refund puts the
// status back and is only logged.
func (s *BookingSvc) refund(ctx context.Context, b *domain.Booking, from domain.PaymentStatus) (*domain.Booking, error) {
	claimed, err := s.bookings.UpdatePayment(ctx, b.ID, from, domain.PaymentRefunded)
	if apperr.Is(err, apperr.Conflict) {
		return s.bookings.ByID(ctx, b.ID)
	}
	if err != nil {
		return nil, err
	}
	if err := s.payments.Refund(ctx, b.ChargeID, payment.ToMinorUnits(b.TotalPrice)); err != nil {
		s.log.Error().Err(err).Str("booking_id", b.ID).Str("charge_id", b.ChargeID).Msg("refund booking")
		reverted, rerr := s.bookings.UpdatePayment(context.WithoutCancel(ctx), b.ID, domain.PaymentRefunded, from)
		if rerr != nil {
			s.log.Error().Err(rerr).Str("booking_id", b.ID).Msg("restore payment status after failed refund")
			return claimed, nil
		}
		return reverted, nil
	}
	return claimed, nil
}

// Pay charges the traveler's card. A booking takes one charge at a time: while
// a pending charge awaits its webhook, another Pay is a Conflict.
func (s *BookingSvc) Pay(ctx context.Context, travelerID, id, cardToken string) (*domain.BookingDetail, error) {
	ctx, span := tracer.Start(ctx, "BookingSvc.Pay")
	defer span.End()

	if s.payments == nil {
		return nil, apperr.E(apperr.Internal, "payments are not configured")
	}
	if cardToken == "" {
		return nil, apperr.E(apperr.Validation, "card token is required")
	}
	b, err := s.bookings.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.TravelerID != travelerID {
		return nil, errBookingNotFound
	}
	if b.Status.IsTerminal() {
		return nil, apperr.E(apperr.Validation, "cannot pay for a "+string(b.Status)+" booking")
	}
	if b.PaymentStatus != domain.PaymentUnpaid {
		return nil, apperr.E(apperr.Validation, "booking is already "+string(b.PaymentStatus))
	}
	if b.ChargeID != "" {
		return nil, apperr.E(apperr.Conflict, "a payment for this booking is already being processed")
	}

	ch, err := s.payments.Charge(ctx, payment.ChargeRequest{
		BookingID: b.ID,
		Amount:    payment.ToMinorUnits(b.TotalPrice),
		Currency:  s.currency,
		CardToken: cardToken,
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "charge card", err)
	}
	if ch.Status != payment.StatusSuccessful && ch.Status != payment.StatusPending {
		msg := ch.FailureMessage
		if msg == "" {
			msg = "payment failed"
		}
		return nil, apperr.E(apperr.Validation, msg)
	}

	if _, err := s.bookings.AttachCharge(ctx, b.ID, ch.ID); err != nil {
		// the booking was paid or cancelled meanwhile; this charge belongs to nothing
		if ch.Status == payment.StatusSuccessful {
			s.refundCharge(context.WithoutCancel(ctx), ch.ID, ch.Amount)
		}
		return nil, err
	}
	if ch.Status == payment.StatusPending {
		// settled later by the charge.complete webhook
		b, err = s.bookings.ByID(ctx, b.ID)
		if err != nil {
			return nil, err
		}
		return s.detail(ctx, b)
	}
	return s.settle(ctx, ch.ID)
}

// settle marks the booking holding chargeID paid. When the booking was
// cancelled before the money arrived, the charge is refunded instead.
func (s *BookingSvc) settle(ctx context.Context, chargeID string) (*domain.BookingDetail, error) {
	b, changed, err := s.bookings.MarkPaidByCharge(ctx, chargeID)
	if err != nil {
		return nil, err
	}
	if changed {
		d, err := s.detail(ctx, b)
		if err != nil {
			return nil, err
		}
		s.publish(ctx, events.RKBookingPaid, d)
		return d, nil
	}
	if b.Status == domain.BookingCancelled && b.PaymentStatus == domain.PaymentUnpaid {
		if b, err = s.refund(ctx, b, domain.PaymentUnpaid); err != nil {
			return nil, err
		}
	}
	return s.detail(ctx, b)
}

func (s *BookingSvc) refundCharge(ctx context.Context, chargeID string, amount int64) {
	if err := s.payments.Refund(ctx, chargeID, amount); err != nil {
		s.log.Error().Err(err).Str("charge_id", chargeID).Msg("refund unlinked charge")
		return
	}
	s.log.Warn().Str("charge_id", chargeID).Msg("refunded charge with no booking to settle")
}

// HandlePaymentEvent re-fetches a webhook event from the gateway and settles
// the matching booking. Redelivered events are no-ops.
func (s *BookingSvc) HandlePaymentEvent(ctx context.Context, eventID string) error {
	ctx, span := tracer.Start(ctx, "BookingSvc.HandlePaymentEvent")
	defer span.End()

	if s.payments == nil {
		return apperr.E(apperr.NotFound, "payments are not configured")
	}
	if eventID == "" {
		return apperr.E(apperr.Validation, "event id is required")
	}
	ev, err := s.payments.VerifyEvent(ctx, eventID)
	if err != nil {
		return apperr.Wrap(apperr.Unauthenticated, "unverified payment event", err)
	}
	if ev.Key != payment.EventChargeComplete || ev.Status != payment.StatusSuccessful || ev.ChargeID == "" {
		s.log.Debug().Str("event_id", ev.ID).Str("key", ev.Key).Str("status", ev.Status).Msg("payment event ignored")
		return nil
	}

	_, err = s.settle(ctx, ev.ChargeID)
	if apperr.Is(err, apperr.NotFound) {
		return s.settleUnlinked(ctx, ev)
	}
	return err
}

// settleUnlinked handles a completed charge that no booking holds yet. If the
// booking named in its metadata can still take it, the charge is attached and
// settled; otherwise the money goes back.
func (s *BookingSvc) settleUnlinked(ctx context.Context, ev *payment.Event) error {
	if ev.BookingID == "" || ev.Amount <= 0 {
		s.log.Warn().Str("charge_id", ev.ChargeID).Msg("payment event for unknown charge")
		return nil
	}
	b, err := s.bookings.ByID(ctx, ev.BookingID)
	switch {
	case apperr.Is(err, apperr.NotFound):
	case err != nil:
		return err
	case payment.ToMinorUnits(b.TotalPrice) == ev.Amount:
		if _, aerr := s.bookings.AttachCharge(ctx, b.ID, ev.ChargeID); aerr == nil {
			_, err = s.settle(ctx, ev.ChargeID)
			return err
		}
	}
	s.refundCharge(ctx, ev.ChargeID, ev.Amount)
	return nil
}

func (s *BookingSvc) Dashboard(ctx context.Context, travelerID string) (*domain.TravelerDashboard, error) {
	ctx, span := tracer.Start(ctx, "BookingSvc.Dashboard")
	defer span.End()

	u, err := s.users.ByID(ctx, travelerID)
	if err != nil {
		return nil, err
	}
	all, err := s.list(ctx, domain.BookingFilter{TravelerID: travelerID})
	if err != nil {
		return nil, err
	}

	out := &domain.TravelerDashboard{
		User:     u,
		Upcoming: []domain.BookingDetail{},
		Past:     []domain.BookingDetail{},
	}
	now := s.now()
	for _, d := range all {
		if !d.Date.Before(now) && d.Status != domain.BookingCancelled {
			out.Upcoming = append(out.Upcoming, d)
		} else {
			out.Past = append(out.Past, d)
		}
	}
	return out, nil
}

func (s *BookingSvc) detail(ctx context.Context, b *domain.Booking) (*domain.BookingDetail, error) {
	ds, err := enrichBookings(ctx, s.users, s.tours, []domain.Booking{*b})
	if err != nil {
		return nil, err
	}
	return &ds[0], nil
}

func (s *BookingSvc) publish(ctx context.Context, key string, d *domain.BookingDetail) {
	if s.pub == nil {
		return
	}
	if err := s.pub.PublishJSON(ctx, key, bookingEvent(*d, s.now())); err != nil {
		s.log.Error().Err(err).Str("booking_id", d.ID).Str("key", key).Msg("publish booking event")
	}
}

package repository

import (
	"context"
	"time"

	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/services/marketplace-api/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	ByID(ctx context.Context, id string) (*domain.User, error)
	ByIDs(ctx context.Context, ids []string) ([]domain.User, error)
	ByEmail(ctx context.Context, email string) (*domain.User, error)
	// UpdateProfile applies upd to the user; a non-empty role also scopes the match.
	UpdateProfile(ctx context.Context, id string, role domain.Role, upd domain.ProfileUpdate) (*domain.User, error)
	ListGuides(ctx context.Context, f domain.GuideFilter) ([]domain.User, error)
	List(ctx context.Context, role domain.Role, query string) ([]domain.User, error)
	CountByRole(ctx context.Context, role domain.Role) (int64, error)
}

type TourRepository interface {
	Create(ctx context.Context, t *domain.Tour) error
	ByID(ctx context.Context, id string) (*domain.Tour, error)
	ByIDs(ctx context.Context, ids []string) ([]domain.Tour, error)
	// Update saves t only when it still belongs to t.GuideID.
	Update(ctx context.Context, t *domain.Tour) error
	List(ctx context.Context, f domain.TourFilter) ([]domain.Tour, error)
	// ReserveSpots takes n spots in one conditional write.
	ReserveSpots(ctx context.Context, id string, n int) error
	ReleaseSpots(ctx context.Context, id string, n int) error
}

type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	ByID(ctx context.Context, id string) (*domain.Booking, error)
	// ByIDForGuide reports NotFound unless the booking belongs to guideID.
	ByIDForGuide(ctx context.Context, id, guideID string) (*domain.Booking, error)
	List(ctx context.Context, f domain.BookingFilter) ([]domain.Booking, error)
	Count(ctx context.Context, f domain.BookingFilter) (int64, error)
	// UpdateStatus moves the booking from one status to another in a single
	// conditional write. Conflict means the status was no longer from.
	UpdateStatus(ctx context.Context, id string, from, to domain.BookingStatus, at time.Time) (*domain.Booking, error)
	// AttachCharge links chargeID to an open, unpaid booking that holds no charge yet.
	// Conflict means another payment or a cancellation got there first.
	AttachCharge(ctx context.Context, id, chargeID string) (*domain.Booking, error)
	// UpdatePayment moves the payment status from one value to another; Conflict
	// means it was no longer from.
	UpdatePayment(ctx context.Context, id string, from, to domain.PaymentStatus) (*domain.Booking, error)
	// MarkPaidByCharge flips the unpaid, uncancelled booking holding chargeID to
	// paid. changed is false when it was already paid or has been cancelled.
	MarkPaidByCharge(ctx context.Context, chargeID string) (b *domain.Booking, changed bool, err error)
}

type DestinationRepository interface {
	Create(ctx context.Context, d *domain.Destination) error
	ByID(ctx context.Context, id string) (*domain.Destination, error)
	BySlug(ctx context.Context, slug string) (*domain.Destination, error)
	Update(ctx context.Context, d *domain.Destination) error
	List(ctx context.Context, query string) ([]domain.Destination, error)
	Count(ctx context.Context) (int64, error)
}

const defaultListLimit = 100

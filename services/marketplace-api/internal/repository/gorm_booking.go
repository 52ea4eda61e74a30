package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/services/marketplace-api/internal/domain"
)

type GormBookingRepository struct{ db *gorm.DB }

func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

func (r *GormBookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return translate(r.db.WithContext(ctx).Create(b).Error, "booking")
}

func (r *GormBookingRepository) ByID(ctx context.Context, id string) (*domain.Booking, error) {
	var b domain.Booking
	if err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		return nil, translate(err, "booking")
	}
	return &b, nil
}

func (r *GormBookingRepository) ByIDForGuide(ctx context.Context, id, guideID string) (*domain.Booking, error) {
	var b domain.Booking
	err := r.db.WithContext(ctx).First(&b, "id = ? AND guide_id = ?", id, guideID).Error
	if err != nil {
		return nil, translate(err, "booking")
	}
	return &b, nil
}

func (r *GormBookingRepository) filtered(ctx context.Context, f domain.BookingFilter) *gorm.DB {
	qb := r.db.WithContext(ctx).Model(&domain.Booking{})
	if f.TravelerID != "" {
		qb = qb.Where("traveler_id = ?", f.TravelerID)
	}
	if f.GuideID != "" {
		qb = qb.Where("guide_id = ?", f.GuideID)
	}
	if len(f.Statuses) > 0 {
		qb = qb.Where("status IN ?", f.Statuses)
	}
	if !f.CreatedFrom.IsZero() {
		qb = qb.Where("created_at >= ?", f.CreatedFrom)
	}
	if !f.CreatedTo.IsZero() {
		qb = qb.Where("created_at < ?", f.CreatedTo)
	}
	return qb
}

func (r *GormBookingRepository) List(ctx context.Context, f domain.BookingFilter) ([]domain.Booking, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	var out []domain.Booking
	err := r.filtered(ctx, f).Order("created_at DESC").Limit(limit).Find(&out).Error
	if err != nil {
		return nil, translate(err, "bookings")
	}
	return out, nil
}

func (r *GormBookingRepository) Count(ctx context.Context, f domain.BookingFilter) (int64, error) {
	var n int64
	if err := r.filtered(ctx, f).Count(&n).Error; err != nil {
		return 0, translate(err, "bookings")
	}
	return n, nil
}

func (r *GormBookingRepository) UpdateStatus(ctx context.Context, id string, from, to domain.BookingStatus, at time.Time) (*domain.Booking, error) {
	fields := map[string]any{"status": to}
	if to == domain.BookingCancelled {
		fields["cancelled_at"] = at.UTC()
	}
	res := r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("id = ? AND status = ?", id, from).
		Updates(fields)
	return r.afterConditional(ctx, id, res, errStatusChanged)
}

func (r *GormBookingRepository) AttachCharge(ctx context.Context, id, chargeID string) (*domain.Booking, error) {
	res := r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("id = ? AND payment_status = ? AND charge_id = ? AND status IN ?",
			id, domain.PaymentUnpaid, "", domain.OpenBookingStatuses).
		Update("charge_id", chargeID)
	return r.afterConditional(ctx, id, res, errPaymentChanged)
}

func (r *GormBookingRepository) UpdatePayment(ctx context.Context, id string, from, to domain.PaymentStatus) (*domain.Booking, error) {
	res := r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("id = ? AND payment_status = ?", id, from).
		Update("payment_status", to)
	return r.afterConditional(ctx, id, res, errPaymentChanged)
}

// afterConditional reloads the row a guarded write touched. Zero rows is
// NotFound for an unknown id and lost otherwise.
func (r *GormBookingRepository) afterConditional(ctx context.Context, id string, res *gorm.DB, lost error) (*domain.Booking, error) {
	if res.Error != nil {
		return nil, translate(res.Error, "booking")
	}
	if res.RowsAffected == 0 {
		if _, err := r.ByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, lost
	}
	return r.ByID(ctx, id)
}

func (r *GormBookingRepository) MarkPaidByCharge(ctx context.Context, chargeID string) (*domain.Booking, bool, error) {
	res := r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("charge_id = ? AND payment_status = ? AND status <> ?", chargeID, domain.PaymentUnpaid, domain.BookingCancelled).
		Update("payment_status", domain.PaymentPaid)
	if res.Error != nil {
		return nil, false, translate(res.Error, "booking")
	}
	var b domain.Booking
	if err := r.db.WithContext(ctx).First(&b, "charge_id = ?", chargeID).Error; err != nil {
		return nil, false, translate(err, "booking")
	}
	return &b, res.RowsAffected > 0, nil
}

package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/pkg/apperr"
	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/services/marketplace-api/internal/domain"
)

type GormTourRepository struct{ db *gorm.DB }

func NewGormTourRepository(db *gorm.DB) *GormTourRepository {
	return &GormTourRepository{db: db}
}

func (r *GormTourRepository) Create(ctx context.Context, t *domain.Tour) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return translate(r.db.WithContext(ctx).Create(t).Error, "tour")
}

func (r *GormTourRepository) ByID(ctx context.Context, id string) (*domain.Tour, error) {
	var t domain.Tour
	if err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		return nil, translate(err, "tour")
	}
	return &t, nil
}

func (r *GormTourRepository) ByIDs(ctx context.Context, ids []string) ([]domain.Tour, error) {
	var out []domain.Tour
	if len(ids) == 0 {
		return out, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&out).Error; err != nil {
		return nil, translate(err, "tours")
	}
	return out, nil
}

func (r *GormTourRepository) Update(ctx context.Context, t *domain.Tour) error {
	res := r.db.WithContext(ctx).Model(&domain.Tour{}).
		Where("id = ? AND guide_id = ?", t.ID, t.GuideID).
		Select("title", "description", "price", "duration", "location", "image_url",
			"max_participants", "available_spots", "date", "updated_at").
		Updates(t)
	if res.Error != nil {
		return translate(res.Error, "tour")
	}
	if res.RowsAffected == 0 {
		return notFound("tour")
	}
	return nil
}

func (r *GormTourRepository) List(ctx context.Context, f domain.TourFilter) ([]domain.Tour, error) {
	qb := r.db.WithContext(ctx).Model(&domain.Tour{})
	if f.GuideID != "" {
		qb = qb.Where("guide_id = ?", f.GuideID)
	}
	if f.Location != "" {
		qb = qb.Where(`LOWER(location) LIKE ? ESCAPE '\'`, likeContains(f.Location))
	}
	var out []domain.Tour
	if err := qb.Order("date ASC").Limit(defaultListLimit).Find(&out).Error; err != nil {
		return nil, translate(err, "tours")
	}
	return out, nil
}

func (r *GormTourRepository) ReserveSpots(ctx context.Context, id string, n int) error {
	res := r.db.WithContext(ctx).Model(&domain.Tour{}).
		Where("id = ? AND available_spots >= ?", id, n).
		UpdateColumn("available_spots", gorm.Expr("available_spots - ?", n))
	if res.Error != nil {
		return translate(res.Error, "tour")
	}
	if res.RowsAffected == 1 {
		return nil
	}
	if _, err := r.ByID(ctx, id); err != nil {
		return err
	}
	return apperr.E(apperr.Validation, "not enough spots available for this tour")
}

func (r *GormTourRepository) ReleaseSpots(ctx context.Context, id string, n int) error {
	res := r.db.WithContext(ctx).Model(&domain.Tour{}).
		Where("id = ?", id).
		UpdateColumn("available_spots", gorm.Expr(
			"CASE WHEN available_spots + ? > max_participants THEN max_participants ELSE available_spots + ? END", n, n))
	if res.Error != nil {
		return translate(res.Error, "tour")
	}
	if res.RowsAffected == 0 {
		return notFound("tour")
	}
	return nil
}

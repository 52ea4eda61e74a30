package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/services/marketplace-api/internal/domain"
)

type GormDestinationRepository struct{ db *gorm.DB }

func NewGormDestinationRepository(db *gorm.DB) *GormDestinationRepository {
	return &GormDestinationRepository{db: db}
}

func (r *GormDestinationRepository) Create(ctx context.Context, d *domain.Destination) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return translate(r.db.WithContext(ctx).Create(d).Error, "destination")
}

func (r *GormDestinationRepository) ByID(ctx context.Context, id string) (*domain.Destination, error) {
	var d domain.Destination
	if err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error; err != nil {
		return nil, translate(err, "destination")
	}
	return &d, nil
}

func (r *GormDestinationRepository) BySlug(ctx context.Context, slug string) (*domain.Destination, error) {
	var d domain.Destination
	if err := r.db.WithContext(ctx).First(&d, "slug = ?", slug).Error; err != nil {
		return nil, translate(err, "destination")
	}
	return &d, nil
}

func (r *GormDestinationRepository) Update(ctx context.Context, d *domain.Destination) error {
	res := r.db.WithContext(ctx).Model(&domain.Destination{}).Where("id = ?", d.ID).
		Select("name", "slug", "country", "description", "image_url", "updated_at").
		Updates(d)
	if res.Error != nil {
		return translate(res.Error, "destination")
	}
	if res.RowsAffected == 0 {
		return notFound("destination")
	}
	return nil
}

func (r *GormDestinationRepository) List(ctx context.Context, query string) ([]domain.Destination, error) {
	qb := r.db.WithContext(ctx).Model(&domain.Destination{})
	if q := strings.TrimSpace(query); q != "" {
		pat := likeContains(q)
		qb = qb.Where(`(LOWER(name) LIKE ? ESCAPE '\' OR LOWER(country) LIKE ? ESCAPE '\')`, pat, pat)
	}
	var out []domain.Destination
	if err := qb.Order("name ASC").Limit(defaultListLimit).Find(&out).Error; err != nil {
		return nil, translate(err, "destinations")
	}
	return out, nil
}

func (r *GormDestinationRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&domain.Destination{}).Count(&n).Error; err != nil {
		return 0, translate(err, "destinations")
	}
	return n, nil
}

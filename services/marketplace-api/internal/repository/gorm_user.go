package repository

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/services/marketplace-api/internal/domain"
)

type GormUserRepository struct{ db *gorm.DB }

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) Create(ctx context.Context, u *domain.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	return translate(r.db.WithContext(ctx).Create(u).Error, "user")
}

func (r *GormUserRepository) ByID(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, translate(err, "user")
	}
	return &u, nil
}

func (r *GormUserRepository) ByIDs(ctx context.Context, ids []string) ([]domain.User, error) {
	var out []domain.User
	if len(ids) == 0 {
		return out, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&out).Error; err != nil {
		return nil, translate(err, "users")
	}
	return out, nil
}

func (r *GormUserRepository) ByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).First(&u, "email = ?", strings.ToLower(strings.TrimSpace(email))).Error
	if err != nil {
		return nil, translate(err, "user")
	}
	return &u, nil
}

func (r *GormUserRepository) UpdateProfile(ctx context.Context, id string, role domain.Role, upd domain.ProfileUpdate) (*domain.User, error) {
	qb := r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id)
	if role != "" {
		qb = qb.Where("role = ?", role)
	}
	fields := profileColumns(upd)
	if len(fields) > 0 {
		res := qb.Updates(fields)
		if res.Error != nil {
			return nil, translate(res.Error, "user")
		}
		if res.RowsAffected == 0 {
			return nil, notFound("user")
		}
	}
	u, err := r.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if role != "" && u.Role != role {
		return nil, notFound("user")
	}
	return u, nil
}

func profileColumns(upd domain.ProfileUpdate) map[string]any {
	fields := map[string]any{}
	if upd.Name != nil {
		fields["name"] = strings.TrimSpace(*upd.Name)
	}
	if upd.Phone != nil {
		fields["phone"] = *upd.Phone
	}
	if upd.Location != nil {
		fields["location"] = *upd.Location
	}
	if upd.AvatarURL != nil {
		fields["avatar_url"] = *upd.AvatarURL
	}
	if upd.About != nil {
		fields["about"] = *upd.About
	}
	if upd.Website != nil {
		fields["website"] = *upd.Website
	}
	if upd.Languages != nil {
		fields["languages"] = datatypes.JSONSlice[string](*upd.Languages)
	}
	if upd.Specialties != nil {
		fields["specialties"] = datatypes.JSONSlice[string](*upd.Specialties)
	}
	if upd.Experience != nil {
		fields["experience"] = *upd.Experience
	}
	if upd.PricePerDay != nil {
		fields["price_per_day"] = *upd.PricePerDay
	}
	return fields
}

func (r *GormUserRepository) ListGuides(ctx context.Context, f domain.GuideFilter) ([]domain.User, error) {
	qb := r.db.WithContext(ctx).Model(&domain.User{}).Where("role = ?", domain.RoleGuide)
	if f.Location != "" {
		qb = qb.Where(`LOWER(location) LIKE ? ESCAPE '\'`, likeContains(f.Location))
	}
	if f.Language != "" {
		qb = qb.Where(`LOWER(CAST(languages AS TEXT)) LIKE ? ESCAPE '\'`, likeJSONEntry(f.Language))
	}
	if f.Specialty != "" {
		qb = qb.Where(`LOWER(CAST(specialties AS TEXT)) LIKE ? ESCAPE '\'`, likeJSONEntry(f.Specialty))
	}
	if f.PriceMin != nil {
		qb = qb.Where("price_per_day >= ?", *f.PriceMin)
	}
	if f.PriceMax != nil {
		qb = qb.Where("price_per_day <= ?", *f.PriceMax)
	}
	if f.MinRating != nil {
		qb = qb.Where("rating >= ?", *f.MinRating)
	}
	var out []domain.User
	if err := qb.Order("rating DESC").Order("name ASC").Limit(defaultListLimit).Find(&out).Error; err != nil {
		return nil, translate(err, "guides")
	}
	return out, nil
}

func (r *GormUserRepository) List(ctx context.Context, role domain.Role, query string) ([]domain.User, error) {
	qb := r.db.WithContext(ctx).Model(&domain.User{})
	if role != "" {
		qb = qb.Where("role = ?", role)
	}
	if q := strings.TrimSpace(query); q != "" {
		pat := likeContains(q)
		qb = qb.Where(`(LOWER(email) LIKE ? ESCAPE '\' OR LOWER(name) LIKE ? ESCAPE '\')`, pat, pat)
	}
	var out []domain.User
	if err := qb.Order("created_at DESC").Limit(defaultListLimit).Find(&out).Error; err != nil {
		return nil, translate(err, "users")
	}
	return out, nil
}

func (r *GormUserRepository) CountByRole(ctx context.Context, role domain.Role) (int64, error) {
	var n int64
	qb := r.db.WithContext(ctx).Model(&domain.User{})
	if role != "" {
		qb = qb.Where("role = ?", role)
	}
	if err := qb.Count(&n).Error; err != nil {
		return 0, translate(err, "users")
	}
	return n, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likeContains builds a lowercase substring pattern for LIKE ... ESCAPE '\'.
func likeContains(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(strings.TrimSpace(s))) + "%"
}

// likeJSONEntry matches one whole string entry of a JSON array column.
func likeJSONEntry(s string) string {
	quoted, _ := json.Marshal(strings.ToLower(strings.TrimSpace(s)))
	return "%" + likeEscaper.Replace(string(quoted)) + "%"
}

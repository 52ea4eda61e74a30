package domain

import (
	"strings"
	"time"
	"unicode"

	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/pkg/apperr"
)

type Destination struct {
	ID          string    `gorm:"primaryKey" bson:"_id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Slug        string    `gorm:"uniqueIndex" bson:"slug" json:"slug"`
	Country     string    `bson:"country" json:"country"`
	Description string    `bson:"description" json:"description"`
	ImageURL    string    `bson:"imageUrl" json:"image"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (d *Destination) Validate() error {
	if len([]rune(trim(d.Name))) < 2 {
		return apperr.E(apperr.Validation, "name must be at least 2 characters")
	}
	if d.Slug == "" {
		return apperr.E(apperr.Validation, "name must contain letters or digits")
	}
	return nil
}

// Slugify lowercases s and joins its letter/digit runs with '-'.
func Slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	return b.String()
}

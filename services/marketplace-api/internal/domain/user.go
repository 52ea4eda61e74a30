package domain

import (
	"time"

	"gorm.io/datatypes"

	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/pkg/apperr"
)

type Role string

const (
	RoleTraveler Role = "traveler"
	RoleGuide    Role = "guide"
	RoleAdmin    Role = "admin"
)

func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleTraveler, RoleGuide, RoleAdmin:
		return r, nil
	}
	return "", apperr.E(apperr.Validation, "role must be one of traveler, guide, admin")
}

type User struct {
	ID           string    `gorm:"primaryKey" bson:"_id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `gorm:"uniqueIndex" bson:"email" json:"email"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	Role         Role      `gorm:"index" bson:"role" json:"role"`
	AvatarURL    string    `bson:"avatarUrl" json:"avatarUrl"`
	Phone        string    `bson:"phone" json:"phone,omitempty"`
	Location     string    `gorm:"index" bson:"location" json:"location,omitempty"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`

	// guide profile
	About       string                      `bson:"about,omitempty" json:"about,omitempty"`
	Website     string                      `bson:"website,omitempty" json:"website,omitempty"`
	Languages   datatypes.JSONSlice[string] `bson:"languages" json:"languages"`
	Specialties datatypes.JSONSlice[string] `bson:"specialties" json:"specialties"`
	Experience  int                         `bson:"experience" json:"experience"`
	PricePerDay float64                     `bson:"pricePerDay" json:"pricePerDay"`
	Rating      float64                     `bson:"rating" json:"rating"`
}

// ProfileUpdate lists editable profile fields; nil means unchanged.
type ProfileUpdate struct {
	Name        *string   `json:"name"`
	Phone       *string   `json:"phone"`
	Location    *string   `json:"location"`
	AvatarURL   *string   `json:"avatarUrl"`
	About       *string   `json:"about"`
	Website     *string   `json:"website"`
	Languages   *[]string `json:"languages"`
	Specialties *[]string `json:"specialties"`
	Experience  *int      `json:"experience"`
	PricePerDay *float64  `json:"pricePerDay"`
}

// PersonalOnly drops the guide-only fields.
func (p ProfileUpdate) PersonalOnly() ProfileUpdate {
	return ProfileUpdate{Name: p.Name, Phone: p.Phone, Location: p.Location, AvatarURL: p.AvatarURL}
}

func (p ProfileUpdate) Empty() bool {
	return p == ProfileUpdate{}
}

func (p ProfileUpdate) Validate() error {
	if p.Name != nil && len([]rune(trim(*p.Name))) < 2 {
		return apperr.E(apperr.Validation, "name must be at least 2 characters")
	}
	if p.Experience != nil && *p.Experience < 0 {
		return apperr.E(apperr.Validation, "experience cannot be negative")
	}
	if p.PricePerDay != nil && *p.PricePerDay < 0 {
		return apperr.E(apperr.Validation, "pricePerDay cannot be negative")
	}
	return nil
}

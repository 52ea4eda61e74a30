package domain

import (
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/pkg/apperr"
)

// GuideFilter narrows the guide directory. Text fields match case-insensitively:
// Location as a substring, Language and Specialty against whole list entries.
type GuideFilter struct {
	Location  string
	Language  string
	Specialty string
	PriceMin  *float64
	PriceMax  *float64
	MinRating *float64
}

func ParseGuideFilter(q url.Values) (GuideFilter, error) {
	f := GuideFilter{
		Location:  trim(q.Get("location")),
		Language:  trim(q.Get("language")),
		Specialty: trim(q.Get("specialty")),
	}
	var err error
	if f.PriceMin, err = optionalFloat(q, "priceMin"); err != nil {
		return f, err
	}
	if f.PriceMax, err = optionalFloat(q, "priceMax"); err != nil {
		return f, err
	}
	if f.MinRating, err = optionalFloat(q, "rating"); err != nil {
		return f, err
	}
	if f.PriceMin != nil && f.PriceMax != nil && *f.PriceMin > *f.PriceMax {
		return f, apperr.E(apperr.Validation, "priceMin cannot exceed priceMax")
	}
	return f, nil
}

func optionalFloat(q url.Values, key string) (*float64, error) {
	raw := trim(q.Get(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, apperr.E(apperr.Validation, key+" must be a non-negative number")
	}
	return &v, nil
}

type TourFilter struct {
	GuideID  string
	Location string
}

type BookingFilter struct {
	TravelerID  string
	GuideID     string
	Statuses    []BookingStatus
	CreatedFrom time.Time
	CreatedTo   time.Time
	Limit       int
}

func trim(s string) string { return strings.TrimSpace(s) }

package domain

import (
	"net/url"
	"testing"
	"time"

	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/pkg/apperr"
)

func TestBookingTransitions(t *testing.T) {
	cases := []struct {
		from, to BookingStatus
		want     bool
	}{
		{BookingPending, BookingConfirmed, true},
		{BookingPending, BookingCancelled, true},
		{BookingPending, BookingCompleted, false},
		{BookingPending, BookingPending, false},
		{BookingConfirmed, BookingCompleted, true},
		{BookingConfirmed, BookingCancelled, true},
		{BookingConfirmed, BookingPending, false},
		{BookingCompleted, BookingCancelled, false},
		{BookingCompleted, BookingConfirmed, false},
		{BookingCancelled, BookingConfirmed, false},
		{BookingCancelled, BookingPending, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Fatalf("%s -> %s = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
	if !BookingCompleted.IsTerminal() || !BookingCancelled.IsTerminal() || BookingPending.IsTerminal() {
		t.Fatalf("IsTerminal mismatch")
	}
}

func TestParseBookingStatus(t *testing.T) {
	if st, err := ParseBookingStatus("confirmed"); err != nil || st != BookingConfirmed {
		t.Fatalf("ParseBookingStatus(confirmed) = %v, %v", st, err)
	}
	for _, bad := range []string{"", "CONFIRMED", "archived"} {
		if _, err := ParseBookingStatus(bad); !apperr.Is(err, apperr.Validation) {
			t.Fatalf("ParseBookingStatus(%q) err = %v, want validation", bad, err)
		}
	}
}

func TestBookingValidate(t *testing.T) {
	valid := Booking{TravelerID: "t", GuideID: "g", TourID: "x", Date: time.Now(), Participants: 1, TotalPrice: 0}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate(valid) = %v", err)
	}

	noPeople := valid
	noPeople.Participants = 0
	if err := noPeople.Validate(); !apperr.Is(err, apperr.Validation) {
		t.Fatalf("participants=0 err = %v", err)
	}

	negative := valid
	negative.TotalPrice = -1
	if err := negative.Validate(); !apperr.Is(err, apperr.Validation) {
		t.Fatalf("totalPrice=-1 err = %v", err)
	}
}

func TestParseGuideFilter(t *testing.T) {
	q := url.Values{
		"location": {" Delhi "},
		"language": {"Hindi"},
		"priceMin": {"500"},
		"priceMax": {"2500"},
		"rating":   {"4.5"},
	}
	f, err := ParseGuideFilter(q)
	if err != nil {
		t.Fatalf("ParseGuideFilter: %v", err)
	}
	if f.Location != "Delhi" || f.Language != "Hindi" || *f.PriceMin != 500 || *f.PriceMax != 2500 || *f.MinRating != 4.5 {
		t.Fatalf("filter = %+v", f)
	}
	if f.Specialty != "" {
		t.Fatalf("Specialty = %q, want empty", f.Specialty)
	}

	bad := []url.Values{
		{"priceMin": {"cheap"}},
		{"rating": {"-1"}},
		{"rating": {"NaN"}},
		{"priceMax": {"Inf"}},
		{"priceMin": {"+Infinity"}},
		{"priceMin": {"3000"}, "priceMax": {"100"}},
	}
	for _, v := range bad {
		if _, err := ParseGuideFilter(v); !apperr.Is(err, apperr.Validation) {
			t.Fatalf("ParseGuideFilter(%v) err = %v, want validation", v, err)
		}
	}
}

func TestTourValidate(t *testing.T) {
	tour := Tour{Title: "Backwaters", Description: "Houseboat day", Location: "Alleppey", Price: 2000,
		Duration: 1, MaxParticipants: 6, AvailableSpots: 6, Date: time.Now()}
	if err := tour.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	tour.AvailableSpots = 7
	if err := tour.Validate(); !apperr.Is(err, apperr.Validation) {
		t.Fatalf("availableSpots > max err = %v", err)
	}
	tour.AvailableSpots = 6
	tour.Duration = 0
	if err := tour.Validate(); !apperr.Is(err, apperr.Validation) {
		t.Fatalf("duration 0 err = %v", err)
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Goa":                  "goa",
		"  Goa Beaches!! ":     "goa-beaches",
		"Rishikesh & Haridwar": "rishikesh-haridwar",
		"---":                  "",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Fatalf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestProfileUpdate(t *testing.T) {
	name := "A"
	if err := (ProfileUpdate{Name: &name}).Validate(); !apperr.Is(err, apperr.Validation) {
		t.Fatalf("short name err = %v", err)
	}
	about := "Heritage walks"
	p := ProfileUpdate{About: &about}
	if !p.PersonalOnly().Empty() {
		t.Fatalf("PersonalOnly kept guide field")
	}
	if p.Empty() {
		t.Fatalf("Empty() = true with About set")
	}
}

func TestParseRole(t *testing.T) {
	if r, err := ParseRole("guide"); err != nil || r != RoleGuide {
		t.Fatalf("ParseRole(guide) = %v, %v", r, err)
	}
	if _, err := ParseRole("owner"); !apperr.Is(err, apperr.Validation) {
		t.Fatalf("ParseRole(owner) err = %v", err)
	}
}

package repository

import (
	"context"
	"testing"
	"time"

	"gorm.io/datatypes"

	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/pkg/apperr"
	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/pkg/db"
	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/services/marketplace-api/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	gdb, err := db.Open("sqlite", ":memory:", db.Options{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { _ = db.Close(gdb) })
	return NewGormStore(gdb)
}

func mustCreateGuide(t *testing.T, s *Store, name, location string, price, rating float64, langs ...string) *domain.User {
	t.Helper()
	u := &domain.User{
		Name:        name,
		Email:       name + "@example.com",
		Role:        domain.RoleGuide,
		Location:    location,
		PricePerDay: price,
		Rating:      rating,
		Languages:   datatypes.JSONSlice[string](langs),
		Specialties: datatypes.JSONSlice[string]{"Heritage"},
	}
	if err := s.Users.Create(context.Background(), u); err != nil {
		t.Fatalf("create guide %s: %v", name, err)
	}
	return u
}

func TestUserCreateDuplicateEmail(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	if err := s.Users.Create(ctx, &domain.User{Name: "Asha", Email: "Asha@Example.com", Role: domain.RoleTraveler}); err != nil {
		t.Fatalf("create: %v", err)
	}
	err := s.Users.Create(ctx, &domain.User{Name: "Asha 2", Email: "asha@example.com", Role: domain.RoleTraveler})
	if !apperr.Is(err, apperr.Conflict) {
		t.Fatalf("duplicate err = %v, want conflict", err)
	}
	u, err := s.Users.ByEmail(ctx, "ASHA@example.com")
	if err != nil || u.Name != "Asha" {
		t.Fatalf("ByEmail = %+v, %v", u, err)
	}
	if _, err := s.Users.ByID(ctx, "missing"); !apperr.Is(err, apperr.NotFound) {
		t.Fatalf("ByID(missing) err = %v, want not found", err)
	}
}

func TestListGuidesFilters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	mustCreateGuide(t, s, "ravi", "New Delhi", 1500, 4.8, "Hindi", "English")
	mustCreateGuide(t, s, "meera", "Jaipur", 900, 4.2, "Hindi")
	mustCreateGuide(t, s, "lee", "delhi ncr", 3000, 3.9, "Korean")
	if err := s.Users.Create(ctx, &domain.User{Name: "traveler", Email: "t@example.com", Role: domain.RoleTraveler, Location: "Delhi"}); err != nil {
		t.Fatalf("create traveler: %v", err)
	}

	names := func(us []domain.User) []string {
		out := make([]string, 0, len(us))
		for _, u := range us {
			out = append(out, u.Name)
		}
		return out
	}

	got, err := s.Users.ListGuides(ctx, domain.GuideFilter{Location: "DELHI"})
	if err != nil {
		t.Fatalf("ListGuides: %v", err)
	}
	if len(got) != 2 || got[0].Name != "ravi" || got[1].Name != "lee" {
		t.Fatalf("location=DELHI -> %v, want [ravi lee]", names(got))
	}

	got, _ = s.Users.ListGuides(ctx, domain.GuideFilter{Language: "hindi"})
	if len(got) != 2 {
		t.Fatalf("language=hindi -> %v", names(got))
	}

	// whole entry only: "Hind" is not a language
	got, _ = s.Users.ListGuides(ctx, domain.GuideFilter{Language: "Hind"})
	if len(got) != 0 {
		t.Fatalf("language=Hind -> %v, want none", names(got))
	}

	min, max := 1000.0, 2000.0
	got, _ = s.Users.ListGuides(ctx, domain.GuideFilter{PriceMin: &min, PriceMax: &max})
	if len(got) != 1 || got[0].Name != "ravi" {
		t.Fatalf("price 1000..2000 -> %v", names(got))
	}

	rating := 4.0
	got, _ = s.Users.ListGuides(ctx, domain.GuideFilter{MinRating: &rating, Specialty: "heritage"})
	if len(got) != 2 {
		t.Fatalf("rating>=4 specialty=heritage -> %v", names(got))
	}

	got, _ = s.Users.ListGuides(ctx, domain.GuideFilter{Location: "100%"})
	if len(got) != 0 {
		t.Fatalf("wildcard in input matched %v", names(got))
	}
}

func TestUpdateProfileScopedByRole(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	g := mustCreateGuide(t, s, "ravi", "Delhi", 1500, 4.8, "Hindi")
	traveler := &domain.User{Name: "asha", Email: "asha@example.com", Role: domain.RoleTraveler}
	_ = s.Users.Create(ctx, traveler)

	about := "Old Delhi food walks"
	langs := []string{"Hindi", "Punjabi"}
	u, err := s.Users.UpdateProfile(ctx, g.ID, domain.RoleGuide, domain.ProfileUpdate{About: &about, Languages: &langs})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if u.About != about || len(u.Languages) != 2 || u.Languages[1] != "Punjabi" {
		t.Fatalf("updated = %+v", u)
	}

	if _, err := s.Users.UpdateProfile(ctx, traveler.ID, domain.RoleGuide, domain.ProfileUpdate{About: &about}); !apperr.Is(err, apperr.NotFound) {
		t.Fatalf("traveler as guide err = %v, want not found", err)
	}
}

func TestReserveAndReleaseSpots(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	tour := &domain.Tour{Title: "Walk", Description: "d", Location: "Delhi", Price: 100, Duration: 1,
		GuideID: "g1", MaxParticipants: 4, AvailableSpots: 4, Date: time.Now().Add(48 * time.Hour)}
	if err := s.Tours.Create(ctx, tour); err != nil {
		t.Fatalf("create tour: %v", err)
	}

	if err := s.Tours.ReserveSpots(ctx, tour.ID, 3); err != nil {
		t.Fatalf("reserve 3: %v", err)
	}
	if err := s.Tours.ReserveSpots(ctx, tour.ID, 2); !apperr.Is(err, apperr.Validation) {
		t.Fatalf("reserve past capacity err = %v, want validation", err)
	}
	if err := s.Tours.ReserveSpots(ctx, "missing", 1); !apperr.Is(err, apperr.NotFound) {
		t.Fatalf("reserve missing err = %v, want not found", err)
	}
	if err := s.Tours.ReleaseSpots(ctx, tour.ID, 10); err != nil {
		t.Fatalf("release: %v", err)
	}
	got, _ := s.Tours.ByID(ctx, tour.ID)
	if got.AvailableSpots != 4 {
		t.Fatalf("AvailableSpots = %d, want capped at 4", got.AvailableSpots)
	}
}

func TestTourUpdateScopedByGuide(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	tour := &domain.Tour{Title: "Walk", Description: "d", Location: "Delhi", Price: 100, Duration: 1,
		GuideID: "g1", MaxParticipants: 4, AvailableSpots: 4, Date: time.Now()}
	_ = s.Tours.Create(ctx, tour)

	other := *tour
	other.GuideID = "g2"
	other.Title = "Hijacked"
	if err := s.Tours.Update(ctx, &other); !apperr.Is(err, apperr.NotFound) {
		t.Fatalf("update by other guide err = %v, want not found", err)
	}

	tour.Title = "Evening Walk"
	tour.AvailableSpots = 0
	if err := s.Tours.Update(ctx, tour); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, _ := s.Tours.ByID(ctx, tour.ID)
	if got.Title != "Evening Walk" || got.AvailableSpots != 0 {
		t.Fatalf("tour = %+v", got)
	}
}

func TestBookingRepository(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	b := &domain.Booking{TravelerID: "t1", GuideID: "g1", TourID: "x1", Date: time.Now(), Participants: 2,
		TotalPrice: 200, Status: domain.BookingPending, PaymentStatus: domain.PaymentUnpaid}
	if err := s.Bookings.Create(ctx, b); err != nil {
		t.Fatalf("create: %v", err)
	}
	other := &domain.Booking{TravelerID: "t2", GuideID: "g2", TourID: "x2", Date: time.Now(), Participants: 1,
		TotalPrice: 50, Status: domain.BookingConfirmed, PaymentStatus: domain.PaymentUnpaid}
	_ = s.Bookings.Create(ctx, other)

	if _, err := s.Bookings.ByIDForGuide(ctx, b.ID, "g2"); !apperr.Is(err, apperr.NotFound) {
		t.Fatalf("ByIDForGuide(other guide) err = %v, want not found", err)
	}
	if got, err := s.Bookings.ByIDForGuide(ctx, b.ID, "g1"); err != nil || got.ID != b.ID {
		t.Fatalf("ByIDForGuide = %v, %v", got, err)
	}

	list, _ := s.Bookings.List(ctx, domain.BookingFilter{GuideID: "g1"})
	if len(list) != 1 || list[0].ID != b.ID {
		t.Fatalf("List(g1) = %+v", list)
	}
	n, _ := s.Bookings.Count(ctx, domain.BookingFilter{Statuses: []domain.BookingStatus{domain.BookingConfirmed}})
	if n != 1 {
		t.Fatalf("Count(confirmed) = %d, want 1", n)
	}

	at := time.Now()
	if _, err := s.Bookings.UpdateStatus(ctx, b.ID, domain.BookingConfirmed, domain.BookingCancelled, at); !apperr.Is(err, apperr.Conflict) {
		t.Fatalf("UpdateStatus(stale from) err = %v, want conflict", err)
	}
	updated, err := s.Bookings.UpdateStatus(ctx, b.ID, domain.BookingPending, domain.BookingCancelled, at)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if updated.Status != domain.BookingCancelled || updated.CancelledAt == nil {
		t.Fatalf("updated = %+v", updated)
	}
	if _, err := s.Bookings.UpdateStatus(ctx, "missing", domain.BookingPending, domain.BookingConfirmed, at); !apperr.Is(err, apperr.NotFound) {
		t.Fatalf("UpdateStatus(missing) err = %v", err)
	}
}

func TestMarkPaidByChargeIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	b := &domain.Booking{TravelerID: "t1", GuideID: "g1", TourID: "x1", Date: time.Now(), Participants: 1,
		TotalPrice: 100, Status: domain.BookingPending, PaymentStatus: domain.PaymentUnpaid}
	_ = s.Bookings.Create(ctx, b)
	if _, err := s.Bookings.AttachCharge(ctx, b.ID, "chrg_test_1"); err != nil {
		t.Fatalf("AttachCharge: %v", err)
	}

	got, changed, err := s.Bookings.MarkPaidByCharge(ctx, "chrg_test_1")
	if err != nil || !changed || got.PaymentStatus != domain.PaymentPaid {
		t.Fatalf("first MarkPaidByCharge = %+v, %v, %v", got, changed, err)
	}
	_, changed, err = s.Bookings.MarkPaidByCharge(ctx, "chrg_test_1")
	if err != nil || changed {
		t.Fatalf("second MarkPaidByCharge changed = %v, err = %v", changed, err)
	}
	if _, _, err := s.Bookings.MarkPaidByCharge(ctx, "chrg_unknown"); !apperr.Is(err, apperr.NotFound) {
		t.Fatalf("unknown charge err = %v", err)
	}
}

func TestAttachChargeOnlyOnce(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	b := &domain.Booking{TravelerID: "t1", GuideID: "g1", TourID: "x1", Date: time.Now(), Participants: 1,
		TotalPrice: 100, Status: domain.BookingPending, PaymentStatus: domain.PaymentUnpaid}
	_ = s.Bookings.Create(ctx, b)

	got, err := s.Bookings.AttachCharge(ctx, b.ID, "chrg_a")
	if err != nil || got.ChargeID != "chrg_a" {
		t.Fatalf("AttachCharge = %+v, %v", got, err)
	}
	if _, err := s.Bookings.AttachCharge(ctx, b.ID, "chrg_b"); !apperr.Is(err, apperr.Conflict) {
		t.Fatalf("second AttachCharge err = %v, want conflict", err)
	}
	if _, err := s.Bookings.AttachCharge(ctx, "missing", "chrg_c"); !apperr.Is(err, apperr.NotFound) {
		t.Fatalf("AttachCharge(missing) err = %v", err)
	}

	cancelled := &domain.Booking{TravelerID: "t1", GuideID: "g1", TourID: "x1", Date: time.Now(), Participants: 1,
		TotalPrice: 100, Status: domain.BookingCancelled, PaymentStatus: domain.PaymentUnpaid}
	_ = s.Bookings.Create(ctx, cancelled)
	if _, err := s.Bookings.AttachCharge(ctx, cancelled.ID, "chrg_d"); !apperr.Is(err, apperr.Conflict) {
		t.Fatalf("AttachCharge(cancelled) err = %v, want conflict", err)
	}
}

func TestMarkPaidByChargeSkipsCancelled(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	b := &domain.Booking{TravelerID: "t1", GuideID: "g1", TourID: "x1", Date: time.Now(), Participants: 1,
		TotalPrice: 100, Status: domain.BookingPending, PaymentStatus: domain.PaymentUnpaid}
	_ = s.Bookings.Create(ctx, b)
	if _, err := s.Bookings.AttachCharge(ctx, b.ID, "chrg_late"); err != nil {
		t.Fatalf("AttachCharge: %v", err)
	}
	if _, err := s.Bookings.UpdateStatus(ctx, b.ID, domain.BookingPending, domain.BookingCancelled, time.Now()); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	got, changed, err := s.Bookings.MarkPaidByCharge(ctx, "chrg_late")
	if err != nil || changed {
		t.Fatalf("MarkPaidByCharge(cancelled) changed = %v, err = %v", changed, err)
	}
	if got.Status != domain.BookingCancelled || got.PaymentStatus != domain.PaymentUnpaid {
		t.Fatalf("booking = %+v, want cancelled and unpaid", got)
	}
}

func TestUpdatePaymentIsConditional(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	b := &domain.Booking{TravelerID: "t1", GuideID: "g1", TourID: "x1", Date: time.Now(), Participants: 1,
		TotalPrice: 100, Status: domain.BookingConfirmed, PaymentStatus: domain.PaymentPaid}
	_ = s.Bookings.Create(ctx, b)

	got, err := s.Bookings.UpdatePayment(ctx, b.ID, domain.PaymentPaid, domain.PaymentRefunded)
	if err != nil || got.PaymentStatus != domain.PaymentRefunded {
		t.Fatalf("UpdatePayment = %+v, %v", got, err)
	}
	if _, err := s.Bookings.UpdatePayment(ctx, b.ID, domain.PaymentPaid, domain.PaymentRefunded); !apperr.Is(err, apperr.Conflict) {
		t.Fatalf("repeat UpdatePayment err = %v, want conflict", err)
	}
}

func TestDestinationSlugUnique(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	d := &domain.Destination{Name: "Goa", Slug: "goa", Country: "India"}
	if err := s.Destinations.Create(ctx, d); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.Destinations.Create(ctx, &domain.Destination{Name: "GOA", Slug: "goa"}); !apperr.Is(err, apperr.Conflict) {
		t.Fatalf("duplicate slug err = %v, want conflict", err)
	}
	got, err := s.Destinations.BySlug(ctx, "goa")
	if err != nil || got.ID != d.ID {
		t.Fatalf("BySlug = %+v, %v", got, err)
	}
	list, _ := s.Destinations.List(ctx, "ind")
	if len(list) != 1 {
		t.Fatalf("List(ind) = %d items", len(list))
	}
}

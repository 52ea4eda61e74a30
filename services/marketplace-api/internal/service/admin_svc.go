package service

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/services/marketplace-api/internal/domain"
	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/services/marketplace-api/internal/repository"
)

const (
	recentBookings      = 5
	popularDestinations = 5
	yearBookingsLimit   = 10000
)

type AdminSvc struct {
	users    repository.UserRepository
	tours    repository.TourRepository
	bookings repository.BookingRepository
	dests    repository.DestinationRepository
	now      func() time.Time
}

func NewAdminSvc(users repository.UserRepository, tours repository.TourRepository, bookings repository.BookingRepository, dests repository.DestinationRepository) *AdminSvc {
	return &AdminSvc{users: users, tours: tours, bookings: bookings, dests: dests, now: time.Now}
}

func (s *AdminSvc) Dashboard(ctx context.Context) (*domain.AdminStats, error) {
	ctx, span := tracer.Start(ctx, "AdminSvc.Dashboard")
	defer span.End()

	var (
		st  domain.AdminStats
		err error
	)
	if st.TotalGuides, err = s.users.CountByRole(ctx, domain.RoleGuide); err != nil {
		return nil, err
	}
	if st.TotalTravelers, err = s.users.CountByRole(ctx, domain.RoleTraveler); err != nil {
		return nil, err
	}
	if st.TotalDestinations, err = s.dests.Count(ctx); err != nil {
		return nil, err
	}
	if st.TotalBookings, err = s.bookings.Count(ctx, domain.BookingFilter{}); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	lastMonthStart := monthStart.AddDate(0, -1, 0)
	yearStart := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)

	if st.MonthlyBookings, err = s.bookings.Count(ctx, domain.BookingFilter{CreatedFrom: monthStart}); err != nil {
		return nil, err
	}
	st.LastMonthBookings, err = s.bookings.Count(ctx, domain.BookingFilter{CreatedFrom: lastMonthStart, CreatedTo: monthStart})
	if err != nil {
		return nil, err
	}
	st.BookingsChange = percentChange(st.LastMonthBookings, st.MonthlyBookings)

	year, err := s.bookings.List(ctx, domain.BookingFilter{CreatedFrom: yearStart, Limit: yearBookingsLimit})
	if err != nil {
		return nil, err
	}
	st.MonthlyRevenue = monthlyRevenue(year, now.Month())

	recent, err := s.bookings.List(ctx, domain.BookingFilter{Limit: recentBookings})
	if err != nil {
		return nil, err
	}
	if st.RecentBookings, err = enrichBookings(ctx, s.users, s.tours, recent); err != nil {
		return nil, err
	}

	yearDetail, err := enrichBookings(ctx, s.users, s.tours, year)
	if err != nil {
		return nil, err
	}
	st.PopularDestinations = popularLocations(yearDetail, popularDestinations)
	return &st, nil
}

// percentChange is rounded to one decimal. Growth from zero reads as 100%.
func percentChange(prev, cur int64) float64 {
	switch {
	case prev == 0 && cur > 0:
		return 100
	case prev == 0:
		return 0
	}
	return math.Round(float64(cur-prev)/float64(prev)*1000) / 10
}

// monthlyRevenue sums confirmed and completed bookings per month from January to through.
func monthlyRevenue(bs []domain.Booking, through time.Month) []domain.MonthlyRevenue {
	sums := make([]float64, through)
	for _, b := range bs {
		if b.Status != domain.BookingConfirmed && b.Status != domain.BookingCompleted {
			continue
		}
		m := b.CreatedAt.UTC().Month()
		if m <= through {
			sums[m-1] += b.TotalPrice
		}
	}
	out := make([]domain.MonthlyRevenue, 0, through)
	for i, v := range sums {
		out = append(out, domain.MonthlyRevenue{Month: time.Month(i + 1).String()[:3], Revenue: v})
	}
	return out
}

func popularLocations(ds []domain.BookingDetail, n int) []domain.LocationCount {
	counts := map[string]int{}
	names := map[string]string{}
	for _, d := range ds {
		loc := strings.TrimSpace(d.TourLocation)
		if loc == "" {
			continue
		}
		k := strings.ToLower(loc)
		counts[k]++
		if _, ok := names[k]; !ok {
			names[k] = loc
		}
	}
	out := make([]domain.LocationCount, 0, len(counts))
	for k, c := range counts {
		out = append(out, domain.LocationCount{Location: names[k], Bookings: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Bookings != out[j].Bookings {
			return out[i].Bookings > out[j].Bookings
		}
		return out[i].Location < out[j].Location
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

package service

import (
	"context"
	"strings"
	"time"

	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/pkg/apperr"
	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/services/marketplace-api/internal/domain"
	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/services/marketplace-api/internal/repository"
)

var (
	errGuideNotFound = apperr.E(apperr.NotFound, "guide not found")
	errTourNotFound  = apperr.E(apperr.NotFound, "tour not found")
)

type TourSvc struct{ tours repository.TourRepository }

func NewTourSvc(tours repository.TourRepository) *TourSvc { return &TourSvc{tours: tours} }

type TourInput struct {
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Price           float64   `json:"price"`
	Duration        int       `json:"duration"`
	Location        string    `json:"location"`
	ImageURL        string    `json:"image"`
	MaxParticipants int       `json:"maxParticipants"`
	AvailableSpots  *int      `json:"availableSpots"`
	Date            time.Time `json:"date"`
}

func (in TourInput) apply(t *domain.Tour) {
	t.Title = strings.TrimSpace(in.Title)
	t.Description = strings.TrimSpace(in.Description)
	t.Price = in.Price
	t.Duration = in.Duration
	t.Location = strings.TrimSpace(in.Location)
	t.ImageURL = in.ImageURL
	t.MaxParticipants = in.MaxParticipants
	t.Date = in.Date.UTC()
	if in.AvailableSpots != nil {
		t.AvailableSpots = *in.AvailableSpots
	}
}

func (s *TourSvc) Create(ctx context.Context, guideID string, in TourInput) (*domain.Tour, error) {
	ctx, span := tracer.Start(ctx, "TourSvc.Create")
	defer span.End()

	t := &domain.Tour{GuideID: guideID}
	in.apply(t)
	if in.AvailableSpots == nil {
		t.AvailableSpots = t.MaxParticipants
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if err := s.tours.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Update edits a tour owned by guideID. Someone else's tour is reported as not found.
func (s *TourSvc) Update(ctx context.Context, guideID, tourID string, in TourInput) (*domain.Tour, error) {
	ctx, span := tracer.Start(ctx, "TourSvc.Update")
	defer span.End()

	t, err := s.tours.ByID(ctx, tourID)
	if err != nil {
		return nil, err
	}
	if t.GuideID != guideID {
		return nil, errTourNotFound
	}
	in.apply(t)
	if t.AvailableSpots > t.MaxParticipants {
		t.AvailableSpots = t.MaxParticipants
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if err := s.tours.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TourSvc) List(ctx context.Context, f domain.TourFilter) ([]domain.Tour, error) {
	ctx, span := tracer.Start(ctx, "TourSvc.List")
	defer span.End()
	return s.tours.List(ctx, f)
}

func (s *TourSvc) Get(ctx context.Context, id string) (*domain.Tour, error) {
	ctx, span := tracer.Start(ctx, "TourSvc.Get")
	defer span.End()
	return s.tours.ByID(ctx, id)
}

func (s *TourSvc) ListMine(ctx context.Context, guideID string) ([]domain.Tour, error) {
	ctx, span := tracer.Start(ctx, "TourSvc.ListMine")
	defer span.End()
	return s.tours.List(ctx, domain.TourFilter{GuideID: guideID})
}

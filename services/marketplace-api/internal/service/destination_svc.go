package service

import (
	"context"
	"strings"

	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/pkg/apperr"
	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/services/marketplace-api/internal/domain"
	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/services/marketplace-api/internal/repository"
)

type DestinationSvc struct{ dests repository.DestinationRepository }

func NewDestinationSvc(dests repository.DestinationRepository) *DestinationSvc {
	return &DestinationSvc{dests: dests}
}

type DestinationInput struct {
	Name        string `json:"name"`
	Country     string `json:"country"`
	Description string `json:"description"`
	ImageURL    string `json:"image"`
}

func (in DestinationInput) apply(d *domain.Destination) {
	d.Name = strings.TrimSpace(in.Name)
	d.Slug = domain.Slugify(d.Name)
	d.Country = strings.TrimSpace(in.Country)
	d.Description = strings.TrimSpace(in.Description)
	d.ImageURL = in.ImageURL
}

func (s *DestinationSvc) List(ctx context.Context, query string) ([]domain.Destination, error) {
	ctx, span := tracer.Start(ctx, "DestinationSvc.List")
	defer span.End()
	return s.dests.List(ctx, query)
}

func (s *DestinationSvc) Get(ctx context.Context, slug string) (*domain.Destination, error) {
	ctx, span := tracer.Start(ctx, "DestinationSvc.Get")
	defer span.End()
	return s.dests.BySlug(ctx, strings.ToLower(slug))
}

func (s *DestinationSvc) Create(ctx context.Context, in DestinationInput) (*domain.Destination, error) {
	ctx, span := tracer.Start(ctx, "DestinationSvc.Create")
	defer span.End()

	d := &domain.Destination{}
	in.apply(d)
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if err := s.dests.Create(ctx, d); err != nil {
		if apperr.Is(err, apperr.Conflict) {
			return nil, apperr.E(apperr.Conflict, "a destination named "+d.Name+" already exists")
		}
		return nil, err
	}
	return d, nil
}

func (s *DestinationSvc) Update(ctx context.Context, id string, in DestinationInput) (*domain.Destination, error) {
	ctx, span := tracer.Start(ctx, "DestinationSvc.Update")
	defer span.End()

	d, err := s.dests.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	in.apply(d)
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if err := s.dests.Update(ctx, d); err != nil {
		if apperr.Is(err, apperr.Conflict) {
			return nil, apperr.E(apperr.Conflict, "a destination named "+d.Name+" already exists")
		}
		return nil, err
	}
	return d, nil
}

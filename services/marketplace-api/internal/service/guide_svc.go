package service

import (
	"context"

	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/services/marketplace-api/internal/domain"
	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/services/marketplace-api/internal/repository"
)

type GuideSvc struct{ users repository.UserRepository }

func NewGuideSvc(users repository.UserRepository) *GuideSvc { return &GuideSvc{users: users} }

func (s *GuideSvc) Search(ctx context.Context, f domain.GuideFilter) ([]domain.User, error) {
	ctx, span := tracer.Start(ctx, "GuideSvc.Search")
	defer span.End()
	return s.users.ListGuides(ctx, f)
}

// Get returns a guide; other roles are reported as not found.
func (s *GuideSvc) Get(ctx context.Context, id string) (*domain.User, error) {
	ctx, span := tracer.Start(ctx, "GuideSvc.Get")
	defer span.End()

	u, err := s.users.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u.Role != domain.RoleGuide {
		return nil, errGuideNotFound
	}
	return u, nil
}

func (s *GuideSvc) UpdateProfile(ctx context.Context, guideID string, upd domain.ProfileUpdate) (*domain.User, error) {
	ctx, span := tracer.Start(ctx, "GuideSvc.UpdateProfile")
	defer span.End()

	if err := upd.Validate(); err != nil {
		return nil, err
	}
	return s.users.UpdateProfile(ctx, guideID, domain.RoleGuide, upd)
}

// Profile is the signed-in guide's own record.
func (s *GuideSvc) Profile(ctx context.Context, guideID string) (*domain.User, error) {
	return s.Get(ctx, guideID)
}

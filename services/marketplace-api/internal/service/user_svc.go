package service

import (
	"context"

	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/pkg/apperr"
	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/services/marketplace-api/internal/domain"
	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/services/marketplace-api/internal/repository"
)

type UserSvc struct{ users repository.UserRepository }

func NewUserSvc(users repository.UserRepository) *UserSvc { return &UserSvc{users: users} }

func (s *UserSvc) Me(ctx context.Context, id string) (*domain.User, error) {
	ctx, span := tracer.Start(ctx, "UserSvc.Me")
	defer span.End()
	return s.users.ByID(ctx, id)
}

// UpdateMe changes personal fields only; guides edit the rest through GuideSvc.
func (s *UserSvc) UpdateMe(ctx context.Context, id string, upd domain.ProfileUpdate) (*domain.User, error) {
	ctx, span := tracer.Start(ctx, "UserSvc.UpdateMe")
	defer span.End()

	upd = upd.PersonalOnly()
	if err := upd.Validate(); err != nil {
		return nil, err
	}
	return s.users.UpdateProfile(ctx, id, "", upd)
}

func (s *UserSvc) List(ctx context.Context, role, query string) ([]domain.User, error) {
	ctx, span := tracer.Start(ctx, "UserSvc.List")
	defer span.End()

	var r domain.Role
	if role != "" {
		parsed, err := domain.ParseRole(role)
		if err != nil {
			return nil, apperr.E(apperr.Validation, "unknown role filter")
		}
		r = parsed
	}
	return s.users.List(ctx, r, query)
}

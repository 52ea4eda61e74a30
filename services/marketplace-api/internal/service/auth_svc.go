package service

import (
	"context"
	"net/mail"
	"net/url"
	"strings"
	"time"

	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/pkg/apperr"
	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/pkg/auth"
	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/services/marketplace-api/internal/domain"
	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/services/marketplace-api/internal/repository"
)

type AuthSvc struct {
	users  repository.UserRepository
	tokens *auth.Tokens
}

func NewAuthSvc(users repository.UserRepository, tokens *auth.Tokens) *AuthSvc {
	return &AuthSvc{users: users, tokens: tokens}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// Session is a signed-in user and the token that proves it.
type Session struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

func (in RegisterInput) validate() (domain.Role, error) {
	if len([]rune(strings.TrimSpace(in.Name))) < 2 {
		return "", apperr.E(apperr.Validation, "Name must be at least 2 characters")
	}
	if addr, err := mail.ParseAddress(in.Email); err != nil || addr.Address != strings.TrimSpace(in.Email) {
		return "", apperr.E(apperr.Validation, "Invalid email address")
	}
	if len(in.Password) < 8 {
		return "", apperr.E(apperr.Validation, "Password must be at least 8 characters")
	}
	if in.Role == "" {
		return domain.RoleTraveler, nil
	}
	role, err := domain.ParseRole(in.Role)
	if err != nil || role == domain.RoleAdmin {
		return "", apperr.E(apperr.Validation, "role must be traveler or guide")
	}
	return role, nil
}

func (s *AuthSvc) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	ctx, span := tracer.Start(ctx, "AuthSvc.Register")
	defer span.End()

	role, err := in.validate()
	if err != nil {
		return nil, err
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if _, err := s.users.ByEmail(ctx, email); err == nil {
		return nil, apperr.E(apperr.Validation, "Email already registered")
	} else if !apperr.Is(err, apperr.NotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "hash password", err)
	}
	name := strings.TrimSpace(in.Name)
	u := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		AvatarURL:    "https://ui-avatars.com/api/?name=" + url.QueryEscape(name) + "&background=random",
	}
	if err := s.users.Create(ctx, u); err != nil {
		if apperr.Is(err, apperr.Conflict) {
			return nil, apperr.E(apperr.Validation, "Email already registered")
		}
		return nil, err
	}
	return s.session(u)
}

func (s *AuthSvc) Login(ctx context.Context, email, password string) (*Session, error) {
	ctx, span := tracer.Start(ctx, "AuthSvc.Login")
	defer span.End()

	u, err := s.users.ByEmail(ctx, email)
	if apperr.Is(err, apperr.NotFound) {
		return nil, apperr.E(apperr.Unauthenticated, "Invalid credentials")
	}
	if err != nil {
		return nil, err
	}
	if !auth.CheckPassword(u.PasswordHash, password) {
		return nil, apperr.E(apperr.Unauthenticated, "Invalid credentials")
	}
	return s.session(u)
}

func (s *AuthSvc) session(u *domain.User) (*Session, error) {
	tok, exp, err := s.tokens.Issue(u.ID, string(u.Role), u.Email)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "issue token", err)
	}
	return &Session{User: u, Token: tok, ExpiresAt: exp}, nil
}

func (s *AuthSvc) Me(ctx context.Context, id string) (*domain.User, error) {
	ctx, span := tracer.Start(ctx, "AuthSvc.Me")
	defer span.End()
	return s.users.ByID(ctx, id)
}

func (s *AuthSvc) TokenTTL() time.Duration { return s.tokens.TTL() }

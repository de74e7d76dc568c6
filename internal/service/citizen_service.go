package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/complaint-service/internal/auth"
	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/repository"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

// CitizenService manages citizen accounts and profiles.
type CitizenService struct {
	users      repository.UserRepository
	bcryptCost int
}

// NewCitizenService constructs the service.
func NewCitizenService(users repository.UserRepository, bcryptCost int) *CitizenService {
	return &CitizenService{users: users, bcryptCost: bcryptCost}
}

// CitizenInput describes profile fields.
type CitizenInput struct {
	Name    *string
	Email   *string
	Phone   *string
	Address *string
}

// Create registers a citizen account; the role is always CITIZEN.
func (s *CitizenService) Create(ctx context.Context, name, email, password string, phone, address *string) (*domain.User, error) {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("email already registered", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleCitizen,
		Phone:        phone,
		Address:      address,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// List returns citizens matching the search, paginated.
func (s *CitizenService) List(ctx context.Context, search *string, page, limit int) ([]domain.User, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	role := domain.RoleCitizen
	return s.users.ListWithFilter(ctx, repository.UserFilter{
		Role:   &role,
		Search: search,
		Limit:  limit,
		Offset: (page - 1) * limit,
	})
}

// Get returns a single citizen account.
func (s *CitizenService) Get(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("citizen", nil)
		}
		return nil, err
	}
	return user, nil
}

// Update patches profile fields, keeping emails unique.
func (s *CitizenService) Update(ctx context.Context, id string, input CitizenInput) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("citizen", nil)
		}
		return nil, err
	}

	if input.Email != nil && *input.Email != user.Email {
		if _, err := s.users.GetByEmail(ctx, *input.Email); err == nil {
			return nil, apperrors.NewConflict("email already in use", nil)
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		user.Email = *input.Email
	}
	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Phone != nil {
		user.Phone = input.Phone
	}
	if input.Address != nil {
		user.Address = input.Address
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Remove deletes a citizen account.
func (s *CitizenService) Remove(ctx context.Context, id string) error {
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("citizen", nil)
		}
		return err
	}
	return nil
}

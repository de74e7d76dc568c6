package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/repository"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

// AgencyService manages the agency directory.
type AgencyService struct {
	agencies   repository.AgencyRepository
	categories repository.CategoryRepository
	users      repository.UserRepository
}

// NewAgencyService constructs the service.
func NewAgencyService(agencies repository.AgencyRepository, categories repository.CategoryRepository, users repository.UserRepository) *AgencyService {
	return &AgencyService{agencies: agencies, categories: categories, users: users}
}

// AgencyView is an agency with its roster and categories.
type AgencyView struct {
	domain.Agency
	Staff      []domain.UserSummary
	Categories []domain.Category
}

// Create adds an agency; names are globally unique.
func (s *AgencyService) Create(ctx context.Context, name, description string) (*domain.Agency, error) {
	if _, err := s.agencies.GetByName(ctx, name); err == nil {
		return nil, apperrors.NewConflict("agency name already exists", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	agency := &domain.Agency{Name: name, Description: description}
	if err := s.agencies.Create(ctx, agency); err != nil {
		return nil, err
	}
	return agency, nil
}

// List returns agencies matching the search, paginated.
func (s *AgencyService) List(ctx context.Context, search *string, page, limit int) ([]domain.Agency, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return s.agencies.ListWithFilter(ctx, repository.AgencyFilter{
		Search: search,
		Limit:  limit,
		Offset: (page - 1) * limit,
	})
}

// Get returns an agency with staff and categories.
func (s *AgencyService) Get(ctx context.Context, id string) (*AgencyView, error) {
	agency, err := s.agencies.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("agency", nil)
		}
		return nil, err
	}

	staff, err := s.users.ListByAgency(ctx, id)
	if err != nil {
		return nil, err
	}
	categories, err := s.categories.ListByAgency(ctx, id)
	if err != nil {
		return nil, err
	}

	view := &AgencyView{Agency: *agency, Staff: make([]domain.UserSummary, 0, len(staff)), Categories: categories}
	for i := range staff {
		view.Staff = append(view.Staff, staff[i].Summary())
	}
	return view, nil
}

// Update renames or redescribes an agency, keeping names unique.
func (s *AgencyService) Update(ctx context.Context, id string, name, description *string) (*domain.Agency, error) {
	agency, err := s.agencies.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("agency", nil)
		}
		return nil, err
	}

	if name != nil && *name != agency.Name {
		if _, err := s.agencies.GetByName(ctx, *name); err == nil {
			return nil, apperrors.NewConflict("agency name already in use", nil)
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		agency.Name = *name
	}
	if description != nil {
		agency.Description = *description
	}

	if err := s.agencies.Update(ctx, agency); err != nil {
		return nil, err
	}
	return agency, nil
}

// Remove deletes an agency; blocked while staff or categories remain.
func (s *AgencyService) Remove(ctx context.Context, id string) error {
	if _, err := s.agencies.GetByID(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("agency", nil)
		}
		return err
	}

	staffCount, err := s.users.CountByAgency(ctx, id)
	if err != nil {
		return err
	}
	if staffCount > 0 {
		return apperrors.NewInvalidState("cannot delete agency with assigned staff")
	}

	categoryCount, err := s.categories.CountByAgency(ctx, id)
	if err != nil {
		return err
	}
	if categoryCount > 0 {
		return apperrors.NewInvalidState("cannot delete agency with assigned categories")
	}

	return s.agencies.Delete(ctx, id)
}

// AssignStaff attaches a staff user to the agency. The user must already
// hold an agency-scoped role.
func (s *AgencyService) AssignStaff(ctx context.Context, agencyID, staffID string) (*domain.User, error) {
	if _, err := s.agencies.GetByID(ctx, agencyID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("agency", nil)
		}
		return nil, err
	}

	staff, err := s.users.GetByID(ctx, staffID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("staff member", nil)
		}
		return nil, err
	}
	if !staff.Role.IsAgencyScoped() {
		return nil, apperrors.NewValidationError("user must be an agency staff member", nil)
	}

	return s.users.SetAgency(ctx, staffID, &agencyID)
}

// RemoveStaff detaches a staff user from the agency.
func (s *AgencyService) RemoveStaff(ctx context.Context, agencyID, staffID string) (*domain.User, error) {
	staff, err := s.users.GetByID(ctx, staffID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("staff member", nil)
		}
		return nil, err
	}
	if staff.AgencyID == nil || *staff.AgencyID != agencyID {
		return nil, apperrors.NewValidationError("staff member is not assigned to this agency", nil)
	}

	return s.users.SetAgency(ctx, staffID, nil)
}

package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/repository"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

// CategoryService manages complaint categories.
type CategoryService struct {
	categories repository.CategoryRepository
	agencies   repository.AgencyRepository
}

// NewCategoryService constructs the service.
func NewCategoryService(categories repository.CategoryRepository, agencies repository.AgencyRepository) *CategoryService {
	return &CategoryService{categories: categories, agencies: agencies}
}

// Create adds a category to an agency. Names are unique per agency.
func (s *CategoryService) Create(ctx context.Context, agencyID, name, description string) (*domain.Category, error) {
	if _, err := s.agencies.GetByID(ctx, agencyID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("agency", nil)
		}
		return nil, err
	}

	if _, err := s.categories.GetByNameInAgency(ctx, agencyID, name); err == nil {
		return nil, apperrors.NewConflict("category name already exists for this agency", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	category := &domain.Category{AgencyID: agencyID, Name: name, Description: description}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// List returns categories, optionally scoped to an agency.
func (s *CategoryService) List(ctx context.Context, agencyID, search *string, page, limit int) ([]domain.Category, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return s.categories.ListWithFilter(ctx, repository.CategoryFilter{
		AgencyID: agencyID,
		Search:   search,
		Limit:    limit,
		Offset:   (page - 1) * limit,
	})
}

// Get returns a single category.
func (s *CategoryService) Get(ctx context.Context, id string) (*domain.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("category", nil)
		}
		return nil, err
	}
	return category, nil
}

// Update patches a category, preserving per-agency name uniqueness. Moving
// the category to another agency requires that agency to exist.
func (s *CategoryService) Update(ctx context.Context, id string, agencyID, name, description *string) (*domain.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("category", nil)
		}
		return nil, err
	}

	targetAgency := category.AgencyID
	if agencyID != nil {
		if _, err := s.agencies.GetByID(ctx, *agencyID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewNotFound("agency", nil)
			}
			return nil, err
		}
		targetAgency = *agencyID
	}

	if name != nil && (*name != category.Name || targetAgency != category.AgencyID) {
		if existing, err := s.categories.GetByNameInAgency(ctx, targetAgency, *name); err == nil && existing.ID != id {
			return nil, apperrors.NewConflict("category name already exists for this agency", nil)
		} else if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		category.Name = *name
	}
	category.AgencyID = targetAgency
	if description != nil {
		category.Description = *description
	}

	if err := s.categories.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Remove deletes a category; blocked while complaints reference it.
func (s *CategoryService) Remove(ctx context.Context, id string) error {
	if _, err := s.categories.GetByID(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("category", nil)
		}
		return err
	}

	count, err := s.categories.CountComplaints(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperrors.NewInvalidState("cannot delete category with associated complaints")
	}

	return s.categories.Delete(ctx, id)
}

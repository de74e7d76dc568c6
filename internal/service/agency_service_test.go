package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/complaint-service/internal/domain"
)

type directoryFixture struct {
	agencies   *fakeAgencyRepo
	categories *fakeCategoryRepo
	users      *fakeUserRepo

	agencySvc   *AgencyService
	categorySvc *CategoryService
}

func newDirectoryFixture() *directoryFixture {
	agencies := newFakeAgencyRepo(&domain.Agency{ID: "ag-works", Name: "Public Works"})
	categories := newFakeCategoryRepo()
	users := newFakeUserRepo()
	return &directoryFixture{
		agencies:    agencies,
		categories:  categories,
		users:       users,
		agencySvc:   NewAgencyService(agencies, categories, users),
		categorySvc: NewCategoryService(categories, agencies),
	}
}

func TestAgencyCreate_NameUnique(t *testing.T) {
	fx := newDirectoryFixture()
	ctx := context.Background()

	agency, err := fx.agencySvc.Create(ctx, "Parks", "Green spaces")
	require.NoError(t, err)
	assert.NotEmpty(t, agency.ID)

	_, err = fx.agencySvc.Create(ctx, "Parks", "duplicate")
	assert.Equal(t, "CONFLICT", domainCode(t, err))
}

func TestAgencyGet_WithRosterAndCategories(t *testing.T) {
	fx := newDirectoryFixture()
	ctx := context.Background()

	staff := &domain.User{Name: "Cy", Email: "cy@works.gov", Role: domain.RoleAgencyStaff}
	require.NoError(t, fx.users.Create(ctx, staff))
	_, err := fx.agencySvc.AssignStaff(ctx, "ag-works", staff.ID)
	require.NoError(t, err)

	_, err = fx.categorySvc.Create(ctx, "ag-works", "Potholes", "")
	require.NoError(t, err)

	view, err := fx.agencySvc.Get(ctx, "ag-works")
	require.NoError(t, err)
	require.Len(t, view.Staff, 1)
	assert.Equal(t, staff.ID, view.Staff[0].ID)
	require.Len(t, view.Categories, 1)
	assert.Equal(t, "Potholes", view.Categories[0].Name)
}

func TestAgencyRemove_BlockedWhileInUse(t *testing.T) {
	fx := newDirectoryFixture()
	ctx := context.Background()

	staff := &domain.User{Name: "Cy", Email: "cy@works.gov", Role: domain.RoleAgencyStaff}
	require.NoError(t, fx.users.Create(ctx, staff))
	_, err := fx.agencySvc.AssignStaff(ctx, "ag-works", staff.ID)
	require.NoError(t, err)

	err = fx.agencySvc.Remove(ctx, "ag-works")
	assert.Equal(t, "INVALID_STATE", domainCode(t, err))

	_, err = fx.agencySvc.RemoveStaff(ctx, "ag-works", staff.ID)
	require.NoError(t, err)
	require.NoError(t, fx.agencySvc.Remove(ctx, "ag-works"))

	err = fx.agencySvc.Remove(ctx, "ag-works")
	assert.Equal(t, "NOT_FOUND", domainCode(t, err))
}

func TestAssignStaff_RequiresAgencyScopedRole(t *testing.T) {
	fx := newDirectoryFixture()
	ctx := context.Background()

	citizen := &domain.User{Name: "Ada", Email: "ada@example.com", Role: domain.RoleCitizen}
	require.NoError(t, fx.users.Create(ctx, citizen))

	_, err := fx.agencySvc.AssignStaff(ctx, "ag-works", citizen.ID)
	assert.Equal(t, "VALIDATION_FAILED", domainCode(t, err))

	_, err = fx.agencySvc.AssignStaff(ctx, "ag-missing", citizen.ID)
	assert.Equal(t, "NOT_FOUND", domainCode(t, err))
}

func TestRemoveStaff_MustBeAssignedHere(t *testing.T) {
	fx := newDirectoryFixture()
	ctx := context.Background()

	staff := &domain.User{Name: "Cy", Email: "cy@works.gov", Role: domain.RoleAgencyStaff}
	require.NoError(t, fx.users.Create(ctx, staff))

	_, err := fx.agencySvc.RemoveStaff(ctx, "ag-works", staff.ID)
	assert.Equal(t, "VALIDATION_FAILED", domainCode(t, err))
}

func TestCategoryCreate_UniquePerAgency(t *testing.T) {
	fx := newDirectoryFixture()
	ctx := context.Background()

	_, err := fx.categorySvc.Create(ctx, "ag-works", "Potholes", "")
	require.NoError(t, err)

	_, err = fx.categorySvc.Create(ctx, "ag-works", "Potholes", "duplicate")
	assert.Equal(t, "CONFLICT", domainCode(t, err))

	// The same name under a different agency is fine.
	parks, err := fx.agencySvc.Create(ctx, "Parks", "")
	require.NoError(t, err)
	_, err = fx.categorySvc.Create(ctx, parks.ID, "Potholes", "")
	assert.NoError(t, err)

	_, err = fx.categorySvc.Create(ctx, "ag-missing", "Anything", "")
	assert.Equal(t, "NOT_FOUND", domainCode(t, err))
}

func TestCategoryRemove_BlockedByComplaints(t *testing.T) {
	fx := newDirectoryFixture()
	ctx := context.Background()

	category, err := fx.categorySvc.Create(ctx, "ag-works", "Potholes", "")
	require.NoError(t, err)

	fx.categories.complaintCounts[category.ID] = 2
	err = fx.categorySvc.Remove(ctx, category.ID)
	assert.Equal(t, "INVALID_STATE", domainCode(t, err))

	fx.categories.complaintCounts[category.ID] = 0
	require.NoError(t, fx.categorySvc.Remove(ctx, category.ID))
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/repository"
)

func strPtr(s string) *string { return &s }

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
	seq   int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	user.ID = fmt.Sprintf("user-%d", f.seq)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) ListWithFilter(_ context.Context, filter repository.UserFilter) ([]domain.User, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var matched []domain.User
	for _, user := range f.users {
		if filter.Role != nil && user.Role != *filter.Role {
			continue
		}
		if filter.Search != nil {
			needle := strings.ToLower(*filter.Search)
			if !strings.Contains(strings.ToLower(user.Name), needle) &&
				!strings.Contains(strings.ToLower(user.Email), needle) {
				continue
			}
		}
		matched = append(matched, *user)
	}
	return matched, len(matched), nil
}

func (f *fakeUserRepo) SetAgency(_ context.Context, userID string, agencyID *string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[userID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	user.AgencyID = agencyID
	clone := *user
	return &clone, nil
}

func (f *fakeUserRepo) CountByAgency(_ context.Context, agencyID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, user := range f.users {
		if user.AgencyID != nil && *user.AgencyID == agencyID {
			count++
		}
	}
	return count, nil
}

func (f *fakeUserRepo) ListByAgency(_ context.Context, agencyID string) ([]domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var matched []domain.User
	for _, user := range f.users {
		if user.AgencyID != nil && *user.AgencyID == agencyID {
			matched = append(matched, *user)
		}
	}
	return matched, nil
}

type fakeAgencyRepo struct {
	agencies map[string]*domain.Agency
	seq      int
}

func newFakeAgencyRepo(agencies ...*domain.Agency) *fakeAgencyRepo {
	repo := &fakeAgencyRepo{agencies: map[string]*domain.Agency{}}
	for _, a := range agencies {
		repo.agencies[a.ID] = a
	}
	return repo
}

func (f *fakeAgencyRepo) Create(_ context.Context, agency *domain.Agency) error {
	f.seq++
	if agency.ID == "" {
		agency.ID = fmt.Sprintf("agency-%d", f.seq)
	}
	agency.CreatedAt = time.Now()
	agency.UpdatedAt = agency.CreatedAt
	f.agencies[agency.ID] = agency
	return nil
}

func (f *fakeAgencyRepo) Update(_ context.Context, agency *domain.Agency) error {
	if _, ok := f.agencies[agency.ID]; !ok {
		return pgx.ErrNoRows
	}
	f.agencies[agency.ID] = agency
	return nil
}

func (f *fakeAgencyRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.agencies[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.agencies, id)
	return nil
}

func (f *fakeAgencyRepo) GetByID(_ context.Context, id string) (*domain.Agency, error) {
	agency, ok := f.agencies[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return agency, nil
}

func (f *fakeAgencyRepo) GetByName(_ context.Context, name string) (*domain.Agency, error) {
	for _, agency := range f.agencies {
		if agency.Name == name {
			return agency, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeAgencyRepo) ListWithFilter(_ context.Context, filter repository.AgencyFilter) ([]domain.Agency, int, error) {
	var matched []domain.Agency
	for _, agency := range f.agencies {
		if filter.Search != nil &&
			!strings.Contains(strings.ToLower(agency.Name), strings.ToLower(*filter.Search)) {
			continue
		}
		matched = append(matched, *agency)
	}
	return matched, len(matched), nil
}

type fakeCategoryRepo struct {
	categories      map[string]*domain.Category
	complaintCounts map[string]int
}

func newFakeCategoryRepo(categories ...*domain.Category) *fakeCategoryRepo {
	repo := &fakeCategoryRepo{
		categories:      map[string]*domain.Category{},
		complaintCounts: map[string]int{},
	}
	for _, c := range categories {
		repo.categories[c.ID] = c
	}
	return repo
}

func (f *fakeCategoryRepo) Create(_ context.Context, category *domain.Category) error {
	if category.ID == "" {
		category.ID = fmt.Sprintf("cat-%d", len(f.categories)+1)
	}
	f.categories[category.ID] = category
	return nil
}

func (f *fakeCategoryRepo) Update(_ context.Context, category *domain.Category) error {
	if _, ok := f.categories[category.ID]; !ok {
		return pgx.ErrNoRows
	}
	f.categories[category.ID] = category
	return nil
}

func (f *fakeCategoryRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.categories[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.categories, id)
	return nil
}

func (f *fakeCategoryRepo) GetByID(_ context.Context, id string) (*domain.Category, error) {
	category, ok := f.categories[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return category, nil
}

func (f *fakeCategoryRepo) GetByNameInAgency(_ context.Context, agencyID, name string) (*domain.Category, error) {
	for _, category := range f.categories {
		if category.AgencyID == agencyID && category.Name == name {
			return category, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeCategoryRepo) ListWithFilter(_ context.Context, filter repository.CategoryFilter) ([]domain.Category, int, error) {
	var matched []domain.Category
	for _, category := range f.categories {
		matched = append(matched, *category)
	}
	return matched, len(matched), nil
}

func (f *fakeCategoryRepo) ListByAgency(_ context.Context, agencyID string) ([]domain.Category, error) {
	var matched []domain.Category
	for _, category := range f.categories {
		if category.AgencyID == agencyID {
			matched = append(matched, *category)
		}
	}
	return matched, nil
}

func (f *fakeCategoryRepo) CountByAgency(_ context.Context, agencyID string) (int, error) {
	matched, err := f.ListByAgency(context.Background(), agencyID)
	return len(matched), err
}

func (f *fakeCategoryRepo) CountComplaints(_ context.Context, categoryID string) (int, error) {
	return f.complaintCounts[categoryID], nil
}

type fakeComplaintRepo struct {
	mu         sync.Mutex
	complaints map[string]*domain.Complaint
	categories *fakeCategoryRepo
	users      *fakeUserRepo
	seq        int
}

func newFakeComplaintRepo(categories *fakeCategoryRepo, users *fakeUserRepo) *fakeComplaintRepo {
	return &fakeComplaintRepo{
		complaints: map[string]*domain.Complaint{},
		categories: categories,
		users:      users,
	}
}

func (f *fakeComplaintRepo) Create(_ context.Context, complaint *domain.Complaint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	complaint.ID = fmt.Sprintf("complaint-%d", f.seq)
	complaint.CreatedAt = time.Now()
	complaint.UpdatedAt = complaint.CreatedAt
	clone := *complaint
	f.complaints[complaint.ID] = &clone
	return nil
}

func (f *fakeComplaintRepo) Update(_ context.Context, complaint *domain.Complaint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.complaints[complaint.ID]; !ok {
		return pgx.ErrNoRows
	}
	complaint.UpdatedAt = time.Now()
	clone := *complaint
	f.complaints[complaint.ID] = &clone
	return nil
}

func (f *fakeComplaintRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.complaints[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.complaints, id)
	return nil
}

func (f *fakeComplaintRepo) GetByID(_ context.Context, id string) (*domain.Complaint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	complaint, ok := f.complaints[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *complaint
	return &clone, nil
}

func (f *fakeComplaintRepo) GetRecord(ctx context.Context, id string) (*repository.ComplaintRecord, error) {
	complaint, err := f.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return f.toRecord(ctx, complaint), nil
}

func (f *fakeComplaintRepo) toRecord(ctx context.Context, complaint *domain.Complaint) *repository.ComplaintRecord {
	record := &repository.ComplaintRecord{Complaint: *complaint}
	if category, err := f.categories.GetByID(ctx, complaint.CategoryID); err == nil {
		record.Category = domain.CategorySummary{ID: category.ID, Name: category.Name}
	}
	record.Agency = domain.AgencySummary{ID: complaint.AgencyID}
	if creator, err := f.users.GetByID(ctx, complaint.UserID); err == nil {
		record.Creator = creator.Summary()
	}
	return record
}

func (f *fakeComplaintRepo) ListWithFilter(ctx context.Context, filter repository.ComplaintFilter) ([]repository.ComplaintRecord, int, error) {
	f.mu.Lock()
	var candidates []*domain.Complaint
	for _, complaint := range f.complaints {
		candidates = append(candidates, complaint)
	}
	f.mu.Unlock()

	matched := make([]repository.ComplaintRecord, 0)
	for _, complaint := range candidates {
		if filter.UserID != nil && complaint.UserID != *filter.UserID {
			continue
		}
		if filter.AgencyID != nil && complaint.AgencyID != *filter.AgencyID {
			continue
		}
		if filter.CategoryID != nil && complaint.CategoryID != *filter.CategoryID {
			continue
		}
		if filter.Status != nil && complaint.Status != *filter.Status {
			continue
		}
		if filter.Priority != nil && complaint.Priority != *filter.Priority {
			continue
		}
		if filter.Search != nil {
			needle := strings.ToLower(*filter.Search)
			if !strings.Contains(strings.ToLower(complaint.Title), needle) &&
				!strings.Contains(strings.ToLower(complaint.Description), needle) {
				continue
			}
		}
		matched = append(matched, *f.toRecord(ctx, complaint))
	}
	return matched, len(matched), nil
}

type fakeResponseRepo struct {
	mu        sync.Mutex
	responses []domain.Response
	seq       int
}

func (f *fakeResponseRepo) Create(_ context.Context, response *domain.Response) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	response.ID = fmt.Sprintf("response-%d", f.seq)
	response.CreatedAt = time.Now()
	f.responses = append(f.responses, *response)
	return nil
}

func (f *fakeResponseRepo) ListByComplaint(_ context.Context, complaintID string) ([]domain.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var matched []domain.Response
	for i := len(f.responses) - 1; i >= 0; i-- {
		if f.responses[i].ComplaintID == complaintID {
			matched = append(matched, f.responses[i])
		}
	}
	return matched, nil
}

type fakeResetRepo struct {
	mu     sync.Mutex
	resets map[string]*repository.PasswordReset
	users  *fakeUserRepo
	seq    int
}

func newFakeResetRepo(users *fakeUserRepo) *fakeResetRepo {
	return &fakeResetRepo{resets: map[string]*repository.PasswordReset{}, users: users}
}

func (f *fakeResetRepo) Create(_ context.Context, reset *repository.PasswordReset) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	reset.ID = fmt.Sprintf("reset-%d", f.seq)
	reset.CreatedAt = time.Now()
	clone := *reset
	f.resets[reset.Token] = &clone
	return nil
}

func (f *fakeResetRepo) Redeem(ctx context.Context, token, newPasswordHash string) (string, error) {
	f.mu.Lock()
	reset, ok := f.resets[token]
	if !ok || reset.Used || time.Now().After(reset.ExpiresAt) {
		f.mu.Unlock()
		return "", pgx.ErrNoRows
	}
	reset.Used = true
	userID := reset.UserID
	f.mu.Unlock()

	user, err := f.users.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	user.PasswordHash = newPasswordHash
	if err := f.users.Update(ctx, user); err != nil {
		return "", err
	}
	return userID, nil
}

type fakeMailer struct {
	mu         sync.Mutex
	sent       []string
	resetSends []string
	failNext   bool
}

func (f *fakeMailer) Send(to, subject, htmlBody string) error {
	return f.record("send:" + to)
}

func (f *fakeMailer) SendPasswordReset(to, token string) error {
	f.mu.Lock()
	f.resetSends = append(f.resetSends, token)
	f.mu.Unlock()
	return f.record("reset:" + to)
}

func (f *fakeMailer) SendStatusUpdate(to, complaintTitle, newStatus string) error {
	return f.record("status:" + to)
}

func (f *fakeMailer) record(entry string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failNext {
		f.failNext = false
		return errors.New("smtp unavailable")
	}
	f.sent = append(f.sent, entry)
	return nil
}

package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/complaint-service/internal/auth"
	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/events"
	"github.com/spec-kit/complaint-service/internal/repository"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

// Actor identifies the authenticated caller for lifecycle operations.
type Actor struct {
	ID       string
	Role     domain.UserRole
	AgencyID *string
}

// ComplaintService coordinates complaint workflows.
type ComplaintService struct {
	complaints repository.ComplaintRepository
	responses  repository.ResponseRepository
	categories repository.CategoryRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// ComplaintDependencies bundles repositories for the complaint service.
type ComplaintDependencies struct {
	ComplaintRepo repository.ComplaintRepository
	ResponseRepo  repository.ResponseRepository
	CategoryRepo  repository.CategoryRepository
	UserRepo      repository.UserRepository
	Dispatcher    events.Dispatcher
}

// NewComplaintService constructs the service.
func NewComplaintService(deps ComplaintDependencies) *ComplaintService {
	return &ComplaintService{
		complaints: deps.ComplaintRepo,
		responses:  deps.ResponseRepo,
		categories: deps.CategoryRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
	}
}

// ComplaintCreateInput describes the creation payload.
type ComplaintCreateInput struct {
	Title        string
	Description  string
	CategoryID   string
	Priority     domain.ComplaintPriority
	Location     *string
	ContactPhone *string
	ContactEmail *string
}

// ComplaintUpdateInput is a partial patch; nil fields are untouched.
type ComplaintUpdateInput struct {
	Title        *string
	Description  *string
	CategoryID   *string
	Status       *domain.ComplaintStatus
	Priority     *domain.ComplaintPriority
	Location     *string
	ContactPhone *string
	ContactEmail *string
}

// ComplaintListFilter carries explicit query filters; role scoping is
// applied on top and cannot be overridden by them.
type ComplaintListFilter struct {
	Search     *string
	Status     *domain.ComplaintStatus
	Priority   *domain.ComplaintPriority
	CategoryID *string
	AgencyID   *string
	Page       int
	Limit      int
}

// ComplaintDetail is a complaint with reference summaries and its thread.
type ComplaintDetail struct {
	repository.ComplaintRecord
	Responses []domain.Response
}

// Create files a new complaint. The agency is derived from the category
// and the status starts at PENDING.
func (s *ComplaintService) Create(ctx context.Context, creatorID string, input ComplaintCreateInput) (*repository.ComplaintRecord, error) {
	category, err := s.categories.GetByID(ctx, input.CategoryID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("category", nil)
		}
		return nil, err
	}

	priority := input.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}
	if !priority.Valid() {
		return nil, apperrors.NewValidationError("invalid priority", map[string]any{"priority": priority})
	}

	complaint := &domain.Complaint{
		Title:        strings.TrimSpace(input.Title),
		Description:  strings.TrimSpace(input.Description),
		CategoryID:   category.ID,
		AgencyID:     category.AgencyID,
		UserID:       creatorID,
		Status:       domain.StatusPending,
		Priority:     priority,
		Location:     input.Location,
		ContactPhone: input.ContactPhone,
		ContactEmail: input.ContactEmail,
	}
	if err := s.complaints.Create(ctx, complaint); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:        events.EventComplaintCreated,
		ComplaintID: complaint.ID,
		ActorID:     creatorID,
		Payload: events.ComplaintCreatedPayload{
			AgencyID:   complaint.AgencyID,
			CategoryID: complaint.CategoryID,
			Priority:   complaint.Priority,
			Title:      complaint.Title,
		},
	})

	return s.complaints.GetRecord(ctx, complaint.ID)
}

// List returns complaints visible to the actor. Explicit filters are ANDed
// with the role scope: citizens only ever see their own complaints and
// agency staff only their agency's, regardless of supplied filters.
func (s *ComplaintService) List(ctx context.Context, actor Actor, filter ComplaintListFilter) ([]repository.ComplaintRecord, int, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 10
	}

	repoFilter := repository.ComplaintFilter{
		Search:     filter.Search,
		Status:     filter.Status,
		Priority:   filter.Priority,
		CategoryID: filter.CategoryID,
		AgencyID:   filter.AgencyID,
		Limit:      limit,
		Offset:     (page - 1) * limit,
	}

	switch actor.Role {
	case domain.RoleCitizen:
		userID := actor.ID
		repoFilter.UserID = &userID
	case domain.RoleAgencyStaff, domain.RoleAgencyAdmin:
		if actor.AgencyID == nil {
			return []repository.ComplaintRecord{}, 0, nil
		}
		repoFilter.AgencyID = actor.AgencyID
	case domain.RoleAdmin:
		// unscoped
	default:
		return nil, 0, apperrors.NewForbidden("unknown role")
	}

	return s.complaints.ListWithFilter(ctx, repoFilter)
}

// Get fetches a complaint with nested summaries and the full comment
// thread, newest first.
func (s *ComplaintService) Get(ctx context.Context, actor Actor, id string) (*ComplaintDetail, error) {
	record, err := s.complaints.GetRecord(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("complaint", nil)
		}
		return nil, err
	}
	if !auth.CanAccessComplaint(actor.Role, actor.ID, actor.AgencyID, record.UserID, record.AgencyID, auth.ActionRead) {
		return nil, apperrors.NewForbidden("not authorized to access this complaint")
	}

	responses, err := s.responses.ListByComplaint(ctx, record.ID)
	if err != nil {
		return nil, err
	}
	return &ComplaintDetail{ComplaintRecord: *record, Responses: responses}, nil
}

// Update applies a partial patch. Recategorization must stay within the
// complaint's agency and status changes must follow the lifecycle machine.
func (s *ComplaintService) Update(ctx context.Context, actor Actor, id string, patch ComplaintUpdateInput) (*repository.ComplaintRecord, error) {
	complaint, err := s.complaints.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("complaint", nil)
		}
		return nil, err
	}
	if !auth.CanAccessComplaint(actor.Role, actor.ID, actor.AgencyID, complaint.UserID, complaint.AgencyID, auth.ActionUpdate) {
		return nil, apperrors.NewForbidden("not authorized to update this complaint")
	}

	if patch.CategoryID != nil && *patch.CategoryID != complaint.CategoryID {
		category, err := s.categories.GetByID(ctx, *patch.CategoryID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewNotFound("category", nil)
			}
			return nil, err
		}
		if category.AgencyID != complaint.AgencyID {
			return nil, apperrors.NewValidationError("category does not belong to the same agency", nil)
		}
		complaint.CategoryID = category.ID
	}

	oldStatus := complaint.Status
	if patch.Status != nil && *patch.Status != complaint.Status {
		if !patch.Status.Valid() {
			return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": *patch.Status})
		}
		if !domain.CanTransition(complaint.Status, *patch.Status) {
			return nil, apperrors.NewInvalidState("illegal status transition")
		}
		complaint.Status = *patch.Status
	}
	if patch.Priority != nil {
		if !patch.Priority.Valid() {
			return nil, apperrors.NewValidationError("invalid priority", map[string]any{"priority": *patch.Priority})
		}
		complaint.Priority = *patch.Priority
	}
	if patch.Title != nil {
		complaint.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		complaint.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Location != nil {
		complaint.Location = patch.Location
	}
	if patch.ContactPhone != nil {
		complaint.ContactPhone = patch.ContactPhone
	}
	if patch.ContactEmail != nil {
		complaint.ContactEmail = patch.ContactEmail
	}

	if err := s.complaints.Update(ctx, complaint); err != nil {
		return nil, err
	}

	if complaint.Status != oldStatus {
		s.publishEvent(ctx, events.Event{
			Type:        events.EventComplaintStatusChanged,
			ComplaintID: complaint.ID,
			ActorID:     actor.ID,
			Payload: events.ComplaintStatusChangedPayload{
				Title:     complaint.Title,
				OldStatus: oldStatus,
				NewStatus: complaint.Status,
				CreatorID: complaint.UserID,
			},
		})
	}

	return s.complaints.GetRecord(ctx, complaint.ID)
}

// AddComment appends to the complaint's thread.
func (s *ComplaintService) AddComment(ctx context.Context, actor Actor, id, content string) (*domain.Response, error) {
	complaint, err := s.complaints.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("complaint", nil)
		}
		return nil, err
	}
	if !auth.CanAccessComplaint(actor.Role, actor.ID, actor.AgencyID, complaint.UserID, complaint.AgencyID, auth.ActionComment) {
		return nil, apperrors.NewForbidden("not authorized to comment on this complaint")
	}

	response := &domain.Response{
		ComplaintID: complaint.ID,
		UserID:      actor.ID,
		Content:     strings.TrimSpace(content),
	}
	if err := s.responses.Create(ctx, response); err != nil {
		return nil, err
	}

	if author, err := s.users.GetByID(ctx, actor.ID); err == nil {
		summary := author.Summary()
		summary.Email = ""
		response.Author = &summary
	}

	s.publishEvent(ctx, events.Event{
		Type:        events.EventComplaintCommentAdded,
		ComplaintID: complaint.ID,
		ActorID:     actor.ID,
		Payload: events.ComplaintCommentAddedPayload{
			ResponseID:  response.ID,
			AuthorID:    actor.ID,
			BodyPreview: stringPreview(response.Content, 120),
		},
	})

	return response, nil
}

// Remove deletes a complaint. Only the citizen creator may delete, and
// only while the complaint is still PENDING.
func (s *ComplaintService) Remove(ctx context.Context, actor Actor, id string) error {
	complaint, err := s.complaints.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("complaint", nil)
		}
		return err
	}
	if !auth.CanAccessComplaint(actor.Role, actor.ID, actor.AgencyID, complaint.UserID, complaint.AgencyID, auth.ActionDelete) {
		return apperrors.NewForbidden("not authorized to delete this complaint")
	}
	if complaint.Status != domain.StatusPending {
		return apperrors.NewInvalidState("only pending complaints can be deleted")
	}
	return s.complaints.Delete(ctx, complaint.ID)
}

func (s *ComplaintService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func stringPreview(body string, max int) string {
	body = strings.TrimSpace(body)
	if len(body) <= max {
		return body
	}
	if max <= 3 {
		return body[:max]
	}
	return body[:max-3] + "..."
}

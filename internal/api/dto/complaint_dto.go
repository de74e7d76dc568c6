package dto

import (
	"time"

	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/repository"
)

// CreateComplaintRequest payload.
type CreateComplaintRequest struct {
	Title        string                   `json:"title" validate:"required"`
	Description  string                   `json:"description" validate:"required"`
	CategoryID   string                   `json:"categoryId" validate:"required"`
	Priority     domain.ComplaintPriority `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	Location     *string                  `json:"location"`
	ContactPhone *string                  `json:"contactPhone"`
	ContactEmail *string                  `json:"contactEmail" validate:"omitempty,email"`
}

// UpdateComplaintRequest is a partial patch.
type UpdateComplaintRequest struct {
	Title        *string                   `json:"title"`
	Description  *string                   `json:"description"`
	CategoryID   *string                   `json:"categoryId"`
	Status       *domain.ComplaintStatus   `json:"status" validate:"omitempty,oneof=PENDING IN_PROGRESS RESOLVED REJECTED"`
	Priority     *domain.ComplaintPriority `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	Location     *string                   `json:"location"`
	ContactPhone *string                   `json:"contactPhone"`
	ContactEmail *string                   `json:"contactEmail" validate:"omitempty,email"`
}

// AddCommentRequest payload.
type AddCommentRequest struct {
	Content string `json:"content" validate:"required"`
}

// ComplaintResponse is the complaint projection with nested summaries.
type ComplaintResponse struct {
	ID           string                   `json:"id"`
	Title        string                   `json:"title"`
	Description  string                   `json:"description"`
	Status       domain.ComplaintStatus   `json:"status"`
	Priority     domain.ComplaintPriority `json:"priority"`
	Location     *string                  `json:"location,omitempty"`
	ContactPhone *string                  `json:"contactPhone,omitempty"`
	ContactEmail *string                  `json:"contactEmail,omitempty"`
	Category     domain.CategorySummary   `json:"category"`
	Agency       domain.AgencySummary     `json:"agency"`
	User         domain.UserSummary       `json:"user"`
	CreatedAt    time.Time                `json:"createdAt"`
	UpdatedAt    time.Time                `json:"updatedAt"`
}

// ResponseView is a single thread entry.
type ResponseView struct {
	ID        string              `json:"id"`
	Content   string              `json:"content"`
	CreatedAt time.Time           `json:"createdAt"`
	User      *domain.UserSummary `json:"user,omitempty"`
}

// ComplaintDetailResponse includes the comment thread, newest first.
type ComplaintDetailResponse struct {
	ComplaintResponse
	Responses []ResponseView `json:"responses"`
}

// NewComplaintResponse maps a joined record to its projection.
func NewComplaintResponse(rec *repository.ComplaintRecord) ComplaintResponse {
	return ComplaintResponse{
		ID:           rec.ID,
		Title:        rec.Title,
		Description:  rec.Description,
		Status:       rec.Status,
		Priority:     rec.Priority,
		Location:     rec.Location,
		ContactPhone: rec.ContactPhone,
		ContactEmail: rec.ContactEmail,
		Category:     rec.Category,
		Agency:       rec.Agency,
		User:         rec.Creator,
		CreatedAt:    rec.CreatedAt,
		UpdatedAt:    rec.UpdatedAt,
	}
}

// NewResponseView maps a thread entry.
func NewResponseView(resp *domain.Response) ResponseView {
	return ResponseView{
		ID:        resp.ID,
		Content:   resp.Content,
		CreatedAt: resp.CreatedAt,
		User:      resp.Author,
	}
}

package events

import (
	"time"

	"github.com/spec-kit/complaint-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventComplaintCreated       EventType = "complaint_created"
	EventComplaintStatusChanged EventType = "complaint_status_changed"
	EventComplaintCommentAdded  EventType = "complaint_comment_added"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID          string      `json:"id"`
	Type        EventType   `json:"type"`
	ComplaintID string      `json:"complaint_id"`
	ActorID     string      `json:"actor_id"`
	Timestamp   time.Time   `json:"timestamp"`
	Payload     interface{} `json:"payload"`
}

// ComplaintCreatedPayload payload.
type ComplaintCreatedPayload struct {
	AgencyID   string                   `json:"agency_id"`
	CategoryID string                   `json:"category_id"`
	Priority   domain.ComplaintPriority `json:"priority"`
	Title      string                   `json:"title"`
}

// ComplaintStatusChangedPayload payload.
type ComplaintStatusChangedPayload struct {
	Title     string                 `json:"title"`
	OldStatus domain.ComplaintStatus `json:"old_status"`
	NewStatus domain.ComplaintStatus `json:"new_status"`
	CreatorID string                 `json:"creator_id"`
}

// ComplaintCommentAddedPayload payload.
type ComplaintCommentAddedPayload struct {
	ResponseID  string `json:"response_id"`
	AuthorID    string `json:"author_id"`
	BodyPreview string `json:"body_preview"`
}

package domain

import "time"

// ComplaintStatus enumerates lifecycle states for complaints.
type ComplaintStatus string

const (
	StatusPending    ComplaintStatus = "PENDING"
	StatusInProgress ComplaintStatus = "IN_PROGRESS"
	StatusResolved   ComplaintStatus = "RESOLVED"
	StatusRejected   ComplaintStatus = "REJECTED"
)

// Valid reports whether the status is a known value.
func (s ComplaintStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusResolved, StatusRejected:
		return true
	}
	return false
}

// ComplaintPriority enumerates urgency levels.
type ComplaintPriority string

const (
	PriorityLow    ComplaintPriority = "LOW"
	PriorityMedium ComplaintPriority = "MEDIUM"
	PriorityHigh   ComplaintPriority = "HIGH"
	PriorityUrgent ComplaintPriority = "URGENT"
)

// Valid reports whether the priority is a known value.
func (p ComplaintPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Complaint is the aggregate for citizen-filed issues. AgencyID is derived
// from the category at creation and may only move within the same agency.
type Complaint struct {
	ID           string
	Title        string
	Description  string
	CategoryID   string
	AgencyID     string
	UserID       string
	Status       ComplaintStatus
	Priority     ComplaintPriority
	Location     *string
	ContactPhone *string
	ContactEmail *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

var allowedTransitions = map[ComplaintStatus][]ComplaintStatus{
	StatusPending:    {StatusInProgress, StatusResolved, StatusRejected},
	StatusInProgress: {StatusResolved, StatusRejected},
	StatusResolved:   {},
	StatusRejected:   {},
}

// CanTransition reports whether a status change is legal. RESOLVED and
// REJECTED are terminal.
func CanTransition(current, next ComplaintStatus) bool {
	for _, candidate := range allowedTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}

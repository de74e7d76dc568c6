package domain

import "time"

// Category classifies complaints and belongs to exactly one agency.
// Names are unique within an agency.
type Category struct {
	ID          string
	AgencyID    string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CategorySummary is the projection embedded in complaint views.
type CategorySummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

package domain

import "time"

// Agency is an organizational unit owning categories and staff.
type Agency struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AgencySummary is the projection embedded in complaint views.
type AgencySummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

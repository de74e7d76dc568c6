package domain

import "time"

// Response is a threaded comment on a complaint. Append-only; threads are
// displayed newest first.
type Response struct {
	ID          string
	ComplaintID string
	UserID      string
	Content     string
	CreatedAt   time.Time
	Author      *UserSummary
}

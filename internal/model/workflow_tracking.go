package model

import "time"

// WorkflowTracking mirrors milestone timestamps per (user, event) for
// observability. It is not authoritative and writes to it are best-effort:
// a failed mirror write never fails the operation that triggered it.
type WorkflowTracking struct {
	ID                      uint       `gorm:"primarykey" json:"id"`
	UserID                  uint       `json:"user_id" gorm:"not null;uniqueIndex:idx_tracking_user_event"`
	EventID                 uint       `json:"event_id" gorm:"not null;uniqueIndex:idx_tracking_user_event"`
	ScreeningSentAt         *time.Time `json:"screening_sent_at,omitempty"`
	ScreeningSubmittedAt    *time.Time `json:"screening_submitted_at,omitempty"`
	PresentationSubmittedAt *time.Time `json:"presentation_submitted_at,omitempty"`
	CreatedAt               time.Time  `json:"created_at"`
	UpdatedAt               time.Time  `json:"updated_at"`
}

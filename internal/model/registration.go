package model

import (
	"time"
)

// Screening status values for a registration.
const (
	ScreeningPending   = "pending"
	ScreeningSent      = "sent"
	ScreeningCompleted = "completed"
	ScreeningSkipped   = "skipped"
)

// Presentation status values.
const (
	PresentationPending   = "pending"
	PresentationSubmitted = "submitted"
	PresentationReviewed  = "reviewed"
)

// Qualification status values.
const (
	QualificationPending   = "pending"
	QualificationQualified = "qualified"
	QualificationRejected  = "rejected"
)

// Award types. A registration with no award has a NULL AwardType.
const (
	AwardWinner   = "winner"
	AwardRunnerUp = "runner_up"
)

// Registration is one participant's relationship to one event. It is the unit
// of mutation for the whole workflow: attendance, screening, presentation,
// qualification and award all live on this row and advance independently.
// Registrations are never hard-deleted.
type Registration struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	UserID       uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_registrations_user_event"`
	EventID      uint      `json:"event_id" gorm:"not null;uniqueIndex:idx_registrations_user_event;index"`
	Event        Event     `json:"event,omitempty" gorm:"foreignKey:EventID"`
	RegisteredAt time.Time `json:"registered_at" gorm:"autoCreateTime"`

	Attended bool `json:"attended" gorm:"not null;default:false"`

	ScreeningStatus string `json:"screening_status" gorm:"not null;default:'pending'"`
	ScreeningTestID *uint  `json:"screening_test_id,omitempty"`

	PresentationStatus string `json:"presentation_status" gorm:"not null;default:'pending'"`
	GithubLink         string `json:"github_link,omitempty"`
	DeploymentLink     string `json:"deployment_link,omitempty"`
	PresentationLink   string `json:"presentation_link,omitempty"`
	PresentationNotes  string `json:"presentation_notes,omitempty" gorm:"type:text"`

	QualificationStatus  string     `json:"qualification_status" gorm:"not null;default:'pending'"`
	QualificationRemarks string     `json:"qualification_remarks,omitempty" gorm:"type:text"`
	QualifiedAt          *time.Time `json:"qualified_at,omitempty"`
	QualifiedBy          *uint      `json:"qualified_by,omitempty"`

	AwardType       *string    `json:"award_type,omitempty"`
	AwardAssignedAt *time.Time `json:"award_assigned_at,omitempty"`
	AwardAssignedBy *uint      `json:"award_assigned_by,omitempty"`

	AdminNotes string `json:"admin_notes,omitempty" gorm:"type:text"`
	AdminScore *int   `json:"admin_score,omitempty"` // 0-100

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

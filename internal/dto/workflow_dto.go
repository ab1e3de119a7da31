package dto

import "time"

type AttendanceDTO struct {
	RegistrationIDs []uint `json:"registration_ids" binding:"required,min=1"`
	Attended        *bool  `json:"attended" binding:"required"`
}

type SubmitPresentationDTO struct {
	GithubLink       string `json:"github_link" binding:"required,url"`
	DeploymentLink   string `json:"deployment_link" binding:"omitempty,url"`
	PresentationLink string `json:"presentation_link" binding:"omitempty,url"`
	Notes            string `json:"notes"`
}

// QualificationDTO carries the admin's terminal judgment. The status set is
// validated in the service so the rejection carries the offending value.
type QualificationDTO struct {
	Status  string `json:"status" binding:"required"`
	Remarks string `json:"remarks"`
}

type AdminNotesDTO struct {
	Notes string `json:"notes"`
	Score *int   `json:"score"`
}

type RegistrationResponseDTO struct {
	ID           uint      `json:"id"`
	UserID       uint      `json:"user_id"`
	EventID      uint      `json:"event_id"`
	RegisteredAt time.Time `json:"registered_at"`

	Attended bool `json:"attended"`

	ScreeningStatus string `json:"screening_status"`
	ScreeningTestID *uint  `json:"screening_test_id,omitempty"`

	PresentationStatus string `json:"presentation_status"`
	GithubLink         string `json:"github_link,omitempty"`
	DeploymentLink     string `json:"deployment_link,omitempty"`
	PresentationLink   string `json:"presentation_link,omitempty"`
	PresentationNotes  string `json:"presentation_notes,omitempty"`

	QualificationStatus  string     `json:"qualification_status"`
	QualificationRemarks string     `json:"qualification_remarks,omitempty"`
	QualifiedAt          *time.Time `json:"qualified_at,omitempty"`
	QualifiedBy          *uint      `json:"qualified_by,omitempty"`

	AwardType       *string    `json:"award_type,omitempty"`
	AwardAssignedAt *time.Time `json:"award_assigned_at,omitempty"`
	AwardAssignedBy *uint      `json:"award_assigned_by,omitempty"`

	AdminNotes string `json:"admin_notes,omitempty"`
	AdminScore *int   `json:"admin_score,omitempty"`
}

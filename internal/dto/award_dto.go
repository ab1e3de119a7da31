package dto

import "time"

// AssignAwardDTO restricts the award type at the binding layer; eligibility
// is the service's job.
type AssignAwardDTO struct {
	AwardType string `json:"award_type" binding:"required,oneof=winner runner_up"`
}

type WinnerDTO struct {
	RegistrationID  uint       `json:"registration_id"`
	UserID          uint       `json:"user_id"`
	FullName        string     `json:"full_name,omitempty"`
	PhotoURL        *string    `json:"photo_url"`
	AwardType       string     `json:"award_type"`
	AwardAssignedAt *time.Time `json:"award_assigned_at,omitempty"`
}

type EventWinnersDTO struct {
	Winners   []WinnerDTO `json:"winners"`
	RunnersUp []WinnerDTO `json:"runnersUp"`
}

package model

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Attempt status values. Only "in_progress" is resumable; everything else is
// terminal.
const (
	AttemptInProgress    = "in_progress"
	AttemptSubmitted     = "submitted"
	AttemptAutoSubmitted = "auto_submitted"
	AttemptTimeout       = "timeout"
)

// AnswerMap maps question id to the selected option index.
type AnswerMap map[string]int

// TestAttempt is one participant's attempt at a screening test. The
// (user, test) pair is unique; submissions upsert over it so a resubmission
// overwrites rather than duplicates. Score is computed once from the test's
// question list and never recomputed from anything client-supplied.
type TestAttempt struct {
	ID               uint           `gorm:"primarykey" json:"id"`
	UserID           uint           `json:"user_id" gorm:"not null;uniqueIndex:idx_attempts_user_test"`
	TestID           uint           `json:"test_id" gorm:"not null;uniqueIndex:idx_attempts_user_test;index"`
	RegistrationID   uint           `json:"registration_id" gorm:"not null;index"`
	EventID          uint           `json:"event_id" gorm:"not null;index"`
	StartedAt        time.Time      `json:"started_at"`
	SubmittedAt      *time.Time     `json:"submitted_at,omitempty"`
	Answers          datatypes.JSON `json:"answers,omitempty"`
	Score            int            `json:"score" gorm:"not null;default:0"` // 0-100 percentage
	TotalQuestions   int            `json:"total_questions" gorm:"not null;default:0"`
	TimeTakenSeconds int            `json:"time_taken_seconds" gorm:"not null;default:0"`
	TabSwitches      int            `json:"tab_switches" gorm:"not null;default:0"`
	Status           string         `json:"status" gorm:"not null;default:'in_progress'"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

func (a *TestAttempt) AnswerMap() (AnswerMap, error) {
	if len(a.Answers) == 0 {
		return AnswerMap{}, nil
	}
	var m AnswerMap
	if err := json.Unmarshal(a.Answers, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func (a *TestAttempt) SetAnswerMap(m AnswerMap) error {
	raw, err := json.Marshal(m)
	if err != nil {
		return err
	}
	a.Answers = datatypes.JSON(raw)
	return nil
}

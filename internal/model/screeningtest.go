package model

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// TestQuestion is one MCQ inside a screening test's embedded question list.
// The list is stored as a JSON column; scoring only ever reads it from here.
type TestQuestion struct {
	ID           string   `json:"id"`
	Prompt       string   `json:"prompt"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Points       int      `json:"points"`
}

// ScreeningTest is the MCQ test definition for an event. At most one active
// test exists per event; redefining it overwrites the active row in place.
// MCQLink and Questions are mutually exclusive: an external link clears the
// embedded list.
type ScreeningTest struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	EventID        uint           `json:"event_id" gorm:"not null;index"`
	Title          string         `json:"title"`
	Instructions   string         `json:"instructions,omitempty" gorm:"type:text"`
	Questions      datatypes.JSON `json:"questions,omitempty"`
	TimerMinutes   int            `json:"timer_minutes" gorm:"not null;default:0"`
	PassingScore   int            `json:"passing_score" gorm:"not null;default:0"` // percentage threshold
	TotalQuestions int            `json:"total_questions" gorm:"not null;default:0"`
	Deadline       *time.Time     `json:"deadline,omitempty"`
	MCQLink        *string        `json:"mcq_link,omitempty"`
	IsActive       bool           `json:"is_active" gorm:"not null;default:true;index"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// QuestionList decodes the embedded question column. A nil/empty column
// decodes to an empty list, which callers treat as "no embedded questions".
func (t *ScreeningTest) QuestionList() ([]TestQuestion, error) {
	if len(t.Questions) == 0 {
		return nil, nil
	}
	var qs []TestQuestion
	if err := json.Unmarshal(t.Questions, &qs); err != nil {
		return nil, err
	}
	return qs, nil
}

// SetQuestionList encodes and stores the embedded question list, keeping the
// denormalized count in step.
func (t *ScreeningTest) SetQuestionList(qs []TestQuestion) error {
	if qs == nil {
		t.Questions = nil
		t.TotalQuestions = 0
		return nil
	}
	raw, err := json.Marshal(qs)
	if err != nil {
		return err
	}
	t.Questions = datatypes.JSON(raw)
	t.TotalQuestions = len(qs)
	return nil
}

package dto

import "time"

// QuestionInputDTO is one MCQ inside a test definition request. The id is
// optional; missing ids are assigned positionally by the service.
type QuestionInputDTO struct {
	ID           string   `json:"id"`
	Prompt       string   `json:"prompt" binding:"required"`
	Options      []string `json:"options" binding:"required,min=2"`
	CorrectIndex int      `json:"correct_index" binding:"gte=0"`
	Points       int      `json:"points" binding:"required,gt=0"`
}

// DefineTestDTO creates or overwrites the active screening test for an event.
type DefineTestDTO struct {
	Title        string             `json:"title" binding:"required"`
	Instructions string             `json:"instructions"`
	Questions    []QuestionInputDTO `json:"questions" binding:"omitempty,dive"`
	TimerMinutes int                `json:"timer_minutes" binding:"gte=0"`
	PassingScore int                `json:"passing_score" binding:"gte=0,lte=100"`
	Deadline     *time.Time         `json:"deadline"`
}

type SendTestDTO struct {
	TestID          uint   `json:"test_id" binding:"required"`
	RegistrationIDs []uint `json:"registration_ids" binding:"required,min=1"`
}

type SendExternalTestDTO struct {
	TestID          uint   `json:"test_id" binding:"required"`
	RegistrationIDs []uint `json:"registration_ids" binding:"required,min=1"`
	MCQLink         string `json:"mcq_link" binding:"required,url"`
}

type SkipScreeningDTO struct {
	RegistrationIDs []uint `json:"registration_ids" binding:"required,min=1"`
}

// TestQuestionDTO is the admin view of a question, correct answer included.
type TestQuestionDTO struct {
	ID           string   `json:"id"`
	Prompt       string   `json:"prompt"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Points       int      `json:"points"`
}

type TestResponseDTO struct {
	ID             uint              `json:"id"`
	EventID        uint              `json:"event_id"`
	Title          string            `json:"title"`
	Instructions   string            `json:"instructions,omitempty"`
	Questions      []TestQuestionDTO `json:"questions,omitempty"`
	TimerMinutes   int               `json:"timer_minutes"`
	PassingScore   int               `json:"passing_score"`
	TotalQuestions int               `json:"total_questions"`
	Deadline       *time.Time        `json:"deadline,omitempty"`
	MCQLink        *string           `json:"mcq_link,omitempty"`
	IsActive       bool              `json:"is_active"`
	CreatedAt      time.Time         `json:"created_at"`
}

// TakingQuestionDTO is the participant view of a question. The correct index
// never leaves the server.
type TakingQuestionDTO struct {
	ID      string   `json:"id"`
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
	Points  int      `json:"points"`
}

type TestForTakingDTO struct {
	ID             uint                `json:"id"`
	EventID        uint                `json:"event_id"`
	Title          string              `json:"title"`
	Instructions   string              `json:"instructions,omitempty"`
	Questions      []TakingQuestionDTO `json:"questions,omitempty"`
	TimerMinutes   int                 `json:"timer_minutes"`
	TotalQuestions int                 `json:"total_questions"`
	Deadline       *time.Time          `json:"deadline,omitempty"`
	MCQLink        *string             `json:"mcq_link,omitempty"`
}

type StartAttemptDTO struct {
	EventID uint `json:"event_id" binding:"required"`
}

type AttemptStartResponseDTO struct {
	AttemptID uint      `json:"attempt_id"`
	Resumed   bool      `json:"resumed"`
	StartedAt time.Time `json:"started_at"`
}

type SubmitAttemptDTO struct {
	EventID          uint           `json:"event_id" binding:"required"`
	Answers          map[string]int `json:"answers" binding:"required"`
	TimeTakenSeconds int            `json:"time_taken_seconds" binding:"gte=0"`
	TabSwitches      int            `json:"tab_switches" binding:"gte=0"`
	Status           string         `json:"status" binding:"omitempty,oneof=submitted auto_submitted timeout"`
}

type AttemptResultDTO struct {
	AttemptID      uint      `json:"attempt_id"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	Passed         bool      `json:"passed"`
	SubmittedAt    time.Time `json:"submitted_at"`
}

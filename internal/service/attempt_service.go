package service

import (
	"math"
	"time"

	"github.com/hackdesk/hackdesk/internal/apperr"
	"github.com/hackdesk/hackdesk/internal/auth"
	"github.com/hackdesk/hackdesk/internal/dto"
	"github.com/hackdesk/hackdesk/internal/model"
	"github.com/hackdesk/hackdesk/internal/repository"
	"github.com/rs/zerolog/log"
)

// AttemptService is the participant side of the screening stage: fetching the
// assigned test, starting or resuming an attempt, and submitting answers.
type AttemptService interface {
	FetchTestForTaking(ident auth.Identity, eventID uint) (*dto.TestForTakingDTO, error)
	StartAttempt(ident auth.Identity, testID uint, req dto.StartAttemptDTO) (*dto.AttemptStartResponseDTO, error)
	SubmitAttempt(ident auth.Identity, testID uint, req dto.SubmitAttemptDTO) (*dto.AttemptResultDTO, error)
}

type attemptService struct {
	testRepo    repository.ScreeningTestRepository
	regRepo     repository.RegistrationRepository
	attemptRepo repository.TestAttemptRepository
	trackingSvc TrackingService
	now         func() time.Time
}

func NewAttemptService(
	testRepo repository.ScreeningTestRepository,
	regRepo repository.RegistrationRepository,
	attemptRepo repository.TestAttemptRepository,
	trackingSvc TrackingService,
) AttemptService {
	return &attemptService{
		testRepo:    testRepo,
		regRepo:     regRepo,
		attemptRepo: attemptRepo,
		trackingSvc: trackingSvc,
		now:         time.Now,
	}
}

// FetchTestForTaking returns the caller's assigned test with the correct
// answers stripped. Every gate has its own rejection reason so the client can
// say exactly why the test is unavailable.
func (s *attemptService) FetchTestForTaking(ident auth.Identity, eventID uint) (*dto.TestForTakingDTO, error) {
	reg, err := s.regRepo.FindByUserAndEvent(ident.UserID, eventID)
	if err != nil {
		return nil, mapFindErr(err, "Registration not found for this event", "looking up registration")
	}
	if !reg.Attended {
		return nil, apperr.Conflict("Attendance has not been marked for this registration")
	}
	if reg.ScreeningTestID == nil {
		return nil, apperr.Conflict("No screening test has been assigned")
	}
	if reg.ScreeningStatus == model.ScreeningCompleted {
		return nil, apperr.Conflict("Screening test already completed")
	}
	if reg.ScreeningStatus != model.ScreeningSent {
		return nil, apperr.Conflict("Screening test has not been sent to this registration")
	}

	test, err := s.testRepo.FindByID(*reg.ScreeningTestID)
	if err != nil {
		return nil, mapFindErr(err, "Screening test not found", "looking up screening test")
	}
	if !test.IsActive {
		return nil, apperr.Conflict("Screening test is no longer active")
	}
	if test.Deadline != nil && s.now().After(*test.Deadline) {
		return nil, apperr.Conflict("Screening test deadline has passed")
	}

	resp := dto.TestForTakingDTO{
		ID:             test.ID,
		EventID:        test.EventID,
		Title:          test.Title,
		Instructions:   test.Instructions,
		TimerMinutes:   test.TimerMinutes,
		TotalQuestions: test.TotalQuestions,
		Deadline:       test.Deadline,
		MCQLink:        test.MCQLink,
	}
	questions, err := test.QuestionList()
	if err != nil {
		return nil, apperr.Dependency("decoding question list", err)
	}
	for _, q := range questions {
		resp.Questions = append(resp.Questions, dto.TakingQuestionDTO{
			ID:      q.ID,
			Prompt:  q.Prompt,
			Options: q.Options,
			Points:  q.Points,
		})
	}
	return &resp, nil
}

// StartAttempt creates an in-progress attempt, or returns the existing one if
// it is still in progress. An attempt in any terminal state is a conflict.
func (s *attemptService) StartAttempt(ident auth.Identity, testID uint, req dto.StartAttemptDTO) (*dto.AttemptStartResponseDTO, error) {
	reg, err := s.regRepo.FindByUserAndEvent(ident.UserID, req.EventID)
	if err != nil {
		return nil, mapFindErr(err, "Registration not found for this event", "looking up registration")
	}
	if reg.ScreeningStatus != model.ScreeningSent || reg.ScreeningTestID == nil || *reg.ScreeningTestID != testID {
		return nil, apperr.Conflict("This test has not been sent to you")
	}

	test, err := s.testRepo.FindByID(testID)
	if err != nil {
		return nil, mapFindErr(err, "Screening test not found", "looking up screening test")
	}
	if !test.IsActive {
		return nil, apperr.Conflict("Screening test is no longer active")
	}
	if test.Deadline != nil && s.now().After(*test.Deadline) {
		return nil, apperr.Conflict("Screening test deadline has passed")
	}

	existing, err := s.attemptRepo.FindByUserAndTest(ident.UserID, testID)
	if err == nil {
		if existing.Status == model.AttemptInProgress {
			return &dto.AttemptStartResponseDTO{
				AttemptID: existing.ID,
				Resumed:   true,
				StartedAt: existing.StartedAt,
			}, nil
		}
		return nil, apperr.Conflict("Screening test already completed")
	}
	if !isNotFound(err) {
		return nil, apperr.Dependency("looking up attempt", err)
	}

	attempt := model.TestAttempt{
		UserID:         ident.UserID,
		TestID:         testID,
		RegistrationID: reg.ID,
		EventID:        reg.EventID,
		StartedAt:      s.now(),
		TotalQuestions: test.TotalQuestions,
		Status:         model.AttemptInProgress,
	}
	if err := s.attemptRepo.Create(&attempt); err != nil {
		return nil, apperr.Dependency("creating attempt", err)
	}

	log.Info().Uint("userID", ident.UserID).Uint("testID", testID).Uint("attemptID", attempt.ID).
		Msg("Screening attempt started")
	return &dto.AttemptStartResponseDTO{
		AttemptID: attempt.ID,
		Resumed:   false,
		StartedAt: attempt.StartedAt,
	}, nil
}

// SubmitAttempt scores the answer map against the test's recorded question
// list and upserts the attempt over (user, test). Passing and failing both
// complete the screening stage; qualification is a separate admin judgment.
func (s *attemptService) SubmitAttempt(ident auth.Identity, testID uint, req dto.SubmitAttemptDTO) (*dto.AttemptResultDTO, error) {
	reg, err := s.regRepo.FindByUserAndEvent(ident.UserID, req.EventID)
	if err != nil {
		return nil, mapFindErr(err, "Registration not found for this event", "looking up registration")
	}
	if reg.ScreeningTestID == nil || *reg.ScreeningTestID != testID {
		return nil, apperr.Conflict("This test has not been sent to you")
	}

	test, err := s.testRepo.FindByID(testID)
	if err != nil {
		return nil, mapFindErr(err, "Screening test not found", "looking up screening test")
	}
	questions, err := test.QuestionList()
	if err != nil {
		return nil, apperr.Dependency("decoding question list", err)
	}

	score := scoreAnswers(questions, req.Answers)
	submittedAt := s.now()

	attempt := model.TestAttempt{
		UserID:           ident.UserID,
		TestID:           testID,
		RegistrationID:   reg.ID,
		EventID:          reg.EventID,
		StartedAt:        submittedAt,
		SubmittedAt:      &submittedAt,
		Score:            score,
		TotalQuestions:   len(questions),
		TimeTakenSeconds: req.TimeTakenSeconds,
		TabSwitches:      req.TabSwitches,
		Status:           model.AttemptSubmitted,
	}
	if req.Status != "" {
		attempt.Status = req.Status
	}
	if existing, err := s.attemptRepo.FindByUserAndTest(ident.UserID, testID); err == nil {
		attempt.ID = existing.ID
		attempt.StartedAt = existing.StartedAt
	} else if !isNotFound(err) {
		return nil, apperr.Dependency("looking up attempt", err)
	}
	if err := attempt.SetAnswerMap(req.Answers); err != nil {
		return nil, apperr.Dependency("encoding answers", err)
	}
	if err := s.attemptRepo.Upsert(&attempt); err != nil {
		return nil, apperr.Dependency("storing attempt", err)
	}

	// Completion is unconditional: a failing score still completes screening.
	reg.ScreeningStatus = model.ScreeningCompleted
	if err := s.regRepo.Save(reg); err != nil {
		return nil, apperr.Dependency("completing screening stage", err)
	}

	s.trackingSvc.ScreeningSubmitted(ident.UserID, reg.EventID, submittedAt)

	log.Info().Uint("userID", ident.UserID).Uint("testID", testID).Int("score", score).
		Msg("Screening attempt submitted")
	return &dto.AttemptResultDTO{
		AttemptID:      attempt.ID,
		Score:          score,
		TotalQuestions: len(questions),
		Passed:         score >= test.PassingScore,
		SubmittedAt:    submittedAt,
	}, nil
}

// scoreAnswers computes round(100 * earned / available) over the question
// list's point values. An answer earns a question's points only when it
// exactly matches the recorded correct option index. A test with no scorable
// points scores 0.
func scoreAnswers(questions []model.TestQuestion, answers map[string]int) int {
	var earned, available int
	for _, q := range questions {
		available += q.Points
		if selected, ok := answers[q.ID]; ok && selected == q.CorrectIndex {
			earned += q.Points
		}
	}
	if available == 0 {
		return 0
	}
	return int(math.Round(100 * float64(earned) / float64(available)))
}

package service

import (
	"fmt"
	"time"

	"github.com/hackdesk/hackdesk/internal/apperr"
	"github.com/hackdesk/hackdesk/internal/auth"
	"github.com/hackdesk/hackdesk/internal/dto"
	"github.com/hackdesk/hackdesk/internal/model"
	"github.com/hackdesk/hackdesk/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
)

// ScreeningService is the admin side of the screening stage: defining the
// event's MCQ test and moving registrations into or past the screening state.
type ScreeningService interface {
	DefineTest(ident auth.Identity, eventID uint, req dto.DefineTestDTO) (*dto.TestResponseDTO, error)
	SendTest(ident auth.Identity, eventID uint, req dto.SendTestDTO) (int, error)
	SendExternalTest(ident auth.Identity, eventID uint, req dto.SendExternalTestDTO) (int, error)
	SkipScreening(ident auth.Identity, req dto.SkipScreeningDTO) (int, error)
}

type screeningService struct {
	eventRepo   repository.EventRepository
	testRepo    repository.ScreeningTestRepository
	regRepo     repository.RegistrationRepository
	trackingSvc TrackingService
}

func NewScreeningService(
	eventRepo repository.EventRepository,
	testRepo repository.ScreeningTestRepository,
	regRepo repository.RegistrationRepository,
	trackingSvc TrackingService,
) ScreeningService {
	return &screeningService{
		eventRepo:   eventRepo,
		testRepo:    testRepo,
		regRepo:     regRepo,
		trackingSvc: trackingSvc,
	}
}

// DefineTest creates the event's screening test, or overwrites the active one
// in place so attempts already recorded against it keep their reference.
// Defining an embedded question list clears any external link.
func (s *screeningService) DefineTest(ident auth.Identity, eventID uint, req dto.DefineTestDTO) (*dto.TestResponseDTO, error) {
	if !ident.Admin {
		return nil, apperr.Permission("Admin access required")
	}
	if len(req.Questions) == 0 {
		return nil, apperr.Validation("A screening test must contain at least one question")
	}

	questions := make([]model.TestQuestion, 0, len(req.Questions))
	seen := make(map[string]bool, len(req.Questions))
	for i, q := range req.Questions {
		id := q.ID
		if id == "" {
			id = fmt.Sprintf("q%d", i+1)
		}
		if seen[id] {
			return nil, apperr.Newf(apperr.KindValidation, "Duplicate question id %q", id)
		}
		seen[id] = true
		if q.CorrectIndex >= len(q.Options) {
			return nil, apperr.Newf(apperr.KindValidation,
				"Question %q: correct_index %d is out of range for %d options", id, q.CorrectIndex, len(q.Options))
		}
		questions = append(questions, model.TestQuestion{
			ID:           id,
			Prompt:       q.Prompt,
			Options:      q.Options,
			CorrectIndex: q.CorrectIndex,
			Points:       q.Points,
		})
	}

	if _, err := s.eventRepo.FindByID(eventID); err != nil {
		return nil, mapFindErr(err, "Event not found", "looking up event")
	}

	test, err := s.testRepo.FindActiveByEvent(eventID)
	switch {
	case err == nil:
		// Upsert-by-event: overwrite fields, keep identity.
		test.Title = req.Title
		test.Instructions = req.Instructions
		test.TimerMinutes = req.TimerMinutes
		test.PassingScore = req.PassingScore
		test.Deadline = req.Deadline
		test.MCQLink = nil
		if err := test.SetQuestionList(questions); err != nil {
			return nil, apperr.Dependency("encoding question list", err)
		}
		if err := s.testRepo.Save(test); err != nil {
			return nil, apperr.Dependency("updating screening test", err)
		}
	case isNotFound(err):
		test = &model.ScreeningTest{
			EventID:      eventID,
			Title:        req.Title,
			Instructions: req.Instructions,
			TimerMinutes: req.TimerMinutes,
			PassingScore: req.PassingScore,
			Deadline:     req.Deadline,
			IsActive:     true,
		}
		if err := test.SetQuestionList(questions); err != nil {
			return nil, apperr.Dependency("encoding question list", err)
		}
		if err := s.testRepo.Create(test); err != nil {
			return nil, apperr.Dependency("creating screening test", err)
		}
	default:
		return nil, apperr.Dependency("looking up screening test", err)
	}

	log.Info().Uint("eventID", eventID).Uint("testID", test.ID).Int("questions", len(questions)).
		Msg("Screening test defined")
	return testToResponse(test)
}

// SendTest marks the targeted registrations as sent and assigns the test.
// Tracking mirror writes are best-effort and reported only via log.
func (s *screeningService) SendTest(ident auth.Identity, eventID uint, req dto.SendTestDTO) (int, error) {
	if !ident.Admin {
		return 0, apperr.Permission("Admin access required")
	}

	test, err := s.testRepo.FindByID(req.TestID)
	if err != nil {
		return 0, mapFindErr(err, "Screening test not found", "looking up screening test")
	}
	if test.EventID != eventID {
		return 0, apperr.Validation("Screening test does not belong to this event")
	}
	if !test.IsActive {
		return 0, apperr.Conflict("Screening test is not active")
	}
	questions, err := test.QuestionList()
	if err != nil {
		return 0, apperr.Dependency("decoding question list", err)
	}
	if len(questions) == 0 {
		return 0, apperr.Validation("Screening test has no questions")
	}

	return s.markSent(eventID, req.RegistrationIDs, test.ID)
}

// SendExternalTest points the test at an external MCQ link. Setting the link
// clears any embedded question list on the row; they are mutually exclusive.
func (s *screeningService) SendExternalTest(ident auth.Identity, eventID uint, req dto.SendExternalTestDTO) (int, error) {
	if !ident.Admin {
		return 0, apperr.Permission("Admin access required")
	}

	test, err := s.testRepo.FindByID(req.TestID)
	if err != nil {
		return 0, mapFindErr(err, "Screening test not found", "looking up screening test")
	}
	if test.EventID != eventID {
		return 0, apperr.Validation("Screening test does not belong to this event")
	}
	if !test.IsActive {
		return 0, apperr.Conflict("Screening test is not active")
	}

	link := req.MCQLink
	test.MCQLink = &link
	if err := test.SetQuestionList(nil); err != nil {
		return 0, apperr.Dependency("clearing question list", err)
	}
	if err := s.testRepo.Save(test); err != nil {
		return 0, apperr.Dependency("updating screening test", err)
	}

	return s.markSent(eventID, req.RegistrationIDs, test.ID)
}

// SkipScreening short-circuits the test stage for the targeted registrations
// and advances them straight to the presentation stage.
func (s *screeningService) SkipScreening(ident auth.Identity, req dto.SkipScreeningDTO) (int, error) {
	if !ident.Admin {
		return 0, apperr.Permission("Admin access required")
	}
	count, err := s.regRepo.SkipScreening(req.RegistrationIDs)
	if err != nil {
		return 0, apperr.Dependency("skipping screening", err)
	}
	log.Info().Int64("count", count).Msg("Screening skipped for registrations")
	return int(count), nil
}

func (s *screeningService) markSent(eventID uint, regIDs []uint, testID uint) (int, error) {
	count, err := s.regRepo.MarkScreeningSent(eventID, regIDs, testID)
	if err != nil {
		return 0, apperr.Dependency("marking registrations as sent", err)
	}

	regs, err := s.regRepo.FindByIDs(regIDs)
	if err != nil {
		// The primary mutation succeeded; the mirror is best-effort.
		log.Warn().Err(err).Msg("Could not load registrations for tracking mirror")
		return int(count), nil
	}
	pairs := make([]UserEvent, 0, len(regs))
	for _, reg := range regs {
		if reg.EventID == eventID {
			pairs = append(pairs, UserEvent{UserID: reg.UserID, EventID: reg.EventID})
		}
	}
	s.trackingSvc.ScreeningSentBatch(pairs, time.Now())

	log.Info().Uint("eventID", eventID).Uint("testID", testID).Int64("count", count).
		Msg("Screening test sent to registrations")
	return int(count), nil
}

func testToResponse(test *model.ScreeningTest) (*dto.TestResponseDTO, error) {
	var resp dto.TestResponseDTO
	if err := copier.Copy(&resp, test); err != nil {
		return nil, apperr.Dependency("preparing test response", err)
	}
	resp.Questions = nil
	questions, err := test.QuestionList()
	if err != nil {
		return nil, apperr.Dependency("decoding question list", err)
	}
	for _, q := range questions {
		resp.Questions = append(resp.Questions, dto.TestQuestionDTO{
			ID:           q.ID,
			Prompt:       q.Prompt,
			Options:      q.Options,
			CorrectIndex: q.CorrectIndex,
			Points:       q.Points,
		})
	}
	return &resp, nil
}

package service

import (
	"testing"
	"time"

	"github.com/hackdesk/hackdesk/internal/apperr"
	"github.com/hackdesk/hackdesk/internal/auth"
	"github.com/hackdesk/hackdesk/internal/dto"
	"github.com/hackdesk/hackdesk/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type workflowFixture struct {
	svc      *workflowService
	regs     *fakeRegistrationRepo
	tracking *fakeTrackingRepo
}

func newWorkflowFixture(t *testing.T) *workflowFixture {
	t.Helper()
	f := &workflowFixture{
		regs:     newFakeRegistrationRepo(),
		tracking: newFakeTrackingRepo(),
	}
	f.svc = NewWorkflowService(f.regs, NewTrackingService(f.tracking)).(*workflowService)
	return f
}

func (f *workflowFixture) register(t *testing.T, userID, eventID uint) *model.Registration {
	t.Helper()
	reg := &model.Registration{UserID: userID, EventID: eventID}
	require.NoError(t, f.regs.Create(reg))
	return reg
}

func boolPtr(b bool) *bool { return &b }

func TestMarkAttendance_Batch(t *testing.T) {
	f := newWorkflowFixture(t)
	regA := f.register(t, 7, 1)
	regB := f.register(t, 8, 1)

	count, err := f.svc.MarkAttendance(adminIdent, dto.AttendanceDTO{
		RegistrationIDs: []uint{regA.ID, regB.ID, 99},
		Attended:        boolPtr(true),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	for _, id := range []uint{regA.ID, regB.ID} {
		reg, err := f.regs.FindByID(id)
		require.NoError(t, err)
		assert.True(t, reg.Attended)
	}
}

func TestMarkAttendance_CanUnmark(t *testing.T) {
	f := newWorkflowFixture(t)
	reg := f.register(t, 7, 1)
	reg.Attended = true
	require.NoError(t, f.regs.Save(reg))

	count, err := f.svc.MarkAttendance(adminIdent, dto.AttendanceDTO{
		RegistrationIDs: []uint{reg.ID},
		Attended:        boolPtr(false),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	updated, err := f.regs.FindByID(reg.ID)
	require.NoError(t, err)
	assert.False(t, updated.Attended)
}

func TestMarkAttendance_RequiresAdmin(t *testing.T) {
	f := newWorkflowFixture(t)

	_, err := f.svc.MarkAttendance(auth.Identity{UserID: 7}, dto.AttendanceDTO{
		RegistrationIDs: []uint{1},
		Attended:        boolPtr(true),
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindPermission, apperr.KindOf(err))
}

func TestSubmitPresentation_RecordsLinksAndMirrors(t *testing.T) {
	f := newWorkflowFixture(t)
	reg := f.register(t, 7, 1)
	submittedAt := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	f.svc.now = func() time.Time { return submittedAt }

	resp, err := f.svc.SubmitPresentation(auth.Identity{UserID: 7}, 1, dto.SubmitPresentationDTO{
		GithubLink:       "https://github.com/ada/project",
		DeploymentLink:   "https://project.example",
		PresentationLink: "https://slides.example/deck",
		Notes:            "demo at booth 4",
	})
	require.NoError(t, err)
	assert.Equal(t, model.PresentationSubmitted, resp.PresentationStatus)
	assert.Equal(t, "https://github.com/ada/project", resp.GithubLink)

	stored, err := f.regs.FindByID(reg.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PresentationSubmitted, stored.PresentationStatus)
	assert.Equal(t, "demo at booth 4", stored.PresentationNotes)

	mirror, err := f.tracking.FindByUserAndEvent(7, 1)
	require.NoError(t, err)
	require.NotNil(t, mirror.PresentationSubmittedAt)
	assert.Equal(t, submittedAt, *mirror.PresentationSubmittedAt)
}

func TestSubmitPresentation_ResubmissionOverwrites(t *testing.T) {
	f := newWorkflowFixture(t)
	reg := f.register(t, 7, 1)

	_, err := f.svc.SubmitPresentation(auth.Identity{UserID: 7}, 1, dto.SubmitPresentationDTO{
		GithubLink: "https://github.com/ada/project",
	})
	require.NoError(t, err)
	_, err = f.svc.SubmitPresentation(auth.Identity{UserID: 7}, 1, dto.SubmitPresentationDTO{
		GithubLink: "https://github.com/ada/project-v2",
	})
	require.NoError(t, err)

	stored, err := f.regs.FindByID(reg.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://github.com/ada/project-v2", stored.GithubLink)
	assert.Equal(t, model.PresentationSubmitted, stored.PresentationStatus)
}

func TestSubmitPresentation_UnknownRegistration(t *testing.T) {
	f := newWorkflowFixture(t)

	_, err := f.svc.SubmitPresentation(auth.Identity{UserID: 7}, 1, dto.SubmitPresentationDTO{
		GithubLink: "https://github.com/ada/project",
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestReviewPresentation_RequiresSubmission(t *testing.T) {
	f := newWorkflowFixture(t)
	reg := f.register(t, 7, 1)

	_, err := f.svc.ReviewPresentation(adminIdent, reg.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	reg.PresentationStatus = model.PresentationSubmitted
	require.NoError(t, f.regs.Save(reg))

	resp, err := f.svc.ReviewPresentation(adminIdent, reg.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PresentationReviewed, resp.PresentationStatus)
}

func TestDecideQualification_StampsDecision(t *testing.T) {
	f := newWorkflowFixture(t)
	reg := f.register(t, 7, 1)
	decidedAt := time.Date(2026, 3, 16, 12, 0, 0, 0, time.UTC)
	f.svc.now = func() time.Time { return decidedAt }

	resp, err := f.svc.DecideQualification(adminIdent, reg.ID, dto.QualificationDTO{
		Status:  model.QualificationQualified,
		Remarks: "strong submission",
	})
	require.NoError(t, err)
	assert.Equal(t, model.QualificationQualified, resp.QualificationStatus)
	require.NotNil(t, resp.QualifiedAt)
	assert.Equal(t, decidedAt, *resp.QualifiedAt)

	stored, err := f.regs.FindByID(reg.ID)
	require.NoError(t, err)
	assert.Equal(t, "strong submission", stored.QualificationRemarks)
	require.NotNil(t, stored.QualifiedBy)
	assert.Equal(t, adminIdent.UserID, *stored.QualifiedBy)
}

func TestDecideQualification_InvalidStatus(t *testing.T) {
	f := newWorkflowFixture(t)
	reg := f.register(t, 7, 1)

	for _, status := range []string{"pending", "maybe", "QUALIFIED", ""} {
		_, err := f.svc.DecideQualification(adminIdent, reg.ID, dto.QualificationDTO{Status: status})
		require.Error(t, err, "status %q", status)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		assert.Contains(t, apperr.MessageOf(err), status)
	}
}

func TestDecideQualification_CanOverturn(t *testing.T) {
	f := newWorkflowFixture(t)
	reg := f.register(t, 7, 1)

	_, err := f.svc.DecideQualification(adminIdent, reg.ID, dto.QualificationDTO{Status: model.QualificationRejected})
	require.NoError(t, err)
	resp, err := f.svc.DecideQualification(adminIdent, reg.ID, dto.QualificationDTO{Status: model.QualificationQualified})
	require.NoError(t, err)
	assert.Equal(t, model.QualificationQualified, resp.QualificationStatus)
}

func TestUpdateAdminNotes_ScoreBounds(t *testing.T) {
	f := newWorkflowFixture(t)
	reg := f.register(t, 7, 1)

	for _, score := range []int{-1, 101} {
		s := score
		_, err := f.svc.UpdateAdminNotes(adminIdent, reg.ID, dto.AdminNotesDTO{Score: &s})
		require.Error(t, err, "score %d", score)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	}

	score := 85
	resp, err := f.svc.UpdateAdminNotes(adminIdent, reg.ID, dto.AdminNotesDTO{Notes: "solid", Score: &score})
	require.NoError(t, err)
	require.NotNil(t, resp.AdminScore)
	assert.Equal(t, 85, *resp.AdminScore)
}

func TestUpdateAdminNotes_NilScoreKeepsExisting(t *testing.T) {
	f := newWorkflowFixture(t)
	reg := f.register(t, 7, 1)
	score := 70
	reg.AdminScore = &score
	require.NoError(t, f.regs.Save(reg))

	resp, err := f.svc.UpdateAdminNotes(adminIdent, reg.ID, dto.AdminNotesDTO{Notes: "updated"})
	require.NoError(t, err)
	require.NotNil(t, resp.AdminScore)
	assert.Equal(t, 70, *resp.AdminScore)
	assert.Equal(t, "updated", resp.AdminNotes)
}

func TestMyRegistration_ScopedToCaller(t *testing.T) {
	f := newWorkflowFixture(t)
	f.register(t, 7, 1)
	f.register(t, 8, 1)

	resp, err := f.svc.MyRegistration(auth.Identity{UserID: 7}, 1)
	require.NoError(t, err)
	assert.Equal(t, uint(7), resp.UserID)

	_, err = f.svc.MyRegistration(auth.Identity{UserID: 9}, 1)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestEventRegistrations_RequiresAdmin(t *testing.T) {
	f := newWorkflowFixture(t)
	f.register(t, 7, 1)

	_, err := f.svc.EventRegistrations(auth.Identity{UserID: 7}, 1)
	require.Error(t, err)
	assert.Equal(t, apperr.KindPermission, apperr.KindOf(err))

	regs, err := f.svc.EventRegistrations(adminIdent, 1)
	require.NoError(t, err)
	assert.Len(t, regs, 1)
}

// TestFullParticipantJourney drives one registration from attendance through
// screening, presentation, qualification and award, with all services sharing
// the same stores.
func TestFullParticipantJourney(t *testing.T) {
	regs := newFakeRegistrationRepo()
	tests := newFakeScreeningTestRepo()
	attempts := newFakeAttemptRepo()
	tracking := newFakeTrackingRepo()
	events := newFakeEventRepo()
	profiles := newFakeProfileRepo()
	trackingSvc := NewTrackingService(tracking)

	screening := NewScreeningService(events, tests, regs, trackingSvc)
	attempt := NewAttemptService(tests, regs, attempts, trackingSvc)
	workflow := NewWorkflowService(regs, trackingSvc)
	award := NewAwardService(regs, profiles)

	require.NoError(t, events.Create(&model.Event{Title: "Hack Night", IsPublished: true}))
	reg := &model.Registration{UserID: 7, EventID: 1}
	require.NoError(t, regs.Create(reg))
	participant := auth.Identity{UserID: 7}

	// Admin marks attendance and sends the screening test.
	_, err := workflow.MarkAttendance(adminIdent, dto.AttendanceDTO{
		RegistrationIDs: []uint{reg.ID},
		Attended:        boolPtr(true),
	})
	require.NoError(t, err)

	defined, err := screening.DefineTest(adminIdent, 1, defineReq())
	require.NoError(t, err)
	sent, err := screening.SendTest(adminIdent, 1, dto.SendTestDTO{
		TestID:          defined.ID,
		RegistrationIDs: []uint{reg.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, sent)

	// Participant takes the test and passes.
	taking, err := attempt.FetchTestForTaking(participant, 1)
	require.NoError(t, err)
	require.Len(t, taking.Questions, 2)

	_, err = attempt.StartAttempt(participant, defined.ID, dto.StartAttemptDTO{EventID: 1})
	require.NoError(t, err)
	result, err := attempt.SubmitAttempt(participant, defined.ID, dto.SubmitAttemptDTO{
		EventID: 1,
		Answers: map[string]int{"q1": 0, "q2": 1},
	})
	require.NoError(t, err)
	assert.Equal(t, 100, result.Score)
	assert.True(t, result.Passed)

	// Participant submits the project, admin qualifies and awards.
	_, err = workflow.SubmitPresentation(participant, 1, dto.SubmitPresentationDTO{
		GithubLink: "https://github.com/ada/project",
	})
	require.NoError(t, err)

	_, err = workflow.DecideQualification(adminIdent, reg.ID, dto.QualificationDTO{
		Status: model.QualificationQualified,
	})
	require.NoError(t, err)

	assigned, err := award.Assign(adminIdent, reg.ID, dto.AssignAwardDTO{AwardType: model.AwardWinner})
	require.NoError(t, err)
	require.NotNil(t, assigned.AwardType)
	assert.Equal(t, model.AwardWinner, *assigned.AwardType)

	winners, err := award.ListEventWinners(1)
	require.NoError(t, err)
	require.Len(t, winners.Winners, 1)
	assert.Equal(t, uint(7), winners.Winners[0].UserID)

	// Every milestone landed in the tracking mirror.
	mirror, err := tracking.FindByUserAndEvent(7, 1)
	require.NoError(t, err)
	assert.NotNil(t, mirror.ScreeningSentAt)
	assert.NotNil(t, mirror.ScreeningSubmittedAt)
	assert.NotNil(t, mirror.PresentationSubmittedAt)

	final, err := regs.FindByID(reg.ID)
	require.NoError(t, err)
	assert.True(t, final.Attended)
	assert.Equal(t, model.ScreeningCompleted, final.ScreeningStatus)
	assert.Equal(t, model.PresentationSubmitted, final.PresentationStatus)
	assert.Equal(t, model.QualificationQualified, final.QualificationStatus)
}

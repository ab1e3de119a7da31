package service

import (
	"time"

	"github.com/hackdesk/hackdesk/internal/apperr"
	"github.com/hackdesk/hackdesk/internal/auth"
	"github.com/hackdesk/hackdesk/internal/dto"
	"github.com/hackdesk/hackdesk/internal/model"
	"github.com/hackdesk/hackdesk/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
)

// WorkflowService moves a registration through attendance, presentation and
// qualification. All state lives on the registration row; stages advance
// independently and last-write-wins on concurrent edits of the same row.
type WorkflowService interface {
	MarkAttendance(ident auth.Identity, req dto.AttendanceDTO) (int, error)
	SubmitPresentation(ident auth.Identity, eventID uint, req dto.SubmitPresentationDTO) (*dto.RegistrationResponseDTO, error)
	ReviewPresentation(ident auth.Identity, registrationID uint) (*dto.RegistrationResponseDTO, error)
	DecideQualification(ident auth.Identity, registrationID uint, req dto.QualificationDTO) (*dto.RegistrationResponseDTO, error)
	UpdateAdminNotes(ident auth.Identity, registrationID uint, req dto.AdminNotesDTO) (*dto.RegistrationResponseDTO, error)
	MyRegistrations(ident auth.Identity) ([]dto.RegistrationResponseDTO, error)
	MyRegistration(ident auth.Identity, eventID uint) (*dto.RegistrationResponseDTO, error)
	EventRegistrations(ident auth.Identity, eventID uint) ([]dto.RegistrationResponseDTO, error)
}

type workflowService struct {
	regRepo     repository.RegistrationRepository
	trackingSvc TrackingService
	now         func() time.Time
}

func NewWorkflowService(regRepo repository.RegistrationRepository, trackingSvc TrackingService) WorkflowService {
	return &workflowService{regRepo: regRepo, trackingSvc: trackingSvc, now: time.Now}
}

func (s *workflowService) MarkAttendance(ident auth.Identity, req dto.AttendanceDTO) (int, error) {
	if !ident.Admin {
		return 0, apperr.Permission("Admin access required")
	}
	count, err := s.regRepo.SetAttendance(req.RegistrationIDs, *req.Attended)
	if err != nil {
		return 0, apperr.Dependency("updating attendance", err)
	}
	log.Info().Int64("count", count).Bool("attended", *req.Attended).Msg("Attendance updated")
	return int(count), nil
}

// SubmitPresentation records the participant's project links. The repository
// link is mandatory; everything else is optional.
func (s *workflowService) SubmitPresentation(ident auth.Identity, eventID uint, req dto.SubmitPresentationDTO) (*dto.RegistrationResponseDTO, error) {
	reg, err := s.regRepo.FindByUserAndEvent(ident.UserID, eventID)
	if err != nil {
		return nil, mapFindErr(err, "Registration not found for this event", "looking up registration")
	}

	reg.GithubLink = req.GithubLink
	reg.DeploymentLink = req.DeploymentLink
	reg.PresentationLink = req.PresentationLink
	reg.PresentationNotes = req.Notes
	reg.PresentationStatus = model.PresentationSubmitted
	if err := s.regRepo.Save(reg); err != nil {
		return nil, apperr.Dependency("saving presentation submission", err)
	}

	s.trackingSvc.PresentationSubmitted(ident.UserID, eventID, s.now())

	log.Info().Uint("userID", ident.UserID).Uint("eventID", eventID).Msg("Presentation submitted")
	return registrationToDTO(reg)
}

func (s *workflowService) ReviewPresentation(ident auth.Identity, registrationID uint) (*dto.RegistrationResponseDTO, error) {
	if !ident.Admin {
		return nil, apperr.Permission("Admin access required")
	}
	reg, err := s.regRepo.FindByID(registrationID)
	if err != nil {
		return nil, mapFindErr(err, "Registration not found", "looking up registration")
	}
	if reg.PresentationStatus != model.PresentationSubmitted {
		return nil, apperr.Conflict("Presentation has not been submitted")
	}
	reg.PresentationStatus = model.PresentationReviewed
	if err := s.regRepo.Save(reg); err != nil {
		return nil, apperr.Dependency("saving presentation review", err)
	}
	return registrationToDTO(reg)
}

// DecideQualification records the admin's terminal judgment. Only the two
// exact status values are accepted; the decision is never re-derived from the
// screening score.
func (s *workflowService) DecideQualification(ident auth.Identity, registrationID uint, req dto.QualificationDTO) (*dto.RegistrationResponseDTO, error) {
	if !ident.Admin {
		return nil, apperr.Permission("Admin access required")
	}
	if req.Status != model.QualificationQualified && req.Status != model.QualificationRejected {
		return nil, apperr.Newf(apperr.KindValidation,
			"Qualification status must be %q or %q, got %q",
			model.QualificationQualified, model.QualificationRejected, req.Status)
	}

	reg, err := s.regRepo.FindByID(registrationID)
	if err != nil {
		return nil, mapFindErr(err, "Registration not found", "looking up registration")
	}

	decidedAt := s.now()
	adminID := ident.UserID
	reg.QualificationStatus = req.Status
	reg.QualificationRemarks = req.Remarks
	reg.QualifiedAt = &decidedAt
	reg.QualifiedBy = &adminID
	if err := s.regRepo.Save(reg); err != nil {
		return nil, apperr.Dependency("saving qualification decision", err)
	}

	log.Info().Uint("registrationID", registrationID).Str("status", req.Status).Uint("adminID", adminID).
		Msg("Qualification decided")
	return registrationToDTO(reg)
}

func (s *workflowService) UpdateAdminNotes(ident auth.Identity, registrationID uint, req dto.AdminNotesDTO) (*dto.RegistrationResponseDTO, error) {
	if !ident.Admin {
		return nil, apperr.Permission("Admin access required")
	}
	if req.Score != nil && (*req.Score < 0 || *req.Score > 100) {
		return nil, apperr.Validation("Admin score must be between 0 and 100")
	}

	reg, err := s.regRepo.FindByID(registrationID)
	if err != nil {
		return nil, mapFindErr(err, "Registration not found", "looking up registration")
	}
	reg.AdminNotes = req.Notes
	if req.Score != nil {
		reg.AdminScore = req.Score
	}
	if err := s.regRepo.Save(reg); err != nil {
		return nil, apperr.Dependency("saving admin notes", err)
	}
	return registrationToDTO(reg)
}

func (s *workflowService) MyRegistrations(ident auth.Identity) ([]dto.RegistrationResponseDTO, error) {
	regs, err := s.regRepo.FindByUser(ident.UserID)
	if err != nil {
		return nil, apperr.Dependency("listing registrations", err)
	}
	return registrationsToDTOs(regs)
}

func (s *workflowService) MyRegistration(ident auth.Identity, eventID uint) (*dto.RegistrationResponseDTO, error) {
	reg, err := s.regRepo.FindByUserAndEvent(ident.UserID, eventID)
	if err != nil {
		return nil, mapFindErr(err, "Registration not found for this event", "looking up registration")
	}
	return registrationToDTO(reg)
}

func (s *workflowService) EventRegistrations(ident auth.Identity, eventID uint) ([]dto.RegistrationResponseDTO, error) {
	if !ident.Admin {
		return nil, apperr.Permission("Admin access required")
	}
	regs, err := s.regRepo.FindByEvent(eventID)
	if err != nil {
		return nil, apperr.Dependency("listing event registrations", err)
	}
	return registrationsToDTOs(regs)
}

func registrationToDTO(reg *model.Registration) (*dto.RegistrationResponseDTO, error) {
	var resp dto.RegistrationResponseDTO
	if err := copier.Copy(&resp, reg); err != nil {
		return nil, apperr.Dependency("preparing registration response", err)
	}
	return &resp, nil
}

func registrationsToDTOs(regs []model.Registration) ([]dto.RegistrationResponseDTO, error) {
	dtos := make([]dto.RegistrationResponseDTO, 0, len(regs))
	for i := range regs {
		d, err := registrationToDTO(&regs[i])
		if err != nil {
			return nil, err
		}
		dtos = append(dtos, *d)
	}
	return dtos, nil
}

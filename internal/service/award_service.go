package service

import (
	"fmt"
	"time"

	"github.com/hackdesk/hackdesk/internal/apperr"
	"github.com/hackdesk/hackdesk/internal/auth"
	"github.com/hackdesk/hackdesk/internal/dto"
	"github.com/hackdesk/hackdesk/internal/model"
	"github.com/hackdesk/hackdesk/internal/repository"
	"github.com/rs/zerolog/log"
)

// AwardService guards award assignment: eligibility preconditions checked in
// a fixed order with distinct reasons, and at most one winner per event,
// enforced atomically at the persistence layer.
type AwardService interface {
	Assign(ident auth.Identity, registrationID uint, req dto.AssignAwardDTO) (*dto.RegistrationResponseDTO, error)
	Remove(ident auth.Identity, registrationID uint) error
	ListEventWinners(eventID uint) (*dto.EventWinnersDTO, error)
}

type awardService struct {
	regRepo     repository.RegistrationRepository
	profileRepo repository.ProfileRepository
	now         func() time.Time
}

func NewAwardService(regRepo repository.RegistrationRepository, profileRepo repository.ProfileRepository) AwardService {
	return &awardService{regRepo: regRepo, profileRepo: profileRepo, now: time.Now}
}

// Assign stamps winner or runner_up on an eligible registration. The winner
// uniqueness check and the write happen inside one locked transaction, so two
// concurrent winner assignments for the same event serialize and the loser is
// rejected naming the standing winner.
func (s *awardService) Assign(ident auth.Identity, registrationID uint, req dto.AssignAwardDTO) (*dto.RegistrationResponseDTO, error) {
	if !ident.Admin {
		return nil, apperr.Permission("Admin access required")
	}
	if req.AwardType != model.AwardWinner && req.AwardType != model.AwardRunnerUp {
		return nil, apperr.Newf(apperr.KindValidation,
			"Award type must be %q or %q, got %q", model.AwardWinner, model.AwardRunnerUp, req.AwardType)
	}

	reg, err := s.regRepo.FindByID(registrationID)
	if err != nil {
		return nil, mapFindErr(err, "Registration not found", "looking up registration")
	}
	if !reg.Attended {
		return nil, apperr.Conflict("Participant has not attended the event")
	}
	if reg.PresentationStatus != model.PresentationSubmitted {
		return nil, apperr.Conflict("Presentation has not been submitted")
	}
	if reg.QualificationStatus != model.QualificationQualified {
		return nil, apperr.Conflict("Participant has not been qualified")
	}

	assignedAt := s.now()
	existing, err := s.regRepo.AssignAwardExclusive(reg, req.AwardType, ident.UserID, assignedAt)
	if err != nil {
		return nil, apperr.Dependency("assigning award", err)
	}
	if existing != nil {
		return nil, apperr.Conflict(fmt.Sprintf("There is already a winner: %s", s.displayName(existing.UserID)))
	}

	awardType := req.AwardType
	adminID := ident.UserID
	reg.AwardType = &awardType
	reg.AwardAssignedAt = &assignedAt
	reg.AwardAssignedBy = &adminID

	log.Info().Uint("registrationID", registrationID).Str("awardType", awardType).Uint("adminID", adminID).
		Msg("Award assigned")
	return registrationToDTO(reg)
}

// Remove unconditionally clears the award fields. Clearing is always safe, so
// removing an award that was never set is a no-op success.
func (s *awardService) Remove(ident auth.Identity, registrationID uint) error {
	if !ident.Admin {
		return apperr.Permission("Admin access required")
	}
	if _, err := s.regRepo.FindByID(registrationID); err != nil {
		return mapFindErr(err, "Registration not found", "looking up registration")
	}
	if err := s.regRepo.ClearAward(registrationID); err != nil {
		return apperr.Dependency("clearing award", err)
	}
	log.Info().Uint("registrationID", registrationID).Uint("adminID", ident.UserID).Msg("Award removed")
	return nil
}

// ListEventWinners is public: awarded registrations ordered by assignment
// time, enriched with profile photos. A missing photo is null, never an
// error, and a broken profile lookup degrades to null photos across the list.
func (s *awardService) ListEventWinners(eventID uint) (*dto.EventWinnersDTO, error) {
	regs, err := s.regRepo.FindAwardedByEvent(eventID)
	if err != nil {
		return nil, apperr.Dependency("listing awarded registrations", err)
	}

	userIDs := make([]uint, 0, len(regs))
	for _, reg := range regs {
		userIDs = append(userIDs, reg.UserID)
	}
	profiles, err := s.profileRepo.FindByUserIDs(userIDs)
	if err != nil {
		log.Warn().Err(err).Uint("eventID", eventID).Msg("Profile lookup failed, returning winners without photos")
		profiles = map[uint]model.Profile{}
	}

	result := dto.EventWinnersDTO{Winners: []dto.WinnerDTO{}, RunnersUp: []dto.WinnerDTO{}}
	for _, reg := range regs {
		if reg.AwardType == nil {
			continue
		}
		entry := dto.WinnerDTO{
			RegistrationID:  reg.ID,
			UserID:          reg.UserID,
			AwardType:       *reg.AwardType,
			AwardAssignedAt: reg.AwardAssignedAt,
		}
		if profile, ok := profiles[reg.UserID]; ok {
			entry.FullName = profile.FullName
			entry.PhotoURL = profile.PhotoURL
		}
		switch *reg.AwardType {
		case model.AwardWinner:
			result.Winners = append(result.Winners, entry)
		case model.AwardRunnerUp:
			result.RunnersUp = append(result.RunnersUp, entry)
		}
	}
	return &result, nil
}

func (s *awardService) displayName(userID uint) string {
	profiles, err := s.profileRepo.FindByUserIDs([]uint{userID})
	if err == nil {
		if profile, ok := profiles[userID]; ok && profile.FullName != "" {
			return profile.FullName
		}
	}
	return fmt.Sprintf("participant %d", userID)
}

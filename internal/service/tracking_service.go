package service

import (
	"sync"
	"time"

	"github.com/hackdesk/hackdesk/internal/repository"
	"github.com/rs/zerolog/log"
)

// UserEvent identifies one (participant, event) pair in a batch mirror write.
type UserEvent struct {
	UserID  uint
	EventID uint
}

// TrackingService maintains the denormalized workflow-tracking mirror. Every
// method is best-effort: failures are logged per pair and never propagated,
// so a broken mirror can never fail the operation that triggered it.
type TrackingService interface {
	ScreeningSentBatch(pairs []UserEvent, at time.Time)
	ScreeningSubmitted(userID, eventID uint, at time.Time)
	PresentationSubmitted(userID, eventID uint, at time.Time)
}

type trackingService struct {
	trackingRepo repository.WorkflowTrackingRepository
}

func NewTrackingService(trackingRepo repository.WorkflowTrackingRepository) TrackingService {
	return &trackingService{trackingRepo: trackingRepo}
}

// ScreeningSentBatch mirrors the send milestone for every pair concurrently.
// Each write settles independently; one failure never cancels its siblings.
func (s *trackingService) ScreeningSentBatch(pairs []UserEvent, at time.Time) {
	var wg sync.WaitGroup
	for _, pair := range pairs {
		wg.Add(1)
		go func(p UserEvent) {
			defer wg.Done()
			if err := s.trackingRepo.TouchScreeningSent(p.UserID, p.EventID, at); err != nil {
				log.Warn().Err(err).Uint("userID", p.UserID).Uint("eventID", p.EventID).
					Msg("Workflow tracking write failed for screening sent")
			}
		}(pair)
	}
	wg.Wait()
}

func (s *trackingService) ScreeningSubmitted(userID, eventID uint, at time.Time) {
	if err := s.trackingRepo.TouchScreeningSubmitted(userID, eventID, at); err != nil {
		log.Warn().Err(err).Uint("userID", userID).Uint("eventID", eventID).
			Msg("Workflow tracking write failed for screening submitted")
	}
}

func (s *trackingService) PresentationSubmitted(userID, eventID uint, at time.Time) {
	if err := s.trackingRepo.TouchPresentationSubmitted(userID, eventID, at); err != nil {
		log.Warn().Err(err).Uint("userID", userID).Uint("eventID", eventID).
			Msg("Workflow tracking write failed for presentation submitted")
	}
}

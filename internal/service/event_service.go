package service

import (
	"github.com/hackdesk/hackdesk/internal/apperr"
	"github.com/hackdesk/hackdesk/internal/auth"
	"github.com/hackdesk/hackdesk/internal/dto"
	"github.com/hackdesk/hackdesk/internal/model"
	"github.com/hackdesk/hackdesk/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
)

type EventService interface {
	Create(ident auth.Identity, req dto.EventCreateDTO) (*dto.EventResponseDTO, error)
	Update(ident auth.Identity, eventID uint, req dto.EventUpdateDTO) (*dto.EventResponseDTO, error)
	Publish(ident auth.Identity, eventID uint) (*dto.EventResponseDTO, error)
	ListPublished() ([]dto.EventResponseDTO, error)
	Get(eventID uint) (*dto.EventResponseDTO, error)
}

type eventService struct {
	eventRepo repository.EventRepository
}

func NewEventService(eventRepo repository.EventRepository) EventService {
	return &eventService{eventRepo: eventRepo}
}

func (s *eventService) Create(ident auth.Identity, req dto.EventCreateDTO) (*dto.EventResponseDTO, error) {
	if !ident.Admin {
		return nil, apperr.Permission("Admin access required")
	}
	if !req.EndsAt.After(req.StartsAt) {
		return nil, apperr.Validation("Event must end after it starts")
	}

	var event model.Event
	if err := copier.Copy(&event, &req); err != nil {
		return nil, apperr.Dependency("preparing event", err)
	}
	if err := s.eventRepo.Create(&event); err != nil {
		return nil, apperr.Dependency("creating event", err)
	}

	log.Info().Uint("eventID", event.ID).Str("title", event.Title).Msg("Event created")
	return eventToDTO(&event)
}

func (s *eventService) Update(ident auth.Identity, eventID uint, req dto.EventUpdateDTO) (*dto.EventResponseDTO, error) {
	if !ident.Admin {
		return nil, apperr.Permission("Admin access required")
	}
	event, err := s.eventRepo.FindByID(eventID)
	if err != nil {
		return nil, mapFindErr(err, "Event not found", "looking up event")
	}

	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.Venue != nil {
		event.Venue = *req.Venue
	}
	if req.StartsAt != nil {
		event.StartsAt = *req.StartsAt
	}
	if req.EndsAt != nil {
		event.EndsAt = *req.EndsAt
	}
	if req.RegistrationFee != nil {
		event.RegistrationFee = *req.RegistrationFee
	}
	if req.MaxParticipants != nil {
		event.MaxParticipants = *req.MaxParticipants
	}
	if !event.EndsAt.After(event.StartsAt) {
		return nil, apperr.Validation("Event must end after it starts")
	}

	if err := s.eventRepo.Save(event); err != nil {
		return nil, apperr.Dependency("updating event", err)
	}
	return eventToDTO(event)
}

func (s *eventService) Publish(ident auth.Identity, eventID uint) (*dto.EventResponseDTO, error) {
	if !ident.Admin {
		return nil, apperr.Permission("Admin access required")
	}
	event, err := s.eventRepo.FindByID(eventID)
	if err != nil {
		return nil, mapFindErr(err, "Event not found", "looking up event")
	}
	event.IsPublished = true
	if err := s.eventRepo.Save(event); err != nil {
		return nil, apperr.Dependency("publishing event", err)
	}
	log.Info().Uint("eventID", eventID).Msg("Event published")
	return eventToDTO(event)
}

func (s *eventService) ListPublished() ([]dto.EventResponseDTO, error) {
	events, err := s.eventRepo.FindPublished()
	if err != nil {
		return nil, apperr.Dependency("listing events", err)
	}
	dtos := make([]dto.EventResponseDTO, 0, len(events))
	for i := range events {
		d, err := eventToDTO(&events[i])
		if err != nil {
			return nil, err
		}
		dtos = append(dtos, *d)
	}
	return dtos, nil
}

func (s *eventService) Get(eventID uint) (*dto.EventResponseDTO, error) {
	event, err := s.eventRepo.FindByID(eventID)
	if err != nil {
		return nil, mapFindErr(err, "Event not found", "looking up event")
	}
	if !event.IsPublished {
		return nil, apperr.NotFound("Event not found")
	}
	return eventToDTO(event)
}

func eventToDTO(event *model.Event) (*dto.EventResponseDTO, error) {
	var resp dto.EventResponseDTO
	if err := copier.Copy(&resp, event); err != nil {
		return nil, apperr.Dependency("preparing event response", err)
	}
	return &resp, nil
}

package service

import (
	"github.com/google/uuid"
	"github.com/hackdesk/hackdesk/internal/apperr"
	"github.com/hackdesk/hackdesk/internal/auth"
	"github.com/hackdesk/hackdesk/internal/dto"
	"github.com/hackdesk/hackdesk/internal/model"
	"github.com/hackdesk/hackdesk/internal/repository"
	"github.com/rs/zerolog/log"
)

// RegistrationService enrolls participants: directly for free events, through
// a gateway payment order for paid ones.
type RegistrationService interface {
	Register(ident auth.Identity, eventID uint) (*dto.RegistrationResponseDTO, error)
	InitiatePayment(ident auth.Identity, eventID uint, req dto.InitiatePaymentDTO) (*dto.PaymentOrderDTO, error)
	HandleNotification(req dto.PaymentNotificationDTO) error
}

type registrationService struct {
	eventRepo repository.EventRepository
	regRepo   repository.RegistrationRepository
	orderRepo repository.PaymentOrderRepository
	gateway   PaymentGateway
}

func NewRegistrationService(
	eventRepo repository.EventRepository,
	regRepo repository.RegistrationRepository,
	orderRepo repository.PaymentOrderRepository,
	gateway PaymentGateway,
) RegistrationService {
	return &registrationService{
		eventRepo: eventRepo,
		regRepo:   regRepo,
		orderRepo: orderRepo,
		gateway:   gateway,
	}
}

func (s *registrationService) Register(ident auth.Identity, eventID uint) (*dto.RegistrationResponseDTO, error) {
	event, err := s.eventRepo.FindByID(eventID)
	if err != nil {
		return nil, mapFindErr(err, "Event not found", "looking up event")
	}
	if !event.IsPublished {
		return nil, apperr.Conflict("Event is not open for registration")
	}
	if event.RegistrationFee > 0 {
		return nil, apperr.Validation("This event requires payment; initiate a payment order instead")
	}
	if err := s.ensureCapacity(event); err != nil {
		return nil, err
	}
	if _, err := s.regRepo.FindByUserAndEvent(ident.UserID, eventID); err == nil {
		return nil, apperr.Conflict("Already registered for this event")
	} else if !isNotFound(err) {
		return nil, apperr.Dependency("looking up registration", err)
	}

	reg := model.Registration{UserID: ident.UserID, EventID: eventID}
	if err := s.regRepo.Create(&reg); err != nil {
		return nil, apperr.Dependency("creating registration", err)
	}

	log.Info().Uint("userID", ident.UserID).Uint("eventID", eventID).Msg("Registration created")
	return registrationToDTO(&reg)
}

// InitiatePayment opens a gateway order for a paid event. While an order is
// pending, repeated initiations return the same order and checkout token
// rather than opening a second one.
func (s *registrationService) InitiatePayment(ident auth.Identity, eventID uint, req dto.InitiatePaymentDTO) (*dto.PaymentOrderDTO, error) {
	event, err := s.eventRepo.FindByID(eventID)
	if err != nil {
		return nil, mapFindErr(err, "Event not found", "looking up event")
	}
	if !event.IsPublished {
		return nil, apperr.Conflict("Event is not open for registration")
	}
	if event.RegistrationFee == 0 {
		return nil, apperr.Validation("This event is free; register directly")
	}
	if err := s.ensureCapacity(event); err != nil {
		return nil, err
	}
	if _, err := s.regRepo.FindByUserAndEvent(ident.UserID, eventID); err == nil {
		return nil, apperr.Conflict("Already registered for this event")
	} else if !isNotFound(err) {
		return nil, apperr.Dependency("looking up registration", err)
	}

	if pending, err := s.orderRepo.FindPendingByUserAndEvent(ident.UserID, eventID); err == nil {
		return orderToDTO(pending), nil
	} else if !isNotFound(err) {
		return nil, apperr.Dependency("looking up payment order", err)
	}

	orderID := uuid.NewString()
	token, redirectURL, err := s.gateway.CreateTransaction(orderID, event.RegistrationFee, CustomerDetails{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	})
	if err != nil {
		return nil, apperr.Dependency("creating gateway transaction", err)
	}

	order := model.PaymentOrder{
		OrderID:         orderID,
		UserID:          ident.UserID,
		EventID:         eventID,
		Amount:          event.RegistrationFee,
		Status:          model.PaymentPending,
		SnapToken:       token,
		SnapRedirectURL: redirectURL,
	}
	if err := s.orderRepo.Create(&order); err != nil {
		return nil, apperr.Dependency("storing payment order", err)
	}

	log.Info().Str("orderID", orderID).Uint("userID", ident.UserID).Uint("eventID", eventID).
		Int64("amount", event.RegistrationFee).Msg("Payment order created")
	return orderToDTO(&order), nil
}

// HandleNotification applies a gateway status callback. Settlement creates
// the registration if it does not exist yet; replayed notifications for an
// already-settled order are no-ops.
func (s *registrationService) HandleNotification(req dto.PaymentNotificationDTO) error {
	order, err := s.orderRepo.FindByOrderID(req.OrderID)
	if err != nil {
		return mapFindErr(err, "Payment order not found", "looking up payment order")
	}
	if order.Status == model.PaymentSettled {
		return nil
	}

	switch req.TransactionStatus {
	case "capture", "settlement":
		if req.FraudStatus == "deny" {
			order.Status = model.PaymentFailed
			break
		}
		order.Status = model.PaymentSettled
	case "deny", "cancel":
		order.Status = model.PaymentFailed
	case "expire":
		order.Status = model.PaymentExpired
	case "pending":
		return nil
	default:
		log.Warn().Str("orderID", req.OrderID).Str("status", req.TransactionStatus).
			Msg("Unrecognized gateway transaction status, ignoring")
		return nil
	}

	if err := s.orderRepo.Save(order); err != nil {
		return apperr.Dependency("updating payment order", err)
	}

	if order.Status == model.PaymentSettled {
		if _, err := s.regRepo.FindByUserAndEvent(order.UserID, order.EventID); isNotFound(err) {
			reg := model.Registration{UserID: order.UserID, EventID: order.EventID}
			if err := s.regRepo.Create(&reg); err != nil {
				return apperr.Dependency("creating registration after settlement", err)
			}
			log.Info().Str("orderID", order.OrderID).Uint("userID", order.UserID).Uint("eventID", order.EventID).
				Msg("Registration created from settled payment")
		} else if err != nil {
			return apperr.Dependency("looking up registration", err)
		}
	}
	return nil
}

func (s *registrationService) ensureCapacity(event *model.Event) error {
	if event.MaxParticipants <= 0 {
		return nil
	}
	count, err := s.eventRepo.CountRegistrations(event.ID)
	if err != nil {
		return apperr.Dependency("counting registrations", err)
	}
	if count >= int64(event.MaxParticipants) {
		return apperr.Conflict("Event has reached its participant limit")
	}
	return nil
}

func orderToDTO(order *model.PaymentOrder) *dto.PaymentOrderDTO {
	return &dto.PaymentOrderDTO{
		OrderID:     order.OrderID,
		Amount:      order.Amount,
		Status:      order.Status,
		SnapToken:   order.SnapToken,
		RedirectURL: order.SnapRedirectURL,
	}
}

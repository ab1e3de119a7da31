package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hackdesk/hackdesk/internal/auth"
	"github.com/hackdesk/hackdesk/internal/controller"
	"github.com/hackdesk/hackdesk/internal/dto"
	"github.com/hackdesk/hackdesk/internal/service"
	"github.com/rs/zerolog/log"
)

type RegistrationController struct {
	registrationService service.RegistrationService
	workflowService     service.WorkflowService
}

func NewRegistrationController(registrationService service.RegistrationService, workflowService service.WorkflowService) *RegistrationController {
	return &RegistrationController{
		registrationService: registrationService,
		workflowService:     workflowService,
	}
}

// Register godoc
// @Summary Register for a free event
// @Tags Registrations
// @Produce json
// @Param event_id path int true "Event ID"
// @Success 201 {object} dto.RegistrationResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Paid event or already registered"
// @Router /events/{event_id}/register [post]
func (c *RegistrationController) Register(ctx *gin.Context) {
	ident, _ := auth.FromContext(ctx)
	eventID, ok := controller.UintParam(ctx, "event_id")
	if !ok {
		return
	}
	resp, err := c.registrationService.Register(ident, eventID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// InitiatePayment godoc
// @Summary Open a payment order for a paid event
// @Description Idempotent while pending: repeat calls return the existing order and checkout token.
// @Tags Registrations
// @Accept json
// @Produce json
// @Param event_id path int true "Event ID"
// @Param customer body dto.InitiatePaymentDTO true "Customer details for the gateway"
// @Success 200 {object} dto.PaymentOrderDTO
// @Failure 400 {object} dto.ErrorResponse "Free event or already registered"
// @Router /events/{event_id}/payment [post]
func (c *RegistrationController) InitiatePayment(ctx *gin.Context) {
	ident, _ := auth.FromContext(ctx)
	eventID, ok := controller.UintParam(ctx, "event_id")
	if !ok {
		return
	}
	var req dto.InitiatePaymentDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BindError(ctx, err)
		return
	}
	resp, err := c.registrationService.InitiatePayment(ident, eventID, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// PaymentNotification godoc
// @Summary Gateway status callback
// @Description Called by the payment gateway, not by clients; mounted outside authentication.
// @Tags Registrations
// @Accept json
// @Produce json
// @Param notification body dto.PaymentNotificationDTO true "Gateway notification payload"
// @Success 200 {object} dto.MessageResponse
// @Router /payments/notification [post]
func (c *RegistrationController) PaymentNotification(ctx *gin.Context) {
	var req dto.PaymentNotificationDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("PaymentNotification: failed to bind JSON")
		controller.BindError(ctx, err)
		return
	}
	if err := c.registrationService.HandleNotification(req); err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "ok"})
}

// MyRegistrations godoc
// @Summary List the caller's registrations
// @Tags Registrations
// @Produce json
// @Success 200 {array} dto.RegistrationResponseDTO
// @Router /my/registrations [get]
func (c *RegistrationController) MyRegistrations(ctx *gin.Context) {
	ident, _ := auth.FromContext(ctx)
	resp, err := c.workflowService.MyRegistrations(ident)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// MyRegistration godoc
// @Summary Get the caller's registration for an event
// @Tags Registrations
// @Produce json
// @Param event_id path int true "Event ID"
// @Success 200 {object} dto.RegistrationResponseDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /events/{event_id}/my-registration [get]
func (c *RegistrationController) MyRegistration(ctx *gin.Context) {
	ident, _ := auth.FromContext(ctx)
	eventID, ok := controller.UintParam(ctx, "event_id")
	if !ok {
		return
	}
	resp, err := c.workflowService.MyRegistration(ident, eventID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

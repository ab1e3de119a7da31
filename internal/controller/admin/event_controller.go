package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hackdesk/hackdesk/internal/auth"
	"github.com/hackdesk/hackdesk/internal/controller"
	"github.com/hackdesk/hackdesk/internal/dto"
	"github.com/hackdesk/hackdesk/internal/service"
	"github.com/rs/zerolog/log"
)

type EventController struct {
	eventService    service.EventService
	workflowService service.WorkflowService
}

func NewEventController(eventService service.EventService, workflowService service.WorkflowService) *EventController {
	return &EventController{eventService: eventService, workflowService: workflowService}
}

// CreateEvent godoc
// @Summary (Admin) Create an event
// @Tags Admin - Events
// @Accept json
// @Produce json
// @Param event_data body dto.EventCreateDTO true "Event data"
// @Success 201 {object} dto.EventResponseDTO
// @Failure 400 {object} dto.ErrorResponse
// @Router /admin/events [post]
func (c *EventController) CreateEvent(ctx *gin.Context) {
	ident, _ := auth.FromContext(ctx)
	var req dto.EventCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Admin CreateEvent: failed to bind JSON")
		controller.BindError(ctx, err)
		return
	}
	resp, err := c.eventService.Create(ident, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// UpdateEvent godoc
// @Summary (Admin) Update an event
// @Tags Admin - Events
// @Accept json
// @Produce json
// @Param event_id path int true "Event ID"
// @Param event_data body dto.EventUpdateDTO true "Fields to update"
// @Success 200 {object} dto.EventResponseDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/events/{event_id} [put]
func (c *EventController) UpdateEvent(ctx *gin.Context) {
	ident, _ := auth.FromContext(ctx)
	eventID, ok := controller.UintParam(ctx, "event_id")
	if !ok {
		return
	}
	var req dto.EventUpdateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BindError(ctx, err)
		return
	}
	resp, err := c.eventService.Update(ident, eventID, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// PublishEvent godoc
// @Summary (Admin) Publish an event
// @Tags Admin - Events
// @Produce json
// @Param event_id path int true "Event ID"
// @Success 200 {object} dto.EventResponseDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/events/{event_id}/publish [post]
func (c *EventController) PublishEvent(ctx *gin.Context) {
	ident, _ := auth.FromContext(ctx)
	eventID, ok := controller.UintParam(ctx, "event_id")
	if !ok {
		return
	}
	resp, err := c.eventService.Publish(ident, eventID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// ListRegistrations godoc
// @Summary (Admin) List an event's registrations
// @Tags Admin - Events
// @Produce json
// @Param event_id path int true "Event ID"
// @Success 200 {array} dto.RegistrationResponseDTO
// @Router /admin/events/{event_id}/registrations [get]
func (c *EventController) ListRegistrations(ctx *gin.Context) {
	ident, _ := auth.FromContext(ctx)
	eventID, ok := controller.UintParam(ctx, "event_id")
	if !ok {
		return
	}
	resp, err := c.workflowService.EventRegistrations(ident, eventID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

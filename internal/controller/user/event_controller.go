package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hackdesk/hackdesk/internal/controller"
	"github.com/hackdesk/hackdesk/internal/service"
)

type EventController struct {
	eventService service.EventService
	awardService service.AwardService
}

func NewEventController(eventService service.EventService, awardService service.AwardService) *EventController {
	return &EventController{eventService: eventService, awardService: awardService}
}

// ListEvents godoc
// @Summary List published events
// @Tags Events
// @Produce json
// @Success 200 {array} dto.EventResponseDTO
// @Router /events [get]
func (c *EventController) ListEvents(ctx *gin.Context) {
	resp, err := c.eventService.ListPublished()
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetEvent godoc
// @Summary Get a published event
// @Tags Events
// @Produce json
// @Param event_id path int true "Event ID"
// @Success 200 {object} dto.EventResponseDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /events/{event_id} [get]
func (c *EventController) GetEvent(ctx *gin.Context) {
	eventID, ok := controller.UintParam(ctx, "event_id")
	if !ok {
		return
	}
	resp, err := c.eventService.Get(eventID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// ListWinners godoc
// @Summary List an event's winners and runners-up
// @Description Ordered by assignment time; photo_url is null when no profile photo exists.
// @Tags Events
// @Produce json
// @Param event_id path int true "Event ID"
// @Success 200 {object} dto.EventWinnersDTO
// @Router /events/{event_id}/winners [get]
func (c *EventController) ListWinners(ctx *gin.Context) {
	eventID, ok := controller.UintParam(ctx, "event_id")
	if !ok {
		return
	}
	resp, err := c.awardService.ListEventWinners(eventID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

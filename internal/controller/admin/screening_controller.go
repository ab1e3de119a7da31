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

type ScreeningController struct {
	screeningService service.ScreeningService
}

func NewScreeningController(screeningService service.ScreeningService) *ScreeningController {
	return &ScreeningController{screeningService: screeningService}
}

// DefineTest godoc
// @Summary (Admin) Create or overwrite the event's screening test
// @Description Upserts the active test for the event; an existing active test is overwritten in place.
// @Tags Admin - Screening
// @Accept json
// @Produce json
// @Param event_id path int true "Event ID"
// @Param test_data body dto.DefineTestDTO true "Test definition"
// @Success 200 {object} dto.TestResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Empty question list or invalid question"
// @Router /admin/events/{event_id}/screening-test [post]
func (c *ScreeningController) DefineTest(ctx *gin.Context) {
	ident, _ := auth.FromContext(ctx)
	eventID, ok := controller.UintParam(ctx, "event_id")
	if !ok {
		return
	}
	var req dto.DefineTestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Admin DefineTest: failed to bind JSON")
		controller.BindError(ctx, err)
		return
	}
	resp, err := c.screeningService.DefineTest(ident, eventID, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// SendTest godoc
// @Summary (Admin) Send the screening test to registrations
// @Tags Admin - Screening
// @Accept json
// @Produce json
// @Param event_id path int true "Event ID"
// @Param send_data body dto.SendTestDTO true "Test id and target registration ids"
// @Success 200 {object} dto.CountResponse
// @Failure 400 {object} dto.ErrorResponse "Test inactive, wrong event, or no questions"
// @Router /admin/events/{event_id}/screening-test/send [post]
func (c *ScreeningController) SendTest(ctx *gin.Context) {
	ident, _ := auth.FromContext(ctx)
	eventID, ok := controller.UintParam(ctx, "event_id")
	if !ok {
		return
	}
	var req dto.SendTestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BindError(ctx, err)
		return
	}
	count, err := c.screeningService.SendTest(ident, eventID, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.CountResponse{Count: count})
}

// SendExternalTest godoc
// @Summary (Admin) Send an externally hosted test
// @Description Points the test at an external MCQ link, clearing any embedded questions.
// @Tags Admin - Screening
// @Accept json
// @Produce json
// @Param event_id path int true "Event ID"
// @Param send_data body dto.SendExternalTestDTO true "Test id, link and target registration ids"
// @Success 200 {object} dto.CountResponse
// @Router /admin/events/{event_id}/screening-test/send-external [post]
func (c *ScreeningController) SendExternalTest(ctx *gin.Context) {
	ident, _ := auth.FromContext(ctx)
	eventID, ok := controller.UintParam(ctx, "event_id")
	if !ok {
		return
	}
	var req dto.SendExternalTestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BindError(ctx, err)
		return
	}
	count, err := c.screeningService.SendExternalTest(ident, eventID, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.CountResponse{Count: count})
}

// SkipScreening godoc
// @Summary (Admin) Skip the screening stage for registrations
// @Tags Admin - Screening
// @Accept json
// @Produce json
// @Param skip_data body dto.SkipScreeningDTO true "Target registration ids"
// @Success 200 {object} dto.CountResponse
// @Router /admin/registrations/skip-screening [post]
func (c *ScreeningController) SkipScreening(ctx *gin.Context) {
	ident, _ := auth.FromContext(ctx)
	var req dto.SkipScreeningDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BindError(ctx, err)
		return
	}
	count, err := c.screeningService.SkipScreening(ident, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.CountResponse{Count: count})
}

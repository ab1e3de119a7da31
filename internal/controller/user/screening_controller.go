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

type ScreeningController struct {
	attemptService  service.AttemptService
	workflowService service.WorkflowService
}

func NewScreeningController(attemptService service.AttemptService, workflowService service.WorkflowService) *ScreeningController {
	return &ScreeningController{attemptService: attemptService, workflowService: workflowService}
}

// GetAssignedTest godoc
// @Summary Fetch the caller's assigned screening test
// @Description Correct answers are stripped. Each unavailable state has its own reason: not attended, no test assigned, already completed, not sent, inactive, deadline passed.
// @Tags Screening
// @Produce json
// @Param event_id path int true "Event ID"
// @Success 200 {object} dto.TestForTakingDTO
// @Failure 400 {object} dto.ErrorResponse "Test unavailable, with the specific reason"
// @Failure 404 {object} dto.ErrorResponse
// @Router /events/{event_id}/screening-test [get]
func (c *ScreeningController) GetAssignedTest(ctx *gin.Context) {
	ident, _ := auth.FromContext(ctx)
	eventID, ok := controller.UintParam(ctx, "event_id")
	if !ok {
		return
	}
	resp, err := c.attemptService.FetchTestForTaking(ident, eventID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// StartAttempt godoc
// @Summary Start or resume a screening attempt
// @Description Returns the existing attempt id if one is still in progress; a finished attempt is a conflict.
// @Tags Screening
// @Accept json
// @Produce json
// @Param test_id path int true "Test ID"
// @Param start_data body dto.StartAttemptDTO true "Event id"
// @Success 200 {object} dto.AttemptStartResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Not sent or already completed"
// @Router /tests/{test_id}/attempts/start [post]
func (c *ScreeningController) StartAttempt(ctx *gin.Context) {
	ident, _ := auth.FromContext(ctx)
	testID, ok := controller.UintParam(ctx, "test_id")
	if !ok {
		return
	}
	var req dto.StartAttemptDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BindError(ctx, err)
		return
	}
	resp, err := c.attemptService.StartAttempt(ident, testID, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// SubmitAttempt godoc
// @Summary Submit screening answers
// @Description Scores deterministically against the stored question list and completes the screening stage regardless of pass or fail.
// @Tags Screening
// @Accept json
// @Produce json
// @Param test_id path int true "Test ID"
// @Param submission body dto.SubmitAttemptDTO true "Answer map, elapsed time and tab switches"
// @Success 200 {object} dto.AttemptResultDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid payload"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /tests/{test_id}/attempts/submit [post]
func (c *ScreeningController) SubmitAttempt(ctx *gin.Context) {
	ident, _ := auth.FromContext(ctx)
	testID, ok := controller.UintParam(ctx, "test_id")
	if !ok {
		return
	}
	var req dto.SubmitAttemptDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("SubmitAttempt: failed to bind JSON")
		controller.BindError(ctx, err)
		return
	}
	resp, err := c.attemptService.SubmitAttempt(ident, testID, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// SubmitPresentation godoc
// @Summary Submit the project presentation
// @Description The repository link is required; deployment and demo links are optional.
// @Tags Screening
// @Accept json
// @Produce json
// @Param event_id path int true "Event ID"
// @Param presentation body dto.SubmitPresentationDTO true "Project links and notes"
// @Success 200 {object} dto.RegistrationResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Missing repository link"
// @Router /events/{event_id}/presentation [post]
func (c *ScreeningController) SubmitPresentation(ctx *gin.Context) {
	ident, _ := auth.FromContext(ctx)
	eventID, ok := controller.UintParam(ctx, "event_id")
	if !ok {
		return
	}
	var req dto.SubmitPresentationDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BindError(ctx, err)
		return
	}
	resp, err := c.workflowService.SubmitPresentation(ident, eventID, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

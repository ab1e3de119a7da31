package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hackdesk/hackdesk/internal/auth"
	"github.com/hackdesk/hackdesk/internal/controller"
	"github.com/hackdesk/hackdesk/internal/dto"
	"github.com/hackdesk/hackdesk/internal/service"
)

type WorkflowController struct {
	workflowService service.WorkflowService
}

func NewWorkflowController(workflowService service.WorkflowService) *WorkflowController {
	return &WorkflowController{workflowService: workflowService}
}

// MarkAttendance godoc
// @Summary (Admin) Set attendance on registrations
// @Tags Admin - Workflow
// @Accept json
// @Produce json
// @Param attendance_data body dto.AttendanceDTO true "Registration ids and attended flag"
// @Success 200 {object} dto.CountResponse
// @Router /admin/registrations/attendance [post]
func (c *WorkflowController) MarkAttendance(ctx *gin.Context) {
	ident, _ := auth.FromContext(ctx)
	var req dto.AttendanceDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BindError(ctx, err)
		return
	}
	count, err := c.workflowService.MarkAttendance(ident, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.CountResponse{Count: count})
}

// ReviewPresentation godoc
// @Summary (Admin) Mark a submitted presentation as reviewed
// @Tags Admin - Workflow
// @Produce json
// @Param registration_id path int true "Registration ID"
// @Success 200 {object} dto.RegistrationResponseDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/registrations/{registration_id}/review [post]
func (c *WorkflowController) ReviewPresentation(ctx *gin.Context) {
	ident, _ := auth.FromContext(ctx)
	regID, ok := controller.UintParam(ctx, "registration_id")
	if !ok {
		return
	}
	resp, err := c.workflowService.ReviewPresentation(ident, regID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// DecideQualification godoc
// @Summary (Admin) Record the qualification decision
// @Description Accepts exactly "qualified" or "rejected"; the decision is independent of the screening score.
// @Tags Admin - Workflow
// @Accept json
// @Produce json
// @Param registration_id path int true "Registration ID"
// @Param decision body dto.QualificationDTO true "Decision and optional remarks"
// @Success 200 {object} dto.RegistrationResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid status value"
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/registrations/{registration_id}/qualification [post]
func (c *WorkflowController) DecideQualification(ctx *gin.Context) {
	ident, _ := auth.FromContext(ctx)
	regID, ok := controller.UintParam(ctx, "registration_id")
	if !ok {
		return
	}
	var req dto.QualificationDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BindError(ctx, err)
		return
	}
	resp, err := c.workflowService.DecideQualification(ident, regID, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// UpdateNotes godoc
// @Summary (Admin) Update admin notes and score
// @Tags Admin - Workflow
// @Accept json
// @Produce json
// @Param registration_id path int true "Registration ID"
// @Param notes body dto.AdminNotesDTO true "Notes and optional score (0-100)"
// @Success 200 {object} dto.RegistrationResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Score out of range"
// @Router /admin/registrations/{registration_id}/notes [put]
func (c *WorkflowController) UpdateNotes(ctx *gin.Context) {
	ident, _ := auth.FromContext(ctx)
	regID, ok := controller.UintParam(ctx, "registration_id")
	if !ok {
		return
	}
	var req dto.AdminNotesDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BindError(ctx, err)
		return
	}
	resp, err := c.workflowService.UpdateAdminNotes(ident, regID, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

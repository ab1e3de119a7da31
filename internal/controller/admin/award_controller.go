package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hackdesk/hackdesk/internal/auth"
	"github.com/hackdesk/hackdesk/internal/controller"
	"github.com/hackdesk/hackdesk/internal/dto"
	"github.com/hackdesk/hackdesk/internal/service"
)

type AwardController struct {
	awardService service.AwardService
}

func NewAwardController(awardService service.AwardService) *AwardController {
	return &AwardController{awardService: awardService}
}

// AssignAward godoc
// @Summary (Admin) Assign winner or runner_up to a registration
// @Description Requires attendance, a submitted presentation and a qualified decision, in that order. At most one winner per event.
// @Tags Admin - Awards
// @Accept json
// @Produce json
// @Param registration_id path int true "Registration ID"
// @Param award body dto.AssignAwardDTO true "Award type"
// @Success 200 {object} dto.RegistrationResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Ineligible or duplicate winner"
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/registrations/{registration_id}/award [post]
func (c *AwardController) AssignAward(ctx *gin.Context) {
	ident, _ := auth.FromContext(ctx)
	regID, ok := controller.UintParam(ctx, "registration_id")
	if !ok {
		return
	}
	var req dto.AssignAwardDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BindError(ctx, err)
		return
	}
	resp, err := c.awardService.Assign(ident, regID, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// RemoveAward godoc
// @Summary (Admin) Clear a registration's award
// @Description Always safe; clearing an unset award is a no-op success.
// @Tags Admin - Awards
// @Produce json
// @Param registration_id path int true "Registration ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/registrations/{registration_id}/award [delete]
func (c *AwardController) RemoveAward(ctx *gin.Context) {
	ident, _ := auth.FromContext(ctx)
	regID, ok := controller.UintParam(ctx, "registration_id")
	if !ok {
		return
	}
	if err := c.awardService.Remove(ident, regID); err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Award removed"})
}

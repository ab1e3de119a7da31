// Package controller holds helpers shared by the admin and user handler
// packages.
package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hackdesk/hackdesk/internal/apperr"
	"github.com/hackdesk/hackdesk/internal/dto"
	"github.com/rs/zerolog/log"
)

// RespondError maps a service error onto its HTTP status. Dependency failures
// are logged with their cause; the response only ever carries the safe
// message.
func RespondError(ctx *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", ctx.FullPath()).Msg("Request failed")
	}
	ctx.JSON(status, dto.ErrorResponse{Message: apperr.MessageOf(err)})
}

// BindError reports a failed ShouldBindJSON as a validation response.
func BindError(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
}

// UintParam parses a numeric path parameter, answering 400 itself on failure.
func UintParam(ctx *gin.Context, name string) (uint, bool) {
	val, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(val), true
}

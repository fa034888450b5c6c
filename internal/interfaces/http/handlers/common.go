// Package handlers implements the HTTP API endpoints.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sakhi-health/toxiscan/pkg/errors"
)

// ErrorResponse is the standard error response body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// respondError writes a structured error response.  AppError codes map to
// their HTTP status; anything else is masked as an internal error so
// infrastructure detail never leaks to clients.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)

	if appErr, ok := errors.AsAppError(err); ok {
		c.JSON(errors.HTTPStatusForCode(appErr.Code), ErrorResponse{
			Code:    string(appErr.Code),
			Message: appErr.Message,
			Detail:  appErr.Detail,
		})
		return
	}

	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Code:    string(errors.ErrCodeInternal),
		Message: "internal server error",
	})
}

// respondBadRequest reports a malformed request body or parameter.
func respondBadRequest(c *gin.Context, err error) {
	respondError(c, errors.Wrap(err, errors.ErrCodeBadRequest, "invalid request"))
}

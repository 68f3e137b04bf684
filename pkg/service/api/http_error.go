package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sierrasoftworks/humane-errors-go"

	"github.com/spechtlabs/ecsview/pkg/credentials"
	"github.com/spechtlabs/ecsview/pkg/ecs/client"
	"github.com/spechtlabs/ecsview/pkg/ecs/provider"
	"github.com/spechtlabs/ecsview/pkg/models"
)

// statusFor maps the cause of err to an HTTP status code.
func statusFor(err humane.Error) int {
	cause := err.Cause()
	switch {
	case cause == nil:
		return http.StatusInternalServerError
	case errors.Is(cause, credentials.ErrAccountNotFound):
		return http.StatusNotFound
	case errors.Is(cause, credentials.ErrInvalidCredentials),
		errors.Is(cause, client.ErrRegionNotEnabled),
		errors.Is(cause, provider.ErrInvalidInclude):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeHumaneError writes err as a JSON models.ErrorResponse and returns the status used.
func writeHumaneError(c *gin.Context, err humane.Error) int {
	if err == nil {
		c.Status(http.StatusNoContent)
		return http.StatusNoContent
	}

	status := statusFor(err)
	c.JSON(status, models.FromHumaneError(err).WithStatus(status))
	return status
}

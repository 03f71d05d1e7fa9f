package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskboard/backend/internal/model"
	"github.com/taskboard/backend/internal/service"
)

const msgInternal = "Internal server error"

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError aborts the request with the status matching err's kind.
// Unexpected errors are attached to the context for the request logger and
// answered with a generic message.
func writeError(c *gin.Context, err error) {
	status := statusFor(err)
	message := service.Message(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		message = msgInternal
	}
	abortWithError(c, status, message)
}

func abortWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, model.ErrorResponse{
		StatusCode: status,
		Error:      http.StatusText(status),
		Message:    message,
	})
}

func writeBindError(c *gin.Context, err error) {
	abortWithError(c, http.StatusBadRequest, err.Error())
}

// pathID returns the named path parameter when it is a UUID.
func pathID(c *gin.Context, name string) (string, bool) {
	id := c.Param(name)
	if !model.IsUUID(id) {
		abortWithError(c, http.StatusBadRequest, "Validation failed (uuid is expected)")
		return "", false
	}
	return id, true
}

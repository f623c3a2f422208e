package handler

import (
	"strconv"

	"social-system/pkg/apperr"
	"social-system/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// writeError translates a service error into the matching envelope. Internal
// details stay server-side.
func writeError(c *gin.Context, err error) {
	msg := apperr.Message(err)
	switch apperr.KindOf(err) {
	case apperr.KindInvalidArgument:
		response.BadRequest(c, msg)
	case apperr.KindNotFound:
		response.NotFound(c, msg)
	case apperr.KindForbidden:
		response.Forbidden(c, msg)
	case apperr.KindConflict:
		response.Conflict(c, msg)
	case apperr.KindUnauthorized:
		response.Unauthorized(c, msg)
	default:
		zap.L().Error("request failed",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		response.InternalError(c, "internal server error")
	}
}

// pathID parses a uint path parameter, 0 when absent or malformed.
func pathID(c *gin.Context, name string) uint {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0
	}
	return uint(id)
}

// queryInt parses an int query parameter with a fallback.
func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

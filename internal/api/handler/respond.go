package handler

import (
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"recruit-go/internal/logger"
	"recruit-go/internal/service"
)

// writeError maps service errors onto HTTP responses. Validation becomes
// 400, missing records 404, stale optimistic versions 409, everything else
// a generic 500 so store internals never leak to the caller.
func writeError(c *app.RequestContext, err error) {
	switch {
	case service.IsValidation(err):
		c.JSON(consts.StatusBadRequest, utils.H{"error": err.Error()})
	case service.IsNotFound(err):
		c.JSON(consts.StatusNotFound, utils.H{"error": err.Error()})
	case service.IsConflict(err):
		c.JSON(consts.StatusConflict, utils.H{"error": err.Error()})
	default:
		logger.Error().Err(err).Str("path", string(c.Path())).Msg("request failed")
		c.JSON(consts.StatusInternalServerError, utils.H{"error": "internal server error"})
	}
}

func writeBadRequest(c *app.RequestContext, msg string) {
	c.JSON(consts.StatusBadRequest, utils.H{"error": msg})
}

package server

import (
	"github.com/gin-gonic/gin"

	svcErr "cupid-backend/internal/errors"
	"cupid-backend/internal/logger"
)

// Fail writes the structured error body for any service error. Store
// detail is logged, never echoed to the client.
func Fail(c *gin.Context, err error) {
	appErr := svcErr.Map(err)

	if appErr.Kind == svcErr.KindPersistence {
		logger.Error("request failed", "path", c.Request.URL.Path, "err", err)
	}

	c.AbortWithStatusJSON(appErr.Status(), gin.H{
		"code":    string(appErr.Kind),
		"message": appErr.Message,
	})
}

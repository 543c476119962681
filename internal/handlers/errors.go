package handlers

import (
	"github.com/alimgiray/coursetrack/internal/services"
	"github.com/alimgiray/coursetrack/pkg/logger"
	"github.com/gin-gonic/gin"
)

// respondError writes the JSON error envelope for err
func respondError(c *gin.Context, err error) {
	appErr := services.AsAppError(err)
	if appErr.Status >= 500 {
		_ = c.Error(err)
		logger.WithError(err).WithField("path", c.Request.URL.Path).Error("Request failed")
	}
	c.AbortWithStatusJSON(appErr.Status, gin.H{
		"error": gin.H{
			"code":    appErr.Code,
			"message": appErr.Message,
		},
	})
}

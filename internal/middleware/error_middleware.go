package middleware

import (
	"courseshare/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorLogger drains errors attached by handlers. Handlers write their own
// response for every path, so this middleware only logs.
func ErrorLogger(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if l == nil || len(c.Errors) == 0 {
			return
		}

		log := l.WithContext(c.Request.Context())
		for _, ginErr := range c.Errors {
			log.Error("request error",
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.Error(ginErr.Err),
			)
		}
	}
}

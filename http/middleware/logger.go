package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tnqbao/gau-vm-service/infra"
)

func LoggerMiddleware(logger *infra.LoggerClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		ctx := c.Request.Context()
		status := c.Writer.Status()
		latency := time.Since(start)

		if ginErr := c.Errors.Last(); ginErr != nil {
			logger.ErrorWithContextf(ctx, ginErr.Err, "[HTTP] %s %s -> %d (%s)", c.Request.Method, c.Request.URL.Path, status, latency)
			return
		}

		if status >= 500 {
			logger.WarningWithContextf(ctx, "[HTTP] %s %s -> %d (%s)", c.Request.Method, c.Request.URL.Path, status, latency)
			return
		}
		logger.InfoWithContextf(ctx, "[HTTP] %s %s -> %d (%s)", c.Request.Method, c.Request.URL.Path, status, latency)
	}
}

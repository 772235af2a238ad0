package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/service-booking/utils"
)

func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		if raw != "" {
			path = path + "?" + raw
		}

		entry := utils.InfoLogger.WithFields(logrus.Fields{
			"status":  status,
			"latency": latency,
			"ip":      c.ClientIP(),
		})
		if cacheState := c.Writer.Header().Get("X-Cache"); cacheState != "" {
			entry = entry.WithField("cache", cacheState)
		}
		entry.Infof("%s %s", c.Request.Method, path)
	}
}

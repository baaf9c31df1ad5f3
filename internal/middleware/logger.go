package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/pawcare-api/pkg/logger"
)

// Logger returns a middleware that logs HTTP requests
func Logger(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		statusCode := c.Writer.Status()
		event := l.ZL.Info()
		msg := "Request processed"
		switch {
		case statusCode >= 500:
			event = l.ZL.Error()
			msg = "Server error"
		case statusCode >= 400:
			event = l.ZL.Warn()
			msg = "Client error"
		}

		event.
			Str("request_id", c.GetString(ContextRequestID)).
			Str("method", c.Request.Method).
			Str("path", path).
			Str("ip", c.ClientIP()).
			Int("status", statusCode).
			Dur("duration", time.Since(start)).
			Str("user_agent", c.Request.UserAgent()).
			Msg(msg)
	}
}

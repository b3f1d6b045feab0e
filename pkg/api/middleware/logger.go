package middleware

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs one line per request. The query string is dropped so
// API keys passed as ?key= never reach the log.
func RequestLogger() gin.HandlerFunc {
	return gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		path := param.Path
		if i := strings.IndexByte(path, '?'); i >= 0 {
			path = path[:i]
		}

		line := fmt.Sprintf("[api] %s | %3d | %13v | %15s | %-7s %s",
			param.TimeStamp.Format(time.RFC3339),
			param.StatusCode,
			param.Latency,
			param.ClientIP,
			param.Method,
			path,
		)
		if param.ErrorMessage != "" {
			line += " | " + strings.TrimSpace(param.ErrorMessage)
		}
		return line + "\n"
	})
}

package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader carries the per-request identifier in both directions
	RequestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// RequestID tags each request with an ID, reusing one supplied by the client
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// Logging returns an access log middleware for HTTP requests
func Logging() gin.HandlerFunc {
	return gin.LoggerWithFormatter(func(params gin.LogFormatterParams) string {
		id, _ := params.Keys[requestIDKey].(string)
		line := fmt.Sprintf("%s [%s] %s %s %d %s",
			params.TimeStamp.Format(time.RFC3339),
			id,
			params.Method,
			params.Path,
			params.StatusCode,
			params.Latency,
		)
		if params.ErrorMessage != "" {
			line += " " + params.ErrorMessage
		}
		return line + "\n"
	})
}

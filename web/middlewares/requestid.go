package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/segmentio/ksuid"
)

const RequestIDHeader = "X-Request-Id"

// RequestID tags every request with a ksuid, reusing the caller's id
// when one is forwarded.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = ksuid.New().String()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set(RequestIDHeader, id)
		c.Next()
	}
}

package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TraceHeader carries the per-request trace id in both directions.
const TraceHeader = "X-Request-ID"

const traceKey = "trace_id"

const maxTraceLen = 64

// Trace tags every request with a trace id. A caller-supplied id is kept when
// it is short and made of URL-safe characters; anything else is replaced by a
// fresh UUID.
func Trace() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(TraceHeader)
		if !validTraceID(id) {
			id = uuid.NewString()
		}
		c.Set(traceKey, id)
		c.Header(TraceHeader, id)
		c.Next()
	}
}

// TraceID returns the id Trace assigned to the request, or "".
func TraceID(c *gin.Context) string {
	return c.GetString(traceKey)
}

func validTraceID(id string) bool {
	if id == "" || len(id) > maxTraceLen {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-' || r == '_' || r == '.':
		default:
			return false
		}
	}
	return true
}

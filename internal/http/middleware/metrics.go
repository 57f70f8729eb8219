package middleware

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/forcebook-backend/internal/observability"
)

// Metrics records request counts and latency. The live event routes stay
// open for as long as a client listens, so they are counted as streams and
// kept out of the latency histogram and the inflight gauge.
func Metrics(m *observability.Metrics) gin.HandlerFunc {
	if m == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		if isStream(c) {
			m.IncAPIStream(route)
			c.Next()
			return
		}

		start := time.Now()
		m.ApiInflightInc()
		defer m.ApiInflightDec()

		c.Next()

		m.ObserveAPI(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}

func isStream(c *gin.Context) bool {
	return c.IsWebsocket() || strings.Contains(c.GetHeader("Accept"), "text/event-stream")
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/forcebook-backend/internal/platform/ctxutil"
)

func TestAttachTraceContext(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name      string
		requestID string
		traceID   string
		keepReq   bool
		keepTrace bool
	}{
		{"inbound ids kept", "req-42", "trace.7", true, true},
		{"missing ids generated", "", "", false, false},
		{"oversized id replaced", strings.Repeat("a", maxInboundIDLen+1), "", false, false},
		{"odd characters replaced", "req\n<script>", "trace id", false, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var seen *ctxutil.TraceData
			r := gin.New()
			r.Use(AttachTraceContext())
			r.GET("/api/rebels", func(c *gin.Context) {
				seen = ctxutil.GetTraceData(c.Request.Context())
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/rebels", nil)
			if tc.requestID != "" {
				req.Header.Set(headerRequestID, tc.requestID)
			}
			if tc.traceID != "" {
				req.Header.Set(headerTraceID, tc.traceID)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if seen == nil || seen.RequestID == "" || seen.TraceID == "" {
				t.Fatalf("trace data not attached: %+v", seen)
			}
			if got := rec.Header().Get(headerRequestID); got != seen.RequestID {
				t.Fatalf("request id header %q != context %q", got, seen.RequestID)
			}
			if (seen.RequestID == tc.requestID) != tc.keepReq {
				t.Fatalf("request id: inbound=%q got=%q", tc.requestID, seen.RequestID)
			}
			if (seen.TraceID == tc.traceID) != tc.keepTrace {
				t.Fatalf("trace id: inbound=%q got=%q", tc.traceID, seen.TraceID)
			}
		})
	}
}

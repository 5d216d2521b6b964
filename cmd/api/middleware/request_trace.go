package middleware

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"ai-blog-generator/logger"
	"ai-blog-generator/trace"
)

const (
	headerRequestID = "X-Request-Id"
	headerSpanID    = "X-Span-Id"
)

// RequestTrace는 모든 inbound HTTP 요청에 대해 Request ID와 Span ID를 보장하고,
// 이를 컨텍스트/헤더에 저장한 뒤 완료 로그에 포함시킨다.
func RequestTrace() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		req := c.Request

		requestID := req.Header.Get(headerRequestID)
		if requestID == "" {
			requestID = trace.GenerateID()
		}

		// inbound 로그는 span_id=0, 외부 호출(자막, Gemini)은 1,2,3,... 로 증가한다.
		ctxWithTrace := trace.WithRequestAndSpan(req.Context(), requestID, 0)
		c.Request = req.WithContext(ctxWithTrace)
		req = c.Request

		currentSpan := trace.CurrentSpanID(ctxWithTrace)
		c.Request.Header.Set(headerRequestID, requestID)
		c.Request.Header.Set(headerSpanID, currentSpan)
		c.Writer.Header().Set(headerRequestID, requestID)
		c.Writer.Header().Set(headerSpanID, currentSpan)

		// 로그인/가입 폼에는 비밀번호가 있으므로 JSON 본문만 기록한다.
		var bodySnippet string
		if req.Body != nil && req.ContentLength != 0 && req.Method == http.MethodPost &&
			strings.HasPrefix(req.Header.Get("Content-Type"), "application/json") {
			if bodyBytes, err := io.ReadAll(req.Body); err == nil {
				const maxBodyLog = 1024
				if len(bodyBytes) > maxBodyLog {
					bodySnippet = string(bodyBytes[:maxBodyLog])
				} else {
					bodySnippet = string(bodyBytes)
				}
				// gin 핸들러에서 다시 읽을 수 있도록 Body 를 복원한다.
				c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
			}
		}

		c.Next()

		fields := logger.Fields{
			"method":     req.Method,
			"path":       req.URL.Path,
			"status":     c.Writer.Status(),
			"duration":   time.Since(start).String(),
			"request_id": requestID,
			"span_id":    trace.CurrentSpanID(c.Request.Context()),
		}
		if user, ok := CurrentUser(c); ok {
			fields["user_id"] = user.ID
		}
		if bodySnippet != "" {
			fields["body"] = bodySnippet
		}
		logger.InfoWithFields("completed request", fields)
	}
}

package handlers

import (
	"github.com/gin-gonic/gin"

	"ai-blog-generator/cmd/api/auth"
	"ai-blog-generator/cmd/api/middleware"
	"ai-blog-generator/cmd/api/services"
	"ai-blog-generator/logger"
	"ai-blog-generator/models"
)

// requireUserJSON 은 JSON 엔드포인트에서 로그인 사용자를 요구한다.
// 세션이 없으면 401 을 내려주고 false 를 반환한다.
func requireUserJSON(c *gin.Context) (*models.User, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		auth.AbortWithUnauthorized(c, services.ErrUnauthenticated)
		return nil, false
	}
	return user, true
}

func logFields(c *gin.Context) logger.Fields {
	return logger.Fields{
		"request_id": c.Request.Header.Get("X-Request-Id"),
		"span_id":    c.Request.Header.Get("X-Span-Id"),
		"path":       c.Request.URL.Path,
	}
}

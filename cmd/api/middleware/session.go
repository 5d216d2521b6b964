package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ai-blog-generator/cmd/api/auth"
	"ai-blog-generator/cmd/api/services"
	"ai-blog-generator/logger"
	"ai-blog-generator/models"
)

const (
	contextUserKey  = "user"
	contextTokenKey = "session_token"
)

// Authenticator 는 *services.AuthService 가 구현한다.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// LoadSession 은 세션 쿠키가 유효하면 사용자를 gin 컨텍스트에 넣는다.
// 세션이 없거나 무효여도 요청은 계속 진행되며, 접근 제어는 RequireLogin 과 각 핸들러가 맡는다.
func LoadSession(authn Authenticator, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ExtractSessionToken(c, cookieName)
		if err != nil {
			c.Next()
			return
		}
		c.Set(contextTokenKey, token)

		user, err := authn.Authenticate(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, services.ErrUnauthenticated) {
				logger.WarnWithFields("session lookup failed", logger.Fields{"error": err.Error()})
			}
			c.Next()
			return
		}

		c.Set(contextUserKey, user)
		c.Next()
	}
}

// RequireLogin 은 로그인하지 않은 요청을 /login 으로 보낸다.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(contextUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok && user != nil
}

// SessionToken 은 LoadSession 이 찾은 원본 토큰을 돌려준다. 로그아웃에서 사용한다.
func SessionToken(c *gin.Context) string {
	return c.GetString(contextTokenKey)
}

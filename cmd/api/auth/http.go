package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

var (
	ErrMissingToken  = errors.New("missing_session_token")
	ErrInvalidFormat = errors.New("invalid_authorization_header")
	ErrEmptyToken    = errors.New("empty_token")
)

// ExtractSessionToken 은 세션 쿠키에서 토큰을 꺼낸다.
// 쿠키가 없으면 Authorization: Bearer 헤더를 확인한다(JSON API 클라이언트용).
func ExtractSessionToken(c *gin.Context, cookieName string) (string, error) {
	if v, err := c.Cookie(cookieName); err == nil {
		v = strings.TrimSpace(v)
		if v == "" {
			return "", ErrEmptyToken
		}
		return v, nil
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", ErrMissingToken
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", ErrInvalidFormat
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", ErrEmptyToken
	}

	return token, nil
}

// SetSessionCookie 는 HttpOnly, SameSite=Lax 세션 쿠키를 설정한다.
func SetSessionCookie(c *gin.Context, name, token string, ttl time.Duration, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, token, int(ttl.Seconds()), "/", "", secure, true)
}

// ClearSessionCookie 는 MaxAge -1 로 쿠키를 즉시 만료시킨다.
func ClearSessionCookie(c *gin.Context, name string, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, "", -1, "/", "", secure, true)
}

// AbortWithUnauthorized aborts the request with 401 status and error JSON.
func AbortWithUnauthorized(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ai-blog-generator/cmd/api/auth"
	"ai-blog-generator/cmd/api/middleware"
	"ai-blog-generator/cmd/api/services"
	"ai-blog-generator/cmd/api/views"
	"ai-blog-generator/config"
	"ai-blog-generator/logger"
)

const (
	msgInvalidCredentials = "Invalid username or password"
	msgPasswordMismatch   = "Passwords do not match"
	msgAccountExists      = "Username or email already exists"
	msgMissingFields      = "All fields are required"
	msgCreateFailed       = "Error creating account: "
)

// AccountHandlers 는 로그인/가입/로그아웃 페이지를 처리한다.
type AccountHandlers struct {
	authSvc *services.AuthService
	cookie  config.AuthConfig
}

func NewAccountHandlers(authSvc *services.AuthService, cookie config.AuthConfig) *AccountHandlers {
	return &AccountHandlers{authSvc: authSvc, cookie: cookie}
}

// IndexPage 는 RequireLogin 뒤에 둔다.
func (h *AccountHandlers) IndexPage(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	c.HTML(http.StatusOK, views.Index, gin.H{"User": user})
}

func (h *AccountHandlers) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, views.Login, gin.H{"ErrorMessage": "", "Username": ""})
}

func (h *AccountHandlers) Login(c *gin.Context) {
	username := c.PostForm("username")
	token, user, err := h.authSvc.Login(c.Request.Context(), username, c.PostForm("password"))
	if err != nil {
		if !errors.Is(err, services.ErrInvalidCredentials) {
			fields := logFields(c)
			fields["error"] = err.Error()
			logger.ErrorWithFields("login failed", fields)
		}
		c.HTML(http.StatusOK, views.Login, gin.H{"ErrorMessage": msgInvalidCredentials, "Username": username})
		return
	}

	auth.SetSessionCookie(c, h.cookie.CookieName, token, h.authSvc.SessionTTL(), h.cookie.CookieSecure)
	fields := logFields(c)
	fields["user_id"] = user.ID
	logger.InfoWithFields("user logged in", fields)
	c.Redirect(http.StatusFound, "/")
}

func (h *AccountHandlers) SignupPage(c *gin.Context) {
	c.HTML(http.StatusOK, views.Signup, gin.H{"ErrorMessage": "", "Username": "", "Email": ""})
}

func (h *AccountHandlers) Signup(c *gin.Context) {
	in := services.SignupInput{
		Username:       c.PostForm("username"),
		Email:          c.PostForm("email"),
		Password:       c.PostForm("password"),
		RepeatPassword: c.PostForm("repeat_password"),
	}

	token, _, err := h.authSvc.Signup(c.Request.Context(), in)
	if err != nil {
		c.HTML(http.StatusOK, views.Signup, gin.H{
			"ErrorMessage": signupErrorMessage(err),
			"Username":     in.Username,
			"Email":        in.Email,
		})
		return
	}

	auth.SetSessionCookie(c, h.cookie.CookieName, token, h.authSvc.SessionTTL(), h.cookie.CookieSecure)
	c.Redirect(http.StatusFound, "/")
}

func signupErrorMessage(err error) string {
	switch {
	case errors.Is(err, services.ErrPasswordMismatch):
		return msgPasswordMismatch
	case errors.Is(err, services.ErrMissingFields):
		return msgMissingFields
	case errors.Is(err, services.ErrAccountExists):
		return msgAccountExists
	default:
		return msgCreateFailed + err.Error()
	}
}

// Logout 은 서버 세션 삭제에 실패해도 쿠키를 지우고 홈으로 보낸다.
func (h *AccountHandlers) Logout(c *gin.Context) {
	if token := middleware.SessionToken(c); token != "" {
		if err := h.authSvc.Logout(c.Request.Context(), token); err != nil {
			fields := logFields(c)
			fields["error"] = err.Error()
			logger.WarnWithFields("logout failed to delete session", fields)
		}
	}
	auth.ClearSessionCookie(c, h.cookie.CookieName, h.cookie.CookieSecure)
	c.Redirect(http.StatusFound, "/")
}

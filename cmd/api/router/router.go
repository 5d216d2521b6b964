package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"ai-blog-generator/cmd/api/dto"
	"ai-blog-generator/cmd/api/handlers"
	"ai-blog-generator/cmd/api/middleware"
	"ai-blog-generator/cmd/api/services"
	"ai-blog-generator/cmd/api/views"
	"ai-blog-generator/config"
	_ "ai-blog-generator/docs"
)

// Deps 는 라우터가 필요로 하는 서비스와 설정이다. main 에서 한 번 조립한다.
type Deps struct {
	Summaries *services.SummaryService
	Auth      *services.AuthService
	AuthCfg   config.AuthConfig

	// StorageDriver 와 Ping 은 /health 에서 사용한다.
	StorageDriver string
	Ping          func(ctx context.Context) error
}

func New(d Deps) (*gin.Engine, error) {
	tmpl, err := views.Templates()
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestTrace(), middleware.LoadSession(d.Auth, d.AuthCfg.CookieName))
	r.SetHTMLTemplate(tmpl)

	// Health check
	r.GET("/health", healthHandler(d.StorageDriver, d.Ping))

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	accounts := handlers.NewAccountHandlers(d.Auth, d.AuthCfg)
	r.GET("/login", accounts.LoginPage)
	r.POST("/login", accounts.Login)
	r.GET("/signup", accounts.SignupPage)
	r.POST("/signup", accounts.Signup)
	r.GET("/logout", accounts.Logout)
	r.POST("/logout", accounts.Logout)

	// 메서드 검사는 핸들러가 직접 해서 405 JSON 을 내려준다.
	r.Any("/generate-blog", handlers.GenerateBlogHandler(d.Summaries))

	pages := r.Group("/", middleware.RequireLogin())
	{
		pages.GET("", accounts.IndexPage)
		pages.GET("blogs", handlers.AllBlogsPage(d.Summaries))
		pages.GET("blogs/:id", handlers.BlogDetailsPage(d.Summaries))
	}

	api := r.Group("/api/v1")
	{
		api.GET("/blogs", handlers.ListBlogsHandler(d.Summaries))
		api.GET("/blogs/:id", handlers.GetBlogHandler(d.Summaries))
	}

	return r, nil
}

// healthHandler godoc
// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  dto.HealthResponseDTO
// @Failure      503  {object}  dto.HealthResponseDTO
// @Router       /health [get]
func healthHandler(driver string, ping func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ping != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
			defer cancel()
			if err := ping(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, dto.HealthResponseDTO{Status: "degraded", Storage: driver})
				return
			}
		}
		c.JSON(http.StatusOK, dto.HealthResponseDTO{Status: "ok", Storage: driver})
	}
}

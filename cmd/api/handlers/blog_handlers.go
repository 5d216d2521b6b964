package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ai-blog-generator/cmd/api/dto"
	"ai-blog-generator/cmd/api/middleware"
	"ai-blog-generator/cmd/api/services"
	"ai-blog-generator/cmd/api/views"
	"ai-blog-generator/logger"
)

// AllBlogsPage 는 로그인 사용자의 요약 목록을 렌더링한다. RequireLogin 뒤에 둔다.
func AllBlogsPage(svc *services.SummaryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := middleware.CurrentUser(c)

		items, err := svc.ListForUser(c.Request.Context(), user.ID)
		if err != nil {
			fields := logFields(c)
			fields["error"] = err.Error()
			logger.ErrorWithFields("list blogs failed", fields)
			c.String(http.StatusInternalServerError, "internal server error")
			return
		}

		c.HTML(http.StatusOK, views.AllBlogs, gin.H{
			"User":  user,
			"Blogs": dto.NewSummaryListDTO(items).Data,
		})
	}
}

// BlogDetailsPage 는 없는 글과 남의 글 모두 홈으로 리다이렉트한다.
func BlogDetailsPage(svc *services.SummaryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := middleware.CurrentUser(c)

		record, err := svc.GetForUser(c.Request.Context(), user.ID, c.Param("id"))
		if err != nil {
			if !errors.Is(err, services.ErrNotFoundOrForbidden) {
				fields := logFields(c)
				fields["error"] = err.Error()
				logger.ErrorWithFields("blog lookup failed", fields)
			}
			c.Redirect(http.StatusFound, "/")
			return
		}

		c.HTML(http.StatusOK, views.BlogDetails, gin.H{
			"User": user,
			"Blog": dto.NewSummaryDTO(*record),
		})
	}
}

// ListBlogsHandler godoc
// @Summary      List my blog articles
// @Description  로그인 사용자의 요약 목록을 최신순으로 반환한다.
// @Tags         blogs
// @Produce      json
// @Success      200  {object}  dto.SummaryListDTO
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Router       /api/v1/blogs [get]
func ListBlogsHandler(svc *services.SummaryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := requireUserJSON(c)
		if !ok {
			return
		}

		items, err := svc.ListForUser(c.Request.Context(), user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: err.Error()})
			return
		}
		c.JSON(http.StatusOK, dto.NewSummaryListDTO(items))
	}
}

// GetBlogHandler godoc
// @Summary      Get my blog article by id
// @Description  다른 사용자의 글은 존재하지 않는 글과 같이 404 로 응답한다.
// @Tags         blogs
// @Param        id   path  string  true  "Summary ID"
// @Produce      json
// @Success      200  {object}  dto.SummaryDTO
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /api/v1/blogs/{id} [get]
func GetBlogHandler(svc *services.SummaryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := requireUserJSON(c)
		if !ok {
			return
		}

		record, err := svc.GetForUser(c.Request.Context(), user.ID, c.Param("id"))
		if err != nil {
			if errors.Is(err, services.ErrNotFoundOrForbidden) {
				c.JSON(http.StatusNotFound, dto.ErrorResponseDTO{Error: "not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: err.Error()})
			return
		}
		c.JSON(http.StatusOK, dto.NewSummaryDTO(*record))
	}
}

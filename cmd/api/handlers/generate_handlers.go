package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"ai-blog-generator/cmd/api/dto"
	"ai-blog-generator/cmd/api/services"
	"ai-blog-generator/logger"
)

var errInvalidJSON = errors.New("invalid JSON")

// GenerateBlogHandler godoc
// @Summary      Generate a blog article from a YouTube video
// @Description  자막을 가져와 Gemini 로 요약한 뒤 로그인 사용자 소유로 저장한다. 세션 쿠키가 필요하다.
// @Tags         blogs
// @Accept       json
// @Produce      json
// @Param        body  body      dto.GenerateRequestDTO  true  "YouTube link"
// @Success      200   {object}  dto.GenerateResponseDTO
// @Failure      400   {object}  dto.ErrorResponseDTO  "invalid JSON / link missing"
// @Failure      401   {object}  dto.ErrorResponseDTO
// @Failure      405   {object}  dto.ErrorResponseDTO
// @Failure      500   {object}  dto.ErrorResponseDTO  "transcription failed / generation failed / save failed"
// @Router       /generate-blog [post]
func GenerateBlogHandler(svc *services.SummaryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.JSON(http.StatusMethodNotAllowed, dto.ErrorResponseDTO{Error: "invalid request method"})
			return
		}

		body, err := c.GetRawData()
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "invalid JSON"})
			return
		}
		req, err := decodeGenerateRequest(body)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "invalid JSON"})
			return
		}
		link := strings.TrimSpace(req.Link)
		if link == "" {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "link missing"})
			return
		}

		user, ok := requireUserJSON(c)
		if !ok {
			return
		}

		record, err := svc.Generate(c.Request.Context(), user.ID, link)
		if err != nil {
			status, msg := generateErrorResponse(err)
			fields := logFields(c)
			fields["error"] = err.Error()
			fields["status"] = status
			logger.ErrorWithFields("generate blog failed", fields)
			c.JSON(status, dto.ErrorResponseDTO{Error: msg})
			return
		}

		c.JSON(http.StatusOK, dto.GenerateResponseDTO{Content: record.GeneratedContent})
	}
}

// decodeGenerateRequest 는 본문 전체가 하나의 JSON 객체일 때만 받아들인다.
// link 가 문자열이 아니면 비어 있는 것으로 보고 "link missing" 으로 처리한다.
func decodeGenerateRequest(body []byte) (dto.GenerateRequestDTO, error) {
	var req dto.GenerateRequestDTO
	if !json.Valid(body) {
		return req, errInvalidJSON
	}

	var raw struct {
		Link json.RawMessage `json:"link"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return req, err
	}
	if len(raw.Link) > 0 {
		_ = json.Unmarshal(raw.Link, &req.Link)
	}
	return req, nil
}

// generateErrorResponse 는 서비스 오류를 상태 코드와 응답 메시지로 바꾼다.
// 외부 서비스 오류의 상세 내용은 응답에 노출하지 않는다.
func generateErrorResponse(err error) (int, string) {
	var perr *services.PersistenceError
	switch {
	case errors.Is(err, services.ErrUnauthenticated):
		return http.StatusUnauthorized, "authentication required"
	case errors.Is(err, services.ErrTranscriptionFailed):
		return http.StatusInternalServerError, "transcription failed"
	case errors.Is(err, services.ErrGenerationFailed):
		return http.StatusInternalServerError, "generation failed"
	case errors.As(err, &perr):
		return http.StatusInternalServerError, perr.Error()
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

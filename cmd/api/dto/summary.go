package dto

import (
	"time"

	"ai-blog-generator/models"
)

// GenerateRequestDTO 는 POST /generate-blog 요청 본문이다.
type GenerateRequestDTO struct {
	Link string `json:"link" example:"https://www.youtube.com/watch?v=dQw4w9WgXcQ"`
}

type GenerateResponseDTO struct {
	Content string `json:"content"`
}

type SummaryDTO struct {
	ID               string    `json:"id"`
	YoutubeLink      string    `json:"youtube_link"`
	GeneratedContent string    `json:"generated_content"`
	CreatedAt        time.Time `json:"created_at"`
}

type SummaryListDTO struct {
	Data []SummaryDTO `json:"data"`
}

func NewSummaryDTO(s models.Summary) SummaryDTO {
	return SummaryDTO{
		ID:               s.ID,
		YoutubeLink:      s.YoutubeLink,
		GeneratedContent: s.GeneratedContent,
		CreatedAt:        s.CreatedAt,
	}
}

func NewSummaryListDTO(items []models.Summary) SummaryListDTO {
	out := make([]SummaryDTO, 0, len(items))
	for _, s := range items {
		out = append(out, NewSummaryDTO(s))
	}
	return SummaryListDTO{Data: out}
}

package services

import (
	"context"
	"errors"
	"fmt"

	"ai-blog-generator/logger"
	"ai-blog-generator/models"
	"ai-blog-generator/repositories"
	"ai-blog-generator/trace"
)

// TranscriptFetcher 는 *transcript.Fetcher 가 구현한다.
type TranscriptFetcher interface {
	Fetch(ctx context.Context, link string) (string, error)
}

// SummaryGenerator 는 *summarizer.Summarizer 가 구현한다.
type SummaryGenerator interface {
	Summarize(ctx context.Context, transcript string) (string, error)
}

// SummaryService 는 자막 조회 → 요약 생성 → 저장을 한 요청 안에서 순서대로 수행한다.
// 어느 단계든 실패하면 즉시 반환하며 재시도하지 않는다.
type SummaryService struct {
	fetcher    TranscriptFetcher
	summarizer SummaryGenerator
	repo       repositories.SummaryRepository
}

func NewSummaryService(fetcher TranscriptFetcher, summarizer SummaryGenerator, repo repositories.SummaryRepository) *SummaryService {
	return &SummaryService{
		fetcher:    fetcher,
		summarizer: summarizer,
		repo:       repo,
	}
}

// Generate 는 link 의 자막을 요약해 userID 소유로 저장한다.
// 두 외부 호출이 모두 성공한 뒤에만 레코드를 만든다.
func (s *SummaryService) Generate(ctx context.Context, userID, link string) (*models.Summary, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	fields := logger.Fields{
		"request_id": trace.RequestIDFromContext(ctx),
		"user_id":    userID,
		"link":       link,
	}

	text, err := s.fetcher.Fetch(ctx, link)
	if err != nil {
		fields["error"] = err.Error()
		logger.ErrorWithFields("transcript fetch failed", fields)
		return nil, fmt.Errorf("%w: %w", ErrTranscriptionFailed, err)
	}

	content, err := s.summarizer.Summarize(ctx, text)
	if err != nil {
		fields["error"] = err.Error()
		logger.ErrorWithFields("summary generation failed", fields)
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	record := &models.Summary{
		UserID:           userID,
		YoutubeLink:      link,
		GeneratedContent: content,
	}
	if err := s.repo.Create(ctx, record); err != nil {
		fields["error"] = err.Error()
		logger.ErrorWithFields("summary save failed", fields)
		return nil, &PersistenceError{Err: err}
	}

	fields["summary_id"] = record.ID
	logger.InfoWithFields("summary generated", fields)
	return record, nil
}

func (s *SummaryService) ListForUser(ctx context.Context, userID string) ([]models.Summary, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	return s.repo.ListByUser(ctx, userID)
}

// GetForUser 는 없는 레코드와 남의 레코드를 구분하지 않고 ErrNotFoundOrForbidden 을 돌려준다.
func (s *SummaryService) GetForUser(ctx context.Context, userID, id string) (*models.Summary, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFoundOrForbidden
		}
		return nil, err
	}
	if !models.Owns(userID, record) {
		return nil, ErrNotFoundOrForbidden
	}
	return record, nil
}

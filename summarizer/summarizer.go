package summarizer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"ai-blog-generator/config"
	"ai-blog-generator/logger"
)

const PROMPT = `You are a YouTube video summarizer. You will be taking the transcript text
and summarizing the entire video and providing the important summary in points
within 250 words. Please provide the summary of the text given here: `

var (
	ErrUpstream    = errors.New("summarizer: upstream failure")
	ErrEmptyResult = errors.New("summarizer: empty result")
)

// Generator is the part of the genai client the summarizer calls.
// *genai.Models satisfies it.
type Generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type Summarizer struct {
	models Generator
	model  string
}

// New creates a Gemini-backed summarizer. httpClient may be nil.
func New(ctx context.Context, cfg config.GeminiConfig, httpClient *http.Client) (*Summarizer, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return NewWithGenerator(client.Models, cfg.Model), nil
}

func NewWithGenerator(models Generator, model string) *Summarizer {
	return &Summarizer{models: models, model: model}
}

// Summarize sends PROMPT followed by transcript as a single prompt and returns
// the model's text verbatim. The 250 word target is left to the model.
func (s *Summarizer) Summarize(ctx context.Context, transcript string) (string, error) {
	start := time.Now()

	result, err := s.models.GenerateContent(ctx, s.model, genai.Text(PROMPT+transcript), nil)
	if err != nil {
		logger.ErrorWithFields("summarization failed", logger.Fields{
			"model": s.model,
			"error": err.Error(),
		})
		return "", fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	var text string
	if result != nil {
		text = result.Text()
	}
	if strings.TrimSpace(text) == "" {
		logger.ErrorWithFields("summarization returned no text", logger.Fields{
			"model": s.model,
		})
		return "", ErrEmptyResult
	}

	fields := logger.Fields{
		"model":      s.model,
		"latency_ms": time.Since(start).Milliseconds(),
		"excerpt":    excerpt(text, 100),
	}
	if result.UsageMetadata != nil {
		fields["input_tokens"] = result.UsageMetadata.PromptTokenCount
		fields["output_tokens"] = result.UsageMetadata.CandidatesTokenCount
		fields["total_tokens"] = result.UsageMetadata.TotalTokenCount
	}
	if result.ModelVersion != "" {
		fields["model_version"] = result.ModelVersion
	}
	logger.InfoWithFields("summary generated", fields)

	return text, nil
}

func excerpt(s string, max int) string {
	rs := []rune(s)
	if len(rs) <= max {
		return s
	}
	return string(rs[:max]) + "..."
}

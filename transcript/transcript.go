package transcript

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"ai-blog-generator/config"
	"ai-blog-generator/httpclient"
	"ai-blog-generator/logger"
)

var videoIDPattern = regexp.MustCompile(`v=([^&]+)`)

var (
	// ErrNoVideoID is returned when the link carries no v=<id> parameter.
	// Short links such as youtu.be/<id> are not supported.
	ErrNoVideoID = errors.New("transcript: no video id in link")
	// ErrUpstream wraps every failure of the transcript service.
	ErrUpstream = errors.New("transcript: upstream failure")
)

// Fragment is one caption line as supplied by the transcript service.
type Fragment struct {
	Text     string
	Start    float64
	Duration float64
}

// Fetcher retrieves transcripts from a YouTube-compatible service.
type Fetcher struct {
	client    *httpclient.BaseClient
	languages []string
}

// NewFetcher builds a Fetcher from cfg. A nil httpClient gets a logging client
// with cfg.Timeout.
func NewFetcher(cfg config.TranscriptConfig, httpClient *http.Client) *Fetcher {
	if httpClient == nil {
		httpClient = httpclient.New(httpclient.Config{Timeout: cfg.Timeout})
	}
	languages := cfg.Languages
	if len(languages) == 0 {
		languages = []string{"en"}
	}
	return &Fetcher{
		client:    httpclient.NewBaseClientWithClient(httpClient, cfg.BaseURL),
		languages: languages,
	}
}

// ExtractVideoID returns the text between "v=" and the next "&" (or the end of
// the link).
func ExtractVideoID(link string) (string, bool) {
	m := videoIDPattern.FindStringSubmatch(link)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// Fetch returns the whole transcript of the video referenced by link, with
// fragments joined by a single space in service order.
func (f *Fetcher) Fetch(ctx context.Context, link string) (string, error) {
	videoID, ok := ExtractVideoID(link)
	if !ok {
		return "", ErrNoVideoID
	}

	fragments, err := f.Fragments(ctx, videoID)
	if err != nil {
		logger.ErrorWithFields("transcription failed", logger.Fields{
			"video_id": videoID,
			"error":    err.Error(),
		})
		return "", err
	}

	text := Join(fragments)
	logger.DebugWithFields("transcription obtained", logger.Fields{
		"video_id":  videoID,
		"fragments": len(fragments),
		"excerpt":   excerpt(text, 100),
	})
	return text, nil
}

// Fragments returns the caption fragments of videoID in service order.
func (f *Fetcher) Fragments(ctx context.Context, videoID string) ([]Fragment, error) {
	track, err := f.captionTrack(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("%w: video %s: %w", ErrUpstream, videoID, err)
	}

	fragments, err := f.timedText(ctx, track.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: video %s: %w", ErrUpstream, videoID, err)
	}
	return fragments, nil
}

// Join concatenates every fragment text with a single space, empty ones included.
func Join(fragments []Fragment) string {
	parts := make([]string, 0, len(fragments))
	for _, fr := range fragments {
		parts = append(parts, fr.Text)
	}
	return strings.Join(parts, " ")
}

func excerpt(s string, max int) string {
	rs := []rune(s)
	if len(rs) <= max {
		return s
	}
	return string(rs[:max]) + "..."
}

package transcript

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

const playerResponseMarker = "ytInitialPlayerResponse"

var (
	errPlayerResponseNotFound = errors.New("player response not found in watch page")
	errNoCaptions             = errors.New("captions are disabled for this video")
	errNoTranscriptFound      = errors.New("no transcript in the requested languages")
)

var markupPattern = regexp.MustCompile(`<[^>]*>`)

type playerResponse struct {
	PlayabilityStatus struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
	Captions *struct {
		Renderer struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
}

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"`
}

// generated reports whether the track was produced by speech recognition.
func (t captionTrack) generated() bool {
	return t.Kind == "asr"
}

type timedTextDoc struct {
	Texts []struct {
		Start    float64 `xml:"start,attr"`
		Duration float64 `xml:"dur,attr"`
		Body     string  `xml:",chardata"`
	} `xml:"text"`
}

func (f *Fetcher) captionTrack(ctx context.Context, videoID string) (captionTrack, error) {
	req, err := f.client.NewRequest(ctx, http.MethodGet, "/watch", url.Values{"v": {videoID}}, nil)
	if err != nil {
		return captionTrack{}, err
	}
	req.Header.Set("Accept-Language", "en-US")

	resp, err := f.client.Do(req)
	if err != nil {
		return captionTrack{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return captionTrack{}, fmt.Errorf("watch page: unexpected status %d", resp.StatusCode)
	}

	player, err := parsePlayerResponse(resp.Body)
	if err != nil {
		return captionTrack{}, err
	}

	if status := player.PlayabilityStatus.Status; status != "" && status != "OK" {
		return captionTrack{}, fmt.Errorf("video unplayable: %s %s", status, player.PlayabilityStatus.Reason)
	}
	if player.Captions == nil || len(player.Captions.Renderer.CaptionTracks) == 0 {
		return captionTrack{}, errNoCaptions
	}

	track, ok := pickTrack(player.Captions.Renderer.CaptionTracks, f.languages)
	if !ok {
		return captionTrack{}, fmt.Errorf("%w: %s", errNoTranscriptFound, strings.Join(f.languages, ","))
	}
	return track, nil
}

// pickTrack walks languages in order and prefers manually created tracks over
// generated ones for the same language.
func pickTrack(tracks []captionTrack, languages []string) (captionTrack, bool) {
	for _, lang := range languages {
		for _, t := range tracks {
			if t.LanguageCode == lang && !t.generated() {
				return t, true
			}
		}
		for _, t := range tracks {
			if t.LanguageCode == lang {
				return t, true
			}
		}
	}
	return captionTrack{}, false
}

// parsePlayerResponse finds the script that assigns ytInitialPlayerResponse and
// decodes the JSON object that follows the marker.
func parsePlayerResponse(r io.Reader) (*playerResponse, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse watch page: %w", err)
	}

	script := findScript(doc, playerResponseMarker)
	if script == "" {
		return nil, errPlayerResponseNotFound
	}

	idx := strings.Index(script, playerResponseMarker)
	start := strings.Index(script[idx:], "{")
	if start < 0 {
		return nil, errPlayerResponseNotFound
	}

	var player playerResponse
	// Decoder stops after the first JSON value, ignoring the rest of the script.
	if err := json.NewDecoder(strings.NewReader(script[idx+start:])).Decode(&player); err != nil {
		return nil, fmt.Errorf("decode player response: %w", err)
	}
	return &player, nil
}

func findScript(n *html.Node, marker string) string {
	if n.Type == html.ElementNode && n.Data == "script" {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode && strings.Contains(c.Data, marker) {
				return c.Data
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if s := findScript(c, marker); s != "" {
			return s
		}
	}
	return ""
}

func (f *Fetcher) timedText(ctx context.Context, baseURL string) ([]Fragment, error) {
	target, err := f.client.Resolve(baseURL)
	if err != nil {
		return nil, fmt.Errorf("caption url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("timed text: unexpected status %d", resp.StatusCode)
	}

	var doc timedTextDoc
	if err := xml.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode timed text: %w", err)
	}

	fragments := make([]Fragment, 0, len(doc.Texts))
	for _, t := range doc.Texts {
		fragments = append(fragments, Fragment{
			Text:     cleanText(t.Body),
			Start:    t.Start,
			Duration: t.Duration,
		})
	}
	return fragments, nil
}

// cleanText decodes the HTML entities YouTube double-escapes inside caption
// text and drops inline formatting tags.
func cleanText(s string) string {
	s = html.UnescapeString(s)
	return markupPattern.ReplaceAllString(s, "")
}

package tts

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"iyan-ordering/internal/domain"

	"github.com/go-resty/resty/v2"
)

// MaxTextLength bounds a single utterance.
const MaxTextLength = 1000

var (
	// ErrUnavailable means no upstream is configured.
	ErrUnavailable = errors.New("text to speech unavailable")
	// ErrUpstream wraps failures reported by the upstream engine.
	ErrUpstream = errors.New("text to speech upstream failed")
)

type Audio struct {
	Data        []byte
	ContentType string
}

// Service forwards text to an HTTP speech engine that answers POST {"text"}
// with audio bytes.
type Service struct {
	http *resty.Client
	url  string
}

// New returns a service for upstreamURL. An empty URL yields a service that
// always reports ErrUnavailable.
func New(upstreamURL string, httpClient *http.Client) *Service {
	upstreamURL = strings.TrimSpace(upstreamURL)
	if upstreamURL == "" {
		return &Service{}
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Service{http: resty.NewWithClient(httpClient), url: upstreamURL}
}

// Enabled reports whether an upstream is configured.
func (s *Service) Enabled() bool {
	return s.http != nil
}

func (s *Service) Synthesize(ctx context.Context, text string) (Audio, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Audio{}, domain.Invalid("text", "text is required")
	}
	if utf8.RuneCountInString(text) > MaxTextLength {
		return Audio{}, domain.Invalid("text", "text must be at most %d characters", MaxTextLength)
	}
	if s.http == nil {
		return Audio{}, ErrUnavailable
	}

	resp, err := s.http.R().
		SetContext(ctx).
		SetHeader("Accept", "audio/*").
		SetBody(map[string]string{"text": text}).
		Post(s.url)
	if err != nil {
		return Audio{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if resp.IsError() {
		return Audio{}, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode())
	}
	contentType := resp.Header().Get("Content-Type")
	if contentType == "" {
		contentType = "audio/mpeg"
	}
	return Audio{Data: resp.Body(), ContentType: contentType}, nil
}

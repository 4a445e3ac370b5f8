// Package speech holds the single-slot speech capabilities: one recognition
// session at a time and one utterance playing at a time.
package speech

import (
	"context"
	"errors"
	"strings"
	"sync"
)

var (
	// ErrRecognitionUnavailable means no recognizer is configured or permission
	// was denied. Callers fall back to text input.
	ErrRecognitionUnavailable = errors.New("speech recognition unavailable")
	// ErrAlreadyListening is returned when a session is already active.
	ErrAlreadyListening = errors.New("speech recognition already active")
)

// Transcript is one recognition result. Only final transcripts may drive the
// conversation; interim ones are for live display.
type Transcript struct {
	Text  string
	Final bool
}

// Normalize lowercases and trims text the way recognizers report it.
func Normalize(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

// Final builds a normalized final transcript.
func Final(text string) Transcript {
	return Transcript{Text: Normalize(text), Final: true}
}

// Recognizer streams transcripts for one session until ctx is done or the
// utterance ends. It closes the returned channel when finished.
type Recognizer interface {
	Recognize(ctx context.Context) (<-chan Transcript, error)
}

// Listener enforces a single active recognition session.
type Listener struct {
	recognizer Recognizer

	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewListener wraps r. A nil r yields a listener that always reports
// ErrRecognitionUnavailable.
func NewListener(r Recognizer) *Listener {
	return &Listener{recognizer: r}
}

// Start opens a session and forwards normalized transcripts to handle until
// the recognizer finishes. It returns without blocking.
func (l *Listener) Start(ctx context.Context, handle func(Transcript)) error {
	if l.recognizer == nil {
		return ErrRecognitionUnavailable
	}

	l.mu.Lock()
	if l.cancel != nil {
		l.mu.Unlock()
		return ErrAlreadyListening
	}
	sessionCtx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.mu.Unlock()

	ch, err := l.recognizer.Recognize(sessionCtx)
	if err != nil {
		l.finish()
		if errors.Is(err, ErrRecognitionUnavailable) {
			return err
		}
		return errors.Join(ErrRecognitionUnavailable, err)
	}

	go func() {
		defer l.finish()
		for t := range ch {
			t.Text = Normalize(t.Text)
			if t.Text == "" {
				continue
			}
			if handle != nil {
				handle(t)
			}
		}
	}()
	return nil
}

// Stop ends the active session, if any.
func (l *Listener) Stop() {
	l.mu.Lock()
	cancel := l.cancel
	l.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Listening reports whether a session is active.
func (l *Listener) Listening() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cancel != nil
}

func (l *Listener) finish() {
	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.mu.Unlock()
}

package speech

import (
	"context"
	"errors"
	"sync"
)

// Voice plays one utterance, returning when playback ends or ctx is cancelled.
type Voice interface {
	Say(ctx context.Context, text string) error
}

// VoiceFunc adapts a function to Voice.
type VoiceFunc func(ctx context.Context, text string) error

func (f VoiceFunc) Say(ctx context.Context, text string) error { return f(ctx, text) }

// Synthesizer keeps at most one utterance playing. Speak cancels the current
// one before starting the next; there is no queue.
type Synthesizer struct {
	voice Voice

	mu      sync.Mutex
	current *utterance
}

type utterance struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// NewSynthesizer plays through v. A nil v makes Speak a no-op.
func NewSynthesizer(v Voice) *Synthesizer {
	return &Synthesizer{voice: v}
}

// Speak stops whatever is playing and starts text in the background. The
// returned channel receives the playback error (nil on success or when
// superseded) and is then closed.
func (s *Synthesizer) Speak(ctx context.Context, text string) <-chan error {
	result := make(chan error, 1)
	if s.voice == nil || text == "" {
		close(result)
		return result
	}

	s.mu.Lock()
	prev := s.current
	playCtx, cancel := context.WithCancel(ctx)
	u := &utterance{cancel: cancel, done: make(chan struct{})}
	s.current = u
	s.mu.Unlock()

	if prev != nil {
		prev.cancel()
		<-prev.done
	}

	go func() {
		defer close(result)
		defer close(u.done)
		err := s.voice.Say(playCtx, text)
		s.mu.Lock()
		if s.current == u {
			s.current = nil
		}
		s.mu.Unlock()
		cancel()
		if err != nil && !errors.Is(err, context.Canceled) {
			result <- err
		}
	}()
	return result
}

// Stop cancels the current utterance and waits for it to end.
func (s *Synthesizer) Stop() {
	s.mu.Lock()
	cur := s.current
	s.current = nil
	s.mu.Unlock()
	if cur != nil {
		cur.cancel()
		<-cur.done
	}
}

// Speaking reports whether an utterance is playing.
func (s *Synthesizer) Speaking() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil
}

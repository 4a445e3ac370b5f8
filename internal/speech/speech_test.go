package speech

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chanRecognizer struct {
	ch  chan Transcript
	err error
}

func (r *chanRecognizer) Recognize(ctx context.Context) (<-chan Transcript, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.ch, nil
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "i want egusi", Normalize("  I want   EGUSI "))
	assert.Equal(t, Transcript{Text: "yes", Final: true}, Final(" Yes"))
}

func TestListenerWithoutRecognizer(t *testing.T) {
	l := NewListener(nil)
	assert.ErrorIs(t, l.Start(context.Background(), nil), ErrRecognitionUnavailable)
}

func TestListenerRecognizerFailureIsUnavailable(t *testing.T) {
	l := NewListener(&chanRecognizer{err: errors.New("permission denied")})

	err := l.Start(context.Background(), nil)

	assert.ErrorIs(t, err, ErrRecognitionUnavailable)
	assert.False(t, l.Listening())
}

func TestListenerSingleSession(t *testing.T) {
	rec := &chanRecognizer{ch: make(chan Transcript)}
	l := NewListener(rec)

	var (
		mu  sync.Mutex
		got []Transcript
	)
	done := make(chan struct{})
	handle := func(tr Transcript) {
		mu.Lock()
		got = append(got, tr)
		mu.Unlock()
	}

	require.NoError(t, l.Start(context.Background(), handle))
	assert.ErrorIs(t, l.Start(context.Background(), handle), ErrAlreadyListening)
	assert.True(t, l.Listening())

	go func() {
		rec.ch <- Transcript{Text: "I WANT", Final: false}
		rec.ch <- Transcript{Text: "  "}
		rec.ch <- Transcript{Text: "I want Egusi", Final: true}
		close(rec.ch)
		close(done)
	}()
	<-done

	require.Eventually(t, func() bool { return !l.Listening() }, time.Second, 5*time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []Transcript{{Text: "i want"}, {Text: "i want egusi", Final: true}}, got)
}

type blockingVoice struct {
	mu       sync.Mutex
	started  []string
	finished []string
}

func (v *blockingVoice) Say(ctx context.Context, text string) error {
	v.mu.Lock()
	v.started = append(v.started, text)
	v.mu.Unlock()
	<-ctx.Done()
	v.mu.Lock()
	v.finished = append(v.finished, text)
	v.mu.Unlock()
	return ctx.Err()
}

func TestSynthesizerLastWriteWins(t *testing.T) {
	v := &blockingVoice{}
	s := NewSynthesizer(v)

	first := s.Speak(context.Background(), "hello")
	require.Eventually(t, func() bool {
		v.mu.Lock()
		defer v.mu.Unlock()
		return len(v.started) == 1
	}, time.Second, 5*time.Millisecond)

	_ = s.Speak(context.Background(), "goodbye")

	// The first utterance has been cancelled before the second began.
	v.mu.Lock()
	assert.Equal(t, []string{"hello"}, v.finished)
	v.mu.Unlock()
	assert.NoError(t, <-first)
	assert.True(t, s.Speaking())

	s.Stop()
	assert.False(t, s.Speaking())
	v.mu.Lock()
	defer v.mu.Unlock()
	assert.Equal(t, []string{"hello", "goodbye"}, v.started)
	assert.Equal(t, []string{"hello", "goodbye"}, v.finished)
}

func TestSynthesizerReportsVoiceError(t *testing.T) {
	boom := errors.New("audio device busy")
	s := NewSynthesizer(VoiceFunc(func(context.Context, string) error { return boom }))

	assert.ErrorIs(t, <-s.Speak(context.Background(), "hi"), boom)
}

func TestSynthesizerNilVoice(t *testing.T) {
	s := NewSynthesizer(nil)
	_, open := <-s.Speak(context.Background(), "hi")
	assert.False(t, open)
}

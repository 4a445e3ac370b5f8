package speech

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineRecognizerFeedsListener(t *testing.T) {
	l := NewListener(NewLineRecognizer(strings.NewReader("  Hello There \n\nOrder\n")))

	var (
		mu  sync.Mutex
		got []Transcript
	)
	require.NoError(t, l.Start(context.Background(), func(tr Transcript) {
		mu.Lock()
		got = append(got, tr)
		mu.Unlock()
	}))

	require.Eventually(t, func() bool { return !l.Listening() }, time.Second, 5*time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []Transcript{{Text: "hello there", Final: true}, {Text: "order", Final: true}}, got)
}

func TestLineRecognizerStopsOnCancel(t *testing.T) {
	r := NewLineRecognizer(strings.NewReader("one\ntwo\n"))
	ctx, cancel := context.WithCancel(context.Background())

	ch, err := r.Recognize(ctx)
	require.NoError(t, err)
	first := <-ch
	assert.Equal(t, "one", first.Text)
	cancel()

	done := make(chan struct{})
	go func() {
		for range ch {
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("session did not end after cancel")
	}
}

package speech

import (
	"bufio"
	"context"
	"io"
	"sync"
)

// LineRecognizer treats each line read from r as one final transcript. It
// stands in for a microphone in terminals and tests.
type LineRecognizer struct {
	r     io.Reader
	once  sync.Once
	lines chan string
}

func NewLineRecognizer(r io.Reader) *LineRecognizer {
	return &LineRecognizer{r: r, lines: make(chan string)}
}

// Recognize forwards lines until the reader is exhausted or ctx is done.
// Lines not yet consumed stay available to the next session.
func (l *LineRecognizer) Recognize(ctx context.Context) (<-chan Transcript, error) {
	l.once.Do(func() { go l.scan() })

	out := make(chan Transcript)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case line, ok := <-l.lines:
				if !ok {
					return
				}
				select {
				case out <- Final(line):
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

func (l *LineRecognizer) scan() {
	defer close(l.lines)
	sc := bufio.NewScanner(l.r)
	for sc.Scan() {
		l.lines <- sc.Text()
	}
}

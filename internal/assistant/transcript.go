package assistant

import (
	"context"
	"io"
	"log"
	"sync"
	"time"

	"iyan-ordering/internal/speech"
)

// Role tells who produced a transcript line.
type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// Message is one line of the conversation log.
type Message struct {
	Role Role      `json:"role"`
	Text string    `json:"text"`
	Time time.Time `json:"time"`
}

// transcript is the shared log and voice of both assistant modes.
type transcript struct {
	synth  *speech.Synthesizer
	logger *log.Logger
	now    func() time.Time

	mu       sync.Mutex
	messages []Message
	lastBot  string
}

func newTranscript(synth *speech.Synthesizer, logger *log.Logger) *transcript {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &transcript{synth: synth, logger: logger, now: time.Now}
}

func (t *transcript) heard(text string) {
	t.mu.Lock()
	t.messages = append(t.messages, Message{Role: RoleUser, Text: text, Time: t.now()})
	t.mu.Unlock()
}

// say logs and speaks text unless it repeats the previous bot line.
func (t *transcript) say(ctx context.Context, text string) bool {
	if text == "" {
		return false
	}
	t.mu.Lock()
	if text == t.lastBot {
		t.mu.Unlock()
		return false
	}
	t.lastBot = text
	t.messages = append(t.messages, Message{Role: RoleBot, Text: text, Time: t.now()})
	t.mu.Unlock()

	if t.synth != nil {
		done := t.synth.Speak(ctx, text)
		go func() {
			if err := <-done; err != nil {
				t.logger.Printf("assistant: speak failed: %v", err)
			}
		}()
	}
	return true
}

func (t *transcript) snapshot() []Message {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Message(nil), t.messages...)
}

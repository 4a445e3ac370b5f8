// Package assistant drives a voice ordering session: it feeds final
// transcripts to a bot, keeps the pending plate, commits plates to the cart
// store and speaks every reply once.
package assistant

import (
	"context"
	"io"
	"log"
	"sync"

	"iyan-ordering/internal/cart"
	"iyan-ordering/internal/dialogue"
	"iyan-ordering/internal/speech"
)

const (
	// FallbackGreeting is used when the bot cannot be reached at start.
	FallbackGreeting = "Welcome to Ilé Ìyán! I'm your voice ordering assistant. What would you like to order today?"
	// FallbackReply is spoken when the bot fails mid conversation.
	FallbackReply = "Sorry, I had trouble processing that. Could you try again?"
)

// Outcome reports what one transcript did.
type Outcome struct {
	Reply dialogue.Reply
	// Spoken is false when the reply was empty or repeated the previous line.
	Spoken bool
	// Committed is set when a plate was added to the cart.
	Committed bool
	// NavigateCheckout asks the shell to open checkout.
	NavigateCheckout bool
	Err              error
}

// Session is one catalog driven conversation.
type Session struct {
	bot    Bot
	store  *cart.Store
	logger *log.Logger
	log    *transcript

	mu      sync.Mutex
	state   dialogue.State
	pending Pending
}

// New builds a session over bot and store. synth and logger may be nil.
func New(bot Bot, store *cart.Store, synth *speech.Synthesizer, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Session{
		bot:    bot,
		store:  store,
		logger: logger,
		log:    newTranscript(synth, logger),
		state:  dialogue.StateGreeting,
	}
}

// Start speaks the opening line.
func (s *Session) Start(ctx context.Context) string {
	msg, err := s.bot.Greeting(ctx)
	if err != nil || msg == "" {
		if err != nil {
			s.logger.Printf("assistant: greeting failed: %v", err)
		}
		msg = FallbackGreeting
	}
	s.log.say(ctx, msg)
	return msg
}

// HandleTranscript processes one recognition result. Interim results never
// move the conversation.
func (s *Session) HandleTranscript(ctx context.Context, t speech.Transcript) Outcome {
	if !t.Final {
		return Outcome{Reply: dialogue.Unrecognized(s.State())}
	}
	text := speech.Normalize(t.Text)
	if text == "" {
		return Outcome{Reply: dialogue.Unrecognized(s.State())}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.log.heard(text)
	reply, err := s.bot.Process(ctx, text, s.state, s.store.Snapshot().Items)
	if err != nil {
		s.logger.Printf("assistant: process state=%s failed: %v", s.state, err)
		out := Outcome{Reply: dialogue.Unrecognized(s.state), Err: err}
		out.Spoken = s.log.say(ctx, FallbackReply)
		return out
	}
	if !reply.Recognized {
		return Outcome{Reply: dialogue.Unrecognized(s.state)}
	}

	out := Outcome{Reply: reply}
	s.state = dialogue.ParseState(string(reply.State))
	s.applyAction(reply.Action, &out)
	if s.state == dialogue.StateGreeting && reply.Action == nil {
		s.pending = Pending{}
	}
	out.Spoken = s.log.say(ctx, reply.Message)
	return out
}

func (s *Session) applyAction(a dialogue.Action, out *Outcome) {
	switch a.(type) {
	case nil:
	case dialogue.AddToCart:
		out.Committed = s.commit()
	case dialogue.PlaceOrder:
		out.Committed = s.commit()
		s.pending = Pending{}
		out.NavigateCheckout = true
	case dialogue.SelectSoups, dialogue.SelectProteins, dialogue.SelectPortion,
		dialogue.SelectIyanQuantity, dialogue.SelectProteinQuantity:
		s.pending = s.pending.apply(a)
	default:
		s.logger.Printf("assistant: ignoring action %T", a)
	}
}

// commit moves a ready pending plate into the cart.
func (s *Session) commit() bool {
	if !s.pending.Ready() {
		return false
	}
	s.store.Dispatch(cart.AddItem{Item: s.pending.LineItem()})
	s.pending = Pending{}
	return true
}

// State is the current conversation state.
func (s *Session) State() dialogue.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Pending returns a copy of the plate being assembled.
func (s *Session) Pending() Pending {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.pending
	p.Soups = append([]string(nil), p.Soups...)
	p.Proteins = append([]string(nil), p.Proteins...)
	return p
}

// Messages returns the conversation so far.
func (s *Session) Messages() []Message {
	return s.log.snapshot()
}

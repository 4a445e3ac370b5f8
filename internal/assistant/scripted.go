package assistant

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"

	"iyan-ordering/internal/cart"
	"iyan-ordering/internal/checkout"
	"iyan-ordering/internal/dialogue"
	"iyan-ordering/internal/domain"
	"iyan-ordering/internal/pricing"
	"iyan-ordering/internal/speech"
)

// Scripted runs the name and quantity flow for one house combo and submits
// the order as soon as the customer confirms.
type Scripted struct {
	machine   dialogue.Scripted
	combo     domain.Combo
	store     *cart.Store
	submitter *checkout.Submitter
	logger    *log.Logger
	log       *transcript

	mu      sync.Mutex
	session dialogue.ScriptedSession
}

// ScriptedResult reports what one scripted transcript did.
type ScriptedResult struct {
	Reply  dialogue.Reply
	Spoken bool
	Order  *domain.Order
	Err    error
}

// NewScripted picks comboID from menu, falling back to the first combo.
func NewScripted(menu domain.Menu, comboID string, store *cart.Store, submitter *checkout.Submitter, synth *speech.Synthesizer, logger *log.Logger) (*Scripted, error) {
	combo, ok := menu.Combo(comboID)
	if !ok {
		if len(menu.Combos) == 0 {
			return nil, errors.New("scripted assistant: menu has no combos")
		}
		combo = menu.Combos[0]
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Scripted{
		machine:   dialogue.Scripted{Dish: combo.Name},
		combo:     combo,
		store:     store,
		submitter: submitter,
		logger:    logger,
		log:       newTranscript(synth, logger),
		session:   dialogue.ScriptedSession{State: dialogue.StateGreeting},
	}, nil
}

// Start speaks the opening line.
func (a *Scripted) Start(ctx context.Context) string {
	msg := a.machine.Greeting()
	a.log.say(ctx, msg)
	return msg
}

// Combo is the dish this flow orders.
func (a *Scripted) Combo() domain.Combo {
	return a.combo
}

// HandleTranscript advances the flow by one final transcript.
func (a *Scripted) HandleTranscript(ctx context.Context, t speech.Transcript) ScriptedResult {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !t.Final {
		return ScriptedResult{Reply: dialogue.Unrecognized(a.session.State)}
	}
	text := speech.Normalize(t.Text)
	if text == "" {
		return ScriptedResult{Reply: dialogue.Unrecognized(a.session.State)}
	}

	a.log.heard(text)
	next, reply := a.machine.Step(a.session, text)
	a.session = next
	if !reply.Recognized {
		return ScriptedResult{Reply: reply}
	}

	res := ScriptedResult{Reply: reply}
	res.Spoken = a.log.say(ctx, reply.Message)
	if reply.Order == nil {
		return res
	}

	// The flow owns the whole cart, so a plate left over from a failed
	// submit is replaced rather than sent again.
	a.store.Dispatch(cart.Clear{})
	a.store.Dispatch(cart.SetCustomerName{Name: reply.Order.Name})
	a.store.Dispatch(cart.AddItem{Item: domain.LineItem{
		Soups:    append([]string(nil), a.combo.Soups...),
		Quantity: reply.Order.Quantity,
	}})
	order, err := a.submitter.Submit(ctx)
	if err != nil {
		a.logger.Printf("assistant: scripted submit failed: %v", err)
		res.Err = err
		a.log.say(ctx, checkout.StatusMessage(err))
		return res
	}
	res.Order = &order
	a.log.say(ctx, fmt.Sprintf("Thank you, %s! Order %s is %s. Your total is %s.",
		reply.Order.Name, order.ID, order.Status, pricing.Format(order.Total)))
	return res
}

// State is the current step of the flow.
func (a *Scripted) State() dialogue.State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.session.State
}

// Messages returns the conversation so far.
func (a *Scripted) Messages() []Message {
	return a.log.snapshot()
}

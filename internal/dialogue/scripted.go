package dialogue

import (
	"fmt"

	"iyan-ordering/internal/domain"
)

// ScriptedSession is the state carried between scripted steps.
type ScriptedSession struct {
	State    State
	Name     string
	Quantity int
}

// ScriptedOrder is emitted once the customer confirms.
type ScriptedOrder struct {
	Name     string
	Quantity int
}

// Scripted is the fixed name-then-quantity flow for a single house dish.
type Scripted struct {
	// Dish is the spoken name of the plate being ordered.
	Dish string
}

// Greeting opens the conversation.
func (m Scripted) Greeting() string {
	return fmt.Sprintf("Welcome to Ilé Ìyán! Say order to get a plate of %s.", m.dish())
}

// Step advances s by one final transcript.
func (m Scripted) Step(s ScriptedSession, text string) (ScriptedSession, Reply) {
	if s.State == "" {
		s.State = StateGreeting
	}
	switch s.State {
	case StateGreeting:
		if !hasAny(text, orderWords) {
			return s, Unrecognized(s.State)
		}
		next := ScriptedSession{State: StateAwaitingName}
		return next, m.reply(next, "Great! What name should I put the order under?")

	case StateAwaitingName:
		name := ExtractName(text)
		if name == "" {
			return s, m.reply(s, "Sorry, I didn't catch your name. What name should I put the order under?")
		}
		next := ScriptedSession{State: StateAwaitingQuantity, Name: name}
		return next, m.reply(next, fmt.Sprintf("Thanks, %s! How many plates of %s would you like?", name, m.dish()))

	case StateAwaitingQuantity:
		qty := ParseQuantity(text)
		if qty > domain.MaxLineQuantity {
			return s, m.reply(s, fmt.Sprintf("Sorry, we can do at most %d plates per order. How many plates of %s would you like?",
				domain.MaxLineQuantity, m.dish()))
		}
		next := ScriptedSession{State: StateConfirming, Name: s.Name, Quantity: qty}
		return next, m.reply(next, fmt.Sprintf(
			"That's %d %s of %s for %s. Say confirm to place it, or cancel to start over.",
			qty, plural(qty, "plate", "plates"), m.dish(), s.Name))

	case StateConfirming:
		if hasAny(text, cancelWords) {
			next := ScriptedSession{State: StateGreeting}
			return next, m.reply(next, "No problem, I've cancelled that. Say order whenever you're ready.")
		}
		if hasAny(text, confirmWords) {
			next := ScriptedSession{State: StateGreeting}
			r := m.reply(next, fmt.Sprintf("Placing your order now, %s!", s.Name))
			r.Order = &ScriptedOrder{Name: s.Name, Quantity: s.Quantity}
			return next, r
		}
		return s, Unrecognized(s.State)
	}
	return s, Unrecognized(s.State)
}

func (m Scripted) dish() string {
	if m.Dish == "" {
		return "iyan"
	}
	return m.Dish
}

func (m Scripted) reply(s ScriptedSession, msg string) Reply {
	return Reply{Message: msg, State: s.State, Recognized: true}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

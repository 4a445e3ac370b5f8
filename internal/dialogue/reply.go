// Package dialogue implements the conversational ordering machines. Both are
// pure: a step takes the current state and one final transcript and returns
// the next state plus a Reply. Input that matches nothing for the current
// state yields an unrecognized Reply and leaves the state untouched.
package dialogue

import (
	"encoding/json"
	"fmt"
)

// State names a conversation step.
type State string

const (
	StateGreeting                State = "greeting"
	StateAwaitingName            State = "awaiting_name"
	StateAwaitingQuantity        State = "awaiting_quantity"
	StateConfirming              State = "confirming"
	StateChoosingSoup            State = "choosing_soup"
	StateChoosingProtein         State = "choosing_protein"
	StateChoosingProteinQuantity State = "choosing_protein_quantity"
	StateChoosingWraps           State = "choosing_wraps"
	StateAnythingElse            State = "anything_else"
)

// Reply is the outcome of one step. Message is empty when Recognized is false.
type Reply struct {
	Message    string
	State      State
	Action     Action
	Recognized bool
	// Order is set by the scripted machine when the customer confirms.
	Order *ScriptedOrder
}

// Unrecognized keeps the conversation where it is.
func Unrecognized(state State) Reply {
	return Reply{State: state}
}

type wireReply struct {
	Message    string          `json:"message"`
	State      State           `json:"state"`
	Action     json.RawMessage `json:"action,omitempty"`
	Recognized *bool           `json:"recognized,omitempty"`
}

// MarshalJSON renders {message, state, action?, recognized}.
func (r Reply) MarshalJSON() ([]byte, error) {
	recognized := r.Recognized
	w := wireReply{Message: r.Message, State: r.State, Recognized: &recognized}
	if r.Action != nil {
		raw, err := MarshalAction(r.Action)
		if err != nil {
			return nil, err
		}
		w.Action = raw
	}
	return json.Marshal(w)
}

// UnmarshalJSON accepts replies without a recognized flag and infers it from
// the message.
func (r *Reply) UnmarshalJSON(data []byte) error {
	var w wireReply
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("decode reply: %w", err)
	}
	out := Reply{Message: w.Message, State: w.State, Recognized: w.Message != ""}
	if w.Recognized != nil {
		out.Recognized = *w.Recognized
	}
	if len(w.Action) > 0 && string(w.Action) != "null" {
		a, err := UnmarshalAction(w.Action)
		if err != nil {
			return err
		}
		out.Action = a
	}
	*r = out
	return nil
}

package dialogue

import (
	"encoding/json"
	"fmt"

	"iyan-ordering/internal/domain"
)

// ActionType is the wire tag of an Action.
type ActionType string

const (
	TypeSelectSoups           ActionType = "select_soups"
	TypeSelectProteins        ActionType = "select_proteins"
	TypeSelectPortion         ActionType = "select_portion"
	TypeSelectIyanQuantity    ActionType = "select_iyan_quantity"
	TypeSelectProteinQuantity ActionType = "select_protein_quantity"
	TypeAddToCart             ActionType = "add_to_cart"
	TypePlaceOrder            ActionType = "place_order"
)

// Action is the closed set of side effects a bot reply can ask the client to
// apply. Use a type switch over the concrete types below.
type Action interface {
	Type() ActionType
	isAction()
}

// SelectSoups replaces the pending soups.
type SelectSoups struct{ Soups []string }

// SelectProteins replaces the pending proteins. An empty list means none.
type SelectProteins struct{ Proteins []string }

// SelectPortion sets the legacy portion tier.
type SelectPortion struct{ Portion string }

// SelectIyanQuantity sets the wrap-count tier.
type SelectIyanQuantity struct{ IyanQuantity string }

// SelectProteinQuantity sets the piece tier for Protein, or for every pending
// protein when Protein is empty.
type SelectProteinQuantity struct {
	Protein  string
	Quantity string
}

// AddToCart commits the pending selection.
type AddToCart struct{}

// PlaceOrder commits the pending selection if any and moves to checkout.
type PlaceOrder struct{}

func (SelectSoups) Type() ActionType           { return TypeSelectSoups }
func (SelectProteins) Type() ActionType        { return TypeSelectProteins }
func (SelectPortion) Type() ActionType         { return TypeSelectPortion }
func (SelectIyanQuantity) Type() ActionType    { return TypeSelectIyanQuantity }
func (SelectProteinQuantity) Type() ActionType { return TypeSelectProteinQuantity }
func (AddToCart) Type() ActionType             { return TypeAddToCart }
func (PlaceOrder) Type() ActionType            { return TypePlaceOrder }

func (SelectSoups) isAction()           {}
func (SelectProteins) isAction()        {}
func (SelectPortion) isAction()         {}
func (SelectIyanQuantity) isAction()    {}
func (SelectProteinQuantity) isAction() {}
func (AddToCart) isAction()             {}
func (PlaceOrder) isAction()            {}

type wireAction struct {
	Type         ActionType `json:"type"`
	Soups        []string   `json:"soups,omitempty"`
	Proteins     []string   `json:"proteins,omitempty"`
	Portion      string     `json:"portion,omitempty"`
	IyanQuantity string     `json:"iyan_quantity,omitempty"`
	Protein      string     `json:"protein,omitempty"`
	Quantity     string     `json:"quantity,omitempty"`
}

// MarshalAction encodes a as {"type": ..., ...}.
func MarshalAction(a Action) ([]byte, error) {
	w, err := toWire(a)
	if err != nil {
		return nil, err
	}
	return json.Marshal(w)
}

// UnmarshalAction decodes the wire form. Unknown types are an error.
func UnmarshalAction(data []byte) (Action, error) {
	var w wireAction
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("decode action: %w", err)
	}
	return fromWire(w)
}

func toWire(a Action) (wireAction, error) {
	switch v := a.(type) {
	case SelectSoups:
		return wireAction{Type: v.Type(), Soups: v.Soups}, nil
	case SelectProteins:
		return wireAction{Type: v.Type(), Proteins: v.Proteins}, nil
	case SelectPortion:
		return wireAction{Type: v.Type(), Portion: v.Portion}, nil
	case SelectIyanQuantity:
		return wireAction{Type: v.Type(), IyanQuantity: v.IyanQuantity}, nil
	case SelectProteinQuantity:
		return wireAction{Type: v.Type(), Protein: v.Protein, Quantity: v.Quantity}, nil
	case AddToCart:
		return wireAction{Type: v.Type()}, nil
	case PlaceOrder:
		return wireAction{Type: v.Type()}, nil
	default:
		return wireAction{}, fmt.Errorf("unknown action %T", a)
	}
}

func fromWire(w wireAction) (Action, error) {
	switch w.Type {
	case TypeSelectSoups:
		return SelectSoups{Soups: domain.Unique(w.Soups)}, nil
	case TypeSelectProteins:
		return SelectProteins{Proteins: domain.Unique(w.Proteins)}, nil
	case TypeSelectPortion:
		return SelectPortion{Portion: w.Portion}, nil
	case TypeSelectIyanQuantity:
		return SelectIyanQuantity{IyanQuantity: w.IyanQuantity}, nil
	case TypeSelectProteinQuantity:
		return SelectProteinQuantity{Protein: w.Protein, Quantity: w.Quantity}, nil
	case TypeAddToCart:
		return AddToCart{}, nil
	case TypePlaceOrder:
		return PlaceOrder{}, nil
	default:
		return nil, fmt.Errorf("unknown action type %q", w.Type)
	}
}

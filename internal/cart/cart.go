// Package cart holds the session cart: a pure reducer over State and a Store
// that owns one State and serializes dispatches from every producer.
package cart

import (
	"iyan-ordering/internal/domain"
	"iyan-ordering/internal/pricing"
)

// State is an immutable snapshot. Reduce never mutates its input.
type State struct {
	Items        []domain.LineItem `json:"items"`
	CustomerName string            `json:"customer_name"`
}

// Action is the closed set of cart mutations.
type Action interface {
	apply(State) State
}

// AddItem appends a line. Identical lines stay distinct entries.
type AddItem struct{ Item domain.LineItem }

// RemoveItem drops the line at Index. Out of range is a no-op.
type RemoveItem struct{ Index int }

// UpdateQuantity replaces the quantity of the line at Index when it is within 1..20.
type UpdateQuantity struct {
	Index    int
	Quantity int
}

// SetCustomerName overwrites the customer name.
type SetCustomerName struct{ Name string }

// Clear resets to the empty cart.
type Clear struct{}

// RemoveSubmitted drops one matching line for each of Items, leaving lines
// added after the snapshot was taken. The name is reset once the cart is empty.
type RemoveSubmitted struct{ Items []domain.LineItem }

// Reduce returns the state produced by applying action to state.
func Reduce(state State, action Action) State {
	if action == nil {
		return state
	}
	return action.apply(state)
}

func (a AddItem) apply(s State) State {
	item := a.Item.Clone()
	switch {
	case item.Quantity < 1:
		item.Quantity = 1
	case item.Quantity > domain.MaxLineQuantity:
		item.Quantity = domain.MaxLineQuantity
	}
	out := s.clone()
	out.Items = append(out.Items, item)
	return out
}

func (a RemoveItem) apply(s State) State {
	if a.Index < 0 || a.Index >= len(s.Items) {
		return s
	}
	out := State{CustomerName: s.CustomerName, Items: make([]domain.LineItem, 0, len(s.Items)-1)}
	for i, item := range s.Items {
		if i == a.Index {
			continue
		}
		out.Items = append(out.Items, item.Clone())
	}
	return out
}

func (a UpdateQuantity) apply(s State) State {
	if a.Index < 0 || a.Index >= len(s.Items) {
		return s
	}
	if a.Quantity < 1 || a.Quantity > domain.MaxLineQuantity {
		return s
	}
	out := s.clone()
	out.Items[a.Index].Quantity = a.Quantity
	return out
}

func (a SetCustomerName) apply(s State) State {
	out := s.clone()
	out.CustomerName = a.Name
	return out
}

func (Clear) apply(State) State {
	return State{}
}

func (a RemoveSubmitted) apply(s State) State {
	used := make([]bool, len(s.Items))
	for _, submitted := range a.Items {
		for i, item := range s.Items {
			if !used[i] && sameLine(item, submitted) {
				used[i] = true
				break
			}
		}
	}
	out := State{CustomerName: s.CustomerName}
	for i, item := range s.Items {
		if !used[i] {
			out.Items = append(out.Items, item.Clone())
		}
	}
	if len(out.Items) == 0 {
		return State{}
	}
	return out
}

func sameLine(a, b domain.LineItem) bool {
	if a.Quantity != b.Quantity || a.IyanQuantity != b.IyanQuantity || a.Portion != b.Portion {
		return false
	}
	if !sameStrings(a.Soups, b.Soups) || !sameStrings(a.Proteins, b.Proteins) {
		return false
	}
	if len(a.ProteinQuantities) != len(b.ProteinQuantities) {
		return false
	}
	for k, v := range a.ProteinQuantities {
		if w, ok := b.ProteinQuantities[k]; !ok || w != v {
			return false
		}
	}
	return true
}

func sameStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Total prices every line against menu.
func (s State) Total(menu domain.Menu) int64 {
	return pricing.CartTotal(s.Items, menu)
}

// Len is the number of lines.
func (s State) Len() int {
	return len(s.Items)
}

// Empty reports whether the cart has no lines.
func (s State) Empty() bool {
	return len(s.Items) == 0
}

func (s State) clone() State {
	out := State{CustomerName: s.CustomerName}
	if len(s.Items) > 0 {
		out.Items = make([]domain.LineItem, len(s.Items))
		for i, item := range s.Items {
			out.Items[i] = item.Clone()
		}
	}
	return out
}

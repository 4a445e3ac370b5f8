package assistant

import (
	"iyan-ordering/internal/dialogue"
	"iyan-ordering/internal/domain"
)

// Pending is the plate being assembled by conversation before it reaches the cart.
type Pending struct {
	Soups             []string
	Proteins          []string
	IyanQuantity      string
	Portion           string
	ProteinQuantities map[string]string
}

// Ready reports whether the plate can be committed.
func (p Pending) Ready() bool {
	return len(domain.SetOf(p.Soups)) > 0
}

// LineItem converts the selection into a single-quantity cart line.
func (p Pending) LineItem() domain.LineItem {
	item := domain.LineItem{
		Soups:        domain.Unique(p.Soups),
		Proteins:     domain.Unique(p.Proteins),
		IyanQuantity: p.IyanQuantity,
		Portion:      p.Portion,
		Quantity:     1,
	}
	if len(p.ProteinQuantities) > 0 {
		item.ProteinQuantities = make(map[string]string, len(p.ProteinQuantities))
		for k, v := range p.ProteinQuantities {
			item.ProteinQuantities[k] = v
		}
	}
	return item
}

// apply folds a selection action into p. Commit actions leave p unchanged.
func (p Pending) apply(a dialogue.Action) Pending {
	switch v := a.(type) {
	case dialogue.SelectSoups:
		p.Soups = domain.Unique(v.Soups)
	case dialogue.SelectProteins:
		p.Proteins = domain.Unique(v.Proteins)
		kept := make(map[string]string)
		for _, id := range p.Proteins {
			if q, ok := p.ProteinQuantities[id]; ok {
				kept[id] = q
			}
		}
		p.ProteinQuantities = kept
	case dialogue.SelectPortion:
		p.Portion = v.Portion
	case dialogue.SelectIyanQuantity:
		p.IyanQuantity = v.IyanQuantity
	case dialogue.SelectProteinQuantity:
		quantities := make(map[string]string, len(p.Proteins))
		for k, q := range p.ProteinQuantities {
			quantities[k] = q
		}
		if v.Protein != "" {
			quantities[v.Protein] = v.Quantity
		} else {
			for _, id := range p.Proteins {
				quantities[id] = v.Quantity
			}
		}
		p.ProteinQuantities = quantities
	}
	return p
}

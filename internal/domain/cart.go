package domain

// MaxLineQuantity caps the quantity of a single cart line.
const MaxLineQuantity = 20

// LineItem is one configurable plate: iyan + soups + optional proteins.
// Soups and Proteins carry set semantics; order is display-only.
type LineItem struct {
	Soups             []string          `json:"soups"`
	Proteins          []string          `json:"proteins"`
	IyanQuantity      string            `json:"iyan_quantity,omitempty"`
	Portion           string            `json:"portion,omitempty"`
	ProteinQuantities map[string]string `json:"protein_quantities,omitempty"`
	Quantity          int               `json:"quantity"`
}

// BaseTier is the tier id scaling the iyan base price. The per-wrap model
// wins over the legacy portion model when both are present.
func (l LineItem) BaseTier() string {
	if l.IyanQuantity != "" {
		return l.IyanQuantity
	}
	return l.Portion
}

// ProteinTier returns the piece tier chosen for protein id, if any.
func (l LineItem) ProteinTier(id string) string {
	if l.ProteinQuantities == nil {
		return ""
	}
	return l.ProteinQuantities[id]
}

// Validate checks the line can be ordered.
func (l LineItem) Validate() error {
	if len(SetOf(l.Soups)) == 0 {
		return Invalid("soups", "at least one soup is required")
	}
	if l.Quantity < 1 || l.Quantity > MaxLineQuantity {
		return Invalid("quantity", "must be between 1 and %d", MaxLineQuantity)
	}
	return nil
}

// Clone returns a deep copy so holders never share backing arrays or maps.
func (l LineItem) Clone() LineItem {
	out := l
	out.Soups = append([]string(nil), l.Soups...)
	out.Proteins = append([]string(nil), l.Proteins...)
	if l.ProteinQuantities != nil {
		out.ProteinQuantities = make(map[string]string, len(l.ProteinQuantities))
		for k, v := range l.ProteinQuantities {
			out.ProteinQuantities[k] = v
		}
	}
	return out
}

// Package pricing computes line and cart prices from a menu.
//
// The formula is
//
//	unit = base*baseMult + Σsoups + Σ(protein*proteinMult) - comboDiscount
//	line = round(unit * quantity)
//
// where every lookup is lenient (unknown id: price 0, multiplier 1) and a
// line without soups is worth 0. Lines never price below 0.
package pricing

import (
	"iyan-ordering/internal/domain"

	"github.com/shopspring/decimal"
)

// Breakdown itemizes a line price for order summaries.
type Breakdown struct {
	Base          int64  `json:"base"`
	Soups         int64  `json:"soups"`
	Proteins      int64  `json:"proteins"`
	ComboID       string `json:"combo_id,omitempty"`
	ComboDiscount int64  `json:"combo_discount"`
	Unit          int64  `json:"unit"`
	Quantity      int    `json:"quantity"`
	Total         int64  `json:"total"`
}

// Price returns the total for one line in minor currency units.
func Price(item domain.LineItem, menu domain.Menu) int64 {
	return Quote(item, menu).Total
}

// Quote prices a line and returns every component of the computation.
func Quote(item domain.LineItem, menu domain.Menu) Breakdown {
	soups := domain.Unique(item.Soups)
	if len(soups) == 0 {
		return Breakdown{Quantity: item.Quantity}
	}

	base := decimal.NewFromInt(menu.IyanBasePrice).Mul(menu.BaseMultiplier(item.BaseTier()))

	var soupTotal int64
	for _, id := range soups {
		soupTotal += menu.SoupPrice(id)
	}

	proteinTotal := decimal.Zero
	for _, id := range domain.Unique(item.Proteins) {
		mult := menu.ProteinMultiplier(item.ProteinTier(id))
		proteinTotal = proteinTotal.Add(decimal.NewFromInt(menu.ProteinPrice(id)).Mul(mult))
	}

	var discount int64
	var comboID string
	if combo, ok := menu.MatchCombo(soups); ok {
		discount = combo.Discount
		comboID = combo.ID
	}

	unit := base.Add(decimal.NewFromInt(soupTotal)).Add(proteinTotal).Sub(decimal.NewFromInt(discount))
	total := unit.Mul(decimal.NewFromInt(int64(item.Quantity)))

	return Breakdown{
		Base:          base.Round(0).IntPart(),
		Soups:         soupTotal,
		Proteins:      proteinTotal.Round(0).IntPart(),
		ComboID:       comboID,
		ComboDiscount: discount,
		Unit:          nonNegative(unit),
		Quantity:      item.Quantity,
		Total:         nonNegative(total),
	}
}

// CartTotal sums Price over items. The result does not depend on item order.
func CartTotal(items []domain.LineItem, menu domain.Menu) int64 {
	var total int64
	for _, item := range items {
		total += Price(item, menu)
	}
	return total
}

func nonNegative(d decimal.Decimal) int64 {
	v := d.Round(0).IntPart()
	if v < 0 {
		return 0
	}
	return v
}

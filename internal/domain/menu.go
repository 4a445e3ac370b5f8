package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Soup is a selectable soup with its price in minor currency units.
type Soup struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Price       int64    `json:"price"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// Protein is an optional add-on priced per piece tier.
type Protein struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Price       int64    `json:"price"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// Tier scales a price by Multiplier (wraps of iyan, protein pieces, portion size).
type Tier struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Multiplier decimal.Decimal `json:"multiplier"`
}

// Combo grants Discount when the selected soup set equals Soups exactly.
type Combo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Soups       []string `json:"soups"`
	Discount    int64    `json:"discount"`
}

// TierKind distinguishes the tier lists stored side by side.
type TierKind string

const (
	TierIyan    TierKind = "iyan"
	TierProtein TierKind = "protein"
	TierPortion TierKind = "portion"
)

// Menu is the read-only catalog. Slice order is catalog order.
type Menu struct {
	IyanBasePrice     int64     `json:"iyan_base_price"`
	Soups             []Soup    `json:"soups"`
	Proteins          []Protein `json:"proteins"`
	IyanQuantities    []Tier    `json:"iyan_quantities"`
	ProteinQuantities []Tier    `json:"protein_quantities"`
	Portions          []Tier    `json:"portions"`
	Combos            []Combo   `json:"combos"`
}

// DefaultMultiplier is used whenever a tier id is empty or unknown.
var DefaultMultiplier = decimal.NewFromInt(1)

// Lenient lookups: an unknown id prices at 0 and multiplies by 1. Orders built
// against a drifted catalog degrade instead of failing.

// SoupPrice returns the price of soup id, or 0 when unknown.
func (m Menu) SoupPrice(id string) int64 {
	if s, ok := m.Soup(id); ok {
		return s.Price
	}
	return 0
}

// ProteinPrice returns the price of protein id, or 0 when unknown.
func (m Menu) ProteinPrice(id string) int64 {
	if p, ok := m.Protein(id); ok {
		return p.Price
	}
	return 0
}

// BaseMultiplier resolves the iyan tier id, falling back to the legacy
// portion tiers, then to DefaultMultiplier.
func (m Menu) BaseMultiplier(id string) decimal.Decimal {
	if t, ok := findTier(m.IyanQuantities, id); ok {
		return t.Multiplier
	}
	if t, ok := findTier(m.Portions, id); ok {
		return t.Multiplier
	}
	return DefaultMultiplier
}

// ProteinMultiplier resolves a protein piece tier id or returns DefaultMultiplier.
func (m Menu) ProteinMultiplier(id string) decimal.Decimal {
	if t, ok := findTier(m.ProteinQuantities, id); ok {
		return t.Multiplier
	}
	return DefaultMultiplier
}

// Soup looks up a soup by id.
func (m Menu) Soup(id string) (Soup, bool) {
	for _, s := range m.Soups {
		if s.ID == id {
			return s, true
		}
	}
	return Soup{}, false
}

// Protein looks up a protein by id.
func (m Menu) Protein(id string) (Protein, bool) {
	for _, p := range m.Proteins {
		if p.ID == id {
			return p, true
		}
	}
	return Protein{}, false
}

// SoupName returns the display name for id, or id itself when unknown.
func (m Menu) SoupName(id string) string {
	if s, ok := m.Soup(id); ok {
		return s.Name
	}
	return id
}

// ProteinName returns the display name for id, or id itself when unknown.
func (m Menu) ProteinName(id string) string {
	if p, ok := m.Protein(id); ok {
		return p.Name
	}
	return id
}

// IyanTier returns the iyan (or portion) tier for id.
func (m Menu) IyanTier(id string) (Tier, bool) {
	if t, ok := findTier(m.IyanQuantities, id); ok {
		return t, true
	}
	return findTier(m.Portions, id)
}

// Combo looks up a combo by id.
func (m Menu) Combo(id string) (Combo, bool) {
	for _, c := range m.Combos {
		if c.ID == id {
			return c, true
		}
	}
	return Combo{}, false
}

// MatchCombo returns the first combo, in catalog order, whose soup set equals
// the given soup set. Partial and superset selections never match.
func (m Menu) MatchCombo(soups []string) (Combo, bool) {
	selected := SetOf(soups)
	if len(selected) == 0 {
		return Combo{}, false
	}
	for _, c := range m.Combos {
		if sameSet(SetOf(c.Soups), selected) {
			return c, true
		}
	}
	return Combo{}, false
}

// FindSoups returns the ids of every soup mentioned in text, in catalog order.
func (m Menu) FindSoups(text string) []string {
	var out []string
	for _, s := range m.Soups {
		if mentions(text, s.ID, s.Name) {
			out = append(out, s.ID)
		}
	}
	return out
}

// FindProteins returns the ids of every protein mentioned in text, in catalog order.
func (m Menu) FindProteins(text string) []string {
	var out []string
	for _, p := range m.Proteins {
		if mentions(text, p.ID, p.Name) {
			out = append(out, p.ID)
		}
	}
	return out
}

// SetOf collapses ids into a set, dropping blanks.
func SetOf(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		set[id] = struct{}{}
	}
	return set
}

// Unique returns ids without duplicates, keeping first occurrence order.
func Unique(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func sameSet(a, b map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}

func findTier(tiers []Tier, id string) (Tier, bool) {
	if id == "" {
		return Tier{}, false
	}
	for _, t := range tiers {
		if t.ID == id {
			return t, true
		}
	}
	return Tier{}, false
}

func mentions(text, id, name string) bool {
	text = " " + normalizeWords(text) + " "
	for _, candidate := range []string{id, name} {
		c := normalizeWords(candidate)
		if c == "" {
			continue
		}
		if strings.Contains(text, " "+c+" ") {
			return true
		}
	}
	return false
}

// normalizeWords lowercases, maps separators to spaces and folds accents used
// in the catalog names so "Efo Riro", "efo_riro" and "efo-riro" compare equal.
func normalizeWords(s string) string {
	s = strings.ToLower(s)
	s = strings.NewReplacer(
		"_", " ", "-", " ", ",", " ", ".", " ", "!", " ", "?", " ", "&", " ",
		"é", "e", "è", "e", "ẹ", "e", "ì", "i", "í", "i", "á", "a", "à", "a",
		"ó", "o", "ò", "o", "ọ", "o", "ú", "u", "ṣ", "s",
	).Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

// Describe renders a line for summaries, e.g.
// "Egusi and Ewedu with Beef (2 Pieces) (2 Wraps)".
func (m Menu) Describe(item LineItem) string {
	soups := Unique(item.Soups)
	names := make([]string, 0, len(soups))
	for _, id := range soups {
		names = append(names, m.SoupName(id))
	}
	out := joinAnd(names)
	if out == "" {
		out = "Iyan"
	}

	proteins := Unique(item.Proteins)
	if len(proteins) > 0 {
		names = names[:0]
		for _, id := range proteins {
			name := m.ProteinName(id)
			if tier, ok := findTier(m.ProteinQuantities, item.ProteinTier(id)); ok {
				name += " (" + tier.Name + ")"
			}
			names = append(names, name)
		}
		out += " with " + joinAnd(names)
	}

	if tier, ok := m.IyanTier(item.BaseTier()); ok {
		out += " (" + tier.Name + ")"
	}
	return out
}

func joinAnd(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	default:
		return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
	}
}

// Clone returns a deep copy of m.
func (m Menu) Clone() Menu {
	out := Menu{IyanBasePrice: m.IyanBasePrice}
	for _, s := range m.Soups {
		s.Tags = append([]string(nil), s.Tags...)
		out.Soups = append(out.Soups, s)
	}
	for _, p := range m.Proteins {
		p.Tags = append([]string(nil), p.Tags...)
		out.Proteins = append(out.Proteins, p)
	}
	out.IyanQuantities = append([]Tier(nil), m.IyanQuantities...)
	out.ProteinQuantities = append([]Tier(nil), m.ProteinQuantities...)
	out.Portions = append([]Tier(nil), m.Portions...)
	for _, c := range m.Combos {
		c.Soups = append([]string(nil), c.Soups...)
		out.Combos = append(out.Combos, c)
	}
	return out
}

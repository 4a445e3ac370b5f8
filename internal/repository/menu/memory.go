package menu

import (
	"context"
	"sync"

	"iyan-ordering/internal/domain"
)

var _ Repository = (*Memory)(nil)

// Memory is an in-process catalog store for tests and STORE_DRIVER=memory.
type Memory struct {
	mu     sync.RWMutex
	menu   domain.Menu
	seeded bool
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Load(_ context.Context) (domain.Menu, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.seeded {
		return domain.Menu{}, domain.ErrMenuNotFound
	}
	return m.menu.Clone(), nil
}

func (m *Memory) Replace(_ context.Context, menu domain.Menu) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.menu = menu.Clone()
	m.seeded = true
	return nil
}

func (m *Memory) SetBasePrice(_ context.Context, price int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.menu.IyanBasePrice = price
	m.seeded = true
	return nil
}

func (m *Memory) UpsertSoup(_ context.Context, soup domain.Soup) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	soup.Tags = append([]string(nil), soup.Tags...)
	for i := range m.menu.Soups {
		if m.menu.Soups[i].ID == soup.ID {
			m.menu.Soups[i] = soup
			return nil
		}
	}
	m.menu.Soups = append(m.menu.Soups, soup)
	return nil
}

func (m *Memory) UpsertProtein(_ context.Context, protein domain.Protein) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	protein.Tags = append([]string(nil), protein.Tags...)
	for i := range m.menu.Proteins {
		if m.menu.Proteins[i].ID == protein.ID {
			m.menu.Proteins[i] = protein
			return nil
		}
	}
	m.menu.Proteins = append(m.menu.Proteins, protein)
	return nil
}

func (m *Memory) UpsertTier(_ context.Context, kind domain.TierKind, tier domain.Tier) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var tiers *[]domain.Tier
	switch kind {
	case domain.TierIyan:
		tiers = &m.menu.IyanQuantities
	case domain.TierProtein:
		tiers = &m.menu.ProteinQuantities
	case domain.TierPortion:
		tiers = &m.menu.Portions
	default:
		return domain.Invalid("kind", "unknown tier kind %q", kind)
	}
	for i := range *tiers {
		if (*tiers)[i].ID == tier.ID {
			(*tiers)[i] = tier
			return nil
		}
	}
	*tiers = append(*tiers, tier)
	return nil
}

func (m *Memory) UpsertCombo(_ context.Context, combo domain.Combo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	combo.Soups = append([]string(nil), combo.Soups...)
	for i := range m.menu.Combos {
		if m.menu.Combos[i].ID == combo.ID {
			m.menu.Combos[i] = combo
			return nil
		}
	}
	m.menu.Combos = append(m.menu.Combos, combo)
	return nil
}

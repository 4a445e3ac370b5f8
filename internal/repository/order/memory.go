package order

import (
	"context"
	"sort"
	"sync"
	"time"

	"iyan-ordering/internal/domain"
)

var _ Repository = (*Memory)(nil)

// Memory keeps orders in process.
type Memory struct {
	mu     sync.RWMutex
	orders map[string]domain.Order
}

func NewMemory() *Memory {
	return &Memory{orders: map[string]domain.Order{}}
}

func (m *Memory) Create(_ context.Context, order domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.orders[order.ID]; ok {
		return domain.ErrAlreadyExists
	}
	m.orders[order.ID] = cloneOrder(order)
	return nil
}

func (m *Memory) Get(_ context.Context, id string) (domain.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.orders[id]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return cloneOrder(o), nil
}

func (m *Memory) List(_ context.Context, limit int) ([]domain.Order, error) {
	m.mu.RLock()
	list := make([]domain.Order, 0, len(m.orders))
	for _, o := range m.orders {
		list = append(list, cloneOrder(o))
	}
	m.mu.RUnlock()

	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].ID < list[j].ID
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (m *Memory) UpdateStatus(_ context.Context, id string, from, to domain.OrderStatus, at time.Time) (domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	if o.Status != from {
		return domain.Order{}, domain.ErrConflict
	}
	o.Status = to
	o.UpdatedAt = at
	m.orders[id] = o
	return cloneOrder(o), nil
}

func cloneOrder(o domain.Order) domain.Order {
	out := o
	out.Items = make([]domain.OrderLine, len(o.Items))
	for i, line := range o.Items {
		out.Items[i] = domain.OrderLine{LineItem: line.LineItem.Clone(), Price: line.Price}
	}
	return out
}

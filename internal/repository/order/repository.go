package order

import (
	"context"
	"time"

	"iyan-ordering/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, order domain.Order) error
	Get(ctx context.Context, id string) (domain.Order, error)
	// List returns at most limit orders, newest first. limit <= 0 means all.
	List(ctx context.Context, limit int) ([]domain.Order, error)
	// UpdateStatus moves id from one status to another. It returns
	// domain.ErrConflict when the stored status is no longer from.
	UpdateStatus(ctx context.Context, id string, from, to domain.OrderStatus, at time.Time) (domain.Order, error)
}

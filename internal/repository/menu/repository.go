package menu

import (
	"context"

	"iyan-ordering/internal/domain"
)

// Repository persists the catalog. Every list keeps catalog order.
type Repository interface {
	// Load returns domain.ErrNotFound until a base price has been set.
	Load(ctx context.Context) (domain.Menu, error)
	// Replace swaps the whole catalog atomically.
	Replace(ctx context.Context, menu domain.Menu) error
	SetBasePrice(ctx context.Context, price int64) error
	UpsertSoup(ctx context.Context, soup domain.Soup) error
	UpsertProtein(ctx context.Context, protein domain.Protein) error
	UpsertTier(ctx context.Context, kind domain.TierKind, tier domain.Tier) error
	UpsertCombo(ctx context.Context, combo domain.Combo) error
}

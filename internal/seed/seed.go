package seed

import (
	"context"
	"errors"
	"fmt"

	"iyan-ordering/internal/domain"
)

type menuStore interface {
	Load(ctx context.Context) (domain.Menu, error)
	Replace(ctx context.Context, menu domain.Menu) error
}

// Apply stores DefaultMenu when the catalog is empty. With force it replaces
// whatever is stored. It reports whether anything was written.
func Apply(ctx context.Context, store menuStore, force bool) (bool, error) {
	if !force {
		_, err := store.Load(ctx)
		if err == nil {
			return false, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return false, fmt.Errorf("load menu: %w", err)
		}
	}
	if err := store.Replace(ctx, DefaultMenu()); err != nil {
		return false, fmt.Errorf("replace menu: %w", err)
	}
	return true, nil
}

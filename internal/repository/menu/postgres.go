package menu

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"iyan-ordering/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const (
	kindSoup    = "soup"
	kindProtein = "protein"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Load(ctx context.Context) (domain.Menu, error) {
	var menu domain.Menu
	err := r.pool.QueryRow(ctx, `SELECT iyan_base_price FROM menu_settings WHERE id = 1`).Scan(&menu.IyanBasePrice)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Printf("menu repo: load not seeded")
			return domain.Menu{}, domain.ErrMenuNotFound
		}
		r.logger.Printf("menu repo: load settings error=%v", err)
		return domain.Menu{}, err
	}

	if err := r.loadItems(ctx, &menu); err != nil {
		return domain.Menu{}, err
	}
	if err := r.loadTiers(ctx, &menu); err != nil {
		return domain.Menu{}, err
	}
	if err := r.loadCombos(ctx, &menu); err != nil {
		return domain.Menu{}, err
	}
	r.logger.Printf("menu repo: load soups=%d proteins=%d combos=%d", len(menu.Soups), len(menu.Proteins), len(menu.Combos))
	return menu, nil
}

func (r *postgresRepo) loadItems(ctx context.Context, menu *domain.Menu) error {
	const q = `
SELECT kind, id, name, price, COALESCE(description, ''), tags
FROM menu_items
ORDER BY kind, position, id
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("menu repo: load items error=%v", err)
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			kind, id, name, desc string
			price                int64
			tags                 []string
		)
		if err := rows.Scan(&kind, &id, &name, &price, &desc, &tags); err != nil {
			return err
		}
		switch kind {
		case kindSoup:
			menu.Soups = append(menu.Soups, domain.Soup{ID: id, Name: name, Price: price, Description: desc, Tags: tags})
		case kindProtein:
			menu.Proteins = append(menu.Proteins, domain.Protein{ID: id, Name: name, Price: price, Description: desc, Tags: tags})
		}
	}
	return rows.Err()
}

func (r *postgresRepo) loadTiers(ctx context.Context, menu *domain.Menu) error {
	const q = `
SELECT kind, id, name, multiplier::text
FROM menu_tiers
ORDER BY kind, position, id
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("menu repo: load tiers error=%v", err)
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var kind, id, name, mult string
		if err := rows.Scan(&kind, &id, &name, &mult); err != nil {
			return err
		}
		m, err := decimal.NewFromString(mult)
		if err != nil {
			return fmt.Errorf("tier %s/%s multiplier %q: %w", kind, id, mult, err)
		}
		tier := domain.Tier{ID: id, Name: name, Multiplier: m}
		switch domain.TierKind(kind) {
		case domain.TierIyan:
			menu.IyanQuantities = append(menu.IyanQuantities, tier)
		case domain.TierProtein:
			menu.ProteinQuantities = append(menu.ProteinQuantities, tier)
		case domain.TierPortion:
			menu.Portions = append(menu.Portions, tier)
		}
	}
	return rows.Err()
}

func (r *postgresRepo) loadCombos(ctx context.Context, menu *domain.Menu) error {
	const q = `
SELECT id, name, COALESCE(description, ''), soups, discount
FROM menu_combos
ORDER BY position, id
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("menu repo: load combos error=%v", err)
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var c domain.Combo
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Soups, &c.Discount); err != nil {
			return err
		}
		menu.Combos = append(menu.Combos, c)
	}
	return rows.Err()
}

func (r *postgresRepo) Replace(ctx context.Context, menu domain.Menu) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `TRUNCATE menu_items, menu_tiers, menu_combos`); err != nil {
		return err
	}
	if err := setBasePrice(ctx, tx, menu.IyanBasePrice); err != nil {
		return err
	}

	batch := &pgx.Batch{}
	for i, s := range menu.Soups {
		batch.Queue(insertItemSQL, kindSoup, s.ID, s.Name, s.Price, s.Description, tagsOrEmpty(s.Tags), i)
	}
	for i, p := range menu.Proteins {
		batch.Queue(insertItemSQL, kindProtein, p.ID, p.Name, p.Price, p.Description, tagsOrEmpty(p.Tags), i)
	}
	queueTiers(batch, domain.TierIyan, menu.IyanQuantities)
	queueTiers(batch, domain.TierProtein, menu.ProteinQuantities)
	queueTiers(batch, domain.TierPortion, menu.Portions)
	for i, c := range menu.Combos {
		batch.Queue(insertComboSQL, c.ID, c.Name, c.Description, c.Soups, c.Discount, i)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		r.logger.Printf("menu repo: replace error=%v", err)
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}
	r.logger.Printf("menu repo: replace soups=%d proteins=%d combos=%d", len(menu.Soups), len(menu.Proteins), len(menu.Combos))
	return nil
}

const insertItemSQL = `
INSERT INTO menu_items (kind, id, name, price, description, tags, position)
VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7)
`

const insertTierSQL = `
INSERT INTO menu_tiers (kind, id, name, multiplier, position)
VALUES ($1, $2, $3, $4::numeric, $5)
`

const insertComboSQL = `
INSERT INTO menu_combos (id, name, description, soups, discount, position)
VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6)
`

func queueTiers(batch *pgx.Batch, kind domain.TierKind, tiers []domain.Tier) {
	for i, t := range tiers {
		batch.Queue(insertTierSQL, string(kind), t.ID, t.Name, t.Multiplier.String(), i)
	}
}

func setBasePrice(ctx context.Context, tx pgx.Tx, price int64) error {
	_, err := tx.Exec(ctx, `
INSERT INTO menu_settings (id, iyan_base_price) VALUES (1, $1)
ON CONFLICT (id) DO UPDATE SET iyan_base_price = EXCLUDED.iyan_base_price, updated_at = now()
`, price)
	return err
}

func (r *postgresRepo) SetBasePrice(ctx context.Context, price int64) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)
	if err := setBasePrice(ctx, tx, price); err != nil {
		r.logger.Printf("menu repo: set base price error=%v", err)
		return err
	}
	return tx.Commit(ctx)
}

func (r *postgresRepo) UpsertSoup(ctx context.Context, soup domain.Soup) error {
	return r.upsertItem(ctx, kindSoup, soup.ID, soup.Name, soup.Price, soup.Description, soup.Tags)
}

func (r *postgresRepo) UpsertProtein(ctx context.Context, protein domain.Protein) error {
	return r.upsertItem(ctx, kindProtein, protein.ID, protein.Name, protein.Price, protein.Description, protein.Tags)
}

func (r *postgresRepo) upsertItem(ctx context.Context, kind, id, name string, price int64, desc string, tags []string) error {
	const q = `
INSERT INTO menu_items (kind, id, name, price, description, tags, position)
VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6,
        (SELECT COALESCE(MAX(position), -1) + 1 FROM menu_items WHERE kind = $1))
ON CONFLICT (kind, id) DO UPDATE
SET name = EXCLUDED.name,
    price = EXCLUDED.price,
    description = EXCLUDED.description,
    tags = EXCLUDED.tags
`
	if _, err := r.pool.Exec(ctx, q, kind, id, name, price, desc, tagsOrEmpty(tags)); err != nil {
		r.logger.Printf("menu repo: upsert %s id=%s error=%v", kind, id, err)
		return err
	}
	r.logger.Printf("menu repo: upsert %s id=%s", kind, id)
	return nil
}

func (r *postgresRepo) UpsertTier(ctx context.Context, kind domain.TierKind, tier domain.Tier) error {
	const q = `
INSERT INTO menu_tiers (kind, id, name, multiplier, position)
VALUES ($1, $2, $3, $4::numeric,
        (SELECT COALESCE(MAX(position), -1) + 1 FROM menu_tiers WHERE kind = $1))
ON CONFLICT (kind, id) DO UPDATE
SET name = EXCLUDED.name,
    multiplier = EXCLUDED.multiplier
`
	if _, err := r.pool.Exec(ctx, q, string(kind), tier.ID, tier.Name, tier.Multiplier.String()); err != nil {
		r.logger.Printf("menu repo: upsert tier kind=%s id=%s error=%v", kind, tier.ID, err)
		return err
	}
	r.logger.Printf("menu repo: upsert tier kind=%s id=%s", kind, tier.ID)
	return nil
}

func (r *postgresRepo) UpsertCombo(ctx context.Context, combo domain.Combo) error {
	const q = `
INSERT INTO menu_combos (id, name, description, soups, discount, position)
VALUES ($1, $2, NULLIF($3, ''), $4, $5,
        (SELECT COALESCE(MAX(position), -1) + 1 FROM menu_combos))
ON CONFLICT (id) DO UPDATE
SET name = EXCLUDED.name,
    description = EXCLUDED.description,
    soups = EXCLUDED.soups,
    discount = EXCLUDED.discount
`
	if _, err := r.pool.Exec(ctx, q, combo.ID, combo.Name, combo.Description, combo.Soups, combo.Discount); err != nil {
		r.logger.Printf("menu repo: upsert combo id=%s error=%v", combo.ID, err)
		return err
	}
	r.logger.Printf("menu repo: upsert combo id=%s", combo.ID)
	return nil
}

func tagsOrEmpty(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

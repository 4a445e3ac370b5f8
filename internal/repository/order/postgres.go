package order

import (
	"context"
	"errors"
	"io"
	"log"
	"time"

	"iyan-ordering/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
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

func (r *postgresRepo) Create(ctx context.Context, order domain.Order) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
INSERT INTO orders (id, customer_name, total, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
`, order.ID, order.CustomerName, order.Total, string(order.Status), order.CreatedAt, order.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrAlreadyExists
		}
		r.logger.Printf("order repo: create id=%s error=%v", order.ID, err)
		return err
	}

	batch := &pgx.Batch{}
	for i, line := range order.Items {
		pq := line.ProteinQuantities
		if pq == nil {
			pq = map[string]string{}
		}
		batch.Queue(`
INSERT INTO order_lines (order_id, position, soups, proteins, iyan_quantity, portion, protein_quantities, quantity, price)
VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), $7, $8, $9)
`, order.ID, i, nonNil(line.Soups), nonNil(line.Proteins), line.IyanQuantity, line.Portion, pq, line.Quantity, line.Price)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		r.logger.Printf("order repo: create lines id=%s error=%v", order.ID, err)
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}
	r.logger.Printf("order repo: create id=%s lines=%d total=%d", order.ID, len(order.Items), order.Total)
	return nil
}

const selectOrderSQL = `
SELECT id, customer_name, total, status, created_at, updated_at
FROM orders
`

func (r *postgresRepo) Get(ctx context.Context, id string) (domain.Order, error) {
	var o domain.Order
	var status string
	err := r.pool.QueryRow(ctx, selectOrderSQL+`WHERE id = $1`, id).
		Scan(&o.ID, &o.CustomerName, &o.Total, &status, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Printf("order repo: get id=%s not found", id)
			return domain.Order{}, domain.ErrOrderNotFound
		}
		r.logger.Printf("order repo: get id=%s error=%v", id, err)
		return domain.Order{}, err
	}
	o.Status = domain.OrderStatus(status)

	lines, err := r.lines(ctx, []string{id})
	if err != nil {
		return domain.Order{}, err
	}
	o.Items = lines[id]
	return o, nil
}

func (r *postgresRepo) List(ctx context.Context, limit int) ([]domain.Order, error) {
	q := selectOrderSQL + `ORDER BY created_at DESC, id`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT $1`
		args = append(args, limit)
	}
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Printf("order repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var (
		result []domain.Order
		ids    []string
	)
	for rows.Next() {
		var o domain.Order
		var status string
		if err := rows.Scan(&o.ID, &o.CustomerName, &o.Total, &status, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		o.Status = domain.OrderStatus(status)
		result = append(result, o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("order repo: list rows error=%v", err)
		return nil, err
	}
	if len(ids) == 0 {
		return result, nil
	}

	lines, err := r.lines(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range result {
		result[i].Items = lines[result[i].ID]
	}
	r.logger.Printf("order repo: list count=%d", len(result))
	return result, nil
}

func (r *postgresRepo) lines(ctx context.Context, ids []string) (map[string][]domain.OrderLine, error) {
	const q = `
SELECT order_id, soups, proteins, COALESCE(iyan_quantity, ''), COALESCE(portion, ''), protein_quantities, quantity, price
FROM order_lines
WHERE order_id = ANY($1)
ORDER BY order_id, position
`
	rows, err := r.pool.Query(ctx, q, ids)
	if err != nil {
		r.logger.Printf("order repo: lines error=%v", err)
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]domain.OrderLine, len(ids))
	for rows.Next() {
		var (
			orderID string
			line    domain.OrderLine
			pq      map[string]string
		)
		if err := rows.Scan(&orderID, &line.Soups, &line.Proteins, &line.IyanQuantity, &line.Portion, &pq, &line.Quantity, &line.Price); err != nil {
			return nil, err
		}
		if len(pq) > 0 {
			line.ProteinQuantities = pq
		}
		out[orderID] = append(out[orderID], line)
	}
	return out, rows.Err()
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id string, from, to domain.OrderStatus, at time.Time) (domain.Order, error) {
	tag, err := r.pool.Exec(ctx, `
UPDATE orders
SET status = $1, updated_at = $2
WHERE id = $3 AND status = $4
`, string(to), at, id, string(from))
	if err != nil {
		r.logger.Printf("order repo: update status id=%s error=%v", id, err)
		return domain.Order{}, err
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.Get(ctx, id); err != nil {
			return domain.Order{}, err
		}
		r.logger.Printf("order repo: update status id=%s from=%s conflict", id, from)
		return domain.Order{}, domain.ErrConflict
	}
	r.logger.Printf("order repo: update status id=%s %s->%s", id, from, to)
	return r.Get(ctx, id)
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}

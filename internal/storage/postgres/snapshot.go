package postgres

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/xenking/pizzeria/internal/pkg/errs"
	"github.com/xenking/pizzeria/internal/snapshot"
)

const (
	upsertSnapshotSQL = `INSERT INTO snapshots (key, document, order_count, revenue, saved_at)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (key) DO UPDATE
	SET document = EXCLUDED.document,
		order_count = EXCLUDED.order_count,
		revenue = EXCLUDED.revenue,
		saved_at = EXCLUDED.saved_at`

	getSnapshotSQL = `SELECT document::text FROM snapshots WHERE key = $1`

	getSummarySQL = `SELECT order_count, revenue, saved_at FROM snapshots WHERE key = $1`
)

var _ snapshot.Storage = (*SnapshotRepository)(nil)

// Summary describes a stored snapshot without loading the document.
type Summary struct {
	Orders  int
	Revenue decimal.Decimal
	SavedAt time.Time
}

// SnapshotRepository implements snapshot.Storage backed by PostgreSQL.
// Each key holds the latest document along with its order count and revenue.
type SnapshotRepository struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// NewSnapshotRepository returns a SnapshotRepository that uses the given pool.
func NewSnapshotRepository(pool *pgxpool.Pool) *SnapshotRepository {
	return &SnapshotRepository{pool: pool, now: time.Now}
}

// Write upserts the document stored under key. The content must be a valid
// snapshot; its order totals are summed into the revenue column.
func (r *SnapshotRepository) Write(ctx context.Context, key string, content []byte) error {
	doc, err := snapshot.Decode(content)
	if err != nil {
		return errors.Wrapf(err, "summarize snapshot %q", key)
	}

	revenue := decimal.Zero
	for _, o := range doc.Orders {
		revenue = revenue.Add(o.Total)
	}

	_, err = r.pool.Exec(ctx, upsertSnapshotSQL, key, content, len(doc.Orders), revenue, r.now())
	if err != nil {
		return errors.Wrapf(err, "save snapshot %q", key)
	}
	return nil
}

// Read returns the document stored under key.
func (r *SnapshotRepository) Read(ctx context.Context, key string) ([]byte, error) {
	var document string
	if err := r.pool.QueryRow(ctx, getSnapshotSQL, key).Scan(&document); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.NewNotFoundError("snapshot", key)
		}
		return nil, errors.Wrapf(err, "load snapshot %q", key)
	}
	return []byte(document), nil
}

// Summary returns the order count and revenue recorded with the snapshot.
func (r *SnapshotRepository) Summary(ctx context.Context, key string) (*Summary, error) {
	var s Summary
	if err := r.pool.QueryRow(ctx, getSummarySQL, key).Scan(&s.Orders, &s.Revenue, &s.SavedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.NewNotFoundError("snapshot", key)
		}
		return nil, errors.Wrapf(err, "load snapshot summary %q", key)
	}
	return &s, nil
}

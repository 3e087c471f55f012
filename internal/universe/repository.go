package universe

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists index constituents. The table is a plain mirror
// of the latest scrape; history is not kept.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a Repository backed by the given pool.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Constituents returns the stored list for a market ordered by rank,
// largest companies first. An empty slice means the market has never
// been refreshed.
func (r *Repository) Constituents(ctx context.Context, market string) ([]Constituent, error) {
	query := `
		SELECT ticker, name
		FROM universe_constituents
		WHERE market = $1
		ORDER BY rank ASC
	`

	rows, err := r.db.Query(ctx, query, market)
	if err != nil {
		return nil, fmt.Errorf("query constituents: %w", err)
	}
	defer rows.Close()

	var out []Constituent
	for rows.Next() {
		var c Constituent
		if err := rows.Scan(&c.Ticker, &c.Name); err != nil {
			return nil, fmt.Errorf("scan constituent: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate constituents: %w", err)
	}

	return out, nil
}

// Replace swaps a market's stored constituents for the given list
// atomically. Rank follows slice order.
func (r *Repository) Replace(ctx context.Context, market string, constituents []Constituent) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM universe_constituents WHERE market = $1`, market); err != nil {
		return fmt.Errorf("clear constituents: %w", err)
	}

	batch := &pgx.Batch{}
	query := `
		INSERT INTO universe_constituents (market, ticker, name, rank, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
	`
	for i, c := range constituents {
		batch.Queue(query, market, c.Ticker, c.Name, i+1)
	}

	br := tx.SendBatch(ctx, batch)
	for range constituents {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("insert constituent: %w", err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("close batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

package pg

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stockbrief/stock-shorts/internal/domain"
)

// Archive mirrors the last successfully synced article set to Postgres so a
// restart does not reset view counts. It is written after a sync commits and
// read once at startup; the in-memory store stays the serving source.
type Archive struct {
	pool *ConnectionPool
}

func NewArchive(pool *ConnectionPool) *Archive {
	return &Archive{pool: pool}
}

const createSchema = `
CREATE TABLE IF NOT EXISTS article_snapshots (
    id            INTEGER PRIMARY KEY,
    title         TEXT NOT NULL,
    content       TEXT NOT NULL,
    category      TEXT NOT NULL,
    stock_symbol  TEXT NOT NULL DEFAULT '',
    stock_price   TEXT NOT NULL DEFAULT '',
    price_change  TEXT NOT NULL DEFAULT '',
    exchange      TEXT NOT NULL DEFAULT '',
    price_target  TEXT NOT NULL DEFAULT '',
    image_url     TEXT NOT NULL,
    is_premium    BOOLEAN NOT NULL DEFAULT FALSE,
    view_count    BIGINT NOT NULL DEFAULT 0,
    time_ago      TEXT NOT NULL DEFAULT '',
    source        TEXT NOT NULL DEFAULT '',
    sentiment     TEXT NOT NULL DEFAULT '',
    created_at    TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS sync_state (
    singleton  BOOLEAN PRIMARY KEY DEFAULT TRUE,
    synced_at  TIMESTAMPTZ NOT NULL
);`

func (a *Archive) Init(ctx context.Context) error {
	if _, err := a.pool.conn.Exec(ctx, createSchema); err != nil {
		return fmt.Errorf("failed to create archive schema: %w", err)
	}
	return nil
}

// SaveSnapshot replaces the archived set with the given one in a single
// transaction, so a reader of the archive sees all-or-nothing as well.
func (a *Archive) SaveSnapshot(ctx context.Context, articles []domain.Article, syncedAt time.Time) error {
	tx, err := a.pool.conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin snapshot tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, "TRUNCATE article_snapshots"); err != nil {
		return fmt.Errorf("failed to truncate snapshot table: %w", err)
	}

	rows := make([][]interface{}, len(articles))
	for i, art := range articles {
		rows[i] = []interface{}{
			art.ID,
			art.Title,
			art.Content,
			string(art.Category),
			art.StockSymbol,
			art.StockPrice,
			art.PriceChange,
			art.Exchange,
			art.PriceTarget,
			art.ImageURL,
			art.IsPremium,
			art.ViewCount,
			art.TimeAgo,
			art.Source,
			art.Sentiment,
			art.CreatedAt,
		}
	}

	_, err = tx.CopyFrom(
		ctx,
		pgx.Identifier{"article_snapshots"},
		[]string{
			"id", "title", "content", "category", "stock_symbol", "stock_price",
			"price_change", "exchange", "price_target", "image_url", "is_premium",
			"view_count", "time_ago", "source", "sentiment", "created_at",
		},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("failed to bulk insert snapshot: %w", err)
	}

	_, err = tx.Exec(ctx, `
        INSERT INTO sync_state (singleton, synced_at) VALUES (TRUE, $1)
        ON CONFLICT (singleton) DO UPDATE SET synced_at = EXCLUDED.synced_at`,
		syncedAt)
	if err != nil {
		return fmt.Errorf("failed to record sync time: %w", err)
	}

	return tx.Commit(ctx)
}

// LoadSnapshot returns the archived set and its sync time. An empty archive
// returns no articles, a zero time and no error.
func (a *Archive) LoadSnapshot(ctx context.Context) ([]domain.Article, time.Time, error) {
	var syncedAt time.Time
	err := a.pool.conn.QueryRow(ctx, "SELECT synced_at FROM sync_state WHERE singleton").Scan(&syncedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, time.Time{}, nil
		}
		return nil, time.Time{}, fmt.Errorf("failed to read sync state: %w", err)
	}

	rows, err := a.pool.conn.Query(ctx, `
        SELECT id, title, content, category, stock_symbol, stock_price,
               price_change, exchange, price_target, image_url, is_premium,
               view_count, time_ago, source, sentiment, created_at
        FROM article_snapshots ORDER BY id`)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to query snapshot: %w", err)
	}
	defer rows.Close()

	var articles []domain.Article
	for rows.Next() {
		var art domain.Article
		var category string
		if err := rows.Scan(
			&art.ID, &art.Title, &art.Content, &category, &art.StockSymbol,
			&art.StockPrice, &art.PriceChange, &art.Exchange, &art.PriceTarget,
			&art.ImageURL, &art.IsPremium, &art.ViewCount, &art.TimeAgo,
			&art.Source, &art.Sentiment, &art.CreatedAt,
		); err != nil {
			return nil, time.Time{}, fmt.Errorf("failed to scan snapshot row: %w", err)
		}
		art.Category = domain.Category(category)
		articles = append(articles, art)
	}
	if err := rows.Err(); err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to iterate snapshot rows: %w", err)
	}

	return articles, syncedAt, nil
}

package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blkindex/internal/model"
)

// IndexWatermark returns the highest flushed block height for a coin/network.
// The second return value reports whether a watermark exists at all.
func (r *Repository) IndexWatermark(ctx context.Context, coin model.Coin, network model.Network) (uint64, bool, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("index_watermark", coin, network, err, start)
	}()

	const query = `
SELECT toUInt64(max(height)) as height, count() as cnt
FROM raw_index_watermarks
WHERE coin = ? AND network = ?`

	rows, err := r.conn.Query(ctx, query, coin, network)
	if err != nil {
		return 0, false, fmt.Errorf("query index watermark: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return 0, false, nil
	}

	var height uint64
	var cnt uint64
	if err = rows.Scan(&height, &cnt); err != nil {
		return 0, false, fmt.Errorf("scan index watermark: %w", err)
	}
	if cnt == 0 {
		return 0, false, nil
	}
	return height, true, nil
}

// SetIndexWatermark records the highest flushed block height. Called only
// after the chunk covering that height was durably stored.
func (r *Repository) SetIndexWatermark(ctx context.Context, coin model.Coin, network model.Network, height uint64) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("set_index_watermark", coin, network, err, start)
	}()

	const query = `
INSERT INTO raw_index_watermarks (coin, network, height, updated_at)
VALUES (?, ?, ?, ?)`

	if err = r.conn.Exec(ctx, query, coin, network, height, time.Now().UTC()); err != nil {
		return fmt.Errorf("set index watermark: %w", err)
	}
	return nil
}

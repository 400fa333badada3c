package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blkindex/internal/model"
)

// MissingBlockHeights returns heights up to maxHeight where no block's
// latest status is main, used by post-run verification to report unresolved
// gaps. A retracted block does not cover its height.
func (r *Repository) MissingBlockHeights(ctx context.Context, coin model.Coin, network model.Network, maxHeight, limit uint64) ([]uint64, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("missing_block_heights", coin, network, err, start)
	}()

	if limit == 0 {
		return nil, nil
	}

	const query = `
WITH toUInt64(?) AS mx
SELECT number AS height
FROM numbers(mx + 1) AS m
LEFT ANTI JOIN (
	SELECT height
	FROM (
		SELECT height, hash, argMax(status, inserted_at) AS last_status
		FROM raw_blocks
		WHERE coin = ? AND network = ? AND height <= mx
		GROUP BY height, hash
	)
	WHERE last_status = 'main'
) AS b ON b.height = m.number
WHERE m.number <= mx
ORDER BY height
LIMIT ?`

	rows, err := r.conn.Query(ctx, query, maxHeight, coin, network, limit)
	if err != nil {
		return nil, fmt.Errorf("query missing block heights: %w", err)
	}
	defer rows.Close()

	var heights []uint64
	for rows.Next() {
		var height uint64
		if err = rows.Scan(&height); err != nil {
			return nil, fmt.Errorf("scan missing block height: %w", err)
		}
		heights = append(heights, height)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate missing block heights: %w", err)
	}

	return heights, nil
}

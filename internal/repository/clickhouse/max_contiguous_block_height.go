package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blkindex/internal/model"
)

// MaxContiguousBlockHeight returns the highest height H such that every
// height in [0, H] holds a block whose latest status is main.
func (r *Repository) MaxContiguousBlockHeight(ctx context.Context, coin model.Coin, network model.Network) (uint64, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("max_contiguous_block_height", coin, network, err, start)
	}()

	const query = `WITH data AS (
    SELECT
        height,
        row_number() OVER (ORDER BY height) - 1 AS rn
    FROM (
        SELECT height, hash, argMax(status, inserted_at) AS last_status
        FROM raw_blocks
        WHERE coin = ? AND network = ?
        GROUP BY height, hash
    )
    WHERE last_status = 'main'
    GROUP BY height
)
SELECT max(height) AS max_contiguous_height
FROM data
WHERE rn = height LIMIT 1`

	rows, err := r.conn.Query(ctx, query, coin, network)
	if err != nil {
		return 0, fmt.Errorf("query max contiguous block height: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	var height uint64
	if !rows.Next() {
		return 0, fmt.Errorf("not found max contiguous block height")
	}

	if err = rows.Scan(&height); err != nil {
		return 0, fmt.Errorf("scan max contiguous block height: %w", err)
	}

	return height, nil
}

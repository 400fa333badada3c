package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blkindex/internal/model"
)

// RetractBlocks tombstones previously-emitted blocks that were orphaned by
// fork resolution. Rows are appended, not deleted: a later row with status
// 'orphaned' supersedes the 'main' row on ReplacingMergeTree merges, and
// readers filter on the latest status.
func (r *Repository) RetractBlocks(ctx context.Context, retractions []model.Retraction) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("retract_blocks", firstCoin(retractions), firstNetwork(retractions), err, start)
	}()

	if len(retractions) == 0 {
		return nil
	}

	const query = `
INSERT INTO raw_blocks (
	coin,
	network,
	height,
	hash,
	status
) VALUES`

	batch, err := r.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare retractions batch: %w", err)
	}

	for _, retraction := range retractions {
		if err = batch.Append(
			string(retraction.Coin),
			string(retraction.Network),
			retraction.Height,
			retraction.Hash,
			string(model.BlockOrphaned),
		); err != nil {
			return fmt.Errorf("append retraction: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("retract blocks: %w", err)
	}
	return nil
}

package indexer

import (
	"context"
	"sync"
	"time"

	"github.com/goodnatureofminers/blkindex/internal/clock"
	"github.com/goodnatureofminers/blkindex/internal/model"
	"github.com/goodnatureofminers/blkindex/pkg/batcher"
	"go.uber.org/zap"
)

// chunkWriter buffers confirmed blocks and flushes them as one insert per
// table, then advances the resume watermark. A flush that still fails after
// retries is fatal to the pipeline: the stored error surfaces through Err and
// the cancel hook stops the producers, so the watermark never claims rows
// that were not written.
type chunkWriter struct {
	repo    ClickhouseRepository
	metrics IndexerMetrics
	logger  *zap.Logger
	coin    model.Coin
	network model.Network
	sleep   func(context.Context, time.Duration) error

	blockBatcher *batcher.Batcher[model.InsertBlock]
	cancel       func()
	startCtx     context.Context

	mu                 sync.Mutex
	flushErr           error
	watermark          uint64
	pendingRetractions []model.Retraction
}

func newChunkWriter(
	repo ClickhouseRepository,
	metrics IndexerMetrics,
	coin model.Coin,
	network model.Network,
	chunkSize int,
	flushInterval time.Duration,
	logger *zap.Logger,
) *chunkWriter {
	w := &chunkWriter{
		repo:    repo,
		metrics: metrics,
		logger:  logger,
		coin:    coin,
		network: network,
		sleep:   clock.SleepWithContext,
	}

	w.blockBatcher = batcher.New[model.InsertBlock](
		logger.Named("blockBatcher"),
		w.flush,
		chunkSize,
		flushInterval,
		1,
	)
	return w
}

func (w *chunkWriter) Start(ctx context.Context) {
	w.startCtx = ctx
	w.blockBatcher.Start(ctx)
}

// Stop flushes whatever the batcher holds, then drains retractions that no
// block chunk carried out.
func (w *chunkWriter) Stop() {
	w.blockBatcher.Stop()

	ctx := w.startCtx
	if ctx == nil {
		ctx = context.Background()
	}
	if err := w.withRetry(ctx, w.applyRetractions); err != nil {
		w.fail(err)
	}
}

func (w *chunkWriter) SetCancel(cancel func()) {
	w.cancel = cancel
}

// Err returns the first fatal flush error, if any.
func (w *chunkWriter) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.flushErr
}

func (w *chunkWriter) WriteBlock(ctx context.Context, b model.InsertBlock) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return w.blockBatcher.Add(ctx, b)
}

// WriteRetractions queues tombstones for orphaned blocks. They are inserted
// during the next flush, after the table inserts: a tombstone must land with
// a later insert time than the row it retracts, and that row may still be
// sitting in the current chunk buffer.
func (w *chunkWriter) WriteRetractions(ctx context.Context, retractions []model.Retraction) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	w.mu.Lock()
	w.pendingRetractions = append(w.pendingRetractions, retractions...)
	w.mu.Unlock()

	// Push the current chunk out promptly so readers see the tombstones.
	w.blockBatcher.Flush()
	return nil
}

func (w *chunkWriter) flush(ctx context.Context, insertBlocks []model.InsertBlock) error {
	started := time.Now()
	err := w.withRetry(ctx, func(ctx context.Context) error {
		return w.flushOnce(ctx, insertBlocks)
	})
	w.metrics.ObserveChunkFlush(err, len(insertBlocks), started)
	if err != nil {
		w.fail(err)
		return err
	}
	return nil
}

func (w *chunkWriter) flushOnce(ctx context.Context, insertBlocks []model.InsertBlock) error {
	blocks := make([]model.Block, 0, len(insertBlocks))
	txs := make([]model.Transaction, 0, len(insertBlocks))
	var inputs []model.TransactionInput
	var outputs []model.TransactionOutput

	maxHeight := uint64(0)
	for _, b := range insertBlocks {
		blocks = append(blocks, b.Block)
		txs = append(txs, b.Txs...)
		inputs = append(inputs, b.Inputs...)
		outputs = append(outputs, b.Outputs...)
		if b.Block.Height > maxHeight {
			maxHeight = b.Block.Height
		}
	}

	if err := w.repo.InsertBlocks(ctx, blocks); err != nil {
		return err
	}
	if err := w.repo.InsertTransactions(ctx, txs); err != nil {
		return err
	}
	if err := w.repo.InsertTransactionInputs(ctx, inputs); err != nil {
		return err
	}
	if err := w.repo.InsertTransactionOutputs(ctx, outputs); err != nil {
		return err
	}
	if err := w.applyRetractions(ctx); err != nil {
		return err
	}

	return w.advanceWatermark(ctx, maxHeight)
}

func (w *chunkWriter) applyRetractions(ctx context.Context) error {
	w.mu.Lock()
	pending := w.pendingRetractions
	w.pendingRetractions = nil
	w.mu.Unlock()

	if len(pending) == 0 {
		return nil
	}
	if err := w.repo.RetractBlocks(ctx, pending); err != nil {
		w.mu.Lock()
		w.pendingRetractions = append(pending, w.pendingRetractions...)
		w.mu.Unlock()
		return err
	}
	w.metrics.AddRetractedBlocks(len(pending))
	return nil
}

// advanceWatermark is monotonic: flushes carry ascending heights because the
// linker confirms in height order, but a replayed chunk must never move the
// watermark backwards.
func (w *chunkWriter) advanceWatermark(ctx context.Context, height uint64) error {
	w.mu.Lock()
	current := w.watermark
	w.mu.Unlock()

	if height <= current {
		return nil
	}
	if err := w.repo.SetIndexWatermark(ctx, w.coin, w.network, height); err != nil {
		return err
	}

	w.mu.Lock()
	if height > w.watermark {
		w.watermark = height
	}
	w.mu.Unlock()
	return nil
}

func (w *chunkWriter) withRetry(ctx context.Context, fn func(context.Context) error) error {
	var err error
	for attempt := 0; attempt < flushRetries; attempt++ {
		if err = fn(ctx); err == nil {
			return nil
		}
		w.logger.Warn("write attempt failed",
			zap.Int("attempt", attempt+1),
			zap.Error(err),
		)
		if ctx.Err() != nil {
			return err
		}
		if attempt < flushRetries-1 {
			if sleepErr := w.sleep(ctx, flushRetryBackoff*time.Duration(attempt+1)); sleepErr != nil {
				return err
			}
		}
	}
	return err
}

func (w *chunkWriter) fail(err error) {
	w.mu.Lock()
	if w.flushErr == nil {
		w.flushErr = err
	}
	w.mu.Unlock()

	if w.cancel != nil {
		w.cancel()
	}
}

// Package indexer orchestrates the raw block-file indexing pipeline: scan
// blk files, decode blocks, link them into a canonical chain, and emit
// confirmed rows to ClickHouse in chunks.
package indexer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/blkindex/internal/blockfile"
	"github.com/goodnatureofminers/blkindex/internal/chainlink"
	"github.com/goodnatureofminers/blkindex/internal/codec"
	"github.com/goodnatureofminers/blkindex/internal/model"
	"github.com/goodnatureofminers/blkindex/internal/script"
	"github.com/goodnatureofminers/blkindex/pkg/safe"
	"github.com/goodnatureofminers/blkindex/pkg/workerpool"
	"go.uber.org/zap"
)

// Config carries the tunables of a single indexing run. Zero values fall
// back to defaults.
type Config struct {
	BlocksDir     string
	ChunkSize     int
	FlushInterval time.Duration
	ScanWorkers   int
	DecodeWorkers int

	// EvictionHorizon bounds linker memory: confirmed links this many
	// blocks behind the tip become anchors.
	EvictionHorizon uint64

	// AnchorHeight/AnchorHash pin a trusted starting block, for nodes
	// whose prune point cannot be discovered over RPC.
	AnchorHeight uint64
	AnchorHash   string

	// Reindex ignores the persisted watermark and re-emits every
	// confirmed block. Inserts are idempotent per (hash, status).
	Reindex bool
}

// BlockIndexerService drives one pass over a block-file directory.
type BlockIndexerService struct {
	logger  *zap.Logger
	coin    model.Coin
	network model.Network
	magic   [4]byte
	metrics IndexerMetrics
	repo    ClickhouseRepository
	node    NodeClient
	writer  BlockWriter
	builder *rowBuilder

	blocksDir       string
	scanWorkers     int
	decodeWorkers   int
	evictionHorizon uint64
	reindex         bool
	anchorOverride  *chainlink.Anchor
	genesisAnchor   *chainlink.Anchor

	// anchorHeights lets the link stage emit rows for blocks the linker
	// treats as trusted anchors, the genesis block chiefly.
	anchorHeights map[chainhash.Hash]uint64
}

// NewBlockIndexerService builds a BlockIndexerService. The node client is
// optional: without it fork ties fall back to discovery order and pruned
// anchors must come from the config.
func NewBlockIndexerService(
	repo ClickhouseRepository,
	nodeClient NodeClient,
	metrics IndexerMetrics,
	params *model.ChainParams,
	cfg Config,
	logger *zap.Logger,
) (*BlockIndexerService, error) {
	logger = logger.With(
		zap.String("coin", string(params.Coin)),
		zap.String("network", string(params.Network)),
	)
	if metrics == nil {
		return nil, errors.New("indexer metrics is required")
	}
	if cfg.BlocksDir == "" {
		return nil, errors.New("blocks directory is required")
	}

	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = defaultChunkSize
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = defaultFlushInterval
	}
	if cfg.ScanWorkers <= 0 {
		cfg.ScanWorkers = defaultScanWorkers
	}
	if cfg.DecodeWorkers <= 0 {
		cfg.DecodeWorkers = defaultDecodeWorkers
	}
	if cfg.EvictionHorizon == 0 {
		cfg.EvictionHorizon = defaultEvictionHorizon
	}

	s := &BlockIndexerService{
		logger:  logger,
		coin:    params.Coin,
		network: params.Network,
		magic:   params.Magic,
		metrics: metrics,
		repo:    repo,
		node:    nodeClient,
		writer: newChunkWriter(
			repo,
			metrics,
			params.Coin,
			params.Network,
			cfg.ChunkSize,
			cfg.FlushInterval,
			logger.Named("chunkWriter"),
		),
		builder: &rowBuilder{
			coin:       params.Coin,
			network:    params.Network,
			classifier: script.NewClassifier(params.Params),
		},
		blocksDir:       cfg.BlocksDir,
		scanWorkers:     cfg.ScanWorkers,
		decodeWorkers:   cfg.DecodeWorkers,
		evictionHorizon: cfg.EvictionHorizon,
		reindex:         cfg.Reindex,
	}

	if params.Params.GenesisHash != nil {
		s.genesisAnchor = &chainlink.Anchor{Height: 0, Hash: *params.Params.GenesisHash}
	}
	if cfg.AnchorHash != "" {
		h, err := chainhash.NewHashFromStr(cfg.AnchorHash)
		if err != nil {
			return nil, fmt.Errorf("parse anchor hash: %w", err)
		}
		s.anchorOverride = &chainlink.Anchor{Height: cfg.AnchorHeight, Hash: *h}
	}

	return s, nil
}

// Run performs one full indexing pass and returns once every discovered
// block file has been consumed and all chunks are flushed.
func (s *BlockIndexerService) Run(ctx context.Context) error {
	files, err := blockfile.Discover(s.blocksDir)
	if err != nil {
		return fmt.Errorf("discover block files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no block files in %s", s.blocksDir)
	}
	s.logger.Info("starting indexing pass", zap.Int("files", len(files)))

	watermark, resume, err := s.repo.IndexWatermark(ctx, s.coin, s.network)
	if err != nil {
		return fmt.Errorf("read index watermark: %w", err)
	}
	if resume && s.reindex {
		s.logger.Info("reindexing, ignoring watermark", zap.Uint64("watermark", watermark))
		watermark, resume = 0, false
	}
	if resume {
		s.logger.Info("resuming above watermark", zap.Uint64("watermark", watermark))
	}

	anchors, bestHash := s.resolveAnchors(ctx)
	lk := chainlink.New[model.InsertBlock](s.logger.Named("linker"), anchors)
	if bestHash != nil {
		lk.SetBestHash(*bestHash)
	}
	s.anchorHeights = make(map[chainhash.Hash]uint64, len(anchors))
	for _, a := range anchors {
		s.anchorHeights[a.Hash] = a.Height
	}

	pipeCtx, pipeCancel := context.WithCancel(ctx)
	defer pipeCancel()

	// The writer runs on the outer context so a clean shutdown can still
	// flush; a fatal flush error cancels the pipeline instead.
	s.writer.SetCancel(pipeCancel)
	s.writer.Start(ctx)

	pipelineErr := s.runPipeline(pipeCtx, files, lk, watermark, resume)
	s.writer.Stop()

	if err := s.writer.Err(); err != nil {
		return fmt.Errorf("flush chunks: %w", err)
	}
	if pipelineErr != nil {
		return pipelineErr
	}

	s.verify(ctx, lk)
	return nil
}

func (s *BlockIndexerService) resolveAnchors(ctx context.Context) ([]chainlink.Anchor, *chainhash.Hash) {
	var anchors []chainlink.Anchor
	if s.genesisAnchor != nil {
		anchors = append(anchors, *s.genesisAnchor)
	}
	if s.anchorOverride != nil {
		anchors = append(anchors, *s.anchorOverride)
	}
	if s.node == nil {
		return anchors, nil
	}

	info, err := s.node.ChainInfo(ctx)
	if err != nil {
		s.logger.Warn("node unavailable, fork ties will use discovery order", zap.Error(err))
		return anchors, nil
	}
	bestHash := info.BestHash

	if info.Pruned && info.PruneHeight > 0 {
		parent := info.PruneHeight - 1
		height, err := safe.Uint64(parent)
		if err != nil {
			s.logger.Warn("node reported invalid prune height", zap.Int64("prune_height", info.PruneHeight))
			return anchors, &bestHash
		}
		h, err := s.node.BlockHash(ctx, parent)
		if err != nil {
			s.logger.Warn("prune-point hash lookup failed",
				zap.Int64("height", parent),
				zap.Error(err),
			)
		} else {
			anchors = append(anchors, chainlink.Anchor{Height: height, Hash: *h})
			s.logger.Info("anchored at prune point",
				zap.Int64("height", parent),
				zap.String("hash", h.String()),
			)
		}
	}
	return anchors, &bestHash
}

func (s *BlockIndexerService) runPipeline(
	ctx context.Context,
	files []string,
	lk *chainlink.Linker[model.InsertBlock],
	watermark uint64,
	resume bool,
) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	records := make(chan *blockfile.RawBlockRecord, recordQueueCapacity)
	decoded := make(chan linkItem, decodedQueueCapacity)

	var scanErr, decodeErr, linkErr error
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(records)
		scanErr = workerpool.Process(ctx, s.scanWorkers, files, s.scanFile(records), nil)
		if scanErr != nil {
			cancel()
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(decoded)
		decodeErr = workerpool.ProcessChan(ctx, s.decodeWorkers, records, s.decodeRecord(decoded), nil)
		if decodeErr != nil {
			cancel()
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		linkErr = s.linkBlocks(ctx, decoded, lk, watermark, resume)
		if linkErr != nil {
			cancel()
		}
	}()

	wg.Wait()
	return firstError(linkErr, decodeErr, scanErr)
}

// firstError prefers a real failure over the context errors the sibling
// stages report after a cancel.
func firstError(errs ...error) error {
	var fallback error
	for _, err := range errs {
		if err == nil {
			continue
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			if fallback == nil {
				fallback = err
			}
			continue
		}
		return err
	}
	return fallback
}

// scanFile extracts every framed block from one file. Framing corruption is
// not fatal: records before the corrupt offset stay valid and the rest of
// the file is skipped.
func (s *BlockIndexerService) scanFile(records chan<- *blockfile.RawBlockRecord) func(context.Context, string) error {
	return func(ctx context.Context, path string) error {
		started := time.Now()
		err := s.scanFileOnce(ctx, path, records)
		s.metrics.ObserveScanFile(err, started)
		return err
	}
}

func (s *BlockIndexerService) scanFileOnce(ctx context.Context, path string, records chan<- *blockfile.RawBlockRecord) error {
	sc, err := blockfile.NewScanner(path, s.magic)
	if err != nil {
		return err
	}
	defer sc.Close()

	for {
		rec, err := sc.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}

		var framingErr *blockfile.FramingError
		if errors.As(err, &framingErr) {
			s.logger.Warn("block file corrupt, skipping remainder",
				zap.String("file", framingErr.File),
				zap.Int64("offset", framingErr.Offset),
				zap.String("reason", framingErr.Reason),
			)
			return nil
		}
		if err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case records <- rec:
		}
	}
}

// decodeRecord decodes one raw block and builds its rows. Malformed blocks
// are counted and skipped; they never stop the pass.
func (s *BlockIndexerService) decodeRecord(decoded chan<- linkItem) func(context.Context, *blockfile.RawBlockRecord) error {
	return func(ctx context.Context, rec *blockfile.RawBlockRecord) error {
		started := time.Now()
		block, err := codec.DecodeBlock(rec.Raw)
		s.metrics.ObserveDecodeBlock(err, started)
		if err != nil {
			if codec.IsMalformed(err) {
				s.logger.Warn("malformed block skipped",
					zap.String("file", rec.File),
					zap.Int64("offset", rec.Offset),
					zap.Error(err),
				)
				return nil
			}
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case decoded <- s.builder.build(block):
			return nil
		}
	}
}

// linkBlocks is the single consumer of decoded blocks: it owns the linker,
// emits confirmed rows above the watermark, and retracts orphaned branches.
func (s *BlockIndexerService) linkBlocks(
	ctx context.Context,
	decoded <-chan linkItem,
	lk *chainlink.Linker[model.InsertBlock],
	watermark uint64,
	resume bool,
) error {
	emittedAnchors := make(map[chainhash.Hash]bool)
	var observed, confirmed uint64
	lastProgress := time.Now()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case item, ok := <-decoded:
			if !ok {
				return nil
			}

			observed++
			out := lk.Observe(item.hash, item.prev, item.rows)
			if len(out.Confirmed) == 0 && len(out.Retracted) == 0 {
				if h, anchored := s.anchorHeights[item.hash]; anchored && !emittedAnchors[item.hash] {
					emittedAnchors[item.hash] = true
					out.Confirmed = append(out.Confirmed, chainlink.Confirmed[model.InsertBlock]{
						Height:  h,
						Hash:    item.hash,
						Payload: item.rows,
					})
				}
			}

			for _, c := range out.Confirmed {
				if c.LowConfidence {
					s.logger.Warn("fork resolved by discovery order",
						zap.Uint64("height", c.Height),
						zap.String("hash", c.Hash.String()),
					)
				}
				if hint := c.Payload.HeightHint; hint >= 0 && uint64(hint) != c.Height {
					s.logger.Warn("coinbase height disagrees with linked height",
						zap.Uint64("height", c.Height),
						zap.Int64("coinbase_height", hint),
						zap.String("hash", c.Hash.String()),
					)
				}
				if resume && c.Height <= watermark {
					continue
				}
				if err := s.writer.WriteBlock(ctx, finalizeRows(c.Payload, c.Height)); err != nil {
					return err
				}
			}
			if len(out.Confirmed) > 0 {
				confirmed += uint64(len(out.Confirmed))
				s.metrics.AddConfirmedBlocks(len(out.Confirmed))
			}

			if len(out.Retracted) > 0 {
				retractions := make([]model.Retraction, 0, len(out.Retracted))
				for _, r := range out.Retracted {
					s.logger.Info("retracting orphaned block",
						zap.Uint64("height", r.Height),
						zap.String("hash", r.Hash.String()),
					)
					retractions = append(retractions, model.Retraction{
						Coin:    s.coin,
						Network: s.network,
						Height:  r.Height,
						Hash:    r.Hash.String(),
					})
				}
				if err := s.writer.WriteRetractions(ctx, retractions); err != nil {
					return err
				}
			}

			s.metrics.SetPendingLinks(lk.PendingCount())
			if tip := lk.TipHeight(); tip > s.evictionHorizon {
				lk.EvictBelow(tip - s.evictionHorizon)
			}

			if time.Since(lastProgress) >= progressLogInterval {
				lastProgress = time.Now()
				s.logger.Info("indexing progress",
					zap.Uint64("observed", observed),
					zap.Uint64("confirmed", confirmed),
					zap.Uint64("tip", lk.TipHeight()),
					zap.Int("pending", lk.PendingCount()),
				)
			}
		}
	}
}

// finalizeRows stamps the canonical height onto every row of a confirmed
// block.
func finalizeRows(rows model.InsertBlock, height uint64) model.InsertBlock {
	rows.Block.Height = height
	rows.Block.Status = model.BlockMain
	for i := range rows.Txs {
		rows.Txs[i].BlockHeight = height
	}
	for i := range rows.Inputs {
		rows.Inputs[i].BlockHeight = height
	}
	for i := range rows.Outputs {
		rows.Outputs[i].BlockHeight = height
	}
	return rows
}

// verify reports coverage after a pass. Failures here are logged, not
// returned: the indexed data is already durable.
func (s *BlockIndexerService) verify(ctx context.Context, lk *chainlink.Linker[model.InsertBlock]) {
	for _, gap := range lk.Unresolved() {
		s.logger.Warn("pending blocks with unknown ancestor",
			zap.String("missing_parent", gap.MissingParent.String()),
			zap.Int("blocks", gap.Blocks),
		)
	}

	tip := lk.TipHeight()
	if tip == 0 {
		return
	}

	maxContiguous, err := s.repo.MaxContiguousBlockHeight(ctx, s.coin, s.network)
	if err != nil {
		s.logger.Warn("coverage check failed", zap.Error(err))
		return
	}
	missing, err := s.repo.MissingBlockHeights(ctx, s.coin, s.network, tip, missingHeightsReportLimit)
	if err != nil {
		s.logger.Warn("missing-heights check failed", zap.Error(err))
		return
	}

	if len(missing) > 0 {
		s.logger.Warn("indexed chain has holes",
			zap.Uint64("max_contiguous", maxContiguous),
			zap.Uint64("tip", tip),
			zap.Uint64s("missing", missing),
		)
		return
	}
	s.logger.Info("indexing pass complete",
		zap.Uint64("max_contiguous", maxContiguous),
		zap.Uint64("tip", tip),
	)
}

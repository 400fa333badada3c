// Package node talks to the coin daemon over JSON-RPC. The daemon is an
// optional metadata oracle: every call carries a timeout and bounded
// retries, and callers are expected to keep working when it is down.
package node

import (
	"context"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/rpcclient"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/blkindex/internal/clock"
)

type Metrics interface {
	Observe(operation string, err error, started time.Time)
}

type rawClient interface {
	GetBlockCount() (int64, error)
	GetBestBlockHash() (*chainhash.Hash, error)
	GetBlockHash(blockHeight int64) (*chainhash.Hash, error)
	GetBlockChainInfo() (*btcjson.GetBlockChainInfoResult, error)
}

// ChainInfo is a snapshot of the daemon's view of the chain.
type ChainInfo struct {
	TipHeight   int64
	BestHash    chainhash.Hash
	Pruned      bool
	PruneHeight int64
}

// Client wraps rpcclient.Client with metrics, timeouts and retries.
type Client struct {
	rpc     rawClient
	metrics Metrics
	logger  *zap.Logger
	timeout time.Duration
	retries int
	backoff time.Duration
}

func NewClient(rpc *rpcclient.Client, metrics Metrics, logger *zap.Logger, timeout time.Duration, retries int) *Client {
	return newClient(rpc, metrics, logger, timeout, retries)
}

func newClient(rpc rawClient, metrics Metrics, logger *zap.Logger, timeout time.Duration, retries int) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if retries < 0 {
		retries = 0
	}
	return &Client{
		rpc:     rpc,
		metrics: metrics,
		logger:  logger.Named("node"),
		timeout: timeout,
		retries: retries,
		backoff: time.Second,
	}
}

// ChainInfo fetches tip height, best hash and the prune boundary in one call.
func (c *Client) ChainInfo(ctx context.Context) (*ChainInfo, error) {
	var res *btcjson.GetBlockChainInfoResult
	err := c.withRetry(ctx, "get_blockchain_info", func() error {
		r, err := c.rpc.GetBlockChainInfo()
		if err != nil {
			return err
		}
		res = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	hash, err := chainhash.NewHashFromStr(res.BestBlockHash)
	if err != nil {
		return nil, fmt.Errorf("parse best block hash %q: %w", res.BestBlockHash, err)
	}
	return &ChainInfo{
		TipHeight:   int64(res.Blocks),
		BestHash:    *hash,
		Pruned:      res.Pruned,
		PruneHeight: int64(res.PruneHeight),
	}, nil
}

// BestBlockHash returns the daemon's current best-block hash.
func (c *Client) BestBlockHash(ctx context.Context) (*chainhash.Hash, error) {
	var hash *chainhash.Hash
	err := c.withRetry(ctx, "get_best_block_hash", func() error {
		h, err := c.rpc.GetBestBlockHash()
		if err != nil {
			return err
		}
		hash = h
		return nil
	})
	return hash, err
}

// BlockHash returns the main-chain hash at the given height, used to build
// trusted anchors.
func (c *Client) BlockHash(ctx context.Context, height int64) (*chainhash.Hash, error) {
	var hash *chainhash.Hash
	err := c.withRetry(ctx, "get_block_hash", func() error {
		h, err := c.rpc.GetBlockHash(height)
		if err != nil {
			return err
		}
		hash = h
		return nil
	})
	return hash, err
}

func (c *Client) withRetry(ctx context.Context, operation string, fn func() error) error {
	var err error
	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			if serr := clock.SleepWithContext(ctx, c.backoff*time.Duration(attempt)); serr != nil {
				return serr
			}
		}

		started := time.Now()
		err = c.callWithTimeout(ctx, fn)
		c.metrics.Observe(operation, err, started)
		if err == nil || ctx.Err() != nil {
			return err
		}
		c.logger.Warn("rpc call failed",
			zap.String("operation", operation),
			zap.Int("attempt", attempt+1),
			zap.Error(err),
		)
	}
	return err
}

// callWithTimeout bounds a blocking rpcclient call. The underlying call is
// abandoned on timeout; rpcclient finishes it on its own HTTP deadline.
func (c *Client) callWithTimeout(ctx context.Context, fn func() error) error {
	cctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- fn()
	}()

	select {
	case err := <-done:
		return err
	case <-cctx.Done():
		return cctx.Err()
	}
}

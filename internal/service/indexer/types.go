package indexer

import (
	"context"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/blkindex/internal/model"
	"github.com/goodnatureofminers/blkindex/internal/node"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	NodeClient interface {
		ChainInfo(ctx context.Context) (*node.ChainInfo, error)
		BlockHash(ctx context.Context, height int64) (*chainhash.Hash, error)
	}
	BlockWriter interface {
		Start(ctx context.Context)
		Stop()
		SetCancel(cancel func())
		WriteBlock(ctx context.Context, b model.InsertBlock) error
		WriteRetractions(ctx context.Context, retractions []model.Retraction) error
		Err() error
	}
	IndexerMetrics interface {
		ObserveScanFile(err error, started time.Time)
		ObserveDecodeBlock(err error, started time.Time)
		AddConfirmedBlocks(n int)
		AddRetractedBlocks(n int)
		SetPendingLinks(n int)
		ObserveChunkFlush(err error, blocks int, started time.Time)
	}
	ClickhouseRepository interface {
		InsertBlocks(ctx context.Context, blocks []model.Block) error
		InsertTransactions(ctx context.Context, txs []model.Transaction) error
		InsertTransactionInputs(ctx context.Context, inputs []model.TransactionInput) error
		InsertTransactionOutputs(ctx context.Context, outputs []model.TransactionOutput) error
		RetractBlocks(ctx context.Context, retractions []model.Retraction) error
		IndexWatermark(ctx context.Context, coin model.Coin, network model.Network) (uint64, bool, error)
		SetIndexWatermark(ctx context.Context, coin model.Coin, network model.Network, height uint64) error
		MissingBlockHeights(ctx context.Context, coin model.Coin, network model.Network, maxHeight, limit uint64) ([]uint64, error)
		MaxContiguousBlockHeight(ctx context.Context, coin model.Coin, network model.Network) (uint64, error)
	}
)

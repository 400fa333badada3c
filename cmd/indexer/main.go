package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/btcsuite/btcd/rpcclient"
	"github.com/goodnatureofminers/blkindex/internal/metrics"
	"github.com/goodnatureofminers/blkindex/internal/model"
	"github.com/goodnatureofminers/blkindex/internal/node"
	"github.com/goodnatureofminers/blkindex/internal/repository/clickhouse"
	"github.com/goodnatureofminers/blkindex/internal/service/indexer"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type config struct {
	BlocksDir     string        `long:"blocks-dir" env:"BLKINDEX_BLOCKS_DIR" description:"directory holding the node's blk*.dat files" required:"true"`
	ClickhouseDSN string        `long:"clickhouse-dsn" env:"BLKINDEX_CLICKHOUSE_DSN" description:"ClickHouse DSN"`
	Coin          model.Coin    `long:"coin" env:"BLKINDEX_COIN" description:"coin name" required:"true"`
	Network       model.Network `long:"network" env:"BLKINDEX_NETWORK" description:"network name" required:"true"`
	ChunkSize     int           `long:"chunk-size" env:"BLKINDEX_CHUNK_SIZE" description:"blocks per insert chunk" default:"1000"`
	FlushInterval time.Duration `long:"flush-interval" env:"BLKINDEX_FLUSH_INTERVAL" description:"maximum time a chunk may buffer" default:"5s"`
	ScanWorkers   int           `long:"scan-workers" env:"BLKINDEX_SCAN_WORKERS" description:"concurrent block file scanners" default:"4"`
	DecodeWorkers int           `long:"decode-workers" env:"BLKINDEX_DECODE_WORKERS" description:"concurrent block decoders" default:"8"`
	AnchorHeight  uint64        `long:"anchor-height" env:"BLKINDEX_ANCHOR_HEIGHT" description:"height of a trusted anchor block"`
	AnchorHash    string        `long:"anchor-hash" env:"BLKINDEX_ANCHOR_HASH" description:"hash of a trusted anchor block"`
	Horizon       uint64        `long:"eviction-horizon" env:"BLKINDEX_EVICTION_HORIZON" description:"confirmed blocks kept behind the tip for fork handling" default:"10000"`
	Reindex       bool          `long:"reindex" env:"BLKINDEX_REINDEX" description:"ignore the persisted watermark and re-emit every block"`
	RPCEnabled    bool          `long:"rpc-enabled" env:"BLKINDEX_RPC_ENABLED" description:"consult the coin daemon for best hash and prune point"`
	RPCURL        string        `long:"rpc-url" env:"BLKINDEX_RPC_URL" description:"coin daemon RPC URL" default:"http://127.0.0.1:8332"`
	RPCUser       string        `long:"rpc-user" env:"BLKINDEX_RPC_USER" description:"coin daemon RPC username"`
	RPCPassword   string        `long:"rpc-password" env:"BLKINDEX_RPC_PASSWORD" description:"coin daemon RPC password"`
	RPCRetries    int           `long:"rpc-retries" env:"BLKINDEX_RPC_RETRIES" description:"retries per RPC call" default:"2"`
	HTTPTimeout   time.Duration `long:"http-timeout" env:"BLKINDEX_HTTP_TIMEOUT" description:"HTTP timeout for RPC requests" default:"30s"`
	MetricsAddr   string        `long:"metrics-addr" env:"BLKINDEX_METRICS_ADDR" description:"address for metrics server" default:":2112"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	if cfg.ClickhouseDSN == "" {
		logger.Fatal("ClickHouse DSN is required")
	}

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("block indexer failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	startMetricsServer(ctx, cfg.MetricsAddr, logger)

	params, err := model.ChainParamsFor(cfg.Coin, cfg.Network)
	if err != nil {
		return err
	}

	repo, err := clickhouse.NewRepository(cfg.ClickhouseDSN, metrics.NewClickhouseRepository())
	if err != nil {
		return fmt.Errorf("init repository: %w", err)
	}

	var nodeClient indexer.NodeClient
	if cfg.RPCEnabled {
		rpc, err := newRPCClient(cfg.RPCURL, cfg.RPCUser, cfg.RPCPassword)
		if err != nil {
			return fmt.Errorf("init rpc client: %w", err)
		}
		defer func() {
			rpc.Shutdown()
			rpc.WaitForShutdown()
		}()
		nodeClient = node.NewClient(
			rpc,
			metrics.NewRPCClient(params.Coin, params.Network),
			logger,
			cfg.HTTPTimeout,
			cfg.RPCRetries,
		)
	}

	svc, err := indexer.NewBlockIndexerService(
		repo,
		nodeClient,
		metrics.NewIndexer(params.Coin, params.Network),
		params,
		indexer.Config{
			BlocksDir:       cfg.BlocksDir,
			ChunkSize:       cfg.ChunkSize,
			FlushInterval:   cfg.FlushInterval,
			ScanWorkers:     cfg.ScanWorkers,
			DecodeWorkers:   cfg.DecodeWorkers,
			AnchorHeight:    cfg.AnchorHeight,
			AnchorHash:      cfg.AnchorHash,
			EvictionHorizon: cfg.Horizon,
			Reindex:         cfg.Reindex,
		},
		logger,
	)
	if err != nil {
		return err
	}
	return svc.Run(ctx)
}

func startMetricsServer(ctx context.Context, addr string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("starting metrics server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown metrics server", zap.Error(err))
		}
	}()
}

func newRPCClient(rawURL, user, password string) (*rpcclient.Client, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse rpc url: %w", err)
	}
	if parsed.Scheme != "http" {
		return nil, fmt.Errorf("rpc url scheme %q not supported, use http", parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, errors.New("rpc url missing host")
	}

	cfg := &rpcclient.ConnConfig{
		Host:         parsed.Host,
		User:         user,
		Pass:         password,
		HTTPPostMode: true,
		DisableTLS:   true,
	}

	return rpcclient.New(cfg, nil)
}

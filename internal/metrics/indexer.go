package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/goodnatureofminers/blkindex/internal/model"
)

var (
	indexerScanFileTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blkindex",
		Subsystem: "indexer",
		Name:      "scan_file_total",
		Help:      "Count of scanned raw block files.",
	}, []string{"coin", "network", "status"})

	indexerScanFileDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blkindex",
		Subsystem: "indexer",
		Name:      "scan_file_duration_seconds",
		Help:      "Duration of scanning a single raw block file.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"coin", "network", "status"})

	indexerDecodeBlockTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blkindex",
		Subsystem: "indexer",
		Name:      "decode_block_total",
		Help:      "Count of decoded raw blocks.",
	}, []string{"coin", "network", "status"})

	indexerMalformedBlockTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blkindex",
		Subsystem: "indexer",
		Name:      "malformed_block_total",
		Help:      "Count of raw blocks skipped due to decode failures.",
	}, []string{"coin", "network"})

	indexerConfirmedBlockTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blkindex",
		Subsystem: "indexer",
		Name:      "confirmed_block_total",
		Help:      "Count of blocks confirmed onto the canonical chain.",
	}, []string{"coin", "network"})

	indexerRetractedBlockTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blkindex",
		Subsystem: "indexer",
		Name:      "retracted_block_total",
		Help:      "Count of previously confirmed blocks retracted by fork resolution.",
	}, []string{"coin", "network"})

	indexerPendingLinks = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "blkindex",
		Subsystem: "indexer",
		Name:      "pending_links",
		Help:      "Number of decoded blocks whose ancestry is not yet resolved.",
	}, []string{"coin", "network"})

	indexerChunkFlushTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blkindex",
		Subsystem: "indexer",
		Name:      "chunk_flush_total",
		Help:      "Count of chunk flushes to storage.",
	}, []string{"coin", "network", "status"})

	indexerChunkFlushDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blkindex",
		Subsystem: "indexer",
		Name:      "chunk_flush_duration_seconds",
		Help:      "Duration of flushing one chunk of confirmed blocks.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"coin", "network", "status"})

	indexerChunkFlushSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blkindex",
		Subsystem: "indexer",
		Name:      "chunk_flush_size",
		Help:      "Number of blocks flushed per chunk.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12), // 1..2048
	}, []string{"coin", "network"})
)

// Indexer tracks pipeline metrics for the raw block indexer.
type Indexer struct {
	coin    model.Coin
	network model.Network
}

// NewIndexer constructs a metrics collector for the indexing pipeline.
func NewIndexer(coin model.Coin, network model.Network) *Indexer {
	if coin == "" {
		coin = "unknown"
	}
	if network == "" {
		network = "unknown"
	}
	return &Indexer{coin: coin, network: network}
}

func (m Indexer) ObserveScanFile(err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	indexerScanFileTotal.WithLabelValues(string(m.coin), string(m.network), status).Inc()
	indexerScanFileDuration.WithLabelValues(string(m.coin), string(m.network), status).
		Observe(time.Since(started).Seconds())
}

func (m Indexer) ObserveDecodeBlock(err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	indexerDecodeBlockTotal.WithLabelValues(string(m.coin), string(m.network), status).Inc()
	if err != nil {
		indexerMalformedBlockTotal.WithLabelValues(string(m.coin), string(m.network)).Inc()
	}
}

func (m Indexer) AddConfirmedBlocks(n int) {
	indexerConfirmedBlockTotal.WithLabelValues(string(m.coin), string(m.network)).Add(float64(n))
}

func (m Indexer) AddRetractedBlocks(n int) {
	indexerRetractedBlockTotal.WithLabelValues(string(m.coin), string(m.network)).Add(float64(n))
}

func (m Indexer) SetPendingLinks(n int) {
	indexerPendingLinks.WithLabelValues(string(m.coin), string(m.network)).Set(float64(n))
}

func (m Indexer) ObserveChunkFlush(err error, blocks int, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	indexerChunkFlushTotal.WithLabelValues(string(m.coin), string(m.network), status).Inc()
	indexerChunkFlushDuration.WithLabelValues(string(m.coin), string(m.network), status).
		Observe(time.Since(started).Seconds())
	if err == nil {
		indexerChunkFlushSize.WithLabelValues(string(m.coin), string(m.network)).Observe(float64(blocks))
	}
}

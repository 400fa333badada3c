package indexer

import "time"

const (
	defaultScanWorkers   = 4
	defaultDecodeWorkers = 8

	defaultChunkSize     = 1000
	defaultFlushInterval = 5 * time.Second

	recordQueueCapacity  = 256
	decodedQueueCapacity = 1024

	flushRetries      = 5
	flushRetryBackoff = 2 * time.Second

	// Main-status links older than this many blocks behind the tip are
	// evicted to anchors to bound linker memory.
	defaultEvictionHorizon uint64 = 10_000

	missingHeightsReportLimit = 100

	progressLogInterval = 30 * time.Second
)

package model

import "time"

// BlockStatus describes the canonical-chain standing of a stored block row.
type BlockStatus string

var (
	// BlockMain marks a block confirmed on the canonical chain.
	BlockMain BlockStatus = "main"
	// BlockOrphaned marks a tombstone row retracting a previously-main block.
	BlockOrphaned BlockStatus = "orphaned"
)

// Block represents a finalized blockchain block persisted to ClickHouse.
type Block struct {
	Coin       Coin
	Network    Network
	Height     uint64
	Hash       string
	PrevHash   string
	Timestamp  time.Time
	Version    int32
	MerkleRoot string
	Bits       uint32
	Nonce      uint32
	Size       uint32
	TXCount    uint32
	Status     BlockStatus
}

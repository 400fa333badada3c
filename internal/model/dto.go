package model

// InsertBlock groups a block with its transactions and related inputs/outputs
// for batch insertion.
type InsertBlock struct {
	Block   Block
	Txs     []Transaction
	Inputs  []TransactionInput
	Outputs []TransactionOutput

	// HeightHint is the BIP-34 coinbase height, -1 when the coinbase does
	// not commit one. Not a table column.
	HeightHint int64
}

// Retraction identifies a previously-emitted block that must be tombstoned
// because its branch was orphaned by a fork.
type Retraction struct {
	Coin    Coin
	Network Network
	Height  uint64
	Hash    string
}

package model

import "time"

// Transaction represents a blockchain transaction with aggregated metadata.
type Transaction struct {
	Coin        Coin
	Network     Network
	TxID        string
	BlockHeight uint64
	BlockHash   string
	Timestamp   time.Time
	Version     int32
	LockTime    uint32
	InputCount  uint32
	OutputCount uint32
	HasWitness  bool
}

// TransactionInput describes a reference to a previous transaction output.
// Address is the spender address recovered from the unlocking script or
// witness; AddressResolved distinguishes "no address recoverable" from an
// address that was actually derived. Pruned nodes cannot look up the previous
// output, so recovery is best effort.
type TransactionInput struct {
	Coin            Coin
	Network         Network
	BlockHeight     uint64
	TxID            string
	Index           uint32
	PrevTxID        string
	PrevVout        uint32
	Sequence        uint32
	IsCoinbase      bool
	ScriptSigHex    string
	Witness         []string
	Address         string
	AddressResolved bool
}

// TransactionOutput represents an output produced by a transaction.
type TransactionOutput struct {
	Coin        Coin
	Network     Network
	BlockHeight uint64
	TxID        string
	Index       uint32
	Value       uint64
	ScriptType  string
	ScriptHex   string
	Address     string
}

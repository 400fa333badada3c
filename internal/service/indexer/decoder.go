package indexer

import (
	"encoding/hex"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/blkindex/internal/codec"
	"github.com/goodnatureofminers/blkindex/internal/model"
	"github.com/goodnatureofminers/blkindex/internal/script"
)

// linkItem is a fully decoded block waiting for chain placement. The rows
// carry zero heights and no status until the linker confirms the block.
type linkItem struct {
	hash chainhash.Hash
	prev chainhash.Hash
	rows model.InsertBlock
}

// rowBuilder turns decoded blocks into ClickHouse rows. Script
// classification and address derivation happen here so the single-threaded
// linking stage stays cheap.
type rowBuilder struct {
	coin       model.Coin
	network    model.Network
	classifier *script.Classifier
}

func (rb *rowBuilder) build(b *codec.Block) linkItem {
	blockHash := b.Hash.String()
	timestamp := time.Unix(int64(b.Header.Timestamp), 0).UTC()

	rows := model.InsertBlock{
		Block: model.Block{
			Coin:       rb.coin,
			Network:    rb.network,
			Hash:       blockHash,
			PrevHash:   b.Header.PrevBlock.String(),
			Timestamp:  timestamp,
			Version:    b.Header.Version,
			MerkleRoot: b.Header.MerkleRoot.String(),
			Bits:       b.Header.Bits,
			Nonce:      b.Header.Nonce,
			Size:       b.Size,
			TXCount:    uint32(len(b.Txs)),
		},
		HeightHint: b.CoinbaseHeight,
	}

	rows.Txs = make([]model.Transaction, 0, len(b.Txs))
	for i := range b.Txs {
		tx := &b.Txs[i]
		txID := tx.TxID.String()

		rows.Txs = append(rows.Txs, model.Transaction{
			Coin:        rb.coin,
			Network:     rb.network,
			TxID:        txID,
			BlockHash:   blockHash,
			Timestamp:   timestamp,
			Version:     tx.Version,
			LockTime:    tx.LockTime,
			InputCount:  uint32(len(tx.Inputs)),
			OutputCount: uint32(len(tx.Outputs)),
			HasWitness:  tx.HasWitness,
		})

		for idx := range tx.Inputs {
			rows.Inputs = append(rows.Inputs, rb.inputRow(txID, uint32(idx), &tx.Inputs[idx]))
		}
		for idx := range tx.Outputs {
			rows.Outputs = append(rows.Outputs, rb.outputRow(txID, uint32(idx), &tx.Outputs[idx]))
		}
	}

	return linkItem{hash: b.Hash, prev: b.Header.PrevBlock, rows: rows}
}

func (rb *rowBuilder) inputRow(txID string, index uint32, in *codec.TxInput) model.TransactionInput {
	row := model.TransactionInput{
		Coin:         rb.coin,
		Network:      rb.network,
		TxID:         txID,
		Index:        index,
		PrevTxID:     in.PrevTxID.String(),
		PrevVout:     in.PrevIndex,
		Sequence:     in.Sequence,
		IsCoinbase:   in.IsCoinbase(),
		ScriptSigHex: hex.EncodeToString(in.SignatureScript),
	}
	for _, item := range in.Witness {
		row.Witness = append(row.Witness, hex.EncodeToString(item))
	}

	if !row.IsCoinbase {
		if res := rb.classifier.ResolveSpender(in.SignatureScript, in.Witness); res.Resolved {
			row.Address = res.Address
			row.AddressResolved = true
		}
	}
	return row
}

func (rb *rowBuilder) outputRow(txID string, index uint32, out *codec.TxOutput) model.TransactionOutput {
	class, address := rb.classifier.Classify(out.PkScript)
	return model.TransactionOutput{
		Coin:       rb.coin,
		Network:    rb.network,
		TxID:       txID,
		Index:      index,
		Value:      out.Value,
		ScriptType: class.String(),
		ScriptHex:  hex.EncodeToString(out.PkScript),
		Address:    address,
	}
}

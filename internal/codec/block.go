// Package codec decodes raw Bitcoin-family blocks and transactions from their
// binary wire format and computes block/transaction identifiers.
package codec

import (
	"bytes"
	"encoding/binary"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// Smallest serialized sizes, used to reject impossible element counts.
const (
	minTxSize    = 10
	minInputSize = 41
	minOutSize   = 9
)

// TxInput is a decoded transaction input.
type TxInput struct {
	PrevTxID        chainhash.Hash
	PrevIndex       uint32
	SignatureScript []byte
	Witness         [][]byte
	Sequence        uint32
}

var zeroHash chainhash.Hash

// IsCoinbase reports whether the input is the coinbase input of a block
// reward transaction.
func (in *TxInput) IsCoinbase() bool {
	return in.PrevIndex == 0xffffffff && in.PrevTxID == zeroHash
}

// TxOutput is a decoded transaction output. Value is in satoshi units.
type TxOutput struct {
	Value    uint64
	PkScript []byte
}

// Transaction is a decoded transaction. TxID excludes witness data.
type Transaction struct {
	TxID       chainhash.Hash
	Version    int32
	LockTime   uint32
	Inputs     []TxInput
	Outputs    []TxOutput
	HasWitness bool
}

// Block is a fully decoded block.
type Block struct {
	Header BlockHeader
	Hash   chainhash.Hash
	Txs    []Transaction
	Size   uint32

	// CoinbaseHeight is the BIP-34 height committed in the coinbase script,
	// or -1 when the block predates BIP-34 or the script is not parseable.
	// Used only as a cross-check hint; canonical heights come from linking.
	CoinbaseHeight int64
}

// DecodeBlock decodes a raw byte slice that starts at a block boundary
// (framing magic and length already stripped). It is a pure transform: on any
// malformed transaction the whole block is rejected.
func DecodeBlock(raw []byte) (*Block, error) {
	r := &reader{buf: raw}

	header, err := decodeHeader(r)
	if err != nil {
		return nil, err
	}

	txCount, err := r.readCount(minTxSize, "transaction")
	if err != nil {
		return nil, err
	}

	txs := make([]Transaction, 0, txCount)
	for i := 0; i < txCount; i++ {
		tx, err := decodeTransaction(r)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}

	b := &Block{
		Header:         header,
		Hash:           header.BlockHash(),
		Txs:            txs,
		Size:           uint32(len(raw)),
		CoinbaseHeight: -1,
	}
	if len(txs) > 0 {
		b.CoinbaseHeight = coinbaseHeight(&txs[0])
	}
	return b, nil
}

func decodeTransaction(r *reader) (Transaction, error) {
	var tx Transaction
	txStart := r.off

	version, err := r.readUint32()
	if err != nil {
		return tx, err
	}
	tx.Version = int32(version)

	// Segwit marker/flag pair: a zero byte can never start a legitimate
	// input count, so 0x00 0x01 unambiguously signals witness serialization.
	if r.remaining() >= 2 && r.buf[r.off] == 0x00 && r.buf[r.off+1] == 0x01 {
		tx.HasWitness = true
		r.off += 2
	}

	inCount, err := r.readCount(minInputSize, "input")
	if err != nil {
		return tx, err
	}
	tx.Inputs = make([]TxInput, 0, inCount)
	for i := 0; i < inCount; i++ {
		var in TxInput
		if in.PrevTxID, err = r.readHash(); err != nil {
			return tx, err
		}
		if in.PrevIndex, err = r.readUint32(); err != nil {
			return tx, err
		}
		scriptLen, err := r.readCount(1, "scriptSig byte")
		if err != nil {
			return tx, err
		}
		if in.SignatureScript, err = r.readBytes(scriptLen); err != nil {
			return tx, err
		}
		if in.Sequence, err = r.readUint32(); err != nil {
			return tx, err
		}
		tx.Inputs = append(tx.Inputs, in)
	}

	outCount, err := r.readCount(minOutSize, "output")
	if err != nil {
		return tx, err
	}
	tx.Outputs = make([]TxOutput, 0, outCount)
	for i := 0; i < outCount; i++ {
		var out TxOutput
		if out.Value, err = r.readUint64(); err != nil {
			return tx, err
		}
		scriptLen, err := r.readCount(1, "pkScript byte")
		if err != nil {
			return tx, err
		}
		if out.PkScript, err = r.readBytes(scriptLen); err != nil {
			return tx, err
		}
		tx.Outputs = append(tx.Outputs, out)
	}

	if tx.HasWitness {
		for i := range tx.Inputs {
			itemCount, err := r.readCount(1, "witness item")
			if err != nil {
				return tx, err
			}
			witness := make([][]byte, 0, itemCount)
			for j := 0; j < itemCount; j++ {
				itemLen, err := r.readCount(1, "witness byte")
				if err != nil {
					return tx, err
				}
				item, err := r.readBytes(itemLen)
				if err != nil {
					return tx, err
				}
				witness = append(witness, item)
			}
			tx.Inputs[i].Witness = witness
		}
	}

	if tx.LockTime, err = r.readUint32(); err != nil {
		return tx, err
	}

	tx.TxID = txID(&tx, r.buf[txStart:r.off])
	return tx, nil
}

// txID computes the double-SHA-256 of the non-witness serialization. For
// legacy transactions the wire bytes already are that serialization; witness
// transactions are re-serialized without marker, flag and witness stacks.
func txID(tx *Transaction, wire []byte) chainhash.Hash {
	if !tx.HasWitness {
		return chainhash.DoubleHashH(wire)
	}

	var buf bytes.Buffer
	buf.Grow(len(wire))

	var u32 [4]byte
	binary.LittleEndian.PutUint32(u32[:], uint32(tx.Version))
	buf.Write(u32[:])

	writeVarint(&buf, uint64(len(tx.Inputs)))
	for i := range tx.Inputs {
		in := &tx.Inputs[i]
		buf.Write(in.PrevTxID[:])
		binary.LittleEndian.PutUint32(u32[:], in.PrevIndex)
		buf.Write(u32[:])
		writeVarint(&buf, uint64(len(in.SignatureScript)))
		buf.Write(in.SignatureScript)
		binary.LittleEndian.PutUint32(u32[:], in.Sequence)
		buf.Write(u32[:])
	}

	writeVarint(&buf, uint64(len(tx.Outputs)))
	for i := range tx.Outputs {
		out := &tx.Outputs[i]
		var u64 [8]byte
		binary.LittleEndian.PutUint64(u64[:], out.Value)
		buf.Write(u64[:])
		writeVarint(&buf, uint64(len(out.PkScript)))
		buf.Write(out.PkScript)
	}

	binary.LittleEndian.PutUint32(u32[:], tx.LockTime)
	buf.Write(u32[:])

	return chainhash.DoubleHashH(buf.Bytes())
}

func writeVarint(buf *bytes.Buffer, n uint64) {
	switch {
	case n < 0xfd:
		buf.WriteByte(byte(n))
	case n <= 0xffff:
		buf.WriteByte(0xfd)
		var b [2]byte
		binary.LittleEndian.PutUint16(b[:], uint16(n))
		buf.Write(b[:])
	case n <= 0xffffffff:
		buf.WriteByte(0xfe)
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], uint32(n))
		buf.Write(b[:])
	default:
		buf.WriteByte(0xff)
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], n)
		buf.Write(b[:])
	}
}

// coinbaseHeight extracts the BIP-34 height push from a coinbase script.
func coinbaseHeight(coinbase *Transaction) int64 {
	if len(coinbase.Inputs) == 0 || !coinbase.Inputs[0].IsCoinbase() {
		return -1
	}
	script := coinbase.Inputs[0].SignatureScript
	if len(script) == 0 {
		return -1
	}
	pushLen := int(script[0])
	if pushLen < 1 || pushLen > 8 || pushLen > len(script)-1 {
		return -1
	}
	var height int64
	for i := pushLen; i >= 1; i-- {
		height = height<<8 | int64(script[i])
	}
	return height
}

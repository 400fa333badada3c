package codec

import (
	"encoding/binary"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// HeaderSize is the serialized size of a block header.
const HeaderSize = 80

// BlockHeader is the fixed 80-byte block header. Hash fields keep natural
// byte order; chainhash.Hash.String() reverses for display.
type BlockHeader struct {
	Version    int32
	PrevBlock  chainhash.Hash
	MerkleRoot chainhash.Hash
	Timestamp  uint32
	Bits       uint32
	Nonce      uint32
}

// Serialize writes the header in wire format.
func (h *BlockHeader) Serialize() [HeaderSize]byte {
	var buf [HeaderSize]byte
	binary.LittleEndian.PutUint32(buf[0:4], uint32(h.Version))
	copy(buf[4:36], h.PrevBlock[:])
	copy(buf[36:68], h.MerkleRoot[:])
	binary.LittleEndian.PutUint32(buf[68:72], h.Timestamp)
	binary.LittleEndian.PutUint32(buf[72:76], h.Bits)
	binary.LittleEndian.PutUint32(buf[76:80], h.Nonce)
	return buf
}

// BlockHash is the double-SHA-256 digest of the serialized header.
func (h *BlockHeader) BlockHash() chainhash.Hash {
	buf := h.Serialize()
	return chainhash.DoubleHashH(buf[:])
}

func decodeHeader(r *reader) (BlockHeader, error) {
	var h BlockHeader

	version, err := r.readUint32()
	if err != nil {
		return h, err
	}
	h.Version = int32(version)

	if h.PrevBlock, err = r.readHash(); err != nil {
		return h, err
	}
	if h.MerkleRoot, err = r.readHash(); err != nil {
		return h, err
	}
	if h.Timestamp, err = r.readUint32(); err != nil {
		return h, err
	}
	if h.Bits, err = r.readUint32(); err != nil {
		return h, err
	}
	if h.Nonce, err = r.readUint32(); err != nil {
		return h, err
	}
	return h, nil
}

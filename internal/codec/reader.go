package codec

import (
	"encoding/binary"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// reader is a bounds-checked cursor over a raw block. Every failure carries
// the offset at which decoding stopped.
type reader struct {
	buf []byte
	off int
}

func (r *reader) remaining() int {
	return len(r.buf) - r.off
}

func (r *reader) failf(format string, args ...any) error {
	return &MalformedBlockError{Offset: r.off, Reason: fmt.Sprintf(format, args...)}
}

func (r *reader) readBytes(n int) ([]byte, error) {
	if n < 0 || r.remaining() < n {
		return nil, r.failf("truncated: need %d bytes, have %d", n, r.remaining())
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b, nil
}

func (r *reader) readByte() (byte, error) {
	if r.remaining() < 1 {
		return 0, r.failf("truncated: need 1 byte")
	}
	b := r.buf[r.off]
	r.off++
	return b, nil
}

func (r *reader) readUint32() (uint32, error) {
	b, err := r.readBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *reader) readUint64() (uint64, error) {
	b, err := r.readBytes(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// readHash reads 32 bytes in natural (non-reversed) byte order. Display
// reversal happens only in chainhash.Hash.String().
func (r *reader) readHash() (chainhash.Hash, error) {
	var h chainhash.Hash
	b, err := r.readBytes(chainhash.HashSize)
	if err != nil {
		return h, err
	}
	copy(h[:], b)
	return h, nil
}

// readVarint reads a Bitcoin-style compact size integer.
func (r *reader) readVarint() (uint64, error) {
	d, err := r.readByte()
	if err != nil {
		return 0, err
	}
	switch d {
	case 0xfd:
		b, err := r.readBytes(2)
		if err != nil {
			return 0, err
		}
		return uint64(binary.LittleEndian.Uint16(b)), nil
	case 0xfe:
		v, err := r.readUint32()
		if err != nil {
			return 0, err
		}
		return uint64(v), nil
	case 0xff:
		return r.readUint64()
	default:
		return uint64(d), nil
	}
}

// readCount reads a varint used as an element count and rejects values that
// could not possibly fit in the remaining bytes, with minSize the smallest
// serialized size of one element.
func (r *reader) readCount(minSize int, what string) (int, error) {
	v, err := r.readVarint()
	if err != nil {
		return 0, err
	}
	if v > uint64(r.remaining()/minSize) {
		return 0, r.failf("invalid varint: %s count %d exceeds remaining %d bytes", what, v, r.remaining())
	}
	return int(v), nil
}

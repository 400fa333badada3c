// Package blockfile discovers a node's raw block files and extracts framed
// blocks from them.
package blockfile

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
)

// maxBlockSize caps a single framed block. Anything larger is framing
// corruption, not a real block.
const maxBlockSize = 1 << 27 // 128 MiB

// RawBlockRecord identifies where a block's bytes came from and carries the
// bytes themselves. Raw is owned by the record; nothing else aliases it.
type RawBlockRecord struct {
	File   string
	Offset int64
	Raw    []byte
}

// FramingError reports corruption of the magic/length framing at an offset.
// Records extracted before the corruption remain valid; the rest of the file
// is unusable.
type FramingError struct {
	File   string
	Offset int64
	Reason string
}

func (e *FramingError) Error() string {
	return fmt.Sprintf("%s: framing corrupt at offset %d: %s", e.File, e.Offset, e.Reason)
}

// Discover returns the node's raw block files in name order.
func Discover(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("stat block directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("block directory %s is not a directory", dir)
	}

	paths, err := filepath.Glob(filepath.Join(dir, "blk*.dat"))
	if err != nil {
		return nil, fmt.Errorf("glob block files: %w", err)
	}
	sort.Strings(paths)
	return paths, nil
}

// Scanner iterates the framed blocks of one raw block file.
type Scanner struct {
	file  string
	f     *os.File
	br    *bufio.Reader
	off   int64
	magic [4]byte
}

// NewScanner opens path for framed-block extraction.
func NewScanner(path string, magic [4]byte) (*Scanner, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open block file: %w", err)
	}
	return &Scanner{
		file:  path,
		f:     f,
		br:    bufio.NewReaderSize(f, 1<<20),
		magic: magic,
	}, nil
}

// Next returns the next raw block record. io.EOF signals a clean end of file;
// a *FramingError signals that the remainder of the file is unusable.
func (s *Scanner) Next() (*RawBlockRecord, error) {
	var frame [8]byte
	n, err := io.ReadFull(s.br, frame[:4])
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, &FramingError{File: s.file, Offset: s.off, Reason: fmt.Sprintf("short magic read (%d bytes)", n)}
	}

	// Preallocated .dat space is zero-filled; a zero magic ends the file.
	if frame[0] == 0 && frame[1] == 0 && frame[2] == 0 && frame[3] == 0 {
		return nil, io.EOF
	}
	if !bytes.Equal(frame[:4], s.magic[:]) {
		return nil, &FramingError{File: s.file, Offset: s.off, Reason: fmt.Sprintf("magic mismatch %x", frame[:4])}
	}

	if _, err := io.ReadFull(s.br, frame[4:8]); err != nil {
		return nil, &FramingError{File: s.file, Offset: s.off, Reason: "truncated length prefix"}
	}
	size := binary.LittleEndian.Uint32(frame[4:8])
	if size == 0 || size > maxBlockSize {
		return nil, &FramingError{File: s.file, Offset: s.off, Reason: fmt.Sprintf("implausible block length %d", size)}
	}

	raw := make([]byte, size)
	if _, err := io.ReadFull(s.br, raw); err != nil {
		return nil, &FramingError{File: s.file, Offset: s.off, Reason: fmt.Sprintf("truncated block body (%d bytes expected)", size)}
	}

	rec := &RawBlockRecord{File: s.file, Offset: s.off, Raw: raw}
	s.off += 8 + int64(size)
	return rec, nil
}

// Close releases the underlying file handle.
func (s *Scanner) Close() error {
	return s.f.Close()
}

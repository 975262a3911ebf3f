// Package pennfat decodes PennFat filesystem images: a two-byte
// header, a FAT region of little-endian u16 link entries, and a run
// of fixed-size data blocks holding raw file bytes or packed 64-byte
// directory records. The package is strictly read-only; it never
// writes to the backing file.
package pennfat

import (
	"fmt"
	"os"
	"time"

	"github.com/pennos/pfview/internal/utils/compression"
	"github.com/pennos/pfview/internal/utils/logger"
)

const (
	headerSize   = 2
	fatEntrySize = 2
)

// Session is a read-only view of one PennFat image. It owns the
// decoded byte buffer; blocks and FAT entries are views into it. A
// session is single-consumer: refresh and query must run on the same
// goroutine (or be serialized by the caller), which is how the viewer
// drives it.
type Session struct {
	path         string
	buf          []byte
	blockSize    uint32
	numFATBlocks uint8
	lastUpdate   time.Time
}

// Load opens the image at path, reads it fully (transparently
// unwrapping gzip/zstd/xz), decodes the header, and validates the
// declared geometry against the actual length. A length mismatch is
// a fatal SizeMismatchError: no partial session is returned.
func Load(path string) (*Session, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat image: %w", err)
	}

	buf, err := compression.ReadImage(f)
	if err != nil {
		return nil, err
	}
	if len(buf) < headerSize {
		return nil, &SizeMismatchError{Path: path, Expected: headerSize, Actual: int64(len(buf))}
	}

	s := &Session{
		path:         path,
		buf:          buf,
		blockSize:    256 << buf[0],
		numFATBlocks: buf[1],
		lastUpdate:   fi.ModTime(),
	}
	if err := s.checkSize(); err != nil {
		return nil, err
	}

	logger.Logger().Debugf("loaded %s: block_size=%d fat_blocks=%d fat_entries=%d data_blocks=%d",
		path, s.blockSize, s.numFATBlocks, s.NumFATEntries(), s.DataBlockCount())
	return s, nil
}

// Reload re-reads the image if it changed on disk since the last
// load. For an unchanged file this is a stat-only no-op, so callers
// may invoke it unconditionally on every refresh tick. The buffer is
// replaced wholesale: previously returned blocks keep reading the
// stale snapshot. Freshness is best-effort; no locking coordinates
// with a concurrent writer, and a reload observed mid-write may see a
// torn image. The header geometry captured at load time is assumed
// stable, but the length invariant is re-checked and a violation is
// the same fatal SizeMismatchError as at load.
func (s *Session) Reload() error {
	fi, err := os.Stat(s.path)
	if err != nil {
		return fmt.Errorf("stat image: %w", err)
	}
	if fi.ModTime().Equal(s.lastUpdate) {
		return nil
	}

	f, err := os.Open(s.path)
	if err != nil {
		return fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	buf, err := compression.ReadImage(f)
	if err != nil {
		return err
	}
	s.buf = buf
	s.lastUpdate = fi.ModTime()
	if err := s.checkSize(); err != nil {
		return err
	}

	logger.Logger().Debugf("reloaded %s: %d bytes, mtime %s", s.path, len(buf), s.lastUpdate)
	return nil
}

func (s *Session) checkSize() error {
	expected := int64(s.FATSize()) + s.DataSize()
	if int64(len(s.buf)) != expected {
		return &SizeMismatchError{Path: s.path, Expected: expected, Actual: int64(len(s.buf))}
	}
	return nil
}

// BlockSize returns the size in bytes of one block.
func (s *Session) BlockSize() uint32 { return s.blockSize }

// NumFATBlocks returns the number of blocks composing the FAT region.
func (s *Session) NumFATBlocks() uint8 { return s.numFATBlocks }

// FATSize returns the size of the FAT region in bytes.
func (s *Session) FATSize() uint32 { return s.blockSize * uint32(s.numFATBlocks) }

// NumFATEntries returns the number of u16 entries in the FAT region.
func (s *Session) NumFATEntries() uint32 { return s.FATSize() / fatEntrySize }

// DataBlockCount returns the number of addressable data blocks.
// Entry 0 is reserved for the header and 0xFFFF is the end-of-chain
// terminator, so the count is capped at 0xFFFE.
func (s *Session) DataBlockCount() uint16 {
	n := s.NumFATEntries()
	if n == 0 {
		return 0
	}
	if n-1 > 0xFFFE {
		return 0xFFFE
	}
	return uint16(n - 1)
}

// DataSize returns the size of the data region in bytes.
func (s *Session) DataSize() int64 {
	return int64(s.blockSize) * int64(s.DataBlockCount())
}

// Size returns the decoded image length in bytes.
func (s *Session) Size() int64 { return int64(len(s.buf)) }

// Path returns the backing file path.
func (s *Session) Path() string { return s.path }

// LastUpdateTime returns the modification time of the backing file as
// of the last load or reload.
func (s *Session) LastUpdateTime() time.Time { return s.lastUpdate }

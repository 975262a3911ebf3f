package pennfat

import "encoding/binary"

// Sentinel FAT values.
const (
	// FreeEntry marks an unallocated slot; free slots are elided
	// from the table listing.
	FreeEntry uint16 = 0x0000
	// ChainEnd terminates a block chain.
	ChainEnd uint16 = 0xFFFF
)

// FATEntry pairs an occupied FAT slot with the value it links to.
type FATEntry struct {
	// Block is the entry index, equal to the block number the entry
	// describes.
	Block uint16
	// Next is the stored link value: the next block in the chain, or
	// ChainEnd.
	Next uint16
}

// FATTable returns every occupied FAT entry in ascending index order,
// which is also file-offset order, so callers can binary-search the
// result by block number. Link values are reported as stored: nothing
// checks that Next names a valid block, so a malformed image shows up
// as inconsistent pairs rather than a decode error. Entry 0 holds the
// image header and is therefore always listed.
func (s *Session) FATTable() []FATEntry {
	n := s.NumFATEntries()
	table := make([]FATEntry, 0, 64)
	for i := uint32(0); i < n; i++ {
		v := binary.LittleEndian.Uint16(s.buf[i*fatEntrySize:])
		if v == FreeEntry {
			continue
		}
		table = append(table, FATEntry{Block: uint16(i), Next: v})
	}
	return table
}

// fatEntry reads the raw FAT slot for the given entry index.
func (s *Session) fatEntry(i uint16) uint16 {
	return binary.LittleEndian.Uint16(s.buf[uint32(i)*fatEntrySize:])
}

package pennfat

import (
	"encoding/binary"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// DentrySize is the fixed length of one directory record.
const DentrySize = 64

// Dentry file types, by convention. The decoder passes the raw byte
// through without enforcing them.
const (
	TypeFile    byte = 0
	TypeDir     byte = 1
	TypeSymlink byte = 2
)

// maxValidMtime is the last millisecond of year 9999. Larger values
// mark never-written or garbage records; they render as "invalid"
// instead of a calendar date. The boundary is inclusive on the valid
// side.
const maxValidMtime uint64 = 253402300799000

// Dentry is one 64-byte directory record. Multi-byte fields are
// little-endian on disk. No cross-field validation happens at decode
// time; Type and Perm are opaque bytes, and Reserved is preserved as
// stored but never interpreted.
type Dentry struct {
	Name       [32]byte
	Size       uint32
	FirstBlock uint16
	Type       byte
	Perm       byte
	Mtime      uint64 // milliseconds since the Unix epoch
	Reserved   [16]byte
}

// Dentries interprets the block as packed directory records. Only
// complete 64-byte records decode; a trailing remainder of a block
// size not divisible by 64 is dropped. Every legal block size
// (256 << code) is 64-divisible, so the remainder case only arises
// for hand-built blocks.
func (b *Block) Dentries() []Dentry {
	n := len(b.Data) / DentrySize
	entries := make([]Dentry, n)
	for i := 0; i < n; i++ {
		entries[i] = decodeDentry(b.Data[i*DentrySize : (i+1)*DentrySize])
	}
	return entries
}

func decodeDentry(rec []byte) Dentry {
	var d Dentry
	copy(d.Name[:], rec[0:32])
	d.Size = binary.LittleEndian.Uint32(rec[32:36])
	d.FirstBlock = binary.LittleEndian.Uint16(rec[36:38])
	d.Type = rec[38]
	d.Perm = rec[39]
	d.Mtime = binary.LittleEndian.Uint64(rec[40:48])
	copy(d.Reserved[:], rec[48:64])
	return d
}

// DisplayName decodes the fixed-width name field for display:
// trailing NUL padding is trimmed and invalid UTF-8 sequences are
// replaced with U+FFFD. The raw bytes stay available in Name.
func (d *Dentry) DisplayName() string {
	name := strings.TrimRight(string(d.Name[:]), "\x00")
	if !utf8.ValidString(name) {
		name = strings.ToValidUTF8(name, string(utf8.RuneError))
	}
	return name
}

// MtimeValid reports whether Mtime is within the formattable range.
func (d *Dentry) MtimeValid() bool { return d.Mtime <= maxValidMtime }

// MtimeString formats the modification time as a UTC calendar date,
// or "invalid" for out-of-range values.
func (d *Dentry) MtimeString() string {
	if !d.MtimeValid() {
		return "invalid"
	}
	return time.UnixMilli(int64(d.Mtime)).UTC().Format("2006-01-02 15:04:05")
}

// String formats the dentry the way the directory pane shows it.
func (d *Dentry) String() string {
	return fmt.Sprintf("name: %s, size: %d, first_block: %d, type: %d, perm: %d, mtime: %s,",
		d.DisplayName(), d.Size, d.FirstBlock, d.Type, d.Perm, d.MtimeString())
}

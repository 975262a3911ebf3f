package pennfat

// Block is a zero-copy view of one data block. Data aliases the
// session buffer of the load or reload that produced it; a later
// reload replaces that buffer wholesale, so a retained block keeps
// reading its stale snapshot rather than torn memory.
type Block struct {
	Number uint16
	Data   []byte
}

// Block returns the data block with the given 1-based number. Block 0
// is reserved, so the valid range is 1..DataBlockCount. Out-of-range
// requests fail with InvalidBlockNumberError, which is recoverable
// and never fatal to the session. No further bounds check is needed
// on success: the length invariant established at load covers the
// whole data region.
func (s *Session) Block(n uint16) (*Block, error) {
	max := s.DataBlockCount()
	if n == 0 || n > max {
		return nil, &InvalidBlockNumberError{Requested: n, MaxValid: max}
	}
	off := int64(s.FATSize()) + int64(n-1)*int64(s.blockSize)
	return &Block{Number: n, Data: s.buf[off : off+int64(s.blockSize)]}, nil
}

// Raw renders the block for display, replacing every byte outside the
// printable range 32..176 with '.'. The mapping is presentation only;
// Data keeps the canonical bytes.
func (b *Block) Raw() string {
	out := make([]byte, len(b.Data))
	for i, c := range b.Data {
		if c < 32 || c > 176 {
			out[i] = '.'
		} else {
			out[i] = c
		}
	}
	return string(out)
}

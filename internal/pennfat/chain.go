package pennfat

// ReadFile concatenates the blocks of the chain starting at start,
// following each block's FAT entry until it equals ChainEnd. A chain
// that revisits a block fails with CyclicChainError instead of
// looping; a link that leaves the addressable range fails with
// InvalidBlockNumberError.
func (s *Session) ReadFile(start uint16) ([]byte, error) {
	visited := make(map[uint16]bool)
	var out []byte
	block := start
	for {
		if visited[block] {
			return nil, &CyclicChainError{Start: start, Repeated: block}
		}
		visited[block] = true

		b, err := s.Block(block)
		if err != nil {
			return nil, err
		}
		out = append(out, b.Data...)

		next := s.fatEntry(block)
		if next == ChainEnd {
			return out, nil
		}
		block = next
	}
}

package pennfat

import "fmt"

// SizeMismatchError reports an image whose length does not match the
// geometry declared by its two-byte header. It is fatal: no session
// is returned at load time, and a session that hits it on reload is
// unusable.
type SizeMismatchError struct {
	Path     string
	Expected int64
	Actual   int64
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("%s: image size %d does not match FAT configuration (expected %d)",
		e.Path, e.Actual, e.Expected)
}

// InvalidBlockNumberError reports a block request outside the
// addressable range. It is scoped to the single call that produced
// it; the session stays valid.
type InvalidBlockNumberError struct {
	Requested uint16
	MaxValid  uint16
}

func (e *InvalidBlockNumberError) Error() string {
	return fmt.Sprintf("invalid block number %d, must be >=1 and <= %d", e.Requested, e.MaxValid)
}

// CyclicChainError reports a FAT chain that revisited a block before
// reaching the end-of-chain terminator.
type CyclicChainError struct {
	Start    uint16
	Repeated uint16
}

func (e *CyclicChainError) Error() string {
	return fmt.Sprintf("cyclic FAT chain starting at block %d: block %d visited twice", e.Start, e.Repeated)
}

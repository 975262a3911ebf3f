package compression

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// Format identifies the compression wrapping of an image file.
type Format string

// Supported image wrappings.
const (
	FormatRaw  Format = "raw"
	FormatGzip Format = "gzip"
	FormatZstd Format = "zstd"
	FormatXz   Format = "xz"
)

var xzMagic = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}

// DetectFormat sniffs the leading magic bytes of b. Anything without
// a known compression signature is treated as a raw image.
func DetectFormat(b []byte) Format {
	switch {
	case len(b) >= 2 && b[0] == 0x1f && b[1] == 0x8b:
		return FormatGzip
	case len(b) >= 4 && b[0] == 0x28 && b[1] == 0xb5 && b[2] == 0x2f && b[3] == 0xfd:
		return FormatZstd
	case len(b) >= len(xzMagic) && bytes.Equal(b[:len(xzMagic)], xzMagic):
		return FormatXz
	default:
		return FormatRaw
	}
}

// ReadImage reads r to the end and transparently unwraps gzip, zstd,
// or xz compression.
func ReadImage(r io.Reader) ([]byte, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	return Decompress(raw)
}

// Decompress unwraps raw according to its detected format. Raw input
// is returned as is.
func Decompress(raw []byte) ([]byte, error) {
	switch DetectFormat(raw) {
	case FormatGzip:
		zr, err := gzip.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("gzip reader: %w", err)
		}
		defer zr.Close()
		out, err := io.ReadAll(zr)
		if err != nil {
			return nil, fmt.Errorf("gunzip image: %w", err)
		}
		return out, nil
	case FormatZstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, fmt.Errorf("zstd reader: %w", err)
		}
		defer dec.Close()
		out, err := dec.DecodeAll(raw, nil)
		if err != nil {
			return nil, fmt.Errorf("unzstd image: %w", err)
		}
		return out, nil
	case FormatXz:
		xr, err := xz.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("xz reader: %w", err)
		}
		out, err := io.ReadAll(xr)
		if err != nil {
			return nil, fmt.Errorf("unxz image: %w", err)
		}
		return out, nil
	default:
		return raw, nil
	}
}

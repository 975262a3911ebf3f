package compression

import (
	"bytes"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

func gzipBytes(t *testing.T, b []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(b); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	return buf.Bytes()
}

func zstdBytes(t *testing.T, b []byte) []byte {
	t.Helper()
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		t.Fatalf("zstd writer: %v", err)
	}
	defer enc.Close()
	return enc.EncodeAll(b, nil)
}

func xzBytes(t *testing.T, b []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	xw, err := xz.NewWriter(&buf)
	if err != nil {
		t.Fatalf("xz writer: %v", err)
	}
	if _, err := xw.Write(b); err != nil {
		t.Fatalf("xz write: %v", err)
	}
	if err := xw.Close(); err != nil {
		t.Fatalf("xz close: %v", err)
	}
	return buf.Bytes()
}

func TestDetectFormat(t *testing.T) {
	payload := []byte("pennfat image bytes")

	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{"Raw", payload, FormatRaw},
		{"Gzip", gzipBytes(t, payload), FormatGzip},
		{"Zstd", zstdBytes(t, payload), FormatZstd},
		{"Xz", xzBytes(t, payload), FormatXz},
		{"Empty", nil, FormatRaw},
		{"Short", []byte{0x1f}, FormatRaw},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFormat(tt.data); got != tt.want {
				t.Errorf("DetectFormat() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecompressRoundTrip(t *testing.T) {
	payload := bytes.Repeat([]byte("block data "), 100)

	tests := []struct {
		name string
		data []byte
	}{
		{"Raw", payload},
		{"Gzip", gzipBytes(t, payload)},
		{"Zstd", zstdBytes(t, payload)},
		{"Xz", xzBytes(t, payload)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decompress(tt.data)
			if err != nil {
				t.Fatalf("Decompress() failed: %v", err)
			}
			if !bytes.Equal(got, payload) {
				t.Errorf("Decompress() returned %d bytes, want %d matching payload", len(got), len(payload))
			}
		})
	}
}

func TestReadImage(t *testing.T) {
	payload := []byte("image")
	got, err := ReadImage(bytes.NewReader(gzipBytes(t, payload)))
	if err != nil {
		t.Fatalf("ReadImage() failed: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("ReadImage() = %q, want %q", got, payload)
	}
}

func TestDecompressCorruptInput(t *testing.T) {
	// A valid gzip magic followed by garbage must fail, not pass
	// through as raw.
	corrupt := []byte{0x1f, 0x8b, 0xff, 0xff, 0xff}
	if _, err := Decompress(corrupt); err == nil {
		t.Fatal("Decompress() of corrupt gzip should fail")
	}
}

package inspect

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/pennos/pfview/internal/pennfat"
	"github.com/pennos/pfview/internal/utils/compression"
	"github.com/pennos/pfview/internal/utils/logger"
	"go.uber.org/zap"
)

// ImageSummary holds everything the inspect command reports about a
// PennFat image.
type ImageSummary struct {
	File         string            `json:"file,omitempty" yaml:"file,omitempty"`
	Format       string            `json:"format,omitempty" yaml:"format,omitempty"`
	SHA256       string            `json:"sha256,omitempty" yaml:"sha256,omitempty"`
	SizeBytes    int64             `json:"sizeBytes" yaml:"sizeBytes"`
	LastModified string            `json:"lastModified,omitempty" yaml:"lastModified,omitempty"`
	Geometry     GeometrySummary   `json:"geometry" yaml:"geometry"`
	FAT          FATSummary        `json:"fat" yaml:"fat"`
	Entries      []FATEntrySummary `json:"entries,omitempty" yaml:"entries,omitempty"`
}

// GeometrySummary holds the geometry derived from the image header.
type GeometrySummary struct {
	BlockSize      uint32 `json:"blockSize" yaml:"blockSize"`
	NumFATBlocks   uint8  `json:"numFatBlocks" yaml:"numFatBlocks"`
	FATSizeBytes   uint32 `json:"fatSizeBytes" yaml:"fatSizeBytes"`
	NumFATEntries  uint32 `json:"numFatEntries" yaml:"numFatEntries"`
	DataBlockCount uint16 `json:"dataBlockCount" yaml:"dataBlockCount"`
	DataSizeBytes  int64  `json:"dataSizeBytes" yaml:"dataSizeBytes"`
}

// FATSummary holds occupancy counts over the FAT region.
type FATSummary struct {
	Occupied int `json:"occupied" yaml:"occupied"`
	Free     int `json:"free" yaml:"free"`
	Chains   int `json:"chains" yaml:"chains"` // entries holding the end-of-chain terminator
}

// FATEntrySummary is one occupied FAT entry.
type FATEntrySummary struct {
	Block      uint16 `json:"block" yaml:"block"`
	Next       uint16 `json:"next" yaml:"next"`
	EndOfChain bool   `json:"endOfChain,omitempty" yaml:"endOfChain,omitempty"`
}

// Inspector produces an ImageSummary for a PennFat image file.
type Inspector struct {
	HashImage bool
	logger    *zap.SugaredLogger
}

// NewInspector returns an Inspector; hash enables SHA-256 computation
// over the on-disk file.
func NewInspector(hash bool) *Inspector {
	return &Inspector{HashImage: hash, logger: logger.Logger()}
}

// Inspect loads the image and summarizes its geometry and FAT table.
func (ins *Inspector) Inspect(imagePath string) (*ImageSummary, error) {
	ins.logger.Infof("Inspecting image: %s, hashImage=%v", imagePath, ins.HashImage)

	s, err := pennfat.Load(imagePath)
	if err != nil {
		return nil, err
	}

	format, err := sniffFormat(imagePath)
	if err != nil {
		return nil, err
	}

	sha := ""
	if ins.HashImage {
		sha, err = computeFileSHA256(imagePath)
		if err != nil {
			return nil, fmt.Errorf("sha256 image: %w", err)
		}
	}

	summary := &ImageSummary{
		File:         imagePath,
		Format:       string(format),
		SHA256:       sha,
		SizeBytes:    s.Size(),
		LastModified: s.LastUpdateTime().UTC().Format("2006-01-02 15:04:05"),
		Geometry: GeometrySummary{
			BlockSize:      s.BlockSize(),
			NumFATBlocks:   s.NumFATBlocks(),
			FATSizeBytes:   s.FATSize(),
			NumFATEntries:  s.NumFATEntries(),
			DataBlockCount: s.DataBlockCount(),
			DataSizeBytes:  s.DataSize(),
		},
	}

	table := s.FATTable()
	summary.Entries = make([]FATEntrySummary, 0, len(table))
	for _, e := range table {
		eoc := e.Next == pennfat.ChainEnd
		summary.Entries = append(summary.Entries, FATEntrySummary{
			Block:      e.Block,
			Next:       e.Next,
			EndOfChain: eoc,
		})
		if eoc {
			summary.FAT.Chains++
		}
	}
	summary.FAT.Occupied = len(table)
	summary.FAT.Free = int(s.NumFATEntries()) - len(table)

	return summary, nil
}

// sniffFormat reads just enough of the on-disk file to classify its
// compression wrapping.
func sniffFormat(path string) (compression.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	head := make([]byte, 6)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", fmt.Errorf("read image header: %w", err)
	}
	return compression.DetectFormat(head[:n]), nil
}

func computeFileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

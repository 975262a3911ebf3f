package main

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pennos/pfview/internal/config"
	"github.com/pennos/pfview/internal/pennfat"
)

// viewerImage writes a minimal image with a two-block chain and loads
// a session on it.
func viewerSession(t *testing.T) *pennfat.Session {
	t.Helper()
	img := make([]byte, 32768)
	img[0] = 0
	img[1] = 1
	binary.LittleEndian.PutUint16(img[2:], 2)      // block 1 -> block 2
	binary.LittleEndian.PutUint16(img[4:], 0xFFFF) // block 2 ends the chain
	copy(img[256:], "hello raw pane")

	path := filepath.Join(t.TempDir(), "view.pfat")
	if err := os.WriteFile(path, img, 0644); err != nil {
		t.Fatalf("write image: %v", err)
	}
	s, err := pennfat.Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	return s
}

func TestFindFATIndex(t *testing.T) {
	table := []pennfat.FATEntry{
		{Block: 0, Next: 0x0100},
		{Block: 1, Next: 2},
		{Block: 2, Next: pennfat.ChainEnd},
		{Block: 9, Next: pennfat.ChainEnd},
	}

	tests := []struct {
		name  string
		block uint16
		index int
		found bool
	}{
		{"First", 0, 0, true},
		{"Middle", 2, 2, true},
		{"Last", 9, 3, true},
		{"Absent", 5, 0, false},
		{"PastEnd", 100, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			i, ok := findFATIndex(table, tt.block)
			if ok != tt.found || (ok && i != tt.index) {
				t.Errorf("findFATIndex(%d) = (%d, %v), want (%d, %v)", tt.block, i, ok, tt.index, tt.found)
			}
		})
	}
}

func TestFatRow(t *testing.T) {
	row := fatRow(pennfat.FATEntry{Block: 1, Next: pennfat.ChainEnd})
	if row != "0001 -> ffff" {
		t.Errorf("fatRow() = %q, want %q", row, "0001 -> ffff")
	}
}

func TestOverviewLine(t *testing.T) {
	s := viewerSession(t)
	line := overviewLine(s)

	for _, want := range []string{
		"fat size = 256",
		"(128 entries max)",
		"block size: 256",
		"# data blocks = 127",
		"last updated:",
	} {
		if !strings.Contains(line, want) {
			t.Errorf("overview missing %q: %s", want, line)
		}
	}
}

func TestHelpText(t *testing.T) {
	text := helpText()
	for _, key := range []string{"q", "quit", "toggle", "move down a block"} {
		if !strings.Contains(text, key) {
			t.Errorf("help text missing %q: %s", key, text)
		}
	}
}

func TestViewerRefreshAndModes(t *testing.T) {
	v := newViewer(viewerSession(t), config.DefaultViewer())

	// Populate state the way the tick handler does, without running
	// the application loop.
	v.refresh()

	if len(v.fatTable) != 3 {
		t.Fatalf("fatTable has %d entries, want 3 (header + chain)", len(v.fatTable))
	}
	if v.fatList.GetItemCount() != 3 {
		t.Errorf("list has %d items, want 3", v.fatList.GetItemCount())
	}

	// Directory mode is the default; block 1 decodes to four records.
	if v.rawMode {
		t.Error("viewer should start in directory mode")
	}

	v.rawMode = true
	idx, ok := findFATIndex(v.fatTable, 1)
	if !ok {
		t.Fatal("block 1 missing from table")
	}
	v.fatList.SetCurrentItem(idx)
	v.renderBlock(idx)
	if text := v.blockView.GetText(true); !strings.Contains(text, "hello raw pane") {
		t.Errorf("raw pane missing block contents: %q", text)
	}
}

func TestViewerFollowChain(t *testing.T) {
	v := newViewer(viewerSession(t), config.DefaultViewer())
	v.refresh()

	start, ok := findFATIndex(v.fatTable, 1)
	if !ok {
		t.Fatal("block 1 missing from table")
	}
	v.fatList.SetCurrentItem(start)

	v.followChain()
	next, ok := findFATIndex(v.fatTable, 2)
	if !ok {
		t.Fatal("block 2 missing from table")
	}
	if got := v.fatList.GetCurrentItem(); got != next {
		t.Errorf("selection = %d, want %d (block 2)", got, next)
	}

	// Block 2 terminates its chain; following again stays put.
	v.followChain()
	if got := v.fatList.GetCurrentItem(); got != next {
		t.Errorf("selection moved off a terminated chain: %d", got)
	}
}

func TestViewerMoveSelectionBounds(t *testing.T) {
	v := newViewer(viewerSession(t), config.DefaultViewer())
	v.refresh()

	v.fatList.SetCurrentItem(0)
	v.moveSelection(-1)
	if got := v.fatList.GetCurrentItem(); got != 0 {
		t.Errorf("selection = %d, want clamped at 0", got)
	}

	last := len(v.fatTable) - 1
	v.fatList.SetCurrentItem(last)
	v.moveSelection(1)
	if got := v.fatList.GetCurrentItem(); got != last {
		t.Errorf("selection = %d, want clamped at %d", got, last)
	}
}

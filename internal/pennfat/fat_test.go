package pennfat

import "testing"

func TestFATTableElidesFreeEntries(t *testing.T) {
	img := buildImage(t, 0, 1)
	setFAT(img, 1, 2)
	setFAT(img, 2, ChainEnd)
	setFAT(img, 9, ChainEnd)
	s := loadImage(t, img)

	table := s.FATTable()

	for _, e := range table {
		if e.Next == FreeEntry {
			t.Errorf("free entry %d listed in table", e.Block)
		}
	}

	// Entry 0 is the header (code=0, fat_blocks=1 -> 0x0100), so the
	// table lists it plus the three occupied entries.
	want := []FATEntry{
		{Block: 0, Next: 0x0100},
		{Block: 1, Next: 2},
		{Block: 2, Next: ChainEnd},
		{Block: 9, Next: ChainEnd},
	}
	if len(table) != len(want) {
		t.Fatalf("FATTable() has %d entries, want %d: %+v", len(table), len(want), table)
	}
	for i, e := range want {
		if table[i] != e {
			t.Errorf("entry %d = %+v, want %+v", i, table[i], e)
		}
	}
}

func TestFATTableOrderedByIndex(t *testing.T) {
	img := buildImage(t, 0, 1)
	setFAT(img, 100, ChainEnd)
	setFAT(img, 3, ChainEnd)
	setFAT(img, 50, 51)
	s := loadImage(t, img)

	table := s.FATTable()
	for i := 1; i < len(table); i++ {
		if table[i].Block <= table[i-1].Block {
			t.Fatalf("table not ascending at %d: %+v", i, table)
		}
	}
}

func TestFATTableEmptyFAT(t *testing.T) {
	s := loadImage(t, buildImage(t, 0, 1))

	table := s.FATTable()
	// Only the header entry survives on a freshly zeroed FAT.
	if len(table) != 1 || table[0].Block != 0 {
		t.Fatalf("FATTable() = %+v, want only entry 0", table)
	}
}

package main

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gdamore/tcell"
	"github.com/pennos/pfview/internal/config"
	"github.com/pennos/pfview/internal/pennfat"
	"github.com/rivo/tview"
)

// Key bindings shown in the help bar.
var instructions = [][2]string{
	{"q", "quit"},
	{"r", "view in raw mode"},
	{"d", "view in directory mode"},
	{"t", "toggle (raw/dir)"},
	{"j/↓", "move down a block"},
	{"k/↑", "move up a block"},
	{"l/→", "move to next block in file"},
}

// viewer is the interactive TUI. All state mutation happens on the
// tview event goroutine: the refresh ticker posts work through
// QueueUpdateDraw, which is what keeps the single-consumer session
// safe without extra locking.
type viewer struct {
	app     *tview.Application
	session *pennfat.Session
	cfg     config.Viewer

	overview  *tview.TextView
	fatList   *tview.List
	blockView *tview.TextView
	helpBar   *tview.TextView

	fatTable []pennfat.FATEntry
	rawMode  bool
	err      error
}

func newViewer(session *pennfat.Session, cfg config.Viewer) *viewer {
	v := &viewer{
		app:     tview.NewApplication(),
		session: session,
		cfg:     cfg,
	}

	v.overview = tview.NewTextView().SetTextAlign(tview.AlignCenter)
	v.overview.SetBorder(true).SetTitle("PennFat Overview")

	v.fatList = tview.NewList().ShowSecondaryText(false)
	v.fatList.SetSelectedBackgroundColor(tcell.ColorYellow).
		SetSelectedTextColor(tcell.ColorBlack)
	v.fatList.SetBorder(true).SetTitle("Fat Table")
	v.fatList.SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		v.renderBlock(index)
	})

	v.blockView = tview.NewTextView().SetWrap(true)
	v.blockView.SetBorder(true).SetTitle("block")

	v.helpBar = tview.NewTextView().SetDynamicColors(true).SetText(helpText())
	v.helpBar.SetBorder(true).SetTitle("Help")

	body := tview.NewFlex().
		AddItem(v.fatList, 15, 0, true).
		AddItem(v.blockView, 0, 1, false)

	root := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(v.overview, 3, 0, false).
		AddItem(body, 0, 1, true).
		AddItem(v.helpBar, 4, 0, false)

	v.app.SetRoot(root, true).SetInputCapture(v.handleKey)
	return v
}

// Run drives the viewer until quit or a fatal session error.
func (v *viewer) Run() error {
	v.refresh()

	stop := make(chan struct{})
	go func() {
		ticker := time.NewTicker(v.cfg.RefreshInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				v.app.QueueUpdateDraw(v.refresh)
			case <-stop:
				return
			}
		}
	}()

	err := v.app.Run()
	close(stop)
	if err != nil {
		return err
	}
	return v.err
}

// refresh reloads the session, rebuilds the FAT list, and re-renders
// the selected block. A reload failure is fatal to the session, so
// the app stops and surfaces the error.
func (v *viewer) refresh() {
	if err := v.session.Reload(); err != nil {
		v.err = err
		v.app.Stop()
		return
	}

	v.fatTable = v.session.FATTable()
	v.overview.SetText(overviewLine(v.session))

	selected := v.fatList.GetCurrentItem()
	v.fatList.Clear()
	for _, e := range v.fatTable {
		v.fatList.AddItem(fatRow(e), "", 0, nil)
	}
	if len(v.fatTable) > 0 {
		if selected < 0 || selected >= len(v.fatTable) {
			selected = len(v.fatTable) - 1
		}
		v.fatList.SetCurrentItem(selected)
	}
	v.renderBlock(v.fatList.GetCurrentItem())
}

// renderBlock paints the right pane for the table entry at index,
// honoring the raw/directory mode toggle. Block errors render as text
// in place of the block; they never terminate the session.
func (v *viewer) renderBlock(index int) {
	if index < 0 || index >= len(v.fatTable) {
		v.blockView.SetText("nothing selected")
		return
	}

	block, err := v.session.Block(v.fatTable[index].Block)
	if err != nil {
		v.blockView.SetText(fmt.Sprintf("error reading block: %v", err))
		return
	}

	if v.rawMode {
		v.blockView.SetText(tview.Escape(block.Raw()))
		return
	}

	var sb strings.Builder
	for _, d := range block.Dentries() {
		sb.WriteString(d.String())
		sb.WriteByte('\n')
	}
	v.blockView.SetText(tview.Escape(sb.String()))
}

func (v *viewer) handleKey(event *tcell.EventKey) *tcell.EventKey {
	switch {
	case event.Rune() == 'q':
		v.app.Stop()
		return nil
	case event.Rune() == 'r':
		v.rawMode = true
	case event.Rune() == 'd':
		v.rawMode = false
	case event.Rune() == 't':
		v.rawMode = !v.rawMode
	case event.Key() == tcell.KeyDown || event.Rune() == 'j':
		v.moveSelection(1)
		return nil
	case event.Key() == tcell.KeyUp || event.Rune() == 'k':
		v.moveSelection(-1)
		return nil
	case event.Key() == tcell.KeyRight || event.Rune() == 'l':
		v.followChain()
		return nil
	default:
		return event
	}
	v.renderBlock(v.fatList.GetCurrentItem())
	return nil
}

func (v *viewer) moveSelection(delta int) {
	selected := v.fatList.GetCurrentItem() + delta
	if selected >= 0 && selected < len(v.fatTable) {
		v.fatList.SetCurrentItem(selected)
	}
}

// followChain jumps the selection to the block the current entry
// links to, if that block is itself in the table.
func (v *viewer) followChain() {
	selected := v.fatList.GetCurrentItem()
	if selected < 0 || selected >= len(v.fatTable) {
		return
	}
	next := v.fatTable[selected].Next
	if next == pennfat.FreeEntry || next == pennfat.ChainEnd {
		return
	}
	if i, ok := findFATIndex(v.fatTable, next); ok {
		v.fatList.SetCurrentItem(i)
	}
}

// findFATIndex binary-searches the table (ascending by block) for the
// entry describing the given block.
func findFATIndex(table []pennfat.FATEntry, block uint16) (int, bool) {
	i := sort.Search(len(table), func(i int) bool { return table[i].Block >= block })
	if i < len(table) && table[i].Block == block {
		return i, true
	}
	return 0, false
}

func fatRow(e pennfat.FATEntry) string {
	return fmt.Sprintf("%04x -> %04x", e.Block, e.Next)
}

func overviewLine(s *pennfat.Session) string {
	return fmt.Sprintf("fat size = %d (%d entries max), block size: %d, # data blocks = %d, last updated: %s",
		s.FATSize(), s.NumFATEntries(), s.BlockSize(), s.DataBlockCount(),
		s.LastUpdateTime().UTC().Format("2006-01-02 15:04:05"))
}

func helpText() string {
	parts := make([]string, 0, len(instructions))
	for _, in := range instructions {
		parts = append(parts, fmt.Sprintf("[green::b]%s[-:-:-]: %s", in[0], in[1]))
	}
	return strings.Join(parts, " | ")
}

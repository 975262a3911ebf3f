package config

import (
	"fmt"
	"time"
)

// Viewer refresh bounds. The default matches a comfortable poll rate:
// fast enough that edits show up promptly, slow enough to keep CPU
// usage well under one percent of a core.
const (
	DefaultRefreshInterval = 700 * time.Millisecond
	MinRefreshInterval     = 50 * time.Millisecond
)

// Viewer holds the runtime settings of the interactive viewer.
type Viewer struct {
	// RefreshInterval is how often the image file is polled for
	// changes and the screen redrawn.
	RefreshInterval time.Duration
	// LogFile receives log output; empty means logging is discarded
	// while the viewer owns the terminal.
	LogFile string
	// Verbose enables debug-level logging.
	Verbose bool
}

// DefaultViewer returns the viewer settings used when no flags are
// given.
func DefaultViewer() Viewer {
	return Viewer{RefreshInterval: DefaultRefreshInterval}
}

// Validate rejects settings the viewer cannot run with.
func (v *Viewer) Validate() error {
	if v.RefreshInterval < MinRefreshInterval {
		return fmt.Errorf("refresh interval %s is below the minimum %s", v.RefreshInterval, MinRefreshInterval)
	}
	return nil
}

package logger

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

var (
	mu  sync.Mutex
	log *zap.SugaredLogger
)

// Logger returns the process-wide sugared logger. Before Configure is
// called it logs to stderr at info level.
func Logger() *zap.SugaredLogger {
	mu.Lock()
	defer mu.Unlock()
	if log == nil {
		log = newStderrLogger(false)
	}
	return log
}

// Configure replaces the global logger. An empty logFile keeps the
// stderr sink; verbose lowers the level to debug.
func Configure(logFile string, verbose bool) error {
	mu.Lock()
	defer mu.Unlock()
	if logFile == "" {
		log = newStderrLogger(verbose)
		return nil
	}
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	cfg.OutputPaths = []string{logFile}
	cfg.ErrorOutputPaths = []string{logFile}
	l, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	log = l.Sugar()
	return nil
}

// Discard silences all logging. The interactive viewer owns the
// terminal, so without a --log-file there is nowhere safe to write.
func Discard() {
	mu.Lock()
	defer mu.Unlock()
	log = zap.NewNop().Sugar()
}

func newStderrLogger(verbose bool) *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	l, err := cfg.Build()
	if err != nil {
		// The stderr config is static; Build cannot fail on it.
		panic(err)
	}
	return l.Sugar()
}

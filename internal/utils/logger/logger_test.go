package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoggerNotNil(t *testing.T) {
	if Logger() == nil {
		t.Fatal("Logger() returned nil")
	}
}

func TestConfigureFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pfview.log")
	if err := Configure(path, false); err != nil {
		t.Fatalf("Configure() failed: %v", err)
	}
	defer func() { _ = Configure("", false) }()

	Logger().Infof("hello %s", "file")
	_ = Logger().Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "hello file") {
		t.Errorf("log file missing message: %q", string(data))
	}
}

func TestConfigureBadPath(t *testing.T) {
	err := Configure(filepath.Join(t.TempDir(), "missing", "dir", "x.log"), false)
	if err == nil {
		t.Fatal("Configure() with an unwritable path should fail")
	}
}

func TestDiscard(t *testing.T) {
	Discard()
	defer func() { _ = Configure("", false) }()
	if Logger() == nil {
		t.Fatal("Logger() returned nil after Discard")
	}
	// Must not panic or write anywhere.
	Logger().Infof("dropped")
}

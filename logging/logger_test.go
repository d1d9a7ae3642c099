package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitWritesToFile(t *testing.T) {
	prev := Log
	t.Cleanup(func() { Log = prev })

	path := filepath.Join(t.TempDir(), "client.log")
	if err := Init(path, true); err != nil {
		t.Fatalf("Init: %v", err)
	}
	Named("session").Debugw("entity joined", "entity", 7)
	Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "entity joined") || !strings.Contains(out, "session") {
		t.Fatalf("log output missing entry: %q", out)
	}
}

func TestDebugSuppressedAtInfo(t *testing.T) {
	prev := Log
	t.Cleanup(func() { Log = prev })

	path := filepath.Join(t.TempDir(), "client.log")
	if err := Init(path, false); err != nil {
		t.Fatalf("Init: %v", err)
	}
	Log.Debug("hidden")
	Log.Info("shown")
	Sync()

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "hidden") || !strings.Contains(string(data), "shown") {
		t.Fatalf("unexpected log output: %q", data)
	}
}

package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func restoreDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
}

func TestNew_TextFormat(t *testing.T) {
	restoreDefault(t)
	var buf bytes.Buffer

	log := New(&buf, false, "text")
	log.Debug("hidden")
	log.Info("composed", "lines", 4)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("Expected debug output to be suppressed")
	}
	if !strings.Contains(out, "msg=composed") || !strings.Contains(out, "lines=4") {
		t.Errorf("Unexpected text output: %q", out)
	}
}

func TestNew_JSONVerbose(t *testing.T) {
	restoreDefault(t)
	var buf bytes.Buffer

	New(&buf, true, "JSON")
	slog.Debug("pool grown", "size", 12)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Expected JSON output, got %q: %v", buf.String(), err)
	}
	if entry["msg"] != "pool grown" || entry["level"] != "DEBUG" {
		t.Errorf("Unexpected entry: %v", entry)
	}
}

package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestToZapLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		InfoLevel:  zapcore.InfoLevel,
		WarnLevel:  zapcore.WarnLevel,
		ErrorLevel: zapcore.ErrorLevel,
		DebugLevel: zapcore.DebugLevel,
		"bogus":    zapcore.DebugLevel,
	}
	for in, want := range cases {
		if got := toZapLevel(in); got != want {
			t.Fatalf("toZapLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewWithWriter_JSONRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(WarnLevel, FormatJSON, &buf)

	log.Infow("dropped", "k", 1)
	log.Warnw("kept", "k", 2)
	_ = log.Sync()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d: %q", len(lines), buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if entry["msg"] != "kept" || entry["k"] != float64(2) {
		t.Fatalf("unexpected entry: %v", entry)
	}
}

func TestNewWithWriter_Console(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(InfoLevel, FormatConsole, &buf)
	log.Infow("user_created", "id", 7)
	_ = log.Sync()

	out := buf.String()
	if !strings.Contains(out, "INFO") || !strings.Contains(out, "user_created") {
		t.Fatalf("unexpected console output: %q", out)
	}
}

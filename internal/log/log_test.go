package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestNewWithWriter_TextFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewWithWriter(&buf, Config{Level: slog.LevelInfo})

	logger.Info("catalog loaded", "products", 20)

	out := buf.String()
	if !strings.Contains(out, "catalog loaded") {
		t.Errorf("log output %q missing message", out)
	}
	if !strings.Contains(out, "products=20") {
		t.Errorf("log output %q missing attribute", out)
	}
}

func TestNewWithWriter_JSONFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewWithWriter(&buf, Config{JSON: true})

	logger.Info("hello")

	out := buf.String()
	if !strings.HasPrefix(out, "{") {
		t.Errorf("JSON handler output %q does not look like JSON", out)
	}
	if !strings.Contains(out, `"msg":"hello"`) {
		t.Errorf("JSON output %q missing msg field", out)
	}
}

func TestNewWithWriter_LevelFiltering(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewWithWriter(&buf, Config{Level: slog.LevelWarn})

	logger.Debug("too quiet")
	logger.Info("still too quiet")
	logger.Warn("loud enough")

	out := buf.String()
	if strings.Contains(out, "too quiet") {
		t.Errorf("level filter leaked lower-level records: %q", out)
	}
	if !strings.Contains(out, "loud enough") {
		t.Errorf("warn record missing from output: %q", out)
	}
}

func TestNewNop_DiscardsOutput(t *testing.T) {
	t.Parallel()

	logger := NewNop()
	if logger == nil {
		t.Fatal("NewNop() returned nil")
	}
	// Must not panic on use.
	logger.Error("nothing to see")
}

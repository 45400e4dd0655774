package cmd

import (
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestPrintVersionInfo(t *testing.T) {
	var b strings.Builder
	if err := printVersionInfo(&b); err != nil {
		t.Fatalf("printVersionInfo() = %v", err)
	}

	out := b.String()
	for _, want := range []string{"StyleSphere v", "Build:", "Commit:"} {
		if !strings.Contains(out, want) {
			t.Errorf("version output missing %q", want)
		}
	}
}

func TestPrintHelp(t *testing.T) {
	var b strings.Builder
	printHelp(&b)

	out := b.String()
	for _, want := range []string{"/checkout", "/qty", "GEMINI_API_KEY", "--version"} {
		if !strings.Contains(out, want) {
			t.Errorf("help output missing %q", want)
		}
	}
}

func TestCheckRequiredEnv(t *testing.T) {
	t.Run("missing key", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "")

		var b strings.Builder
		if err := checkRequiredEnv(&b); err == nil {
			t.Fatal("checkRequiredEnv() = nil, want error")
		}
		if !strings.Contains(b.String(), "export GEMINI_API_KEY") {
			t.Error("missing-key message lacks setup instructions")
		}
	})

	t.Run("key present", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "test-key")

		var b strings.Builder
		if err := checkRequiredEnv(&b); err != nil {
			t.Errorf("checkRequiredEnv() = %v, want nil", err)
		}
		if b.Len() != 0 {
			t.Error("instructions printed despite key being set")
		}
	})
}

func TestInitLogger(t *testing.T) {
	t.Setenv("DEBUG", "")
	if initLogger() == nil {
		t.Fatal("initLogger() = nil")
	}

	t.Setenv("DEBUG", "1")
	logger := initLogger()
	if !logger.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("DEBUG env did not enable debug level")
	}
}

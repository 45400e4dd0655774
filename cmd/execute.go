// Package cmd contains the application entry points: flag handling,
// startup checks, and wiring of the interactive shopping session.
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/stylesphere/stylesphere/internal/config"
	"github.com/stylesphere/stylesphere/internal/log"
)

// Version information (injected at build time via ldflags).
var (
	AppVersion = "0.1.0"
	BuildTime  = "unknown"
	GitCommit  = "unknown"
)

// Execute is the main entry point for the stylesphere CLI.
//
// Designed to be called from main() and exercised directly in tests.
// Version and help flags work before any initialization so they
// succeed even with a broken config or missing credentials.
func Execute() error {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "version", "--version", "-v":
			return printVersionInfo(os.Stdout)
		case "help", "--help", "-h":
			printHelp(os.Stdout)
			return nil
		}
	}

	logger := initLogger()
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Credential gate: without a key the session never starts.
	if err := checkRequiredEnv(os.Stderr); err != nil {
		return err
	}

	return runCLI(cfg, logger)
}

// initLogger builds the application logger. Output goes to stderr:
// stdout belongs to the TUI. DEBUG env var enables debug level.
func initLogger() log.Logger {
	cfg := log.Config{Level: slog.LevelInfo}
	if os.Getenv("DEBUG") != "" {
		cfg.Level = slog.LevelDebug
	}
	return log.New(cfg)
}

// checkRequiredEnv verifies the Gemini credential is present. The key
// itself is consumed by the Genkit plugin; this check exists only to
// fail before the TUI starts, with instructions instead of a stack
// trace mid-session.
func checkRequiredEnv(w io.Writer) error {
	if os.Getenv("GEMINI_API_KEY") == "" {
		fmt.Fprintln(w, "Error: GEMINI_API_KEY environment variable not set")
		fmt.Fprintln(w, "")
		fmt.Fprintln(w, "StyleSphere requires a Gemini API key to function.")
		fmt.Fprintln(w, "")
		fmt.Fprintln(w, "To set your API key:")
		fmt.Fprintln(w, "  export GEMINI_API_KEY=your-api-key")
		fmt.Fprintln(w, "")
		fmt.Fprintln(w, "Get your API key at: https://ai.google.dev/")

		return fmt.Errorf("GEMINI_API_KEY not set")
	}
	return nil
}

func printVersionInfo(w io.Writer) error {
	fmt.Fprintf(w, "StyleSphere v%s\n", AppVersion)
	fmt.Fprintf(w, "Build: %s\n", BuildTime)
	fmt.Fprintf(w, "Commit: %s\n", GitCommit)
	return nil
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, "StyleSphere - AI shopping assistant in your terminal")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  stylesphere            Start an interactive shopping session")
	fmt.Fprintln(w, "  stylesphere --version  Show version information")
	fmt.Fprintln(w, "  stylesphere --help     Show this help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Interactive Commands:")
	fmt.Fprintln(w, "  /help              Show available commands")
	fmt.Fprintln(w, "  /checkout          Complete checkout for the current cart")
	fmt.Fprintln(w, "  /new               Start a new shopping session")
	fmt.Fprintln(w, "  /add <id>          Add a product to the cart by ID")
	fmt.Fprintln(w, "  /qty <id> <n>      Set the quantity of a cart item")
	fmt.Fprintln(w, "  /remove <id>       Remove a cart item")
	fmt.Fprintln(w, "  /exit, /quit       Exit")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Shortcuts:")
	fmt.Fprintln(w, "  Enter              Send message")
	fmt.Fprintln(w, "  Shift+Enter        New line")
	fmt.Fprintln(w, "  Ctrl+C             Clear input (twice to exit)")
	fmt.Fprintln(w, "  Ctrl+D             Exit")
	fmt.Fprintln(w, "  PgUp/PgDn          Scroll the conversation")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment Variables:")
	fmt.Fprintln(w, "  GEMINI_API_KEY             Required: Gemini API key")
	fmt.Fprintln(w, "  DEBUG                      Optional: enable debug logging")
	fmt.Fprintln(w, "  STYLESPHERE_MODEL_NAME     Optional: override the Gemini model")
	fmt.Fprintln(w, "  STYLESPHERE_CATALOG_URL    Optional: override the catalog endpoint")
	fmt.Fprintln(w, "  STYLESPHERE_OTLP_ENDPOINT  Optional: enable OTLP trace export")
}

package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	tea "charm.land/bubbletea/v2"
	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/googlegenai"

	"github.com/stylesphere/stylesphere/internal/assistant"
	"github.com/stylesphere/stylesphere/internal/catalog"
	"github.com/stylesphere/stylesphere/internal/config"
	"github.com/stylesphere/stylesphere/internal/log"
	"github.com/stylesphere/stylesphere/internal/observability"
	"github.com/stylesphere/stylesphere/internal/oracle"
	"github.com/stylesphere/stylesphere/internal/session"
	"github.com/stylesphere/stylesphere/internal/tui"
)

// runCLI wires the shopping session and runs the Bubble Tea program.
func runCLI(cfg *config.Config, logger log.Logger) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	shutdownTracing, err := observability.Setup(ctx, cfg.Tracing, logger)
	if err != nil {
		return fmt.Errorf("setting up tracing: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Warn("tracing shutdown error", "error", err)
		}
	}()

	// The GoogleAI plugin reads GEMINI_API_KEY from the environment.
	g := genkit.Init(ctx, genkit.WithPlugins(&googlegenai.GoogleAI{}))

	catalogClient, err := catalog.NewClient(cfg.CatalogURL, logger.With("component", "catalog"))
	if err != nil {
		return fmt.Errorf("creating catalog client: %w", err)
	}

	oracleClient, err := oracle.New(oracle.Config{
		Genkit:         g,
		Logger:         logger.With("component", "oracle"),
		ModelName:      "googleai/" + cfg.ModelName,
		Temperature:    cfg.Temperature,
		CatalogLimit:   cfg.CatalogPromptLimit,
		ConversionRate: cfg.ConversionRate,
	})
	if err != nil {
		return fmt.Errorf("creating oracle client: %w", err)
	}

	state := session.New()
	state.SetMaxMessages(cfg.MaxMessages)

	shopper, err := assistant.New(assistant.Config{
		Catalog: catalogClient,
		Oracle:  oracleClient,
		State:   state,
		Logger:  logger.With("component", "assistant"),
	})
	if err != nil {
		return fmt.Errorf("creating assistant: %w", err)
	}

	model, err := tui.New(ctx, tui.Config{
		Assistant:      shopper,
		ConversionRate: cfg.ConversionRate,
		CurrencySymbol: cfg.CurrencySymbol,
	})
	if err != nil {
		return fmt.Errorf("creating TUI: %w", err)
	}

	program := tea.NewProgram(model, tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("TUI exited: %w", err)
	}
	return nil
}

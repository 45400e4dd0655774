package observability

import (
	"context"
	"testing"

	"github.com/stylesphere/stylesphere/internal/config"
	"github.com/stylesphere/stylesphere/internal/log"
)

func TestSetup_DisabledWithoutEndpoint(t *testing.T) {
	shutdown, err := Setup(context.Background(), config.TracingConfig{}, log.NewNop())
	if err != nil {
		t.Fatalf("Setup() = %v", err)
	}
	if shutdown == nil {
		t.Fatal("Setup() returned nil shutdown")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("shutdown() = %v", err)
	}
}

func TestSetup_WithEndpoint(t *testing.T) {
	cfg := config.TracingConfig{
		Endpoint:    "localhost:4318",
		ServiceName: "stylesphere-test",
		Environment: "test",
	}

	shutdown, err := Setup(context.Background(), cfg, log.NewNop())
	if err != nil {
		t.Fatalf("Setup() = %v", err)
	}

	// The exporter is lazy; shutdown flushes whatever queued without
	// requiring a live collector.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = shutdown(ctx)
}

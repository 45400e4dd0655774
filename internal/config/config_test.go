package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}

	if cfg.ModelName != DefaultModelName {
		t.Errorf("ModelName = %q, want %q", cfg.ModelName, DefaultModelName)
	}
	if cfg.Temperature != DefaultTemperature {
		t.Errorf("Temperature = %v, want %v", cfg.Temperature, DefaultTemperature)
	}
	if cfg.CatalogURL != DefaultCatalogURL {
		t.Errorf("CatalogURL = %q, want %q", cfg.CatalogURL, DefaultCatalogURL)
	}
	if cfg.CatalogPromptLimit != DefaultCatalogPromptLimit {
		t.Errorf("CatalogPromptLimit = %d, want %d", cfg.CatalogPromptLimit, DefaultCatalogPromptLimit)
	}
	if cfg.ConversionRate != DefaultConversionRate {
		t.Errorf("ConversionRate = %v, want %v", cfg.ConversionRate, DefaultConversionRate)
	}
	if cfg.Tracing.Enabled() {
		t.Error("tracing enabled by default, want disabled")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("STYLESPHERE_MODEL_NAME", "gemini-2.5-pro")
	t.Setenv("STYLESPHERE_CATALOG_URL", "https://example.com/products")
	t.Setenv("STYLESPHERE_OTLP_ENDPOINT", "localhost:4318")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}

	if cfg.ModelName != "gemini-2.5-pro" {
		t.Errorf("ModelName = %q, want env override", cfg.ModelName)
	}
	if cfg.CatalogURL != "https://example.com/products" {
		t.Errorf("CatalogURL = %q, want env override", cfg.CatalogURL)
	}
	if !cfg.Tracing.Enabled() {
		t.Error("tracing not enabled by endpoint override")
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	configDir := filepath.Join(home, ".stylesphere")
	if err := os.MkdirAll(configDir, 0o750); err != nil {
		t.Fatal(err)
	}
	content := "model_name: gemini-2.5-pro\nconversion_rate: 83\n"
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}

	if cfg.ModelName != "gemini-2.5-pro" {
		t.Errorf("ModelName = %q, want file value", cfg.ModelName)
	}
	if cfg.ConversionRate != 83 {
		t.Errorf("ConversionRate = %v, want 83", cfg.ConversionRate)
	}
	// Untouched keys keep their defaults.
	if cfg.CurrencySymbol != DefaultCurrencySymbol {
		t.Errorf("CurrencySymbol = %q, want default", cfg.CurrencySymbol)
	}
}

func TestLoad_InvalidConfigFails(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	configDir := filepath.Join(home, ".stylesphere")
	if err := os.MkdirAll(configDir, 0o750); err != nil {
		t.Fatal(err)
	}
	content := "temperature: 9.5\n"
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); err == nil {
		t.Error("Load() = nil error for out-of-range temperature, want error")
	}
}

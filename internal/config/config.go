// Package config provides application configuration management with multi-source priority.
//
// Configuration sources (highest to lowest priority):
//  1. Environment variables (runtime override)
//  2. Config file (~/.stylesphere/config.yaml)
//  3. Default values (sensible defaults for quick start)
//
// Main configuration categories:
//   - AI: Gemini model selection and temperature
//   - Catalog: remote product endpoint and the prompt subset bound
//   - Currency: the fixed USD→INR display conversion
//   - Observability: optional OTLP trace export (see observability.go)
//
// The Gemini API key is NOT part of this config: it is read from the
// GEMINI_API_KEY environment variable directly by the Genkit plugin and
// validated at startup in cmd.
//
// Error Handling:
//   - Uses sentinel errors for Go-idiomatic error checking with errors.Is()
//   - Wrap with context using fmt.Errorf("%w: details", ErrXxx)
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	// DefaultModelName is the Gemini model used for shopping conversations.
	DefaultModelName = "gemini-2.5-flash"

	// DefaultTemperature matches the assistant's structured-output call.
	DefaultTemperature float32 = 0.5

	// DefaultCatalogURL is the public fakestore-shaped product endpoint.
	DefaultCatalogURL = "https://fakestoreapi.com/products"

	// DefaultCatalogPromptLimit bounds how many catalog items are embedded
	// in the oracle prompt. The subset is positional (first N), not ranked.
	DefaultCatalogPromptLimit = 20

	// DefaultConversionRate is the fixed USD→INR display rate. The same
	// constant feeds the prompt's currency hint and the cart display, so
	// it lives in exactly one place.
	DefaultConversionRate float64 = 80

	// DefaultCurrencySymbol is the symbol shown next to converted prices.
	DefaultCurrencySymbol = "₹"

	// DefaultMaxMessages bounds the transcript kept in memory.
	DefaultMaxMessages = 200
)

// Config stores application configuration.
type Config struct {
	// AI model configuration
	ModelName   string  `mapstructure:"model_name" json:"model_name"`
	Temperature float32 `mapstructure:"temperature" json:"temperature"`

	// Catalog configuration
	CatalogURL         string `mapstructure:"catalog_url" json:"catalog_url"`
	CatalogPromptLimit int    `mapstructure:"catalog_prompt_limit" json:"catalog_prompt_limit"`

	// Currency display configuration
	ConversionRate float64 `mapstructure:"conversion_rate" json:"conversion_rate"`
	CurrencySymbol string  `mapstructure:"currency_symbol" json:"currency_symbol"`

	// Transcript bound
	MaxMessages int `mapstructure:"max_messages" json:"max_messages"`

	// Observability configuration (see observability.go for type definition)
	Tracing TracingConfig `mapstructure:"tracing" json:"tracing"`
}

// Load loads configuration.
// Priority: Environment variables > Configuration file > Default values
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("getting user home directory: %w", err)
	}

	configDir := filepath.Join(home, ".stylesphere")

	if err := os.MkdirAll(configDir, 0o750); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)
	v.AddConfigPath(".") // Also support current directory

	setDefaults(v)
	bindEnvVariables(v)

	if err := v.ReadInConfig(); err != nil {
		// Configuration file not found is not an error, use default values
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		slog.Debug("configuration file not found, using default values",
			"search_paths", []string{configDir, "."},
			"config_name", "config.yaml")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}

	// Validate immediately (fail-fast)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets all default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("model_name", DefaultModelName)
	v.SetDefault("temperature", DefaultTemperature)

	v.SetDefault("catalog_url", DefaultCatalogURL)
	v.SetDefault("catalog_prompt_limit", DefaultCatalogPromptLimit)

	v.SetDefault("conversion_rate", DefaultConversionRate)
	v.SetDefault("currency_symbol", DefaultCurrencySymbol)

	v.SetDefault("max_messages", DefaultMaxMessages)

	// Tracing defaults (disabled until an endpoint is configured)
	v.SetDefault("tracing.endpoint", "")
	v.SetDefault("tracing.service_name", "stylesphere")
	v.SetDefault("tracing.environment", "dev")
}

// bindEnvVariables binds environment overrides explicitly.
// NOTE: GEMINI_API_KEY is read directly by Genkit, not via Viper;
// its presence is checked at startup in cmd.
func bindEnvVariables(v *viper.Viper) {
	// Hardcoded keys cannot fail to bind; a failure here is a bug.
	mustBind := func(key, envVar string) {
		if err := v.BindEnv(key, envVar); err != nil {
			panic(fmt.Sprintf("BUG: failed to bind %q to %q: %v", key, envVar, err))
		}
	}

	mustBind("model_name", "STYLESPHERE_MODEL_NAME")
	mustBind("catalog_url", "STYLESPHERE_CATALOG_URL")
	mustBind("tracing.endpoint", "STYLESPHERE_OTLP_ENDPOINT")
	mustBind("tracing.environment", "STYLESPHERE_ENVIRONMENT")
}

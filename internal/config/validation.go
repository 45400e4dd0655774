package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Sentinel errors for configuration validation.
// Check with errors.Is().
var (
	// ErrConfigNil indicates the configuration is nil.
	ErrConfigNil = errors.New("configuration is nil")

	// ErrInvalidModelName indicates the model name is invalid.
	ErrInvalidModelName = errors.New("invalid model name")

	// ErrInvalidTemperature indicates the temperature value is out of range.
	ErrInvalidTemperature = errors.New("invalid temperature")

	// ErrInvalidCatalogURL indicates the catalog endpoint is not an http(s) URL.
	ErrInvalidCatalogURL = errors.New("invalid catalog URL")

	// ErrInvalidCatalogLimit indicates the catalog prompt limit is out of range.
	ErrInvalidCatalogLimit = errors.New("invalid catalog prompt limit")

	// ErrInvalidConversionRate indicates the currency conversion rate is not positive.
	ErrInvalidConversionRate = errors.New("invalid conversion rate")

	// ErrInvalidCurrencySymbol indicates the currency symbol is empty.
	ErrInvalidCurrencySymbol = errors.New("invalid currency symbol")

	// ErrInvalidMaxMessages indicates the transcript bound is out of range.
	ErrInvalidMaxMessages = errors.New("invalid max messages")
)

// Bounds for range checks.
const (
	maxTemperature        = 2.0
	maxCatalogPromptLimit = 500
	minMaxMessages        = 10
)

// Validate performs comprehensive validation with clear error messages.
// Called by Load() immediately after unmarshaling (fail-fast).
func (c *Config) Validate() error {
	if c == nil {
		return ErrConfigNil
	}

	if strings.TrimSpace(c.ModelName) == "" {
		return fmt.Errorf("%w: model name must not be empty", ErrInvalidModelName)
	}

	if c.Temperature < 0 || c.Temperature > maxTemperature {
		return fmt.Errorf("%w: %v not in [0, %v]", ErrInvalidTemperature, c.Temperature, maxTemperature)
	}

	if err := validateCatalogURL(c.CatalogURL); err != nil {
		return err
	}

	if c.CatalogPromptLimit <= 0 || c.CatalogPromptLimit > maxCatalogPromptLimit {
		return fmt.Errorf("%w: %d not in [1, %d]", ErrInvalidCatalogLimit, c.CatalogPromptLimit, maxCatalogPromptLimit)
	}

	if c.ConversionRate <= 0 {
		return fmt.Errorf("%w: %v must be positive", ErrInvalidConversionRate, c.ConversionRate)
	}

	if strings.TrimSpace(c.CurrencySymbol) == "" {
		return fmt.Errorf("%w: symbol must not be empty", ErrInvalidCurrencySymbol)
	}

	if c.MaxMessages < minMaxMessages {
		return fmt.Errorf("%w: %d below minimum %d", ErrInvalidMaxMessages, c.MaxMessages, minMaxMessages)
	}

	return nil
}

func validateCatalogURL(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return fmt.Errorf("%w: URL must not be empty", ErrInvalidCatalogURL)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCatalogURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: scheme %q, want http or https", ErrInvalidCatalogURL, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: missing host", ErrInvalidCatalogURL)
	}
	return nil
}

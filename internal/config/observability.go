package config

// TracingConfig holds OTLP trace export settings.
// Tracing is disabled when Endpoint is empty.
type TracingConfig struct {
	// Endpoint is the OTLP HTTP collector address (e.g. "localhost:4318").
	Endpoint string `mapstructure:"endpoint" json:"endpoint"`

	// ServiceName identifies this application in the trace backend.
	ServiceName string `mapstructure:"service_name" json:"service_name"`

	// Environment tags exported spans (e.g. "dev", "prod").
	Environment string `mapstructure:"environment" json:"environment"`
}

// Enabled reports whether trace export is configured.
func (t TracingConfig) Enabled() bool {
	return t.Endpoint != ""
}

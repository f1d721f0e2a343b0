package config

// Config represents the full lpmspec configuration
type Config struct {
	// Codes a host may show; empty means the built-in default list
	Exposed []string `yaml:"exposed" mapstructure:"exposed"`

	// Path to a bundled schema replacing the embedded one (empty = embedded)
	BundledSchema string `yaml:"bundled_schema" mapstructure:"bundled_schema"`

	// Optional integrations gating payment methods
	Capabilities CapabilitiesConfig `yaml:"capabilities" mapstructure:"capabilities"`

	// Logging configuration
	Log LogConfig `yaml:"log" mapstructure:"log"`
}

// CapabilitiesConfig reports which optional integrations are linked into the host
type CapabilitiesConfig struct {
	FinancialConnections bool `yaml:"financial_connections" mapstructure:"financial_connections"`
}

// LogConfig configures the logger
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"` // "text" or "json"
}

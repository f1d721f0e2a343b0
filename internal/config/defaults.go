package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/dlovans/lpmspec/pkg/lpm"
)

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	exposed := make([]string, len(lpm.DefaultExposed))
	copy(exposed, lpm.DefaultExposed)

	return &Config{
		Exposed: exposed,
		Capabilities: CapabilitiesConfig{
			FinancialConnections: false,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// ErrConfigExists is returned by WriteDefault when path exists and force is false.
var ErrConfigExists = errors.New("config file already exists")

// WriteDefault writes a commented default configuration to a file.
// An existing file is only replaced when force is set.
func WriteDefault(path string, force bool) error {
	content := `# lpmspec configuration

# Payment methods the host may show (empty = built-in list)
# exposed:
#   - card
#   - sofort
#   - sepa_debit

# Replace the embedded bundled schema
# bundled_schema: ./lpms.json

# Optional integrations
capabilities:
  financial_connections: false  # enables us_bank_account

log:
  level: info   # debug, info, warn, error
  format: text  # text or json
`
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !force {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, 0644)
	if errors.Is(err, os.ErrExist) {
		return fmt.Errorf("%s: %w (use --force to overwrite)", path, ErrConfigExists)
	}
	if err != nil {
		return err
	}
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

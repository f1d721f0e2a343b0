package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. LPMSPEC_LOG_LEVEL.
const EnvPrefix = "LPMSPEC"

// Load reads configuration from path (optional) and the environment.
// Precedence: environment, then file, then defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	defaults := DefaultConfig()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults make every key known to viper so environment overrides apply
	// even when no file sets them.
	v.SetDefault("exposed", defaults.Exposed)
	v.SetDefault("bundled_schema", defaults.BundledSchema)
	v.SetDefault("capabilities.financial_connections", defaults.Capabilities.FinancialConnections)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.format", defaults.Log.Format)

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("stat config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if len(cfg.Exposed) == 0 {
		cfg.Exposed = defaults.Exposed
	}
	return cfg, nil
}

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dlovans/lpmspec/internal/config"
	"github.com/dlovans/lpmspec/internal/logging"
	"github.com/dlovans/lpmspec/pkg/lpm"
)

var (
	configPath string
	verbose    bool
	cfg        *config.Config
	logger     *logrus.Logger
	rootCmd    *cobra.Command
)

func init() {
	rootCmd = &cobra.Command{
		Use:   "lpmspec",
		Short: "lpmspec - payment method form specification resolver",
		Long: `lpmspec resolves which payment methods a checkout may show and the form each one renders.

It merges the bundled schema with an optional server schema, applies the exposed list,
and can lint schemas or validate values entered into a form.`,
		PersistentPreRunE: loadEnvironment,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "lpmspec.yaml", "Config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(configCmd)
}

// Execute runs the root command
func Execute(version string) error {
	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

// loadEnvironment reads .env, the config file and builds the logger.
func loadEnvironment(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if verbose {
		loaded.Log.Level = "debug"
	}

	log, err := logging.New(loaded.Log)
	if err != nil {
		return err
	}

	cfg = loaded
	logger = log
	return nil
}

// newResolver builds a resolver from the loaded config and initializes it from
// the configured bundled schema.
func newResolver() (*lpm.Resolver, error) {
	fcAvailable := cfg.Capabilities.FinancialConnections
	r := lpm.NewResolver(
		lpm.WithAllowList(cfg.Exposed),
		lpm.WithFinancialConnections(func() bool { return fcAvailable }),
		lpm.WithLogger(logger),
	)

	if cfg.BundledSchema == "" {
		r.InitializeDefault()
		return r, nil
	}

	data, err := os.ReadFile(cfg.BundledSchema)
	if err != nil {
		return nil, fmt.Errorf("read bundled schema: %w", err)
	}
	r.Initialize(data)
	return r, nil
}

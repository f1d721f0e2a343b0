package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dlovans/lpmspec/pkg/lpm"
)

var (
	exposedFlag []string
	serverFlag  string
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Print every resolved payment method",
	Long: `Initialize from the bundled schema and, when --server is given, apply a server update.

Without --exposed the configured allow-list is used as the exposed list.`,
	RunE: runResolve,
}

var showCmd = &cobra.Command{
	Use:   "show CODE",
	Short: "Print one resolved payment method",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	for _, cmd := range []*cobra.Command{resolveCmd, showCmd, validateCmd} {
		cmd.Flags().StringSliceVar(&exposedFlag, "exposed", nil, "Exposed payment method codes (comma separated)")
		cmd.Flags().StringVar(&serverFlag, "server", "", "Server schema file to apply as an update")
	}
}

// resolveFromFlags builds and updates a resolver according to --exposed and --server.
func resolveFromFlags() (*lpm.Resolver, error) {
	r, err := newResolver()
	if err != nil {
		return nil, err
	}

	if serverFlag == "" && len(exposedFlag) == 0 {
		return r, nil
	}

	exposed := exposedFlag
	if len(exposed) == 0 {
		exposed = cfg.Exposed
	}

	var server []byte
	if serverFlag != "" {
		server, err = os.ReadFile(serverFlag)
		if err != nil {
			return nil, fmt.Errorf("read server schema: %w", err)
		}
	}

	r.Update(exposed, string(server))
	return r, nil
}

func runResolve(cmd *cobra.Command, args []string) error {
	r, err := resolveFromFlags()
	if err != nil {
		return err
	}
	return printJSON(cmd, r.Values())
}

func runShow(cmd *cobra.Command, args []string) error {
	r, err := resolveFromFlags()
	if err != nil {
		return err
	}

	def, ok := r.FromCode(args[0])
	if !ok {
		return fmt.Errorf("payment method '%s' is not available", args[0])
	}
	return printJSON(cmd, def)
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

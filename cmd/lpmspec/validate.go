package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dlovans/lpmspec/pkg/lpm"
)

var valueFlags []string

var validateCmd = &cobra.Command{
	Use:   "validate CODE",
	Short: "Validate values entered into a payment method form",
	Long: `Validate values against the resolved form of CODE.

Values are given as --value 'field_id=value', e.g.
  lpmspec validate sepa_debit --value 'sepa_debit[iban]=DE89370400440532013000'`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringArrayVar(&valueFlags, "value", nil, "Field value as id=value (repeatable)")
}

func runValidate(cmd *cobra.Command, args []string) error {
	r, err := resolveFromFlags()
	if err != nil {
		return err
	}

	def, ok := r.FromCode(args[0])
	if !ok {
		return fmt.Errorf("payment method '%s' is not available", args[0])
	}

	values, err := parseValues(valueFlags)
	if err != nil {
		return err
	}

	result := lpm.Validate(def.Form, values)
	out := map[string]any{"result": result}
	if result.Status == lpm.StatusReady {
		out["params"] = lpm.Params(def.Form, values)
	}
	if err := printJSON(cmd, out); err != nil {
		return err
	}

	if result.Status != lpm.StatusReady {
		return fmt.Errorf("form is %s", strings.ToLower(string(result.Status)))
	}
	return nil
}

func parseValues(pairs []string) (map[lpm.Identifier]string, error) {
	values := make(map[lpm.Identifier]string, len(pairs))
	for _, pair := range pairs {
		id, value, ok := strings.Cut(pair, "=")
		if !ok || id == "" {
			return nil, errors.New("value must be of the form id=value: " + pair)
		}
		values[lpm.Identifier(id)] = value
	}
	return values, nil
}

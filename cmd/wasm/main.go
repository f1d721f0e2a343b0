//go:build js && wasm

// Package main provides WASM bindings for the LPM resolver.
// This allows a browser checkout to resolve and validate payment method forms.
package main

import (
	"encoding/json"
	"syscall/js"

	"github.com/dlovans/lpmspec/pkg/lpm"
)

func main() {
	// Financial connections availability is reported by the page, which knows
	// whether the bank-linking script is loaded.
	fcAvailable := func() bool {
		fn := js.Global().Get("LpmFinancialConnectionsAvailable")
		return fn.Type() == js.TypeFunction && fn.Invoke().Truthy()
	}

	resolver := lpm.NewResolver(lpm.WithFinancialConnections(fcAvailable))
	resolver.InitializeDefault()

	js.Global().Set("LpmInitialize", js.FuncOf(func(this js.Value, args []js.Value) any {
		return lpmInitialize(resolver, args)
	}))
	js.Global().Set("LpmUpdate", js.FuncOf(func(this js.Value, args []js.Value) any {
		return lpmUpdate(resolver, args)
	}))
	js.Global().Set("LpmFromCode", js.FuncOf(func(this js.Value, args []js.Value) any {
		return lpmFromCode(resolver, args)
	}))
	js.Global().Set("LpmCodes", js.FuncOf(func(this js.Value, args []js.Value) any {
		return makeResult(resolver.Codes())
	}))
	js.Global().Set("LpmValidate", js.FuncOf(func(this js.Value, args []js.Value) any {
		return lpmValidate(resolver, args)
	}))

	// Keep the Go runtime alive
	select {}
}

// lpmInitialize replaces the bundled schema.
// Usage: LpmInitialize(schemaJson) -> { result: [codes] }
func lpmInitialize(r *lpm.Resolver, args []js.Value) any {
	if len(args) < 1 {
		return makeError("LpmInitialize requires 1 argument: schemaJson")
	}
	r.Initialize([]byte(args[0].String()))
	return makeResult(r.Codes())
}

// lpmUpdate applies a server schema.
// Usage: LpmUpdate(exposedCodesJson, serverSchemaJson) -> { result: [codes] }
func lpmUpdate(r *lpm.Resolver, args []js.Value) any {
	if len(args) < 2 {
		return makeError("LpmUpdate requires 2 arguments: exposedCodesJson, serverSchemaJson")
	}

	var exposed []string
	if err := json.Unmarshal([]byte(args[0].String()), &exposed); err != nil {
		return makeError("exposedCodesJson must be a JSON array of strings")
	}

	r.Update(exposed, args[1].String())
	return makeResult(r.Codes())
}

// lpmFromCode looks up one payment method.
// Usage: LpmFromCode(code) -> { result: definition } or { error }
func lpmFromCode(r *lpm.Resolver, args []js.Value) any {
	if len(args) < 1 {
		return makeError("LpmFromCode requires 1 argument: code")
	}

	def, ok := r.FromCode(args[0].String())
	if !ok {
		return makeError("payment method not available: " + args[0].String())
	}
	return makeResult(def)
}

// lpmValidate validates entered values against a payment method form.
// Usage: LpmValidate(code, valuesJson) -> { result: { status, errors }, params? }
func lpmValidate(r *lpm.Resolver, args []js.Value) any {
	if len(args) < 2 {
		return makeError("LpmValidate requires 2 arguments: code, valuesJson")
	}

	def, ok := r.FromCode(args[0].String())
	if !ok {
		return makeError("payment method not available: " + args[0].String())
	}

	var values map[lpm.Identifier]string
	if err := json.Unmarshal([]byte(args[1].String()), &values); err != nil {
		return makeError("valuesJson must be a JSON object of strings")
	}

	result := lpm.Validate(def.Form, values)
	out := makeResult(result)
	if result.Status == lpm.StatusReady {
		out["params"] = toJS(lpm.Params(def.Form, values))
	}
	return out
}

// makeError creates a JS-friendly error response
func makeError(msg string) map[string]any {
	return map[string]any{
		"error": msg,
	}
}

// makeResult creates a JS-friendly success response
func makeResult(v any) map[string]any {
	return map[string]any{
		"result": toJS(v),
	}
}

// toJS round-trips v through JSON so syscall/js receives only maps, slices and
// primitives it can convert.
func toJS(v any) any {
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return string(data)
	}
	return out
}

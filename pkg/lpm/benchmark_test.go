package lpm

import (
	"fmt"
	"strings"
	"testing"
)

// BenchmarkInitializeDefault measures parsing and publishing the bundled schema.
func BenchmarkInitializeDefault(b *testing.B) {
	r := NewResolver()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.InitializeDefault()
	}
}

// BenchmarkUpdate measures a server refresh that overrides half the exposed codes.
func BenchmarkUpdate(b *testing.B) {
	r := NewResolver()
	r.InitializeDefault()
	server := createServerSchema(DefaultExposed[:len(DefaultExposed)/2])

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Update(DefaultExposed, server)
	}
}

// BenchmarkFromCodeParallel measures lookups racing a writer.
func BenchmarkFromCodeParallel(b *testing.B) {
	r := NewResolver()
	r.InitializeDefault()
	server := createServerSchema(DefaultExposed)

	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			default:
				r.Update(DefaultExposed, server)
			}
		}
	}()
	defer close(done)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			r.FromCode(DefaultExposed[i%len(DefaultExposed)])
			i++
		}
	})
}

// BenchmarkValidate measures validating a filled SEPA form.
func BenchmarkValidate(b *testing.B) {
	schema, _ := ParseSchema(BundledSchema())
	def, _ := schema.Lookup("sepa_debit")
	values := map[Identifier]string{
		"billing_details[name]":  "Jenny Rosen",
		"billing_details[email]": "jenny@example.com",
		"sepa_debit[iban]":       "DE89370400440532013000",
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Validate(def.Form, values)
	}
}

// createServerSchema builds a schema giving every code a name and email field.
func createServerSchema(codes []Code) string {
	entries := make([]string, 0, len(codes))
	for _, code := range codes {
		entries = append(entries, fmt.Sprintf(
			`{"type": %q, "async": false, "fields": [{"type": "name"}, {"type": "email"}]}`, code))
	}
	return "[" + strings.Join(entries, ",") + "]"
}

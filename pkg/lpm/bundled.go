package lpm

import _ "embed"

// bundledSchema is the schema shipped with the module. It is the fallback source
// for every update and the only source for InitializeDefault.
//
//go:embed lpms.json
var bundledSchema []byte

// BundledSchema returns a copy of the embedded default schema.
func BundledSchema() []byte {
	out := make([]byte, len(bundledSchema))
	copy(out, bundledSchema)
	return out
}

// DefaultExposed is the allow-list of codes a host may show unless configured otherwise.
var DefaultExposed = []Code{
	"card",
	"bancontact",
	"sofort",
	"ideal",
	"sepa_debit",
	"eps",
	"giropay",
	"p24",
	"klarna",
	"paypal",
	"afterpay_clearpay",
	"us_bank_account",
	"affirm",
	"au_becs_debit",
}

// FinancialConnectionsCode is gated on the bank-account linking capability.
const FinancialConnectionsCode Code = "us_bank_account"

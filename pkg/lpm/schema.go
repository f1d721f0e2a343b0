// Package lpm resolves Local Payment Method (LPM) form specifications.
// It merges a bundled schema with server-delivered overrides, applies hardcoded
// requirements and exposure gates, and validates values entered into a resolved form.
package lpm

// Code identifies a payment method, e.g. "card", "sofort", "us_bank_account".
type Code = string

// Identifier is the stable key used to read back a field's entered value.
// For input fields it is the API parameter path (e.g. "billing_details[email]").
type Identifier string

// FieldKind tags the variant held by a FieldSpec.
type FieldKind string

const (
	KindText     FieldKind = "text"
	KindDropdown FieldKind = "dropdown"
	KindEmail    FieldKind = "email"
	KindIBAN     FieldKind = "iban"
	KindMandate  FieldKind = "mandate"
	KindHeader   FieldKind = "header"
	KindEmpty    FieldKind = "empty"
)

// IsInput reports whether the kind collects a value from the user.
func (k FieldKind) IsInput() bool {
	switch k {
	case KindText, KindDropdown, KindEmail, KindIBAN:
		return true
	case KindMandate, KindHeader, KindEmpty:
		return false
	}
	return false
}

// ValidationRule names the format check applied to a text field.
type ValidationRule string

const (
	RuleNone            ValidationRule = ""
	RuleName            ValidationRule = "name"
	RuleEmail           ValidationRule = "email"
	RuleIBAN            ValidationRule = "iban"
	RuleBSB             ValidationRule = "bsb"
	RuleAUAccountNumber ValidationRule = "au_account_number"
	RuleCardNumber      ValidationRule = "card_number"
	RuleCardExpiry      ValidationRule = "card_expiry"
	RuleCVC             ValidationRule = "cvc"
)

// Capitalization is the keyboard auto-capitalization hint.
type Capitalization string

const (
	CapitalizeNone       Capitalization = "none"
	CapitalizeWords      Capitalization = "words"
	CapitalizeCharacters Capitalization = "characters"
	CapitalizeSentences  Capitalization = "sentences"
)

// KeyboardType is the keyboard layout hint.
type KeyboardType string

const (
	KeyboardText           KeyboardType = "text"
	KeyboardEmail          KeyboardType = "email"
	KeyboardNumber         KeyboardType = "number"
	KeyboardNumberPassword KeyboardType = "number_password"
	KeyboardASCII          KeyboardType = "ascii"
)

// DropdownItem pairs the text shown to the user with the value sent to the API.
type DropdownItem struct {
	DisplayText string `json:"display_text"`
	APIValue    string `json:"api_value"`
}

// FieldSpec describes one field of a form. Kind selects which of the
// kind-specific members are meaningful:
//
//	text:     Label, Rule, Capitalization, Keyboard
//	dropdown: Label, Items
//	email:    Label
//	iban:     Label
//	mandate:  Text
//	header:   Text
//	empty:    nothing
type FieldSpec struct {
	Kind           FieldKind      `json:"kind"`
	ID             Identifier     `json:"id"`
	Label          string         `json:"label,omitempty"`
	Rule           ValidationRule `json:"rule,omitempty"`
	Capitalization Capitalization `json:"capitalization,omitempty"`
	Keyboard       KeyboardType   `json:"keyboard,omitempty"`
	Items          []DropdownItem `json:"items,omitempty"`
	Text           string         `json:"text,omitempty"`
}

// EmptyField is the sentinel entry of a form that needs no user input.
var EmptyField = FieldSpec{Kind: KindEmpty, ID: "empty"}

// FormSpec is the ordered list of fields of a payment method form.
// The order is rendering order. It is never empty: a form without real fields
// holds exactly EmptyField.
type FormSpec struct {
	Fields []FieldSpec `json:"fields"`
}

// newForm builds a FormSpec from declared fields, collapsing to the sentinel
// when no real field remains.
func newForm(fields []FieldSpec) FormSpec {
	kept := make([]FieldSpec, 0, len(fields))
	for _, f := range fields {
		if f.Kind != KindEmpty {
			kept = append(kept, f)
		}
	}
	if len(kept) == 0 {
		return FormSpec{Fields: []FieldSpec{EmptyField}}
	}
	return FormSpec{Fields: kept}
}

// IsEmpty reports whether the form holds only the sentinel.
func (f FormSpec) IsEmpty() bool {
	return len(f.Fields) == 1 && f.Fields[0].Kind == KindEmpty
}

// Field returns the field with the given identifier.
func (f FormSpec) Field(id Identifier) (FieldSpec, bool) {
	for _, field := range f.Fields {
		if field.ID == id {
			return field, true
		}
	}
	return FieldSpec{}, false
}

// emptyFormAllowed lists codes whose forms may legitimately hold only the sentinel.
var emptyFormAllowed = map[Code]bool{
	"paypal":          true,
	"us_bank_account": true,
}

// AllowsEmptyForm reports whether code may resolve to a sentinel-only form.
func AllowsEmptyForm(code Code) bool {
	return emptyFormAllowed[code]
}

// Definition is a resolved payment method: its form and usage requirements.
// Definitions held by a Resolver are shared between readers and must be treated as read-only.
type Definition struct {
	Code        Code        `json:"code"`
	Async       bool        `json:"async"`
	Form        FormSpec    `json:"form"`
	Requirement Requirement `json:"requirement"`
}

package lpm

import (
	"fmt"
	"strings"

	"github.com/badoux/checkmail"
	creditcard "github.com/durango/go-credit-card"
	"github.com/jacoelho/banking/iban"
)

// Status summarises the values entered into a form.
type Status string

const (
	StatusReady      Status = "READY"      // every input field holds a valid value
	StatusIncomplete Status = "INCOMPLETE" // some input field is empty
	StatusInvalid    Status = "INVALID"    // some value fails its format check
)

// ErrorCode classifies a ValidationError.
type ErrorCode string

const (
	ErrorMissing ErrorCode = "missing"
	ErrorInvalid ErrorCode = "invalid"
)

// ValidationError ties a failure to a field.
type ValidationError struct {
	FieldID Identifier `json:"field_id"`
	Code    ErrorCode  `json:"code"`
	Message string     `json:"message"`
}

// Result is the outcome of validating a form's values.
type Result struct {
	Status Status            `json:"status"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// validator accumulates errors while walking a form.
type validator struct {
	errors []ValidationError
}

// Validate checks values (keyed by field identifier) against form.
// All fields are checked; errors accumulate rather than stopping at the first.
func Validate(form FormSpec, values map[Identifier]string) *Result {
	v := &validator{}
	for _, field := range form.Fields {
		v.validateField(field, strings.TrimSpace(values[field.ID]))
	}
	return &Result{
		Status: v.status(),
		Errors: v.errors,
	}
}

func (v *validator) validateField(field FieldSpec, value string) {
	switch field.Kind {
	case KindMandate, KindHeader, KindEmpty:
		return
	case KindText, KindDropdown, KindEmail, KindIBAN:
	default:
		v.add(field.ID, ErrorInvalid, fmt.Sprintf("unsupported field kind '%s'", field.Kind))
		return
	}

	if value == "" {
		v.add(field.ID, ErrorMissing, fmt.Sprintf("%s is required", displayName(field)))
		return
	}

	switch field.Kind {
	case KindText:
		if msg := checkRule(field.Rule, value); msg != "" {
			v.add(field.ID, ErrorInvalid, msg)
		}
	case KindEmail:
		if msg := checkRule(RuleEmail, value); msg != "" {
			v.add(field.ID, ErrorInvalid, msg)
		}
	case KindIBAN:
		if msg := checkRule(RuleIBAN, value); msg != "" {
			v.add(field.ID, ErrorInvalid, msg)
		}
	case KindDropdown:
		if !isValidItem(value, field.Items) {
			v.add(field.ID, ErrorInvalid, fmt.Sprintf("'%s' is not a valid option for %s", value, displayName(field)))
		}
	}
}

// checkRule returns an error message, or "" when value satisfies rule.
func checkRule(rule ValidationRule, value string) string {
	switch rule {
	case RuleNone, RuleName:
		return ""
	case RuleEmail:
		if err := checkmail.ValidateFormat(value); err != nil {
			return "Your email address is invalid."
		}
	case RuleIBAN:
		return checkIBAN(value)
	case RuleBSB:
		digits := stripSeparators(value, "- ")
		if len(digits) != 6 || !allDigits(digits) {
			return "The BSB you entered is invalid."
		}
	case RuleAUAccountNumber:
		if len(value) < 5 || len(value) > 9 || !allDigits(value) {
			return "The account number you entered is invalid."
		}
	case RuleCardNumber:
		digits := stripSeparators(value, " -")
		card := creditcard.Card{Number: digits}
		if !allDigits(digits) || !card.ValidateNumber() {
			return "Your card number is invalid."
		}
	case RuleCardExpiry:
		if !validExpiry(value) {
			return "Your card's expiration date is invalid."
		}
	case RuleCVC:
		if len(value) < 3 || len(value) > 4 || !allDigits(value) {
			return "Your card's security code is invalid."
		}
	default:
		return fmt.Sprintf("unknown validation rule '%s'", rule)
	}
	return ""
}

// checkIBAN validates an ISO 13616 IBAN: country format and mod-97 check digits.
func checkIBAN(value string) string {
	code := strings.ToUpper(stripSeparators(value, " "))
	if len(code) < 2 || !isASCIIUpper(code[0]) || !isASCIIUpper(code[1]) {
		return "The IBAN you entered is invalid."
	}
	if err := iban.Validate(code); err != nil {
		return "The IBAN you entered is invalid."
	}
	return ""
}

func isASCIIUpper(b byte) bool {
	return b >= 'A' && b <= 'Z'
}

// validExpiry accepts MM/YY or MMYY with a month between 01 and 12.
func validExpiry(value string) bool {
	digits := stripSeparators(value, "/ ")
	if len(digits) != 4 || !allDigits(digits) {
		return false
	}
	month := int(digits[0]-'0')*10 + int(digits[1]-'0')
	return month >= 1 && month <= 12
}

func stripSeparators(value, separators string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(separators, r) {
			return -1
		}
		return r
	}, value)
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// isValidItem checks value against the API values of a dropdown.
func isValidItem(value string, items []DropdownItem) bool {
	for _, item := range items {
		if item.APIValue == value {
			return true
		}
	}
	return false
}

func displayName(field FieldSpec) string {
	if field.Label != "" {
		return field.Label
	}
	return string(field.ID)
}

func (v *validator) add(id Identifier, code ErrorCode, message string) {
	v.errors = append(v.errors, ValidationError{
		FieldID: id,
		Code:    code,
		Message: message,
	})
}

// status derives the form status. Invalid values dominate missing ones.
func (v *validator) status() Status {
	hasMissing := false
	for _, err := range v.errors {
		if err.Code == ErrorInvalid {
			return StatusInvalid
		}
		hasMissing = true
	}
	if hasMissing {
		return StatusIncomplete
	}
	return StatusReady
}

// Params collects the entered values of input fields keyed by API path.
// Empty values are omitted.
func Params(form FormSpec, values map[Identifier]string) map[string]string {
	params := make(map[string]string)
	for _, field := range form.Fields {
		if !field.Kind.IsInput() {
			continue
		}
		value := strings.TrimSpace(values[field.ID])
		if value == "" {
			continue
		}
		if field.Kind == KindIBAN {
			value = strings.ToUpper(stripSeparators(value, " "))
		}
		params[string(field.ID)] = value
	}
	return params
}

package lpm

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrEmptySchema is returned for a payload with no content.
	ErrEmptySchema = errors.New("empty schema")
	// ErrNotArray is returned when the payload is not a JSON array.
	ErrNotArray = errors.New("schema is not a JSON array")
)

// ParseError reports a whole-payload failure. No entry of the payload is usable.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse schema: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Rejection records a schema entry that was discarded for structural problems.
// Code is empty when the entry had no usable "type".
type Rejection struct {
	Index  int    `json:"index"`
	Code   Code   `json:"code,omitempty"`
	Reason string `json:"reason"`
}

// SkippedField records a field dropped because its type tag is not recognised.
type SkippedField struct {
	Code Code   `json:"code"`
	Type string `json:"type"`
}

// Schema is a parsed LPM schema document.
// Entries keep declaration order; for duplicate codes the first entry wins.
type Schema struct {
	Entries  []*Definition
	Rejected []Rejection
	Skipped  []SkippedField

	byCode map[Code]*Definition
}

// Lookup returns the well-formed entry for code.
func (s *Schema) Lookup(code Code) (*Definition, bool) {
	if s == nil {
		return nil, false
	}
	def, ok := s.byCode[code]
	return def, ok
}

// Codes returns the codes of all well-formed entries in declaration order.
func (s *Schema) Codes() []Code {
	if s == nil {
		return nil
	}
	codes := make([]Code, 0, len(s.Entries))
	for _, def := range s.Entries {
		codes = append(codes, def.Code)
	}
	return codes
}

// rawEntry mirrors one element of the schema array. Unknown keys are ignored.
type rawEntry struct {
	Type   *string           `json:"type"`
	Async  bool              `json:"async"`
	Fields []json.RawMessage `json:"fields"`
}

type apiPath struct {
	V1 string `json:"v1"`
}

// rawField mirrors one element of an entry's "fields" array.
type rawField struct {
	Type           string         `json:"type"`
	APIPath        *apiPath       `json:"api_path"`
	Label          string         `json:"label"`
	Text           string         `json:"text"`
	Validation     ValidationRule `json:"validation"`
	Capitalization Capitalization `json:"capitalization"`
	KeyboardType   KeyboardType   `json:"keyboard_type"`
	Items          []DropdownItem `json:"items"`
}

func (f *rawField) path() Identifier {
	if f.APIPath == nil {
		return ""
	}
	return Identifier(f.APIPath.V1)
}

// ParseSchema decodes an LPM schema document.
// A payload that is not a JSON array yields a *ParseError. Malformed entries are
// listed in Rejected and unknown field types in Skipped; neither fails the parse.
func ParseSchema(data []byte) (*Schema, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, &ParseError{Err: ErrEmptySchema}
	}
	if trimmed[0] != '[' {
		return nil, &ParseError{Err: ErrNotArray}
	}

	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, &ParseError{Err: err}
	}

	schema := &Schema{
		Entries: make([]*Definition, 0, len(items)),
		byCode:  make(map[Code]*Definition, len(items)),
	}

	for i, item := range items {
		def, skipped, err := parseEntry(item)
		if err != nil {
			rej := Rejection{Index: i, Reason: err.Error()}
			if def != nil {
				rej.Code = def.Code
			}
			schema.Rejected = append(schema.Rejected, rej)
			continue
		}
		schema.Skipped = append(schema.Skipped, skipped...)
		if _, dup := schema.byCode[def.Code]; dup {
			continue
		}
		schema.byCode[def.Code] = def
		schema.Entries = append(schema.Entries, def)
	}

	return schema, nil
}

// parseEntry decodes one schema entry. On failure the returned definition, if
// non-nil, carries only the code so the caller can report it.
func parseEntry(item json.RawMessage) (*Definition, []SkippedField, error) {
	var probe struct {
		Type any `json:"type"`
	}
	if err := json.Unmarshal(item, &probe); err != nil {
		return nil, nil, fmt.Errorf("entry is not an object: %w", err)
	}
	code, ok := probe.Type.(string)
	if !ok || code == "" {
		return nil, nil, errors.New("entry has no type")
	}
	partial := &Definition{Code: code}

	var raw rawEntry
	if err := json.Unmarshal(item, &raw); err != nil {
		return partial, nil, fmt.Errorf("entry '%s': %w", code, err)
	}

	fields := make([]FieldSpec, 0, len(raw.Fields))
	var skipped []SkippedField
	for i, rf := range raw.Fields {
		field, tag, err := parseField(rf)
		if errors.Is(err, errUnknownFieldType) {
			skipped = append(skipped, SkippedField{Code: code, Type: tag})
			continue
		}
		if err != nil {
			return partial, nil, fmt.Errorf("entry '%s' field %d: %w", code, i, err)
		}
		fields = append(fields, field)
	}

	return &Definition{
		Code:        code,
		Async:       raw.Async,
		Form:        newForm(fields),
		Requirement: requirementFor(code, raw.Async),
	}, skipped, nil
}

var errUnknownFieldType = errors.New("unknown field type")

// parseField decodes a field and returns it with its type tag.
// An unrecognised tag yields errUnknownFieldType.
func parseField(data json.RawMessage) (FieldSpec, string, error) {
	var probe struct {
		Type any `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return FieldSpec{}, "", fmt.Errorf("field is not an object: %w", err)
	}
	tag, ok := probe.Type.(string)
	if !ok || tag == "" {
		return FieldSpec{}, "", errors.New("field has no type")
	}

	build, ok := fieldBuilders[tag]
	if !ok {
		return FieldSpec{}, tag, errUnknownFieldType
	}

	var raw rawField
	if err := json.Unmarshal(data, &raw); err != nil {
		return FieldSpec{}, tag, fmt.Errorf("field '%s': %w", tag, err)
	}
	field, err := build(tag, &raw)
	if err != nil {
		return FieldSpec{}, tag, fmt.Errorf("field '%s': %w", tag, err)
	}
	return field, tag, nil
}

// IsKnownFieldType reports whether tag is a field type the parser understands.
func IsKnownFieldType(tag string) bool {
	_, ok := fieldBuilders[tag]
	return ok
}

type fieldBuilder func(tag string, raw *rawField) (FieldSpec, error)

// fieldBuilders maps schema type tags onto field kinds. Adding a tag means adding
// an entry here; adding a kind also means extending the switches in validate.go.
var fieldBuilders = map[string]fieldBuilder{
	"name":                   buildName,
	"text":                   buildText,
	"email":                  buildEmail,
	"iban":                   buildIBAN,
	"selector":               buildSelector,
	"mandate":                buildMandate,
	"sepa_mandate":           buildMandate,
	"au_becs_mandate":        buildMandate,
	"affirm_header":          buildHeader,
	"afterpay_header":        buildHeader,
	"klarna_header":          buildHeader,
	"static_text":            buildHeader,
	"au_becs_bsb_number":     buildBSB,
	"au_becs_account_number": buildAUAccountNumber,
	"empty":                  buildEmpty,
}

func orDefault[T ~string](v, def T) T {
	if v == "" {
		return def
	}
	return v
}

func buildName(_ string, raw *rawField) (FieldSpec, error) {
	return FieldSpec{
		Kind:           KindText,
		ID:             orDefault(raw.path(), "billing_details[name]"),
		Label:          orDefault(raw.Label, "Full name"),
		Rule:           RuleName,
		Capitalization: orDefault(raw.Capitalization, CapitalizeWords),
		Keyboard:       orDefault(raw.KeyboardType, KeyboardText),
	}, nil
}

func buildText(_ string, raw *rawField) (FieldSpec, error) {
	if raw.path() == "" {
		return FieldSpec{}, errors.New("text field requires api_path")
	}
	switch raw.Validation {
	case RuleNone, RuleName, RuleEmail, RuleIBAN, RuleBSB, RuleAUAccountNumber,
		RuleCardNumber, RuleCardExpiry, RuleCVC:
	default:
		return FieldSpec{}, fmt.Errorf("unknown validation '%s'", raw.Validation)
	}
	return FieldSpec{
		Kind:           KindText,
		ID:             raw.path(),
		Label:          raw.Label,
		Rule:           raw.Validation,
		Capitalization: orDefault(raw.Capitalization, CapitalizeNone),
		Keyboard:       orDefault(raw.KeyboardType, KeyboardText),
	}, nil
}

func buildEmail(_ string, raw *rawField) (FieldSpec, error) {
	return FieldSpec{
		Kind:     KindEmail,
		ID:       orDefault(raw.path(), "billing_details[email]"),
		Label:    orDefault(raw.Label, "Email"),
		Rule:     RuleEmail,
		Keyboard: KeyboardEmail,
	}, nil
}

func buildIBAN(_ string, raw *rawField) (FieldSpec, error) {
	return FieldSpec{
		Kind:           KindIBAN,
		ID:             orDefault(raw.path(), "sepa_debit[iban]"),
		Label:          orDefault(raw.Label, "IBAN"),
		Rule:           RuleIBAN,
		Capitalization: CapitalizeCharacters,
		Keyboard:       KeyboardASCII,
	}, nil
}

func buildSelector(_ string, raw *rawField) (FieldSpec, error) {
	if raw.path() == "" {
		return FieldSpec{}, errors.New("selector requires api_path")
	}
	if len(raw.Items) == 0 {
		return FieldSpec{}, errors.New("selector requires items")
	}
	return FieldSpec{
		Kind:  KindDropdown,
		ID:    raw.path(),
		Label: raw.Label,
		Items: raw.Items,
	}, nil
}

var defaultMandateText = map[string]string{
	"sepa_mandate":    "By providing your payment information and confirming this payment, you authorise the merchant and its payment provider to send instructions to your bank to debit your account.",
	"au_becs_mandate": "By providing your bank account details, you agree to the Direct Debit Request and the Direct Debit Request service agreement.",
}

func buildMandate(tag string, raw *rawField) (FieldSpec, error) {
	return FieldSpec{
		Kind: KindMandate,
		ID:   orDefault(raw.path(), Identifier(tag)),
		Text: orDefault(raw.Text, defaultMandateText[tag]),
	}, nil
}

func buildHeader(tag string, raw *rawField) (FieldSpec, error) {
	return FieldSpec{
		Kind: KindHeader,
		ID:   Identifier(tag),
		Text: raw.Text,
	}, nil
}

func buildBSB(_ string, raw *rawField) (FieldSpec, error) {
	return FieldSpec{
		Kind:     KindText,
		ID:       orDefault(raw.path(), "au_becs_debit[bsb_number]"),
		Label:    orDefault(raw.Label, "BSB"),
		Rule:     RuleBSB,
		Keyboard: KeyboardNumber,
	}, nil
}

func buildAUAccountNumber(_ string, raw *rawField) (FieldSpec, error) {
	return FieldSpec{
		Kind:     KindText,
		ID:       orDefault(raw.path(), "au_becs_debit[account_number]"),
		Label:    orDefault(raw.Label, "Account number"),
		Rule:     RuleAUAccountNumber,
		Keyboard: KeyboardNumber,
	}, nil
}

func buildEmpty(string, *rawField) (FieldSpec, error) {
	return EmptyField, nil
}

// Package lint provides static analysis for LPM schemas.
// It reports problems a resolver would silently recover from, so schema authors
// can catch them before shipping.
package lint

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/dlovans/lpmspec/pkg/lpm"
)

// Issue represents a problem found during static analysis.
type Issue struct {
	Severity string `json:"severity"` // "error", "warning"
	Entry    int    `json:"entry"`
	Code     string `json:"code,omitempty"`
	Field    int    `json:"field"` // -1 when the issue concerns the whole entry
	Message  string `json:"message"`
}

// Result contains all issues found by the linter.
type Result struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues"`
}

// Schema types (minimal subset for linting, decoded loosely so that every
// problem can be reported rather than only the first)

type entry struct {
	Type   any               `json:"type"`
	Fields []json.RawMessage `json:"fields"`
}

type field struct {
	Type any `json:"type"`
}

// Run performs static analysis on a schema document.
// Only a payload that is not a JSON array is a hard error.
func Run(jsonText string) (*Result, error) {
	trimmed := bytes.TrimSpace([]byte(jsonText))
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("parse error: %w", lpm.ErrNotArray)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	result := &Result{
		Valid:  true,
		Issues: make([]Issue, 0),
	}

	firstSeen := make(map[string]int)
	for i, item := range items {
		var e entry
		if err := json.Unmarshal(item, &e); err != nil {
			result.addError(i, "", -1, fmt.Sprintf("entry %d is malformed: %v", i, err))
			continue
		}

		code, ok := e.Type.(string)
		if !ok || code == "" {
			result.addError(i, "", -1, fmt.Sprintf("entry %d has no type", i))
			continue
		}

		// Check 1: duplicate codes (later entries are ignored by the resolver)
		if first, dup := firstSeen[code]; dup {
			result.addError(i, code, -1, fmt.Sprintf("'%s' already defined by entry %d", code, first))
			continue
		}
		firstSeen[code] = i

		// Check 2: field types
		realFields := 0
		unknown := make([]string, 0)
		for j, raw := range e.Fields {
			var f field
			if err := json.Unmarshal(raw, &f); err != nil {
				result.addError(i, code, j, fmt.Sprintf("field %d of '%s' is malformed: %v", j, code, err))
				continue
			}
			tag, ok := f.Type.(string)
			if !ok || tag == "" {
				result.addError(i, code, j, fmt.Sprintf("field %d of '%s' has no type", j, code))
				continue
			}
			if !lpm.IsKnownFieldType(tag) {
				unknown = append(unknown, tag)
				result.addWarning(i, code, j, fmt.Sprintf("field type '%s' is unknown and will be dropped", tag))
				continue
			}
			if tag != "empty" {
				realFields++
			}
		}

		// Check 3: empty forms outside the allow-list
		if realFields == 0 && !lpm.AllowsEmptyForm(code) {
			msg := fmt.Sprintf("'%s' has no input fields and will render the empty form", code)
			if len(unknown) > 0 {
				sort.Strings(unknown)
				msg += fmt.Sprintf(" (dropped: %v)", unknown)
			}
			result.addWarning(i, code, -1, msg)
		}
	}

	// Check 4: structural problems the resolver would reject
	if schema, err := lpm.ParseSchema(trimmed); err == nil {
		for _, rej := range schema.Rejected {
			if !result.hasError(rej.Index) {
				result.addError(rej.Index, rej.Code, -1, rej.Reason)
			}
		}
	}

	return result, nil
}

func (r *Result) hasError(entry int) bool {
	for _, issue := range r.Issues {
		if issue.Entry == entry && issue.Severity == "error" {
			return true
		}
	}
	return false
}

func (r *Result) addError(entry int, code string, field int, message string) {
	r.Valid = false
	r.Issues = append(r.Issues, Issue{
		Severity: "error",
		Entry:    entry,
		Code:     code,
		Field:    field,
		Message:  message,
	})
}

func (r *Result) addWarning(entry int, code string, field int, message string) {
	r.Issues = append(r.Issues, Issue{
		Severity: "warning",
		Entry:    entry,
		Code:     code,
		Field:    field,
		Message:  message,
	})
}

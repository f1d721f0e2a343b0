package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dlovans/lpmspec/pkg/lpm"
)

func TestBundledSchemaIsClean(t *testing.T) {
	result, err := Run(string(lpm.BundledSchema()))
	require.NoError(t, err)

	assert.True(t, result.Valid)
	assert.Empty(t, result.Issues)
}

func TestRunRejectsNonArray(t *testing.T) {
	for _, input := range []string{"", `{"type": "card"}`, `[{"type": "card"}`} {
		_, err := Run(input)
		assert.Error(t, err, input)
	}
}

func TestRunReportsIssues(t *testing.T) {
	result, err := Run(`[
	  { "fields": [] },
	  { "type": "card", "fields": [ { "type": "name" }, { "type": "hologram" } ] },
	  { "type": "card", "fields": [ { "type": "email" } ] },
	  { "type": "sofort", "fields": [ { "type": "mystery" } ] },
	  { "type": "paypal", "fields": [] },
	  { "type": "ideal", "fields": [ { "label": "no type" } ] },
	  { "type": "eps", "fields": [ { "type": "selector", "api_path": { "v1": "eps[bank]" } } ] }
	]`)
	require.NoError(t, err)
	assert.False(t, result.Valid)

	type key struct {
		severity string
		entry    int
	}
	got := make(map[key]int)
	for _, issue := range result.Issues {
		got[key{issue.Severity, issue.Entry}]++
	}

	assert.Equal(t, 1, got[key{"error", 0}], "entry without type")
	assert.Equal(t, 1, got[key{"warning", 1}], "unknown field type on card")
	assert.Equal(t, 1, got[key{"error", 2}], "duplicate card")
	assert.Equal(t, 2, got[key{"warning", 3}], "unknown field and empty form for sofort")
	assert.Zero(t, got[key{"warning", 4}], "paypal may be empty")
	assert.Equal(t, 1, got[key{"error", 5}], "field without type")
	assert.Equal(t, 1, got[key{"error", 6}], "selector rejected by the parser")
}

func TestRunEmptyFormMessageListsDroppedTypes(t *testing.T) {
	result, err := Run(`[{ "type": "klarna", "fields": [ { "type": "zeta" }, { "type": "alpha" } ] }]`)
	require.NoError(t, err)
	assert.True(t, result.Valid)

	last := result.Issues[len(result.Issues)-1]
	assert.Equal(t, "warning", last.Severity)
	assert.Equal(t, -1, last.Field)
	assert.Contains(t, last.Message, "[alpha zeta]")
}

package lpm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDropdownConversion(t *testing.T) {
	field := FieldSpec{
		Kind: KindDropdown,
		ID:   "sofort[country]",
		Items: []DropdownItem{
			{DisplayText: "Austria", APIValue: "AT"},
			{DisplayText: "Belgium", APIValue: "BE"},
		},
	}

	assert.Equal(t, []string{"Austria", "Belgium"}, field.DisplayItems())

	assert.Equal(t, "Belgium", field.ConvertFromRaw("BE"))
	assert.Equal(t, "Austria", field.ConvertFromRaw("ZZ"), "unknown raw values fall back to the first item")

	raw, ok := field.ConvertToRaw("Belgium")
	assert.True(t, ok)
	assert.Equal(t, "BE", raw)

	_, ok = field.ConvertToRaw("Narnia")
	assert.False(t, ok)

	assert.Equal(t, "", FieldSpec{Kind: KindDropdown}.ConvertFromRaw("AT"))
}

package lpm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequirementUnion(t *testing.T) {
	hard := Requirement{
		PaymentIntent:  []Condition{ConditionDelayed},
		SetupSupported: true,
		SetupIntent:    []Condition{ConditionDelayed, ConditionCustomer},
	}
	declared := Requirement{
		PaymentIntent: []Condition{ConditionShippingAddress, ConditionDelayed},
		SetupIntent:   []Condition{ConditionDelayed},
	}

	got := hard.Union(declared)
	assert.Equal(t, []Condition{ConditionDelayed, ConditionShippingAddress}, got.PaymentIntent)
	assert.Equal(t, []Condition{ConditionDelayed, ConditionCustomer}, got.SetupIntent)
	assert.True(t, got.SetupSupported)
}

func TestRequirementUnionWithoutSetupSupport(t *testing.T) {
	got := Requirement{PaymentIntent: []Condition{ConditionShippingAddress}}.
		Union(Requirement{SetupIntent: []Condition{ConditionDelayed}})

	assert.False(t, got.SetupSupported)
	assert.Nil(t, got.SetupIntent)
	assert.False(t, got.SetupIntentRequires(ConditionDelayed))
}

func TestRequirementFor(t *testing.T) {
	tests := []struct {
		code    Code
		async   bool
		piDelay bool
		siDelay bool
	}{
		{"sofort", false, true, true},
		{"sepa_debit", false, true, true},
		{"ideal", false, false, true},
		{"card", false, false, false},
		{"card", true, true, true},
		{"eps", true, true, false},
		{"eps", false, false, false},
	}

	for _, tt := range tests {
		req := requirementFor(tt.code, tt.async)
		assert.Equal(t, tt.piDelay, req.PaymentIntentRequires(ConditionDelayed), "%s async=%v pi", tt.code, tt.async)
		assert.Equal(t, tt.siDelay, req.SetupIntentRequires(ConditionDelayed), "%s async=%v si", tt.code, tt.async)
	}

	assert.True(t, requirementFor("affirm", false).PaymentIntentRequires(ConditionShippingAddress))
	assert.Equal(t, HardcodedRequirement("sofort").PaymentIntent, []Condition{ConditionDelayed})
}

package lpm

// Condition is something that must hold for a payment method to be usable with an intent.
type Condition string

const (
	ConditionDelayed         Condition = "delayed"          // settlement is not immediate
	ConditionShippingAddress Condition = "shipping_address" // intent must carry a shipping address
	ConditionCustomer        Condition = "customer"         // a customer must be attached
)

// Requirement lists the conditions for PaymentIntent and SetupIntent usage.
// SetupIntent conditions only apply when SetupSupported is true; a method without
// setup support cannot be saved for future use.
type Requirement struct {
	PaymentIntent  []Condition `json:"pi_requirements"`
	SetupIntent    []Condition `json:"si_requirements,omitempty"`
	SetupSupported bool        `json:"setup_supported"`
}

// Union returns a requirement holding every condition of r and other.
// Conditions keep first-seen order: r's before other's.
func (r Requirement) Union(other Requirement) Requirement {
	out := Requirement{
		PaymentIntent:  unionConditions(r.PaymentIntent, other.PaymentIntent),
		SetupSupported: r.SetupSupported || other.SetupSupported,
	}
	if out.SetupSupported {
		out.SetupIntent = unionConditions(r.SetupIntent, other.SetupIntent)
	}
	return out
}

// PaymentIntentRequires reports whether c is a PaymentIntent condition.
func (r Requirement) PaymentIntentRequires(c Condition) bool {
	return hasCondition(r.PaymentIntent, c)
}

// SetupIntentRequires reports whether c is a SetupIntent condition.
func (r Requirement) SetupIntentRequires(c Condition) bool {
	return r.SetupSupported && hasCondition(r.SetupIntent, c)
}

func unionConditions(a, b []Condition) []Condition {
	out := make([]Condition, 0, len(a)+len(b))
	for _, list := range [][]Condition{a, b} {
		for _, c := range list {
			if !hasCondition(out, c) {
				out = append(out, c)
			}
		}
	}
	return out
}

func hasCondition(list []Condition, c Condition) bool {
	for _, have := range list {
		if have == c {
			return true
		}
	}
	return false
}

// hardcodedRequirements are unioned onto whatever a schema declares for a code.
// A schema can add conditions to these but never remove them.
var hardcodedRequirements = map[Code]Requirement{
	"card": {
		SetupSupported: true,
		SetupIntent:    []Condition{ConditionCustomer},
	},
	"bancontact": {
		SetupSupported: true,
		SetupIntent:    []Condition{ConditionDelayed, ConditionCustomer},
	},
	"sofort": {
		PaymentIntent:  []Condition{ConditionDelayed},
		SetupSupported: true,
		SetupIntent:    []Condition{ConditionDelayed, ConditionCustomer},
	},
	"ideal": {
		SetupSupported: true,
		SetupIntent:    []Condition{ConditionDelayed, ConditionCustomer},
	},
	"sepa_debit": {
		PaymentIntent:  []Condition{ConditionDelayed},
		SetupSupported: true,
		SetupIntent:    []Condition{ConditionDelayed, ConditionCustomer},
	},
	"au_becs_debit": {
		PaymentIntent:  []Condition{ConditionDelayed},
		SetupSupported: true,
		SetupIntent:    []Condition{ConditionDelayed, ConditionCustomer},
	},
	"us_bank_account": {
		PaymentIntent:  []Condition{ConditionDelayed},
		SetupSupported: true,
		SetupIntent:    []Condition{ConditionDelayed, ConditionCustomer},
	},
	"afterpay_clearpay": {
		PaymentIntent: []Condition{ConditionShippingAddress},
	},
	"affirm": {
		PaymentIntent: []Condition{ConditionShippingAddress},
	},
}

// HardcodedRequirement returns the requirement that always applies to code.
func HardcodedRequirement(code Code) Requirement {
	return hardcodedRequirements[code]
}

// schemaRequirement derives the requirement a schema entry declares on its own.
func schemaRequirement(async bool) Requirement {
	if !async {
		return Requirement{}
	}
	return Requirement{
		PaymentIntent: []Condition{ConditionDelayed},
		SetupIntent:   []Condition{ConditionDelayed},
	}
}

// requirementFor combines the hardcoded requirement for code with the schema's.
// Setup support comes only from the hardcoded table.
func requirementFor(code Code, async bool) Requirement {
	hard := hardcodedRequirements[code]
	declared := schemaRequirement(async)
	declared.SetupSupported = hard.SetupSupported
	return hard.Union(declared)
}

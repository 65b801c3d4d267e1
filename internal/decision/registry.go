package decision

// Registry is the ordered, fixed list of business rules.
//
// Order is part of the external contract: it determines the append (and
// therefore dedup) order of reasons/actions and the order of
// meta.rules_evaluated. It does NOT determine decision precedence; that is
// strictly DECLINE > REVIEW > APPROVE regardless of where a rule sits.
//
// Adding a rule means appending here. Removing or reordering is a breaking
// change to response ordering.
type Registry struct {
	rules []Rule
}

// NewRegistry builds the registry with the built-in rule set. The registry is
// immutable after construction and safe to share across concurrent
// evaluations.
func NewRegistry() *Registry {
	return &Registry{
		rules: []Rule{
			HighTicketRule{},
			VelocityRule{},
			LocationMismatchRule{},
			HighIPDistanceRule{},
			ChargebackHistoryRule{},
			RailLimitRule{},
			OnlineVerificationRule{},
			LoyaltyBoostRule{},
		},
	}
}

// NewRegistryWith builds a registry from an explicit rule sequence. Intended
// for tests and future policy variants.
func NewRegistryWith(rules ...Rule) *Registry {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return &Registry{rules: out}
}

// Rules returns the rules in contract order. Callers must not mutate the
// returned slice.
func (r *Registry) Rules() []Rule {
	return r.rules
}

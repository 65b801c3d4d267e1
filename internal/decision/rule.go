package decision

// Hint is a rule's proposed contribution to the final decision.
//
// HintNone is a distinguished "no opinion" value rather than an absent
// string, so folding multiple hints cannot fall into truthiness bugs.
// A rule can never hint APPROVE; approval is only ever the default.
type Hint string

const (
	HintNone    Hint = ""
	HintReview  Hint = "REVIEW"
	HintDecline Hint = "DECLINE"
)

// RuleResult is the output of one rule invocation. It is created fresh per
// rule per request, folded into the running aggregate, and discarded.
type RuleResult struct {
	Hint    Hint
	Reasons []string
	Actions []string
}

// Empty reports whether the rule had no opinion and contributed nothing.
// Only non-empty results put the rule's ID into meta.rules_evaluated.
func (r RuleResult) Empty() bool {
	return r.Hint == HintNone && len(r.Reasons) == 0 && len(r.Actions) == 0
}

// Rule is one unit of business policy.
//
// Apply must be a pure function of the request: no I/O, no randomness, no
// state across calls. A business non-match is an empty RuleResult, never an
// error. Apply may assume the request passed ValidateRequest but must treat
// missing Features/Context keys as "does not apply".
type Rule interface {
	ID() string
	Apply(req *DecisionRequest) RuleResult
}

package decision

import "time"

// Status is the final decision outcome. Always exactly one of three values.
type Status string

const (
	StatusApprove Status = "APPROVE"
	StatusReview  Status = "REVIEW"
	StatusDecline Status = "DECLINE"
)

// Meta is the structured metadata attached to every decision.
type Meta struct {
	TransactionID string `json:"transaction_id"`

	RiskScore float64 `json:"risk_score"`
	// RiskFallback is true when the provider failed and the documented
	// default score was substituted. Downstream consumers use this to tell a
	// real score from a fallback.
	RiskFallback bool   `json:"risk_fallback"`
	ModelVersion string `json:"model_version,omitempty"`

	// RulesEvaluated lists rule identifiers whose result was non-empty, in
	// firing order.
	RulesEvaluated []string `json:"rules_evaluated"`

	CartTotal float64 `json:"cart_total"`
	Currency  string  `json:"currency"`
	Rail      Rail    `json:"rail"`
	Channel   Channel `json:"channel"`

	EvaluatedAt time.Time `json:"evaluated_at"`
}

// DecisionResponse is the decision bundle produced by one evaluation.
//
// Reasons and Actions are deduplicated with first occurrence winning and
// order preserved (registry order, then any override-injected entries).
type DecisionResponse struct {
	Status  Status   `json:"status"`
	Reasons []string `json:"reasons"`
	Actions []string `json:"actions"`
	Meta    Meta     `json:"meta"`
}

package decision

import "fmt"

// Built-in business rules. Trigger conditions and reason templates are part
// of the external contract; downstream consumers match on them.

// Action codes emitted by the built-in rules and the risk override.
const (
	ActionRouteToReview       = "ROUTE_TO_REVIEW"
	ActionRequireVerification = "REQUIRE_VERIFICATION"
	ActionLoyaltyBoost        = "LOYALTY_BOOST"
	ActionBlock               = "BLOCK"
)

// Thresholds for the built-in rules.
const (
	highTicketThreshold = 500.00
	velocityThreshold   = 3.0

	railLimitACH  = 2000.00
	railLimitCard = 5000.00

	// Online channel requires customer verification above these, well below
	// the hard rail limits.
	onlineVerifyACH  = 500.00
	onlineVerifyCard = 1000.00
)

// HighTicketRule flags carts above the generic high-ticket threshold.
type HighTicketRule struct{}

func (HighTicketRule) ID() string { return "HIGH_TICKET" }

func (HighTicketRule) Apply(req *DecisionRequest) RuleResult {
	if req.CartTotal <= highTicketThreshold {
		return RuleResult{}
	}
	return RuleResult{
		Hint:    HintReview,
		Reasons: []string{fmt.Sprintf("HIGH_TICKET: Cart total $%.2f exceeds $%.2f threshold", req.CartTotal, highTicketThreshold)},
		Actions: []string{ActionRouteToReview},
	}
}

// VelocityRule flags customers transacting unusually often in the trailing
// 24 hours. The velocity_24h feature is computed upstream.
type VelocityRule struct{}

func (VelocityRule) ID() string { return "VELOCITY" }

func (VelocityRule) Apply(req *DecisionRequest) RuleResult {
	v, ok := req.Feature("velocity_24h")
	if !ok || v <= velocityThreshold {
		return RuleResult{}
	}
	return RuleResult{
		Hint:    HintReview,
		Reasons: []string{fmt.Sprintf("VELOCITY_FLAG: 24h velocity %.1f exceeds %.1f threshold", v, velocityThreshold)},
		Actions: []string{ActionRouteToReview},
	}
}

// LocationMismatchRule flags requests whose IP geolocation disagrees with the
// billing country. Both fields must be present; otherwise the rule does not
// apply.
type LocationMismatchRule struct{}

func (LocationMismatchRule) ID() string { return "LOCATION_MISMATCH" }

func (LocationMismatchRule) Apply(req *DecisionRequest) RuleResult {
	ipCountry, ok := req.ContextString("location_ip_country")
	if !ok {
		return RuleResult{}
	}
	billing, ok := req.ContextString("billing_country")
	if !ok || ipCountry == billing {
		return RuleResult{}
	}
	return RuleResult{
		Hint:    HintReview,
		Reasons: []string{fmt.Sprintf("LOCATION_MISMATCH: IP country '%s' differs from billing country '%s'", ipCountry, billing)},
		Actions: []string{ActionRouteToReview},
	}
}

// HighIPDistanceRule flags requests where the upstream geo pipeline marked
// the IP as unusually far from the billing address.
type HighIPDistanceRule struct{}

func (HighIPDistanceRule) ID() string { return "HIGH_IP_DISTANCE" }

func (HighIPDistanceRule) Apply(req *DecisionRequest) RuleResult {
	v, ok := req.Feature("high_ip_distance")
	if !ok || v == 0 {
		return RuleResult{}
	}
	return RuleResult{
		Hint:    HintReview,
		Reasons: []string{"HIGH_IP_DISTANCE: IP location is unusually far from billing address"},
		Actions: []string{ActionRouteToReview},
	}
}

// ChargebackHistoryRule flags customers with any chargebacks in the last 12
// months.
type ChargebackHistoryRule struct{}

func (ChargebackHistoryRule) ID() string { return "CHARGEBACK_HISTORY" }

func (ChargebackHistoryRule) Apply(req *DecisionRequest) RuleResult {
	n, ok := req.CustomerNumber("chargebacks_12m")
	if !ok || n <= 0 {
		return RuleResult{}
	}
	return RuleResult{
		Hint:    HintReview,
		Reasons: []string{fmt.Sprintf("CHARGEBACK_HISTORY: Customer has %d chargeback(s) in last 12 months", int(n))},
		Actions: []string{ActionRouteToReview},
	}
}

// RailLimitRule applies the per-rail cart limits (ACH is tighter than card).
type RailLimitRule struct{}

func (RailLimitRule) ID() string { return "RAIL_LIMIT" }

func (RailLimitRule) Apply(req *DecisionRequest) RuleResult {
	limit := railLimitCard
	if req.Rail == RailACH {
		limit = railLimitACH
	}
	if req.CartTotal <= limit {
		return RuleResult{}
	}
	return RuleResult{
		Hint:    HintReview,
		Reasons: []string{fmt.Sprintf("RAIL_LIMIT: Cart total $%.2f exceeds $%.2f %s rail limit", req.CartTotal, limit, req.Rail)},
		Actions: []string{ActionRouteToReview},
	}
}

// OnlineVerificationRule requires customer verification for larger online
// carts, at a sub-threshold below the hard rail limits.
type OnlineVerificationRule struct{}

func (OnlineVerificationRule) ID() string { return "ONLINE_VERIFICATION" }

func (OnlineVerificationRule) Apply(req *DecisionRequest) RuleResult {
	if req.Channel != ChannelOnline {
		return RuleResult{}
	}
	threshold := onlineVerifyCard
	if req.Rail == RailACH {
		threshold = onlineVerifyACH
	}
	if req.CartTotal <= threshold {
		return RuleResult{}
	}
	return RuleResult{
		Hint:    HintReview,
		Reasons: []string{fmt.Sprintf("ONLINE_VERIFICATION: Cart total $%.2f requires customer verification for online %s payments", req.CartTotal, req.Rail)},
		Actions: []string{ActionRequireVerification},
	}
}

// LoyaltyBoostRule is informational-only: it contributes a reason and an
// action for GOLD/PLATINUM customers but never moves the decision.
type LoyaltyBoostRule struct{}

func (LoyaltyBoostRule) ID() string { return "LOYALTY_BOOST" }

func (LoyaltyBoostRule) Apply(req *DecisionRequest) RuleResult {
	tier, ok := req.CustomerString("loyalty_tier")
	if !ok {
		return RuleResult{}
	}
	if tier != "GOLD" && tier != "PLATINUM" {
		return RuleResult{}
	}
	return RuleResult{
		Reasons: []string{fmt.Sprintf("LOYALTY_BOOST: Customer has %s loyalty tier", tier)},
		Actions: []string{ActionLoyaltyBoost},
	}
}

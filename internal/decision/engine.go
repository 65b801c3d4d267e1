package decision

import (
	"context"
	"errors"
	"fmt"
	"time"

	"checkout-platform/internal/risk"

	"github.com/google/uuid"
)

// RiskDeclineThreshold is the ML score above which the override forces a
// DECLINE regardless of the rule-folding outcome.
const RiskDeclineThreshold = 0.80

// riskRuleID is the pseudo-rule identifier recorded when the override fires.
const riskRuleID = "HIGH_RISK"

// ErrRuleDefect marks a rule that panicked instead of returning an empty
// result. This is a programming bug, not a business outcome: the evaluation
// fails with no decision, distinct from request validation errors.
var ErrRuleDefect = errors.New("decision: rule defect")

// Engine runs the registry against a request and folds the results into one
// decision bundle.
//
// Evaluation is a single synchronous pass per request:
//
//	Phase 1 — fold rules in registry order. DECLINE is terminal, REVIEW is
//	sticky, APPROVE is the absence of any hint. Reasons/actions accumulate in
//	registry order and are deduplicated after the loop (first occurrence
//	wins).
//	Phase 2 — fetch the risk score and, above the threshold, force DECLINE
//	unconditionally, appending the HIGH_RISK reason and BLOCK action.
//
// The engine holds no mutable state; one Engine serves concurrent
// evaluations.
type Engine struct {
	registry *Registry
	risk     risk.Scorer

	// clock and newID are injectable for deterministic tests.
	clock func() time.Time
	newID func() string
}

func NewEngine(registry *Registry, scorer risk.Scorer) *Engine {
	return &Engine{
		registry: registry,
		risk:     scorer,
		clock:    time.Now,
		newID:    uuid.NewString,
	}
}

// Evaluate turns one validated request into one decision bundle.
//
// The request must already have passed ValidateRequest; the engine does not
// re-validate. A panicking rule aborts the evaluation with an ErrRuleDefect
// error and no decision.
func (e *Engine) Evaluate(ctx context.Context, req *DecisionRequest) (*DecisionResponse, error) {
	if req == nil {
		return nil, errors.New("decision: request required")
	}
	if e.registry == nil {
		return nil, errors.New("decision: registry not configured")
	}
	if e.risk == nil {
		return nil, errors.New("decision: risk scorer not configured")
	}

	// Phase 1: rule folding.
	status := StatusApprove
	reasons := []string{}
	actions := []string{}
	evaluated := []string{}

	for _, rule := range e.registry.Rules() {
		res, err := applyRule(rule, req)
		if err != nil {
			return nil, err
		}
		if res.Empty() {
			continue
		}

		evaluated = append(evaluated, rule.ID())
		reasons = append(reasons, res.Reasons...)
		actions = append(actions, res.Actions...)

		switch res.Hint {
		case HintDecline:
			status = StatusDecline
		case HintReview:
			if status != StatusDecline {
				status = StatusReview
			}
		}
		if status == StatusDecline {
			// Terminal: nothing evaluated later can change the outcome.
			break
		}
	}

	reasons = dedupe(reasons)
	actions = dedupe(actions)

	// Phase 2: risk override. The scorer never fails; provider failures
	// surface as a fallback score (observable in meta).
	score := e.risk.Score(ctx, req.Features)
	if score.Value > RiskDeclineThreshold {
		status = StatusDecline
		reasons = append(reasons, fmt.Sprintf("HIGH_RISK: ML risk score %.3f exceeds %.3f threshold", score.Value, RiskDeclineThreshold))
		actions = appendUnique(actions, ActionBlock)
		evaluated = append(evaluated, riskRuleID)
	}

	return &DecisionResponse{
		Status:  status,
		Reasons: reasons,
		Actions: actions,
		Meta: Meta{
			TransactionID:  e.newID(),
			RiskScore:      score.Value,
			RiskFallback:   score.Fallback,
			ModelVersion:   score.ModelVersion,
			RulesEvaluated: evaluated,
			CartTotal:      req.CartTotal,
			Currency:       req.Currency,
			Rail:           req.Rail,
			Channel:        req.Channel,
			EvaluatedAt:    e.clock().UTC(),
		},
	}, nil
}

// applyRule invokes one rule, converting a panic into an ErrRuleDefect error.
func applyRule(rule Rule, req *DecisionRequest) (res RuleResult, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: rule %s panicked: %v", ErrRuleDefect, rule.ID(), p)
		}
	}()
	return rule.Apply(req), nil
}

// dedupe keeps the first occurrence of each exact string, preserving order.
func dedupe(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func appendUnique(in []string, s string) []string {
	for _, v := range in {
		if v == s {
			return in
		}
	}
	return append(in, s)
}

package risk

import "context"

// Provider produces a risk score in [0,1] for a request's feature set.
//
// Production providers are model-backed and may be slow or unavailable; the
// engine never talks to a Provider directly, only through a Guard.
type Provider interface {
	PredictRisk(ctx context.Context, features map[string]float64) (float64, error)
}

// StaticProvider returns a fixed score. Deterministic stand-in for local
// environments and tests.
type StaticProvider struct {
	Value float64
}

func (p StaticProvider) PredictRisk(_ context.Context, _ map[string]float64) (float64, error) {
	return p.Value, nil
}

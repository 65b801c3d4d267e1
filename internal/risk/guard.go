package risk

import (
	"context"
	"log/slog"
	"math"
	"time"
)

// DefaultFallbackScore is substituted whenever the provider fails, times out,
// or returns a malformed score. Pinned to one constant; tests depend on it
// being stable.
const DefaultFallbackScore = 0.15

// FallbackModelVersion marks a score that came from the fallback path rather
// than a model.
const FallbackModelVersion = "fallback"

// Score is the guarded scoring result. Fallback is true when the provider
// call did not produce a usable score and DefaultFallbackScore was used.
type Score struct {
	Value        float64
	Fallback     bool
	ModelVersion string
}

// Scorer is what the decision engine consumes. It never fails: a decision
// must still be produced when the model is unreachable.
type Scorer interface {
	Score(ctx context.Context, features map[string]float64) Score
}

// Guard wraps a Provider with a bounded timeout, the documented default-score
// fallback, and an optional score cache.
type Guard struct {
	provider Provider
	timeout  time.Duration
	model    string

	// Cache is optional. Cache failures are ignored (fail-open).
	Cache *Cache
}

const defaultTimeout = 2 * time.Second

func NewGuard(provider Provider, timeout time.Duration, modelVersion string) *Guard {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Guard{provider: provider, timeout: timeout, model: modelVersion}
}

// Score fetches a risk score, falling back to DefaultFallbackScore on any
// provider failure rather than propagating it.
func (g *Guard) Score(ctx context.Context, features map[string]float64) Score {
	if g.provider == nil {
		return g.fallback()
	}

	if g.Cache != nil {
		if v, ok := g.Cache.Get(ctx, features); ok {
			return Score{Value: v, ModelVersion: g.model}
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	v, err := g.provider.PredictRisk(callCtx, features)
	if err != nil || math.IsNaN(v) || v < 0 || v > 1 {
		if err != nil {
			slog.Warn("risk provider failed, using fallback score", "err", err)
		} else {
			slog.Warn("risk provider returned malformed score, using fallback", "score", v)
		}
		return g.fallback()
	}

	if g.Cache != nil {
		g.Cache.Set(ctx, features, v)
	}
	return Score{Value: v, ModelVersion: g.model}
}

func (g *Guard) fallback() Score {
	return Score{Value: DefaultFallbackScore, Fallback: true, ModelVersion: FallbackModelVersion}
}

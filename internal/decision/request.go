package decision

// Rail is the payment method category.
type Rail string

const (
	RailCard Rail = "card"
	RailACH  Rail = "ach"
)

// Channel is the transaction context the payment was initiated from.
type Channel string

const (
	ChannelOnline Channel = "online"
	ChannelPOS    Channel = "pos"
)

// DefaultCurrency is applied when a request omits the currency field.
const DefaultCurrency = "USD"

// DecisionRequest is the input to one evaluation.
//
// Invariants:
// - Immutable for the duration of one evaluation; rules only read it.
// - CartTotal > 0, Rail and Channel valid (enforced by ValidateRequest before
//   the engine runs; rules may assume this).
// - Features and Context are open-ended. Rules read only the keys they need
//   and treat a missing key as "rule does not apply", never as an error.
type DecisionRequest struct {
	CartTotal float64            `json:"cart_total"`
	Currency  string             `json:"currency"`
	Rail      Rail               `json:"rail"`
	Channel   Channel            `json:"channel"`
	Features  map[string]float64 `json:"features,omitempty"`
	Context   map[string]any     `json:"context,omitempty"`
}

// Feature returns a named feature value if present.
func (r *DecisionRequest) Feature(name string) (float64, bool) {
	if r.Features == nil {
		return 0, false
	}
	v, ok := r.Features[name]
	return v, ok
}

// ContextString returns a top-level context value if present and a string.
func (r *DecisionRequest) ContextString(key string) (string, bool) {
	if r.Context == nil {
		return "", false
	}
	s, ok := r.Context[key].(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// customer returns the nested customer profile map, if any.
func (r *DecisionRequest) customer() map[string]any {
	if r.Context == nil {
		return nil
	}
	m, _ := r.Context["customer"].(map[string]any)
	return m
}

// CustomerString returns a customer profile field if present and a string.
func (r *DecisionRequest) CustomerString(key string) (string, bool) {
	m := r.customer()
	if m == nil {
		return "", false
	}
	s, ok := m[key].(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// CustomerNumber returns a customer profile field as a number if present.
// JSON decoding yields float64; int is tolerated for requests built in code.
func (r *DecisionRequest) CustomerNumber(key string) (float64, bool) {
	m := r.customer()
	if m == nil {
		return 0, false
	}
	switch v := m[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

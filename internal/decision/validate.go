package decision

import "fmt"

// ValidationError describes exactly which request field is malformed and why.
// These are caller errors, surfaced before the engine runs; the engine never
// sees an invalid request.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("decision: invalid %s: %s", e.Field, e.Message)
}

// ValidateRequest performs structural validation and normalization. It must
// be called by the API collaborator before Engine.Evaluate.
//
// Unknown/extra fields are never an error; only the required fields are
// checked. An empty currency is normalized to DefaultCurrency.
func ValidateRequest(req *DecisionRequest) error {
	if req == nil {
		return &ValidationError{Field: "request", Message: "body required"}
	}
	if req.CartTotal <= 0 {
		return &ValidationError{Field: "cart_total", Message: fmt.Sprintf("must be greater than zero, got %.2f", req.CartTotal)}
	}
	switch req.Rail {
	case RailCard, RailACH:
	case "":
		return &ValidationError{Field: "rail", Message: "required, must be one of card, ach"}
	default:
		return &ValidationError{Field: "rail", Message: fmt.Sprintf("must be one of card, ach, got %q", req.Rail)}
	}
	switch req.Channel {
	case ChannelOnline, ChannelPOS:
	case "":
		return &ValidationError{Field: "channel", Message: "required, must be one of online, pos"}
	default:
		return &ValidationError{Field: "channel", Message: fmt.Sprintf("must be one of online, pos, got %q", req.Channel)}
	}
	if req.Currency == "" {
		req.Currency = DefaultCurrency
	}
	return nil
}

package risk

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// HTTPProvider calls an external model-inference service.
//
// Wire contract:
//
//	POST {URL}  {"features": {"velocity_24h": 4.0, ...}}
//	200         {"risk_score": 0.42}
//
// Timeouts are owned by the Guard via context; the provider itself only
// reports failures.
type HTTPProvider struct {
	URL    string
	Client *http.Client
}

var ErrProviderUnavailable = errors.New("risk: provider unavailable")

type predictRequest struct {
	Features map[string]float64 `json:"features"`
}

type predictResponse struct {
	RiskScore float64 `json:"risk_score"`
}

func (p *HTTPProvider) PredictRisk(ctx context.Context, features map[string]float64) (float64, error) {
	if p.URL == "" {
		return 0, errors.New("risk: provider url not configured")
	}

	body, err := json.Marshal(predictRequest{Features: features})
	if err != nil {
		return 0, fmt.Errorf("risk: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.URL, bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain a little so the connection can be reused.
		_, _ = io.CopyN(io.Discard, resp.Body, 512)
		return 0, fmt.Errorf("%w: status %d", ErrProviderUnavailable, resp.StatusCode)
	}

	var out predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("risk: decode response: %w", err)
	}
	if out.RiskScore < 0 || out.RiskScore > 1 {
		return 0, fmt.Errorf("risk: score %v out of range", out.RiskScore)
	}
	return out.RiskScore, nil
}

package risk

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHTTPProvider_PredictRisk(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		var in predictRequest
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if in.Features["velocity_24h"] != 4 {
			t.Errorf("expected feature to be forwarded, got %v", in.Features)
		}
		_ = json.NewEncoder(w).Encode(predictResponse{RiskScore: 0.73})
	}))
	defer srv.Close()

	p := &HTTPProvider{URL: srv.URL}
	v, err := p.PredictRisk(context.Background(), map[string]float64{"velocity_24h": 4})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if v != 0.73 {
		t.Fatalf("expected 0.73, got %v", v)
	}
}

func TestHTTPProvider_Non200IsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	p := &HTTPProvider{URL: srv.URL}
	if _, err := p.PredictRisk(context.Background(), nil); !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}

func TestHTTPProvider_RejectsOutOfRangeScore(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(predictResponse{RiskScore: 1.4})
	}))
	defer srv.Close()

	p := &HTTPProvider{URL: srv.URL}
	if _, err := p.PredictRisk(context.Background(), nil); err == nil {
		t.Fatalf("expected error for out-of-range score")
	}
}

func TestHTTPProvider_UnreachableHost(t *testing.T) {
	p := &HTTPProvider{URL: "http://127.0.0.1:1"}
	if _, err := p.PredictRisk(context.Background(), nil); !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}

func TestHTTPProvider_RequiresURL(t *testing.T) {
	p := &HTTPProvider{}
	if _, err := p.PredictRisk(context.Background(), nil); err == nil {
		t.Fatalf("expected error with no url")
	}
}

package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"checkout-platform/internal/audit"
	"checkout-platform/internal/auth"
	"checkout-platform/internal/config"
	"checkout-platform/internal/decision"
	"checkout-platform/internal/risk"

	"github.com/gin-gonic/gin"
)

type fixedScorer struct {
	score risk.Score
}

func (s fixedScorer) Score(ctx context.Context, features map[string]float64) risk.Score {
	return s.score
}

func newTestHandlers(t *testing.T, score risk.Score) (Handlers, *audit.MemoryRepo) {
	t.Helper()
	mgr, err := auth.NewManager(config.AuthConfig{
		JWTSecret:       "test-secret",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: time.Hour,
	})
	if err != nil {
		t.Fatalf("auth.NewManager: %v", err)
	}
	repo := audit.NewMemoryRepo()
	return Handlers{
		Auth:     mgr,
		Engine:   decision.NewEngine(decision.NewRegistry(), fixedScorer{score: score}),
		Audit:    audit.NewService(repo),
		AuditLog: repo,
	}, repo
}

func postJSON(t *testing.T, handler gin.HandlerFunc, body any, identity bool) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.POST("/probe", handler)

	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/probe", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if identity {
		req = req.WithContext(auth.WithIdentity(req.Context(), "u1", "m1", "analyst"))
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLogin_IssuesTokenPair(t *testing.T) {
	h, _ := newTestHandlers(t, risk.Score{Value: 0.1, ModelVersion: "static"})

	w := postJSON(t, h.Login, map[string]string{
		"user_id": "u1", "merchant_id": "m1", "role": "owner",
	}, false)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var out map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out["access_token"] == "" || out["refresh_token"] == "" {
		t.Fatalf("expected token pair, got %v", out)
	}
}

func TestLogin_RejectsIncompleteBody(t *testing.T) {
	h, _ := newTestHandlers(t, risk.Score{Value: 0.1})
	w := postJSON(t, h.Login, map[string]string{"user_id": "u1"}, false)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestEvaluateDecision_Approves(t *testing.T) {
	h, repo := newTestHandlers(t, risk.Score{Value: 0.1, ModelVersion: "static"})

	w := postJSON(t, h.EvaluateDecision, map[string]any{
		"cart_total": 100.0,
		"rail":       "card",
		"channel":    "pos",
	}, true)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp decision.DecisionResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != decision.StatusApprove {
		t.Fatalf("expected APPROVE, got %s", resp.Status)
	}
	if resp.Meta.TransactionID == "" {
		t.Fatalf("expected transaction id in meta")
	}

	events := repo.EventsForMerchant("m1")
	if len(events) != 1 || events[0].Type != audit.EventTypeDecision {
		t.Fatalf("expected one decision audit event, got %+v", events)
	}
	if events[0].TransactionID != resp.Meta.TransactionID {
		t.Fatalf("audit transaction id mismatch")
	}
}

func TestEvaluateDecision_RiskOverrideDeclines(t *testing.T) {
	h, _ := newTestHandlers(t, risk.Score{Value: 0.85, ModelVersion: "v3"})

	w := postJSON(t, h.EvaluateDecision, map[string]any{
		"cart_total": 100.0,
		"rail":       "card",
		"channel":    "pos",
	}, true)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp decision.DecisionResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != decision.StatusDecline {
		t.Fatalf("expected DECLINE, got %s", resp.Status)
	}
}

func TestEvaluateDecision_ValidationErrorIsFieldScoped(t *testing.T) {
	h, _ := newTestHandlers(t, risk.Score{Value: 0.1})

	w := postJSON(t, h.EvaluateDecision, map[string]any{
		"cart_total": 0,
		"rail":       "card",
		"channel":    "online",
	}, true)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	var out struct {
		Error struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Error.Field != "cart_total" {
		t.Fatalf("expected cart_total field error, got %+v", out)
	}
}

func TestEvaluateDecision_RejectsInvalidJSON(t *testing.T) {
	h, _ := newTestHandlers(t, risk.Score{Value: 0.1})
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.POST("/probe", h.EvaluateDecision)

	req := httptest.NewRequest(http.MethodPost, "/probe", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestListAuditEvents_ScopedToMerchant(t *testing.T) {
	h, repo := newTestHandlers(t, risk.Score{Value: 0.1})
	svc := audit.NewService(repo)
	_ = svc.LogAdminAction(context.Background(), "m1", "u1", "owner", "", "mine", "")
	_ = svc.LogAdminAction(context.Background(), "m2", "u2", "owner", "", "theirs", "")

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/probe", h.ListAuditEvents)

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req = req.WithContext(auth.WithIdentity(req.Context(), "u1", "m1", "owner"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var out struct {
		Events []audit.Event `json:"events"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Events) != 1 || out.Events[0].Message != "mine" {
		t.Fatalf("expected only merchant m1 events, got %+v", out.Events)
	}
}

func TestListAuditEvents_RequiresIdentity(t *testing.T) {
	h, _ := newTestHandlers(t, risk.Score{Value: 0.1})

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/probe", h.ListAuditEvents)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/probe", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

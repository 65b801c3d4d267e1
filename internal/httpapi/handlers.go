package httpapi

import (
	"errors"
	"net/http"
	"time"

	"checkout-platform/internal/audit"
	"checkout-platform/internal/auth"
	"checkout-platform/internal/decision"
	"checkout-platform/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Handlers groups HTTP handlers for dependency injection.
// Keep these thin: parse/validate input, call internal services, return JSON.

type Handlers struct {
	Auth   *auth.Manager
	Engine *decision.Engine
	Audit  *audit.Service

	// AuditLog backs the internal ops read endpoint. Decisions themselves are
	// never persisted.
	AuditLog *audit.MemoryRepo
}

// --- Auth ---

type loginRequest struct {
	UserID     string `json:"user_id"`
	MerchantID string `json:"merchant_id"`
	Role       string `json:"role"`
}

// Login issues a JWT token pair.
//
// NOTE: This is a skeleton-only endpoint. Real systems must validate credentials.
func (h Handlers) Login(c *gin.Context) {
	if h.Auth == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "auth not configured"})
		return
	}
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if req.UserID == "" || req.MerchantID == "" || req.Role == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "user_id, merchant_id, role required"})
		return
	}
	pair, err := h.Auth.IssuePair(time.Now(), req.UserID, req.MerchantID, req.Role)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "token issuance failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": pair.AccessToken, "refresh_token": pair.RefreshToken})
}

// --- Decisions ---

// EvaluateDecision validates a checkout transaction request, runs the
// decision engine, and returns the decision bundle.
//
// Validation happens here, before the engine ever sees the request. A rule
// defect surfaces as a generic internal error, never as a decision.
func (h Handlers) EvaluateDecision(c *gin.Context) {
	if h.Engine == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "decision engine not configured"})
		return
	}

	var req decision.DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	if err := decision.ValidateRequest(&req); err != nil {
		var verr *decision.ValidationError
		if errors.As(err, &verr) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": gin.H{"field": verr.Field, "message": verr.Message}})
			return
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.Engine.Evaluate(c.Request.Context(), &req)
	if err != nil {
		logger.FromGin(c).Error("decision evaluation failed", "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	// Best-effort internal audit; never blocks the decision.
	if h.Audit != nil {
		merchantID, _ := auth.MerchantID(c.Request.Context())
		userID, _ := auth.UserID(c.Request.Context())
		role, _ := auth.Role(c.Request.Context())
		if err := h.Audit.LogDecision(c.Request.Context(), merchantID, userID, role, c.ClientIP(), resp.Meta.TransactionID, string(resp.Status), resp.Meta.RiskScore, ""); err != nil {
			logger.FromGin(c).Warn("decision audit failed", "err", err)
		}
	}

	c.JSON(http.StatusOK, resp)
}

// --- Admin ---

// ListAuditEvents exposes the merchant's internal audit trail to privileged
// roles for ops debugging.
func (h Handlers) ListAuditEvents(c *gin.Context) {
	if h.AuditLog == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "audit log not configured"})
		return
	}
	merchantID, err := auth.MerchantID(c.Request.Context())
	if err != nil || merchantID == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "merchant_id required"})
		return
	}
	events := h.AuditLog.EventsForMerchant(merchantID)
	if events == nil {
		events = []audit.Event{}
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

package audit

import "time"

// Event is an immutable, append-only audit log record.
//
// Invariants:
// - Events are never updated or deleted.
// - merchant_id is required for tenancy isolation.
// - Audit is best-effort; decision flows must never block on audit failures.

type Event struct {
	ID         string `json:"id"`
	MerchantID string `json:"merchant_id"`

	// Type indicates the business category of the audit record.
	Type EventType `json:"type"`

	// ActorUserID is the authenticated user causing the event (if applicable).
	ActorUserID string `json:"actor_user_id,omitempty"`
	// ActorRole may include hidden roles.
	ActorRole string `json:"actor_role,omitempty"`

	// IPAddress should capture the original client IP when available.
	IPAddress string `json:"ip_address,omitempty"`

	// Decision fields (set for decision_evaluated events).
	TransactionID string  `json:"transaction_id,omitempty"`
	Status        string  `json:"status,omitempty"`
	RiskScore     float64 `json:"risk_score,omitempty"`

	// Message is a short human-readable description for internal ops.
	Message string `json:"message,omitempty"`

	// Metadata is optional JSON for full details.
	Metadata string `json:"metadata,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

type EventType string

const (
	EventTypeDecision    EventType = "decision_evaluated"
	EventTypeAdminAction EventType = "admin_action"
)

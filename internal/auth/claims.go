package auth

import "github.com/golang-jwt/jwt/v5"

type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// Claims are the only supported JWT claims shape for this service.
// Multi-tenant invariant: MerchantID must be present for all non-admin
// activity. Risk-desk override capabilities are represented via server-side
// authorization checks, never via extra claims.
type Claims struct {
	jwt.RegisteredClaims

	UserID     string    `json:"user_id"`
	MerchantID string    `json:"merchant_id"`
	Role       string    `json:"role"`
	TokenType  TokenType `json:"token_type"`
}

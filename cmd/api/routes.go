package main

import (
	"checkout-platform/internal/auth"
	"checkout-platform/internal/httpapi"
	"checkout-platform/internal/rbac"

	"github.com/gin-gonic/gin"
)

// registerRoutes wires HTTP routes to handlers.
// Keep this file free of business logic. Handlers should delegate to internal modules.
func registerRoutes(r *gin.Engine, authMW, capMW gin.HandlerFunc, h httpapi.Handlers) {
	// public
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := r.Group("/v1")

	// AUTH routes (token issuance) are public by necessity.
	v1.POST("/auth/login", h.Login)

	// protected API group
	protected := v1.Group("")
	protected.Use(authMW)
	{
		protected.GET("/me", func(c *gin.Context) {
			uid, _ := auth.UserID(c.Request.Context())
			mid, _ := auth.MerchantID(c.Request.Context())
			role, _ := auth.Role(c.Request.Context())
			c.JSON(200, gin.H{"user_id": uid, "merchant_id": mid, "role": role})
		})

		// DECISION routes
		decisions := protected.Group("/decisions")
		decisions.Use(rbac.RequireMerchant())
		decisions.Use(rbac.RequireAnyRole(rbac.RoleOwner, rbac.RoleAnalyst, rbac.RoleRiskOfficer, rbac.RoleSuperAdmin))
		if capMW != nil {
			decisions.Use(capMW)
		}
		{
			decisions.POST("", h.EvaluateDecision)
		}

		// ADMIN routes
		// Only owner/super_admin can access admin endpoints by default.
		// Hidden fraud_desk is intentionally NOT included unless explicitly desired.
		admin := protected.Group("/admin")
		admin.Use(rbac.RequireMerchant())
		admin.Use(rbac.RequireAnyRole(rbac.RoleOwner, rbac.RoleSuperAdmin))
		{
			admin.GET("/ping", func(c *gin.Context) {
				c.JSON(200, gin.H{"status": "ok"})
			})
			admin.GET("/audit/events", h.ListAuditEvents)
		}
	}
}

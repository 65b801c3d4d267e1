package httpapi

import (
	"net/http"
	"time"

	"checkout-platform/internal/auth"
	"checkout-platform/pkg/logger"
	"checkout-platform/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// capSlotTTL bounds a leaked slot if the process dies mid-request.
const capSlotTTL = 30 * time.Second

// DecisionConcurrencyCap limits in-flight decision evaluations per merchant
// using the shared Redis cap helper.
//
// Fail-open: if Redis is unavailable the request proceeds — the cap protects
// capacity, it is not a correctness control.
func DecisionConcurrencyCap(rdb *redis.Client, limit int) gin.HandlerFunc {
	return func(c *gin.Context) {
		merchantID, err := auth.MerchantID(c.Request.Context())
		if err != nil || merchantID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "merchant_id required"})
			return
		}

		key := "decisions:inflight:" + merchantID
		ok, err := utils.AcquireConcurrencyCap(c.Request.Context(), rdb, key, limit, capSlotTTL)
		if err != nil {
			logger.FromGin(c).Warn("concurrency cap unavailable", "err", err)
			c.Next()
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many concurrent evaluations"})
			return
		}
		defer func() {
			_ = utils.ReleaseConcurrencyCap(c.Request.Context(), rdb, key)
		}()

		c.Next()
	}
}

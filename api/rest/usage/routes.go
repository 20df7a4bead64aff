package usage

import (
	"github.com/gin-gonic/gin"

	"codeberg.org/nutrio/server/internal/quota"
)

func RegisterRoutes(router *gin.RouterGroup, authMiddleware gin.HandlerFunc, subs TierReader, usage UsageReader, budgets quota.Budgets) {
	usageGroup := router.Group("/usage")
	usageGroup.Use(authMiddleware) // quota status requires authentication

	usageGroup.GET("", GetUsage(subs, usage, budgets))
}

package assist

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, authMiddleware gin.HandlerFunc, enforcer QuotaChecker, client UpstreamClient, usage UsageRecorder) {
	assistGroup := router.Group("/assist")
	assistGroup.Use(authMiddleware)

	assistGroup.POST("", Handler(enforcer, client, usage))
}

package main

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"codeberg.org/nutrio/server/api/rest/assist"
	"codeberg.org/nutrio/server/api/rest/health"
	"codeberg.org/nutrio/server/api/rest/usage"
	"codeberg.org/nutrio/server/internal/cors"
)

// per-IP burst protection ahead of auth; the tiered daily quota is enforced
// separately, per user, inside the assist handler chain
const (
	ipLimitPerMinute = 60
)

// sets up all API routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server) {
	policy := cors.NewPolicy(server.config.Environment, server.config.ExtraOrigins)

	router.Use(policy.Middleware())
	router.Use(RequestIDMiddleware())

	router.GET("/health", health.Handler)

	v1 := router.Group("/api/v1")
	v1.Use(ipLimiterMiddleware())

	{
		v1.GET("/ping", health.PingHandler)

		authMiddleware := server.verifier.Middleware()

		assist.RegisterRoutes(v1, authMiddleware, server.enforcer, server.gemini, server.usageRepo)
		usage.RegisterRoutes(v1, authMiddleware, server.subsRepo, server.usageRepo, server.budgets)
	}
}

func ipLimiterMiddleware() gin.HandlerFunc {
	instance := limiter.New(memory.NewStore(), limiter.Rate{
		Period: time.Minute,
		Limit:  ipLimitPerMinute,
	})

	return mgin.NewMiddleware(instance)
}

package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// tags every request with an id so gateway logs can be correlated with the
// mobile app's bug reports
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if rid == "" {
			rid = uuid.NewString()
		}

		c.Set("request_id", rid)
		c.Header("X-Request-ID", rid)

		c.Next()
	}
}

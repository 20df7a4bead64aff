package httperr

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"codeberg.org/nutrio/server/internal/logger"
)

// Error Handling Guidelines:
//
// For HTTP REST handlers:
//   - Use httperr.Unauthorized(), httperr.InvalidInput(), etc. for terminal errors.
//     These functions handle both logging and the HTTP response.
//   - Use logger.ErrorErr() only for non-critical errors where processing continues.
//   - Never call both logger.ErrorErr() and an httperr responder for the same error.
//
// For services/repositories/internal packages:
//   - Return wrapped errors with context using fmt.Errorf("context: %w", err).
//   - Let the handler decide how to log and respond (avoid double logging).

var production bool

// switches the responders to production sanitization; called once at startup
func SetProduction(p bool) {
	production = p
}

// returns a 401 with the exact body the mobile client matches on
func Unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
		Error: "Unauthorized: User not logged in.",
	})
}

// returns a 400 for schema or modality violations, naming the offending field
func InvalidInput(c *gin.Context, details string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   "Invalid input",
		Details: sanitize(details),
	})
}

// returns a 429 with machine-readable quota fields
func QuotaExceeded(c *gin.Context, tier string, limit, used int) {
	var msg string
	if tier == "free" {
		msg = fmt.Sprintf("Daily limit reached (%d/%d). Upgrade to Pro for more requests.", used, limit)
	} else {
		msg = fmt.Sprintf("Daily limit reached (%d/%d). Your quota resets at midnight UTC.", used, limit)
	}

	c.JSON(http.StatusTooManyRequests, QuotaExceededResponse{
		Error: msg,
		Limit: limit,
		Used:  used,
		Tier:  tier,
	})
}

// returns a 503 when the quota store cannot be reached.
// Fail-closed: an unavailable store is never treated as zero usage.
func ServiceUnavailable(c *gin.Context, err error) {
	logger.ErrorErr(err, "quota store unavailable",
		"path", c.Request.URL.Path,
		"user_id", c.GetString("user_id"),
	)

	c.JSON(http.StatusServiceUnavailable, ErrorResponse{
		Error: "Service temporarily unavailable. Please try again.",
	})
}

// returns a 504 when the upstream provider times out.
// Distinct from 500 so the caller knows a plain retry may succeed.
func UpstreamTimeout(c *gin.Context) {
	logger.Warn("upstream request timed out",
		"path", c.Request.URL.Path,
		"user_id", c.GetString("user_id"),
	)

	c.JSON(http.StatusGatewayTimeout, ErrorResponse{
		Error: "AI service timed out. Please try again.",
	})
}

// returns a 500 with the upstream or internal failure message
func Internal(c *gin.Context, message string, err error) {
	if message == "" {
		message = "an error occurred"
	}

	// log full error server-side with context
	logger.ErrorErr(err, message,
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
		"user_id", c.GetString("user_id"),
	)

	body := ErrorResponse{Error: message}
	if err != nil {
		body.Details = sanitize(err.Error())
	}

	c.JSON(http.StatusInternalServerError, body)
}

// hides internal detail in production responses
func sanitize(detail string) string {
	if !production {
		return detail
	}
	if len(detail) > 200 {
		return detail[:200]
	}
	return detail
}

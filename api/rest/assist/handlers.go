package assist

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	assistcore "codeberg.org/nutrio/server/internal/assist"
	"codeberg.org/nutrio/server/internal/auth"
	"codeberg.org/nutrio/server/internal/gemini"
	"codeberg.org/nutrio/server/internal/httperr"
	"codeberg.org/nutrio/server/internal/logger"
	"codeberg.org/nutrio/server/internal/quota"
)

// the constant unit recorded per successful call; the usage log counts
// requests, not provider tokens
const tokensPerCall = 1

// Handler godoc
// @Summary AI assistant gateway
// @Description Routes a multi-modal request (text/vision/speech) to the AI provider, enforcing the caller's daily quota
// @Tags assist
// @Accept json
// @Produce json
// @Param request body assistcore.Envelope true "Request envelope"
// @Success 200 {object} object "Raw provider response"
// @Failure 400 {object} httperr.ErrorResponse
// @Failure 401 {object} httperr.ErrorResponse
// @Failure 429 {object} httperr.QuotaExceededResponse
// @Failure 503 {object} httperr.ErrorResponse
// @Failure 500 {object} httperr.ErrorResponse
// @Router /api/v1/assist [post]
// @Security BearerAuth
func Handler(enforcer QuotaChecker, client UpstreamClient, usage UsageRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.GetUserID(c)
		if !ok {
			httperr.Unauthorized(c)
			return
		}

		// the quota gate comes before any look at the body: an over-budget
		// caller gets 429 even when their request would not have parsed
		status, err := enforcer.Check(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, quota.ErrLimitExceeded) {
				httperr.QuotaExceeded(c, string(status.Tier), status.Limit, status.Used)
				return
			}

			// fail closed: an unreachable quota store rejects the request
			httperr.ServiceUnavailable(c, err)
			return
		}

		var env assistcore.Envelope
		if err := c.ShouldBindJSON(&env); err != nil {
			httperr.InvalidInput(c, err.Error())
			return
		}

		intent, err := assistcore.Validate(&env)
		if err != nil {
			httperr.InvalidInput(c, err.Error())
			return
		}

		upstreamReq, err := assistcore.BuildUpstreamRequest(intent, &env)
		if err != nil {
			httperr.InvalidInput(c, err.Error())
			return
		}

		raw, err := client.GenerateContent(c.Request.Context(), upstreamReq)
		if err != nil {
			if errors.Is(err, gemini.ErrTimeout) {
				httperr.UpstreamTimeout(c)
				return
			}

			var upstreamErr *gemini.UpstreamError
			if errors.As(err, &upstreamErr) {
				httperr.Internal(c, upstreamErr.Message, err)
				return
			}

			httperr.Internal(c, "AI request failed", err)
			return
		}

		// recorded only after the upstream call succeeds, never speculatively.
		// A failed insert is logged, not surfaced: the provider cost is already
		// incurred and the caller earned the response.
		if err := usage.Record(c.Request.Context(), userID, tokensPerCall); err != nil {
			logger.ErrorErr(err, "failed to record usage",
				"user_id", userID,
				"intent", string(intent),
			)
		}

		c.Data(http.StatusOK, "application/json", raw)
	}
}

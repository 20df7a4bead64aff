package usage

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"codeberg.org/nutrio/server/internal/auth"
	"codeberg.org/nutrio/server/internal/httperr"
	"codeberg.org/nutrio/server/internal/quota"
)

// GetUsage godoc
// @Summary Get the caller's quota status
// @Description Returns today's usage, the tier's daily limit, and a 30-day history for the limits screen
// @Tags usage
// @Produce json
// @Success 200 {object} Response
// @Failure 401 {object} httperr.ErrorResponse
// @Failure 500 {object} httperr.ErrorResponse
// @Router /api/v1/usage [get]
// @Security BearerAuth
func GetUsage(subs TierReader, usage UsageReader, budgets quota.Budgets) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.GetUserID(c)
		if !ok {
			httperr.Unauthorized(c)
			return
		}

		ctx := c.Request.Context()

		tier, err := subs.TierFor(ctx, userID)
		if err != nil {
			httperr.Internal(c, "failed to fetch subscription", err)
			return
		}

		year, month, day := time.Now().UTC().Date()
		startOfToday := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)

		today, err := usage.CountSince(ctx, userID, startOfToday)
		if err != nil {
			httperr.Internal(c, "failed to fetch usage data", err)
			return
		}

		history, err := usage.DailyHistory(ctx, userID)
		if err != nil {
			httperr.Internal(c, "failed to fetch usage history", err)
			return
		}

		limit := budgets.For(tier)

		remaining := limit - today
		if limit == quota.Unlimited {
			remaining = quota.Unlimited
		} else if remaining < 0 {
			remaining = 0
		}

		c.JSON(http.StatusOK, Response{
			Tier:      string(tier),
			Today:     today,
			Limit:     limit,
			Remaining: remaining,
			History:   history,
		})
	}
}

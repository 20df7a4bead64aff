package quota

import (
	"context"
	"errors"
	"time"
)

// subscription tiers known to the gateway
type Tier string

const (
	TierFree    Tier = "free"
	TierPro     Tier = "pro"
	TierFounder Tier = "founder"
)

// sentinel budget meaning no daily cap; bypasses usage counting entirely
const Unlimited = -1

// maps a tier to its daily request budget
type Budgets map[Tier]int

// the production budget table. Injected at construction so tests can
// substitute alternate tiers without touching the environment.
func DefaultBudgets() Budgets {
	return Budgets{
		TierFree:    20,
		TierPro:     500,
		TierFounder: Unlimited,
	}
}

// resolves a tier to its budget; unknown tiers get the free budget
func (b Budgets) For(tier Tier) int {
	if limit, ok := b[tier]; ok {
		return limit
	}

	return b[TierFree]
}

// returned by Check when the caller is over budget
var ErrLimitExceeded = errors.New("daily request limit exceeded")

// the admission result handed to the caller. Used is only meaningful for
// capped tiers; unlimited tiers never count.
type Status struct {
	Tier  Tier
	Limit int
	Used  int
}

// resolves a caller to a subscription tier
type SubscriptionStore interface {
	TierFor(ctx context.Context, userID string) (Tier, error)
}

// counts a caller's usage-log entries since a point in time
type UsageCounter interface {
	CountSince(ctx context.Context, userID string, since time.Time) (int, error)
}

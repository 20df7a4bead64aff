package quota

import (
	"context"
	"fmt"
	"time"
)

// admits or rejects requests against the caller's daily budget.
//
// The budget is recomputed from the durable usage log on every call rather
// than kept as an in-memory bucket: the gateway holds no cross-request state,
// so any instance can serve any request and a crash loses nothing. The cost
// is one count query per admitted request. Two concurrent requests near the
// boundary can both be admitted - an accepted imprecision for cost control,
// not something to fix with distributed locks.
type Enforcer struct {
	subs    SubscriptionStore
	usage   UsageCounter
	budgets Budgets
	now     func() time.Time
}

// creates an enforcer over the given stores and budget table
func NewEnforcer(subs SubscriptionStore, usage UsageCounter, budgets Budgets) *Enforcer {
	if budgets == nil {
		budgets = DefaultBudgets()
	}

	return &Enforcer{
		subs:    subs,
		usage:   usage,
		budgets: budgets,
		now:     time.Now,
	}
}

// checks the caller against their daily budget.
//
// Returns ErrLimitExceeded (wrapped) with a populated Status when the caller
// is over budget. Any store failure is returned as-is so the handler can
// fail closed - an unreachable usage log must never read as "no usage yet".
func (e *Enforcer) Check(ctx context.Context, userID string) (Status, error) {
	tier, err := e.subs.TierFor(ctx, userID)
	if err != nil {
		return Status{}, fmt.Errorf("resolve tier: %w", err)
	}

	limit := e.budgets.For(tier)
	status := Status{Tier: tier, Limit: limit}

	// unlimited tiers skip the count query entirely
	if limit == Unlimited {
		return status, nil
	}

	used, err := e.usage.CountSince(ctx, userID, startOfUTCDay(e.now()))
	if err != nil {
		return Status{}, fmt.Errorf("count usage: %w", err)
	}

	status.Used = used

	if used >= limit {
		return status, fmt.Errorf("%w: %d/%d", ErrLimitExceeded, used, limit)
	}

	return status, nil
}

// quota windows reset at midnight UTC regardless of the caller's timezone
func startOfUTCDay(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

package usage

import (
	"context"
	"time"

	"codeberg.org/nutrio/server/internal/quota"
	"codeberg.org/nutrio/server/nutrio/usagelog"
)

// resolves a caller to a subscription tier
type TierReader interface {
	TierFor(ctx context.Context, userID string) (quota.Tier, error)
}

// reads usage counts and history
type UsageReader interface {
	CountSince(ctx context.Context, userID string, since time.Time) (int, error)
	DailyHistory(ctx context.Context, userID string) ([]usagelog.DailyUsage, error)
}

// what the app renders on the limits/paywall screen
type Response struct {
	Tier      string                `json:"tier"`      // "free", "pro", "founder"
	Today     int                   `json:"today"`     // AI requests used today
	Limit     int                   `json:"limit"`     // daily limit (-1 for unlimited)
	Remaining int                   `json:"remaining"` // remaining today (-1 for unlimited)
	History   []usagelog.DailyUsage `json:"history"`   // last 30 days
}

package assist

import (
	"context"
	"encoding/json"

	"codeberg.org/nutrio/server/internal/gemini"
	"codeberg.org/nutrio/server/internal/quota"
)

// admits or rejects a caller against their daily budget
type QuotaChecker interface {
	Check(ctx context.Context, userID string) (quota.Status, error)
}

// invokes the upstream generative-AI provider
type UpstreamClient interface {
	GenerateContent(ctx context.Context, req gemini.GenerateContentRequest) (json.RawMessage, error)
}

// appends one usage-log entry per successful upstream call
type UsageRecorder interface {
	Record(ctx context.Context, userID string, tokensUsed int) error
}

package usage

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/nutrio/server/internal/quota"
	"codeberg.org/nutrio/server/nutrio/usagelog"
)

type mockSubs struct {
	tier quota.Tier
	err  error
}

func (m *mockSubs) TierFor(_ context.Context, _ string) (quota.Tier, error) {
	return m.tier, m.err
}

type mockUsage struct {
	count   int
	history []usagelog.DailyUsage
	err     error
}

func (m *mockUsage) CountSince(_ context.Context, _ string, _ time.Time) (int, error) {
	return m.count, m.err
}

func (m *mockUsage) DailyHistory(_ context.Context, _ string) ([]usagelog.DailyUsage, error) {
	return m.history, m.err
}

func get(subs *mockSubs, usage *mockUsage, userID string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/usage",
		func(c *gin.Context) {
			if userID != "" {
				c.Set("user_id", userID)
			}
		},
		GetUsage(subs, usage, quota.DefaultBudgets()),
	)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/usage", nil)
	router.ServeHTTP(w, req)

	return w
}

func TestGetUsage_FreeTier(t *testing.T) {
	subs := &mockSubs{tier: quota.TierFree}
	usage := &mockUsage{
		count: 7,
		history: []usagelog.DailyUsage{
			{Date: "2026-08-31", Count: 7},
			{Date: "2026-08-30", Count: 12},
		},
	}

	w := get(subs, usage, "user-123")

	require.Equal(t, http.StatusOK, w.Code)

	var body Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.Equal(t, "free", body.Tier)
	assert.Equal(t, 7, body.Today)
	assert.Equal(t, 20, body.Limit)
	assert.Equal(t, 13, body.Remaining)
	assert.Len(t, body.History, 2)
}

func TestGetUsage_RemainingClampedAtZero(t *testing.T) {
	subs := &mockSubs{tier: quota.TierFree}
	usage := &mockUsage{count: 25}

	w := get(subs, usage, "user-123")

	require.Equal(t, http.StatusOK, w.Code)

	var body Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.Equal(t, 0, body.Remaining, "overshoot must never surface as negative remaining")
}

func TestGetUsage_FounderIsUnlimited(t *testing.T) {
	subs := &mockSubs{tier: quota.TierFounder}
	usage := &mockUsage{count: 9000}

	w := get(subs, usage, "user-123")

	require.Equal(t, http.StatusOK, w.Code)

	var body Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.Equal(t, quota.Unlimited, body.Limit)
	assert.Equal(t, quota.Unlimited, body.Remaining)
}

func TestGetUsage_MissingIdentity(t *testing.T) {
	w := get(&mockSubs{tier: quota.TierFree}, &mockUsage{}, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Unauthorized: User not logged in."}`, w.Body.String())
}

func TestGetUsage_StoreFailure(t *testing.T) {
	subs := &mockSubs{tier: quota.TierFree}
	usage := &mockUsage{err: fmt.Errorf("connection refused")}

	w := get(subs, usage, "user-123")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

package quota

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

type mockSubs struct {
	tier Tier
	err  error
}

func (m *mockSubs) TierFor(_ context.Context, _ string) (Tier, error) {
	return m.tier, m.err
}

type mockUsage struct {
	count int
	err   error

	calls     int
	lastSince time.Time
}

func (m *mockUsage) CountSince(_ context.Context, _ string, since time.Time) (int, error) {
	m.calls++
	m.lastSince = since

	return m.count, m.err
}

func TestCheck_AdmitsUnderBudget(t *testing.T) {
	subs := &mockSubs{tier: TierFree}
	usage := &mockUsage{count: 19}

	enforcer := NewEnforcer(subs, usage, DefaultBudgets())

	status, err := enforcer.Check(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if status.Tier != TierFree || status.Limit != 20 || status.Used != 19 {
		t.Errorf("unexpected status: %+v", status)
	}
}

func TestCheck_RejectsAtBudget(t *testing.T) {
	// a free user with exactly 20 entries today: the 21st request is rejected
	subs := &mockSubs{tier: TierFree}
	usage := &mockUsage{count: 20}

	enforcer := NewEnforcer(subs, usage, DefaultBudgets())

	status, err := enforcer.Check(context.Background(), "user-1")
	if !errors.Is(err, ErrLimitExceeded) {
		t.Fatalf("expected ErrLimitExceeded, got %v", err)
	}

	if status.Limit != 20 || status.Used != 20 || status.Tier != TierFree {
		t.Errorf("rejection status must carry limit/used/tier: %+v", status)
	}
}

func TestCheck_FounderNeverCounts(t *testing.T) {
	subs := &mockSubs{tier: TierFounder}
	usage := &mockUsage{count: 1_000_000}

	enforcer := NewEnforcer(subs, usage, DefaultBudgets())

	status, err := enforcer.Check(context.Background(), "founder-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if status.Limit != Unlimited {
		t.Errorf("got limit %d, want Unlimited", status.Limit)
	}

	if usage.calls != 0 {
		t.Errorf("unlimited tier must bypass counting, got %d count calls", usage.calls)
	}
}

func TestCheck_FailsClosedOnStoreError(t *testing.T) {
	subs := &mockSubs{tier: TierFree}
	usage := &mockUsage{err: fmt.Errorf("connection refused")}

	enforcer := NewEnforcer(subs, usage, DefaultBudgets())

	_, err := enforcer.Check(context.Background(), "user-1")
	if err == nil {
		t.Fatal("store failure must reject the request, not admit it")
	}

	if errors.Is(err, ErrLimitExceeded) {
		t.Error("store failure must be distinguishable from quota exhaustion")
	}
}

func TestCheck_TierLookupErrorPropagates(t *testing.T) {
	subs := &mockSubs{err: fmt.Errorf("connection refused")}
	usage := &mockUsage{}

	enforcer := NewEnforcer(subs, usage, DefaultBudgets())

	if _, err := enforcer.Check(context.Background(), "user-1"); err == nil {
		t.Fatal("expected error")
	}

	if usage.calls != 0 {
		t.Error("count must not run when the tier lookup fails")
	}
}

func TestCheck_CountsFromStartOfUTCDay(t *testing.T) {
	subs := &mockSubs{tier: TierPro}
	usage := &mockUsage{count: 0}

	enforcer := NewEnforcer(subs, usage, DefaultBudgets())
	enforcer.now = func() time.Time {
		return time.Date(2026, 8, 31, 23, 59, 59, 0, time.FixedZone("UTC+9", 9*3600))
	}

	if _, err := enforcer.Check(context.Background(), "user-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 23:59:59 UTC+9 is 14:59:59 UTC, so the window opens at UTC midnight of the 31st
	want := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	if !usage.lastSince.Equal(want) {
		t.Errorf("got window start %v, want %v", usage.lastSince, want)
	}
}

func TestBudgets_UnknownTierGetsFreeBudget(t *testing.T) {
	budgets := DefaultBudgets()

	if got := budgets.For(Tier("platinum")); got != 20 {
		t.Errorf("unknown tier: got budget %d, want the free budget 20", got)
	}
}

func TestDefaultBudgets(t *testing.T) {
	budgets := DefaultBudgets()

	tests := []struct {
		tier Tier
		want int
	}{
		{TierFree, 20},
		{TierPro, 500},
		{TierFounder, Unlimited},
	}

	for _, tt := range tests {
		if got := budgets.For(tt.tier); got != tt.want {
			t.Errorf("tier %s: got %d, want %d", tt.tier, got, tt.want)
		}
	}
}

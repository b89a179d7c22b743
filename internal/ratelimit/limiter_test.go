package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/jurisflow/jurisflow/internal/config"
	ierr "github.com/jurisflow/jurisflow/internal/errors"
	"github.com/jurisflow/jurisflow/internal/logger"
	"github.com/jurisflow/jurisflow/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(t *testing.T, mutate func(cfg *config.Configuration)) *limiter {
	t.Helper()

	cfg := config.GetDefaultConfig()
	cfg.RateLimit.Enabled = true
	if mutate != nil {
		mutate(cfg)
	}

	log, err := logger.NewLogger(cfg)
	require.NoError(t, err)

	return NewLimiter(cfg, log).(*limiter)
}

func TestLimiterAllowsUpToBudget(t *testing.T) {
	l := newTestLimiter(t, nil)
	ctx := context.Background()

	// The auth budget is 5 requests per 60s window
	for i := 0; i < 5; i++ {
		result, err := l.Check(ctx, "+22790000001", types.RateLimitCategoryAuth)
		require.NoError(t, err)
		assert.True(t, result.Allowed, "request %d should be allowed", i+1)
		assert.Equal(t, 5, result.Limit)
		assert.Equal(t, 4-i, result.Remaining)
	}

	result, err := l.Check(ctx, "+22790000001", types.RateLimitCategoryAuth)
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, 0, result.Remaining)
	assert.Greater(t, result.RetryAfter, time.Duration(0))
}

func TestLimiterWindowAnchorsAtFirstRequest(t *testing.T) {
	base := time.Date(2026, 3, 2, 10, 0, 59, 0, time.UTC)
	now := base
	l := newTestLimiter(t, nil)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	// Five requests just before a clock minute rolls over
	for i := 0; i < 5; i++ {
		result, err := l.Check(ctx, "caller", types.RateLimitCategoryAuth)
		require.NoError(t, err)
		assert.True(t, result.Allowed)
	}

	// The sixth call lands two seconds after the first. The minute on
	// the wall clock changed, but the caller's window did not.
	now = base.Add(2 * time.Second)
	result, err := l.Check(ctx, "caller", types.RateLimitCategoryAuth)
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, 58*time.Second, result.RetryAfter)
}

func TestLimiterDenialsDoNotExtendWindow(t *testing.T) {
	base := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	now := base
	l := newTestLimiter(t, nil)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := l.Check(ctx, "caller", types.RateLimitCategoryAuth)
		require.NoError(t, err)
	}

	// Hammering the endpoint must not shrink or push back the wait
	for i := 0; i < 10; i++ {
		now = base.Add(time.Duration(10+i) * time.Second)
		result, err := l.Check(ctx, "caller", types.RateLimitCategoryAuth)
		require.NoError(t, err)
		assert.False(t, result.Allowed)
		assert.Equal(t, base.Add(60*time.Second).Sub(now), result.RetryAfter)
	}

	// One window length after the first request the budget is fresh
	now = base.Add(60 * time.Second)
	result, err := l.Check(ctx, "caller", types.RateLimitCategoryAuth)
	require.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.Equal(t, 4, result.Remaining)
}

func TestLimiterWindowRollover(t *testing.T) {
	base := time.Date(2026, 3, 2, 10, 0, 30, 0, time.UTC)
	l := newTestLimiter(t, nil)
	l.now = func() time.Time { return base }
	ctx := context.Background()

	for i := 0; i < 6; i++ {
		_, err := l.Check(ctx, "caller", types.RateLimitCategoryAuth)
		require.NoError(t, err)
	}
	result, err := l.Check(ctx, "caller", types.RateLimitCategoryAuth)
	require.NoError(t, err)
	assert.False(t, result.Allowed)

	// The next window starts with a fresh budget
	base = base.Add(60 * time.Second)
	result, err = l.Check(ctx, "caller", types.RateLimitCategoryAuth)
	require.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.Equal(t, 4, result.Remaining)
}

func TestLimiterIdentitiesAreIndependent(t *testing.T) {
	l := newTestLimiter(t, nil)
	ctx := context.Background()

	for i := 0; i < 6; i++ {
		_, err := l.Check(ctx, "first", types.RateLimitCategoryAuth)
		require.NoError(t, err)
	}

	result, err := l.Check(ctx, "second", types.RateLimitCategoryAuth)
	require.NoError(t, err)
	assert.True(t, result.Allowed)
}

func TestLimiterCategoriesAreIndependent(t *testing.T) {
	l := newTestLimiter(t, nil)
	ctx := context.Background()

	for i := 0; i < 6; i++ {
		_, err := l.Check(ctx, "caller", types.RateLimitCategoryAuth)
		require.NoError(t, err)
	}

	result, err := l.Check(ctx, "caller", types.RateLimitCategorySearch)
	require.NoError(t, err)
	assert.True(t, result.Allowed)
}

func TestLimiterDisabled(t *testing.T) {
	l := newTestLimiter(t, func(cfg *config.Configuration) {
		cfg.RateLimit.Enabled = false
	})
	ctx := context.Background()

	for i := 0; i < 100; i++ {
		result, err := l.Check(ctx, "caller", types.RateLimitCategoryAuth)
		require.NoError(t, err)
		assert.True(t, result.Allowed)
	}
}

func TestLimiterUnknownCategory(t *testing.T) {
	l := newTestLimiter(t, nil)

	_, err := l.Check(context.Background(), "caller", types.RateLimitCategory("bogus"))
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
}

func TestLimiterConfiguredOverride(t *testing.T) {
	l := newTestLimiter(t, func(cfg *config.Configuration) {
		cfg.RateLimit.Overrides = map[string]config.RateLimitRuleConfig{
			"auth": {MaxRequests: 2, WindowSeconds: 60},
		}
	})
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		result, err := l.Check(ctx, "caller", types.RateLimitCategoryAuth)
		require.NoError(t, err)
		assert.True(t, result.Allowed)
	}

	result, err := l.Check(ctx, "caller", types.RateLimitCategoryAuth)
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, 2, result.Limit)
}

func TestAllowReturnsRateLimitedError(t *testing.T) {
	l := newTestLimiter(t, nil)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, l.Allow(ctx, "caller", types.RateLimitCategoryAuth))
	}

	err := l.Allow(ctx, "caller", types.RateLimitCategoryAuth)
	require.Error(t, err)
	assert.True(t, ierr.IsRateLimited(err))
}

package ratelimit

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/jurisflow/jurisflow/internal/config"
	ierr "github.com/jurisflow/jurisflow/internal/errors"
	"github.com/jurisflow/jurisflow/internal/logger"
	"github.com/jurisflow/jurisflow/internal/types"
)

// Result reports the outcome of a rate limit check
type Result struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// Limiter enforces windowed request budgets per identity and category.
// Identity is the caller's user id, or the client IP for
// unauthenticated endpoints.
type Limiter interface {
	Check(ctx context.Context, identity string, category types.RateLimitCategory) (*Result, error)
	Allow(ctx context.Context, identity string, category types.RateLimitCategory) error
}

// window is the counter for one (category, identity) pair. The window
// opens at the caller's first request and closes at resetAt; rejected
// requests never move resetAt, so hammering cannot extend the wait.
type window struct {
	count   int
	resetAt time.Time
}

type limiter struct {
	enabled bool
	rules   map[types.RateLimitCategory]types.RateLimitRule
	mu      sync.Mutex
	windows *gocache.Cache
	logger  *logger.Logger
	now     func() time.Time
}

// NewLimiter builds a limiter from the configured budgets
func NewLimiter(cfg *config.Configuration, log *logger.Logger) Limiter {
	return &limiter{
		enabled: cfg.RateLimit.Enabled,
		rules:   cfg.RateLimit.Rules(),
		windows: gocache.New(10*time.Minute, 15*time.Minute),
		logger:  log,
		now:     time.Now,
	}
}

// Check counts the request against the caller's window and reports
// whether it is allowed. The window is anchored at the first request,
// not at clock boundaries: the budget plus one call inside any span of
// one window length is always denied.
func (l *limiter) Check(ctx context.Context, identity string, category types.RateLimitCategory) (*Result, error) {
	if err := category.Validate(); err != nil {
		return nil, err
	}

	rule, ok := l.rules[category]
	if !l.enabled || !ok {
		return &Result{Allowed: true, Limit: math.MaxInt, Remaining: math.MaxInt}, nil
	}

	now := l.now()
	key := fmt.Sprintf("%s:%s", category, identity)

	l.mu.Lock()
	defer l.mu.Unlock()

	var w *window
	if cached, found := l.windows.Get(key); found {
		w = cached.(*window)
	}
	if w == nil || !now.Before(w.resetAt) {
		w = &window{count: 0, resetAt: now.Add(rule.Window)}
		l.windows.Set(key, w, rule.Window+time.Minute)
	}

	if w.count >= rule.MaxRequests {
		retryAfter := w.resetAt.Sub(now)
		if retryAfter < time.Second {
			retryAfter = time.Second
		}
		l.logger.Debugw("rate limit exceeded",
			"identity", identity,
			"category", category,
			"count", w.count,
			"limit", rule.MaxRequests,
		)
		return &Result{
			Allowed:    false,
			Limit:      rule.MaxRequests,
			Remaining:  0,
			RetryAfter: retryAfter,
		}, nil
	}

	w.count++
	return &Result{
		Allowed:   true,
		Limit:     rule.MaxRequests,
		Remaining: rule.MaxRequests - w.count,
	}, nil
}

// Allow is Check folded into an error for use inside services
func (l *limiter) Allow(ctx context.Context, identity string, category types.RateLimitCategory) error {
	result, err := l.Check(ctx, identity, category)
	if err != nil {
		return err
	}
	if !result.Allowed {
		return ierr.NewError("rate limit exceeded").
			WithHint("Too many requests, please retry later").
			WithReportableDetails(map[string]any{
				"category":            category,
				"retry_after_seconds": int(math.Ceil(result.RetryAfter.Seconds())),
			}).
			Mark(ierr.ErrRateLimited)
	}
	return nil
}

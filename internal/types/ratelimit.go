package types

import (
	"time"

	ierr "github.com/jurisflow/jurisflow/internal/errors"
	"github.com/samber/lo"
)

// RateLimitCategory groups endpoints under a shared request budget
type RateLimitCategory string

const (
	RateLimitCategoryAuth   RateLimitCategory = "auth"
	RateLimitCategoryAPI    RateLimitCategory = "api"
	RateLimitCategoryAI     RateLimitCategory = "ai"
	RateLimitCategoryUpload RateLimitCategory = "upload"
	RateLimitCategorySearch RateLimitCategory = "search"
)

func (c RateLimitCategory) String() string {
	return string(c)
}

func (c RateLimitCategory) Validate() error {
	allowed := []RateLimitCategory{
		RateLimitCategoryAuth,
		RateLimitCategoryAPI,
		RateLimitCategoryAI,
		RateLimitCategoryUpload,
		RateLimitCategorySearch,
	}
	if !lo.Contains(allowed, c) {
		return ierr.NewError("invalid rate limit category").
			WithHint("Invalid rate limit category").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// RateLimitRule is a fixed window budget for a category
type RateLimitRule struct {
	MaxRequests int
	Window      time.Duration
}

// DefaultRateLimitRules returns the per category budgets applied when
// no override is configured.
func DefaultRateLimitRules() map[RateLimitCategory]RateLimitRule {
	return map[RateLimitCategory]RateLimitRule{
		RateLimitCategoryAuth:   {MaxRequests: 5, Window: 60 * time.Second},
		RateLimitCategoryAPI:    {MaxRequests: 60, Window: 60 * time.Second},
		RateLimitCategoryAI:     {MaxRequests: 10, Window: 60 * time.Second},
		RateLimitCategoryUpload: {MaxRequests: 10, Window: 300 * time.Second},
		RateLimitCategorySearch: {MaxRequests: 30, Window: 60 * time.Second},
	}
}

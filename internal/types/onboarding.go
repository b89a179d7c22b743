package types

import (
	ierr "github.com/jurisflow/jurisflow/internal/errors"
	"github.com/samber/lo"
)

// OnboardingMode controls which firm a newly verified user joins.
// Dedicated provisions a fresh firm per user; shared attaches everyone
// to a single configured firm.
type OnboardingMode string

const (
	OnboardingModeDedicated OnboardingMode = "dedicated"
	OnboardingModeShared    OnboardingMode = "shared"
)

func (m OnboardingMode) String() string {
	return string(m)
}

func (m OnboardingMode) Validate() error {
	allowed := []OnboardingMode{
		OnboardingModeDedicated,
		OnboardingModeShared,
	}
	if !lo.Contains(allowed, m) {
		return ierr.NewError("invalid onboarding mode").
			WithHint("Invalid onboarding mode").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

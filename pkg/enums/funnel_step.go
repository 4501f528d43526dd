package enums

import "fmt"

// FunnelStep labels conversion events emitted from the booking wizard.
type FunnelStep string

const (
	FunnelStepServiceSelected FunnelStep = "service_selected"
	FunnelStepDetailsEntered  FunnelStep = "details_entered"
	FunnelStepQuoteViewed     FunnelStep = "quote_viewed"
	FunnelStepSubmitted       FunnelStep = "submitted"
)

var validFunnelSteps = []FunnelStep{
	FunnelStepServiceSelected,
	FunnelStepDetailsEntered,
	FunnelStepQuoteViewed,
	FunnelStepSubmitted,
}

// String implements fmt.Stringer.
func (f FunnelStep) String() string {
	return string(f)
}

// IsValid reports whether the value is a known FunnelStep.
func (f FunnelStep) IsValid() bool {
	for _, candidate := range validFunnelSteps {
		if candidate == f {
			return true
		}
	}
	return false
}

// ParseFunnelStep converts raw input into a FunnelStep.
func ParseFunnelStep(value string) (FunnelStep, error) {
	for _, candidate := range validFunnelSteps {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid funnel step %q", value)
}

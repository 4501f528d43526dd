package enums

import "fmt"

// InsuranceTier is the rental insurance add-on level.
type InsuranceTier string

const (
	InsuranceTierBasic   InsuranceTier = "basic"
	InsuranceTierPremium InsuranceTier = "premium"
	InsuranceTierFull    InsuranceTier = "full"
)

var validInsuranceTiers = []InsuranceTier{
	InsuranceTierBasic,
	InsuranceTierPremium,
	InsuranceTierFull,
}

// String implements fmt.Stringer.
func (i InsuranceTier) String() string {
	return string(i)
}

// IsValid reports whether the value is a known InsuranceTier.
func (i InsuranceTier) IsValid() bool {
	for _, candidate := range validInsuranceTiers {
		if candidate == i {
			return true
		}
	}
	return false
}

// ParseInsuranceTier converts raw input into an InsuranceTier.
func ParseInsuranceTier(value string) (InsuranceTier, error) {
	for _, candidate := range validInsuranceTiers {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid insurance tier %q", value)
}

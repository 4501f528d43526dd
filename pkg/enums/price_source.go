package enums

import "fmt"

// PriceSource records whether a quote total came from the published rules or
// an agent-supplied override.
type PriceSource string

const (
	PriceSourceStandard PriceSource = "standard"
	PriceSourceCustom   PriceSource = "custom"
)

var validPriceSources = []PriceSource{
	PriceSourceStandard,
	PriceSourceCustom,
}

// String implements fmt.Stringer.
func (p PriceSource) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PriceSource.
func (p PriceSource) IsValid() bool {
	for _, candidate := range validPriceSources {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePriceSource converts raw input into a PriceSource.
func ParsePriceSource(value string) (PriceSource, error) {
	for _, candidate := range validPriceSources {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid price source %q", value)
}

// Package routing labels pickup/dropoff corridors by keyword matching. The
// classification only selects a payment-processing branch downstream; it is
// a best-effort heuristic over free text, not a geocoder, and unmatched
// input simply yields no classification.
package routing

import (
	"strings"

	"github.com/caribeway/caribeway-backend/pkg/enums"
)

// Input carries the raw strings available at classification time.
type Input struct {
	Category     enums.ServiceCategory
	Pickup       string
	Dropoff      string
	ItemName     string
	ItemLocation string
}

// Classification names a known corridor.
type Classification struct {
	Origin      string
	Destination string
	RouteName   string
}

type area struct {
	name     string
	keywords []string
}

var (
	airportLabel    = "PUJ Airport"
	airportKeywords = []string{"airport", "aeropuerto", "puj"}

	// The accented spelling shows up in real addresses; both forms are
	// matched explicitly rather than normalizing input.
	resortArea = area{name: "Bavaro", keywords: []string{"bavaro", "bávaro"}}
	cityArea   = area{name: "Punta Cana", keywords: []string{"punta cana"}}

	// resortArea first: the resort name is the more specific match.
	areas = []area{resortArea, cityArea}
)

// rule attempts one corridor pattern; nil means no match, evaluation falls
// through to the next rule.
type rule func(in Input) *Classification

var rules = []rule{
	airportToArea,
	areaToAirport,
	intraArea,
}

// Classify runs the corridor rules in order, first match wins. A nil result
// means the standard payment branch applies.
func Classify(in Input) *Classification {
	for _, r := range rules {
		if c := r(in); c != nil {
			return c
		}
	}
	return nil
}

// Branch maps a classification to the payment-processing branch.
func Branch(c *Classification) enums.PaymentBranch {
	if c == nil {
		return enums.PaymentBranchRecordConfirm
	}
	return enums.PaymentBranchDynamicCheckout
}

func airportToArea(in Input) *Classification {
	if in.Category != enums.ServiceCategoryAirportTransfer {
		return nil
	}
	if !containsAny(in.Pickup, airportKeywords) {
		return nil
	}
	dest := matchArea(in.Dropoff, in.ItemName, in.ItemLocation)
	if dest == nil {
		return nil
	}
	return corridor(airportLabel, dest.name)
}

func areaToAirport(in Input) *Classification {
	origin := matchArea(in.Pickup)
	if origin == nil {
		return nil
	}
	if !containsAny(in.Dropoff, airportKeywords) {
		return nil
	}
	return corridor(origin.name, airportLabel)
}

func intraArea(in Input) *Classification {
	if in.Category != enums.ServiceCategoryAirportTransfer && in.Category != enums.ServiceCategoryCarRental {
		return nil
	}
	matched := matchArea(in.Pickup, in.Dropoff, in.ItemName, in.ItemLocation)
	if matched == nil {
		return nil
	}
	// Direction comes from the pickup string; without an area keyword
	// there the corridor originates at the airport.
	if origin := matchArea(in.Pickup); origin != nil {
		return corridor(origin.name, otherArea(origin).name)
	}
	return corridor(airportLabel, matched.name)
}

func corridor(origin, destination string) *Classification {
	return &Classification{
		Origin:      origin,
		Destination: destination,
		RouteName:   origin + " to " + destination,
	}
}

// matchArea returns the first area whose keywords appear in any of the
// candidate strings, preferring the more specific area.
func matchArea(candidates ...string) *area {
	for i := range areas {
		for _, candidate := range candidates {
			if containsAny(candidate, areas[i].keywords) {
				return &areas[i]
			}
		}
	}
	return nil
}

func otherArea(a *area) *area {
	if a.name == resortArea.name {
		return &cityArea
	}
	return &resortArea
}

func containsAny(value string, keywords []string) bool {
	lowered := strings.ToLower(value)
	for _, keyword := range keywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}

// MatchesAirport reports whether a free-text location reads as the airport.
// The transfer form uses it to decide whether a flight number is required.
func MatchesAirport(value string) bool {
	return containsAny(value, airportKeywords)
}

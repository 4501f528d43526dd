package enums

import "fmt"

// ServiceCategory identifies which pricing rule set applies to a booking.
type ServiceCategory string

const (
	ServiceCategoryAirportTransfer ServiceCategory = "airport_transfer"
	ServiceCategoryHotel           ServiceCategory = "hotel"
	ServiceCategoryCarRental       ServiceCategory = "car_rental"
	ServiceCategoryTour            ServiceCategory = "tour"
	ServiceCategoryFlight          ServiceCategory = "flight"
)

var validServiceCategories = []ServiceCategory{
	ServiceCategoryAirportTransfer,
	ServiceCategoryHotel,
	ServiceCategoryCarRental,
	ServiceCategoryTour,
	ServiceCategoryFlight,
}

// String implements fmt.Stringer.
func (s ServiceCategory) String() string {
	return string(s)
}

// IsValid reports whether the category is recognized.
func (s ServiceCategory) IsValid() bool {
	for _, candidate := range validServiceCategories {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseServiceCategory converts raw input into a ServiceCategory.
func ParseServiceCategory(value string) (ServiceCategory, error) {
	for _, candidate := range validServiceCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid service category %q", value)
}

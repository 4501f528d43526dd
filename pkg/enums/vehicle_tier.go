package enums

import "fmt"

// VehicleTier is the transfer fleet tier selected by the customer.
type VehicleTier string

const (
	VehicleTierSedan      VehicleTier = "sedan"
	VehicleTierMinivan    VehicleTier = "minivan"
	VehicleTierPremiumSUV VehicleTier = "premium_suv"
	VehicleTierLargeVan   VehicleTier = "large_van"
	VehicleTierMinibus    VehicleTier = "minibus"
)

var validVehicleTiers = []VehicleTier{
	VehicleTierSedan,
	VehicleTierMinivan,
	VehicleTierPremiumSUV,
	VehicleTierLargeVan,
	VehicleTierMinibus,
}

// String implements fmt.Stringer.
func (v VehicleTier) String() string {
	return string(v)
}

// IsValid reports whether the tier is part of the published fleet.
func (v VehicleTier) IsValid() bool {
	for _, candidate := range validVehicleTiers {
		if candidate == v {
			return true
		}
	}
	return false
}

// ParseVehicleTier converts raw input into a VehicleTier.
func ParseVehicleTier(value string) (VehicleTier, error) {
	for _, candidate := range validVehicleTiers {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid vehicle tier %q", value)
}

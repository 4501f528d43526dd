package pricing

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/caribeway/caribeway-backend/pkg/enums"
)

// TransferOptions describes an airport-transfer quote.
type TransferOptions struct {
	VehicleTier     enums.VehicleTier
	RoundTrip       bool
	PickupAt        *time.Time
	PickupAddress   string
	DropoffAddress  string
	PickupIsAirport bool
	FlightNumber    string

	// CustomRate is the raw override as entered. Anything that does not
	// parse to a finite number > 0 is ignored.
	CustomRate string
}

// QuoteTransfer prices an airport transfer. The total is left as an exact
// decimal; transfer rates are not rounded.
func QuoteTransfer(opts TransferOptions) QuoteResult {
	if custom, ok := parseCustomRate(opts.CustomRate); ok {
		return QuoteResult{
			Total:       custom,
			Source:      enums.PriceSourceCustom,
			Submittable: transferSubmittable(opts),
		}
	}

	base, ok := transferBaseRates[opts.VehicleTier]
	if !ok {
		base = transferBaseRates[enums.VehicleTierSedan]
	}

	total := base
	if opts.RoundTrip {
		total = total.Mul(roundTripMultiplier)
	}

	return QuoteResult{
		Total:       total,
		Source:      enums.PriceSourceStandard,
		Submittable: transferSubmittable(opts),
	}
}

func transferSubmittable(opts TransferOptions) bool {
	if opts.PickupAt == nil || opts.PickupAt.IsZero() {
		return false
	}
	if strings.TrimSpace(opts.DropoffAddress) == "" {
		return false
	}
	if opts.PickupIsAirport && strings.TrimSpace(opts.FlightNumber) == "" {
		return false
	}
	return true
}

func parseCustomRate(raw string) (decimal.Decimal, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return decimal.Zero, false
	}
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) || value <= 0 {
		return decimal.Zero, false
	}
	return decimal.NewFromFloat(value), true
}

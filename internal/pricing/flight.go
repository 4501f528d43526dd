package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/caribeway/caribeway-backend/pkg/enums"
)

// FlightOptions describes a flight quote. Infants count toward the party for
// validity but fly free.
type FlightOptions struct {
	BasePrice   decimal.Decimal
	Adults      int
	Children    int
	Infants     int
	RoundTrip   bool
	CabinClass  enums.CabinClass
	CheckedBags int
	CarryOnBags int
}

// QuoteFlight prices a flight. Fares scale by cabin-class multiplier and
// double for round trips; baggage fees apply per leg with the first carry-on
// free. The total is rounded to whole currency units.
func QuoteFlight(opts FlightOptions) QuoteResult {
	adults := clampCount(opts.Adults)
	children := clampCount(opts.Children)
	infants := clampCount(opts.Infants)

	legFactor := decimal.NewFromInt(1)
	if opts.RoundTrip {
		legFactor = decimal.NewFromInt(2)
	}

	multiplier, ok := cabinClassMultipliers[opts.CabinClass]
	if !ok {
		multiplier = cabinClassMultipliers[enums.CabinClassEconomy]
	}

	seated := decimal.NewFromInt(int64(adults + children))
	total := opts.BasePrice.Mul(seated).Mul(legFactor).Mul(multiplier)

	checked := clampCount(opts.CheckedBags)
	total = total.Add(checkedBagFee.Mul(decimal.NewFromInt(int64(checked))).Mul(legFactor))

	extraCarryOn := clampCount(opts.CarryOnBags - 1)
	total = total.Add(carryOnBagFee.Mul(decimal.NewFromInt(int64(extraCarryOn))).Mul(legFactor))

	return QuoteResult{
		Total:       total.Round(0),
		Source:      enums.PriceSourceStandard,
		Submittable: adults+children+infants > 0 && opts.BasePrice.Sign() > 0,
	}
}

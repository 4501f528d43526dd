package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/caribeway/caribeway-backend/pkg/enums"
)

// TourOptions describes a tour/activity quote. Children ride at 70% of the
// adult price; infants are free.
type TourOptions struct {
	AdultPrice  decimal.Decimal
	Adults      int
	Children    int
	Infants     int
	HotelPickup bool
}

// QuoteTour prices a tour. Negative counts clamp to zero; the quote is
// submittable only when at least one participant is present. The total is
// rounded to whole currency units.
func QuoteTour(opts TourOptions) QuoteResult {
	adults := clampCount(opts.Adults)
	children := clampCount(opts.Children)
	infants := clampCount(opts.Infants)

	total := opts.AdultPrice.Mul(decimal.NewFromInt(int64(adults)))
	total = total.Add(opts.AdultPrice.Mul(childTourMultiplier).Mul(decimal.NewFromInt(int64(children))))
	if opts.HotelPickup {
		total = total.Add(hotelPickupFee)
	}

	return QuoteResult{
		Total:       total.Round(0),
		Source:      enums.PriceSourceStandard,
		Submittable: adults+children+infants > 0,
	}
}

func clampCount(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

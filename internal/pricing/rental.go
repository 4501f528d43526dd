package pricing

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/caribeway/caribeway-backend/pkg/enums"
)

// CarRentalOptions describes a car-rental quote.
type CarRentalOptions struct {
	DailyRate        decimal.Decimal
	PickupAt         time.Time
	ReturnAt         time.Time
	Insurance        enums.InsuranceTier
	GPS              bool
	ChildSeat        bool
	AdditionalDriver bool
}

// QuoteCarRental prices a rental. Same-day and inverted date ranges clamp
// to a one-day rental. The total is left as an exact decimal.
func QuoteCarRental(opts CarRentalOptions) QuoteResult {
	if opts.PickupAt.IsZero() || opts.ReturnAt.IsZero() || opts.DailyRate.Sign() <= 0 {
		return QuoteResult{Total: decimal.Zero, Source: enums.PriceSourceStandard}
	}

	days := rentalDays(opts.PickupAt, opts.ReturnAt)
	dayCount := decimal.NewFromInt(int64(days))

	total := opts.DailyRate.Mul(dayCount)

	insurance, ok := insuranceDailyRates[opts.Insurance]
	if !ok {
		insurance = insuranceDailyRates[enums.InsuranceTierBasic]
	}
	total = total.Add(insurance.Mul(dayCount))

	if opts.GPS {
		total = total.Add(gpsDailyRate.Mul(dayCount))
	}
	if opts.ChildSeat {
		total = total.Add(childSeatDailyRate.Mul(dayCount))
	}
	if opts.AdditionalDriver {
		total = total.Add(additionalDriverFee)
	}

	return QuoteResult{Total: total, Source: enums.PriceSourceStandard, Submittable: true}
}

// rentalDays is the ceiling of the day span, with a one-day minimum.
func rentalDays(pickup, ret time.Time) int {
	span := ret.Sub(pickup)
	if span <= 0 {
		return 1
	}
	days := int(math.Ceil(span.Hours() / 24))
	if days < 1 {
		return 1
	}
	return days
}

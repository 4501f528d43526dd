package pricing

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/caribeway/caribeway-backend/pkg/enums"
)

// HotelOptions describes a hotel-stay quote.
type HotelOptions struct {
	NightlyRate decimal.Decimal
	CheckIn     time.Time
	CheckOut    time.Time
	Rooms       int
	RoomType    enums.RoomType
}

// QuoteHotel prices a hotel stay. Zero or negative night spans do not
// produce a negative price; they yield a zero, unsubmittable quote. The
// total is rounded to whole currency units.
func QuoteHotel(opts HotelOptions) QuoteResult {
	nights := nightsBetween(opts.CheckIn, opts.CheckOut)
	if nights <= 0 || opts.Rooms <= 0 || opts.NightlyRate.Sign() <= 0 {
		return QuoteResult{Total: decimal.Zero, Source: enums.PriceSourceStandard}
	}

	multiplier, ok := roomTypeMultipliers[opts.RoomType]
	if !ok {
		multiplier = roomTypeMultipliers[enums.RoomTypeStandard]
	}

	total := opts.NightlyRate.
		Mul(decimal.NewFromInt(int64(nights))).
		Mul(decimal.NewFromInt(int64(opts.Rooms))).
		Mul(multiplier).
		Round(0)

	return QuoteResult{Total: total, Source: enums.PriceSourceStandard, Submittable: true}
}

// nightsBetween is the ceiling of the day span, clamped at zero.
func nightsBetween(checkIn, checkOut time.Time) int {
	if checkIn.IsZero() || checkOut.IsZero() {
		return 0
	}
	span := checkOut.Sub(checkIn)
	if span <= 0 {
		return 0
	}
	return int(math.Ceil(span.Hours() / 24))
}

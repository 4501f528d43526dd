package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/caribeway/caribeway-backend/pkg/enums"
)

// Published rate tables. These are the fixed constants the funnel quotes
// against; changing them is a product decision, not a config knob.
var (
	transferBaseRates = map[enums.VehicleTier]decimal.Decimal{
		enums.VehicleTierSedan:      decimal.NewFromInt(35),
		enums.VehicleTierMinivan:    decimal.NewFromInt(45),
		enums.VehicleTierPremiumSUV: decimal.NewFromInt(65),
		enums.VehicleTierLargeVan:   decimal.NewFromInt(80),
		enums.VehicleTierMinibus:    decimal.NewFromInt(120),
	}

	// Round trips get a 10% discount over two one-way legs.
	roundTripMultiplier = decimal.RequireFromString("1.9")

	roomTypeMultipliers = map[enums.RoomType]decimal.Decimal{
		enums.RoomTypeStandard: decimal.NewFromInt(1),
		enums.RoomTypeDeluxe:   decimal.RequireFromString("1.3"),
		enums.RoomTypeSuite:    decimal.RequireFromString("1.6"),
	}

	insuranceDailyRates = map[enums.InsuranceTier]decimal.Decimal{
		enums.InsuranceTierBasic:   decimal.Zero,
		enums.InsuranceTierPremium: decimal.NewFromInt(15),
		enums.InsuranceTierFull:    decimal.NewFromInt(25),
	}

	gpsDailyRate        = decimal.NewFromInt(5)
	childSeatDailyRate  = decimal.NewFromInt(8)
	additionalDriverFee = decimal.NewFromInt(30)

	childTourMultiplier = decimal.RequireFromString("0.7")
	hotelPickupFee      = decimal.NewFromInt(20)

	cabinClassMultipliers = map[enums.CabinClass]decimal.Decimal{
		enums.CabinClassEconomy:        decimal.NewFromInt(1),
		enums.CabinClassPremiumEconomy: decimal.RequireFromString("1.5"),
		enums.CabinClassBusiness:       decimal.RequireFromString("2.5"),
		enums.CabinClassFirst:          decimal.NewFromInt(4),
	}

	checkedBagFee = decimal.NewFromInt(50)
	carryOnBagFee = decimal.NewFromInt(30)
)

// TransferBaseRate exposes the published one-way rate for a tier.
func TransferBaseRate(tier enums.VehicleTier) (decimal.Decimal, bool) {
	rate, ok := transferBaseRates[tier]
	return rate, ok
}

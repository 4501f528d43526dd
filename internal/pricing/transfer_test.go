package pricing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/caribeway/caribeway-backend/pkg/enums"
)

func TestQuoteTransferRoundTripMultiplier(t *testing.T) {
	t.Parallel()

	for _, tier := range []enums.VehicleTier{
		enums.VehicleTierSedan,
		enums.VehicleTierMinivan,
		enums.VehicleTierPremiumSUV,
		enums.VehicleTierLargeVan,
		enums.VehicleTierMinibus,
	} {
		oneWay := QuoteTransfer(TransferOptions{VehicleTier: tier})
		roundTrip := QuoteTransfer(TransferOptions{VehicleTier: tier, RoundTrip: true})

		expected := oneWay.Total.Mul(decimal.RequireFromString("1.9"))
		if !roundTrip.Total.Equal(expected) {
			t.Fatalf("tier %s: round trip %s, want %s", tier, roundTrip.Total, expected)
		}
	}
}

func TestQuoteTransferCustomRateOverrides(t *testing.T) {
	t.Parallel()

	res := QuoteTransfer(TransferOptions{
		VehicleTier: enums.VehicleTierMinibus,
		RoundTrip:   true,
		CustomRate:  "57.50",
	})

	if res.Source != enums.PriceSourceCustom {
		t.Fatalf("expected custom price source, got %s", res.Source)
	}
	if !res.Total.Equal(decimal.RequireFromString("57.5")) {
		t.Fatalf("custom rate not applied verbatim: %s", res.Total)
	}
}

func TestQuoteTransferBadCustomRateFallsBack(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"abc", "", "  ", "-10", "0", "NaN", "+Inf"} {
		res := QuoteTransfer(TransferOptions{VehicleTier: enums.VehicleTierSedan, CustomRate: raw})
		if res.Source != enums.PriceSourceStandard {
			t.Fatalf("custom rate %q should be ignored", raw)
		}
		if !res.Total.Equal(decimal.NewFromInt(35)) {
			t.Fatalf("custom rate %q: total %s, want 35", raw, res.Total)
		}
	}
}

func TestTransferSubmittableGating(t *testing.T) {
	t.Parallel()

	pickup := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	base := TransferOptions{
		VehicleTier:    enums.VehicleTierSedan,
		PickupAt:       &pickup,
		DropoffAddress: "Hilton Bavaro",
	}

	if !QuoteTransfer(base).Submittable {
		t.Fatal("complete transfer request should be submittable")
	}

	missingTime := base
	missingTime.PickupAt = nil
	if QuoteTransfer(missingTime).Submittable {
		t.Fatal("missing pickup time should gate submission")
	}

	missingDropoff := base
	missingDropoff.DropoffAddress = "  "
	if QuoteTransfer(missingDropoff).Submittable {
		t.Fatal("missing dropoff should gate submission")
	}

	airportPickup := base
	airportPickup.PickupIsAirport = true
	if QuoteTransfer(airportPickup).Submittable {
		t.Fatal("airport pickup without flight number should gate submission")
	}
	airportPickup.FlightNumber = "AA1234"
	if !QuoteTransfer(airportPickup).Submittable {
		t.Fatal("airport pickup with flight number should be submittable")
	}
}

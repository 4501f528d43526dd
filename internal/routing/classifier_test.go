package routing

import (
	"testing"

	"github.com/caribeway/caribeway-backend/pkg/enums"
)

func TestClassifyAirportToResort(t *testing.T) {
	t.Parallel()

	got := Classify(Input{
		Category: enums.ServiceCategoryAirportTransfer,
		Pickup:   "PUJ Airport",
		Dropoff:  "Hilton Bavaro",
	})

	if got == nil {
		t.Fatal("expected a classification")
	}
	if got.Origin != "PUJ Airport" || got.Destination != "Bavaro" {
		t.Fatalf("unexpected corridor %+v", got)
	}
	if got.RouteName != "PUJ Airport to Bavaro" {
		t.Fatalf("unexpected route name %q", got.RouteName)
	}
}

func TestClassifyCaseInsensitive(t *testing.T) {
	t.Parallel()

	upper := Classify(Input{
		Category: enums.ServiceCategoryAirportTransfer,
		Pickup:   "PUJ AIRPORT",
		Dropoff:  "HILTON BAVARO",
	})
	lower := Classify(Input{
		Category: enums.ServiceCategoryAirportTransfer,
		Pickup:   "puj airport",
		Dropoff:  "hilton bavaro",
	})

	if upper == nil || lower == nil {
		t.Fatal("expected classifications for both casings")
	}
	if *upper != *lower {
		t.Fatalf("case changed the result: %+v vs %+v", upper, lower)
	}
}

func TestClassifyAccentedSpelling(t *testing.T) {
	t.Parallel()

	got := Classify(Input{
		Category: enums.ServiceCategoryAirportTransfer,
		Pickup:   "Aeropuerto Punta Cana",
		Dropoff:  "Meliá Bávaro",
	})

	if got == nil || got.Destination != "Bavaro" {
		t.Fatalf("accented spelling should match the resort area, got %+v", got)
	}
}

func TestClassifyAreaToAirport(t *testing.T) {
	t.Parallel()

	got := Classify(Input{
		Category: enums.ServiceCategoryAirportTransfer,
		Pickup:   "Barcelo Bavaro Palace",
		Dropoff:  "PUJ airport terminal B",
	})

	if got == nil {
		t.Fatal("expected a classification")
	}
	if got.Origin != "Bavaro" || got.Destination != "PUJ Airport" {
		t.Fatalf("unexpected corridor %+v", got)
	}
}

func TestClassifyResortPreferredOverCity(t *testing.T) {
	t.Parallel()

	got := Classify(Input{
		Category: enums.ServiceCategoryAirportTransfer,
		Pickup:   "PUJ",
		Dropoff:  "Hotel Bavaro, Punta Cana",
	})

	if got == nil || got.Destination != "Bavaro" {
		t.Fatalf("resort keyword should win over the city, got %+v", got)
	}
}

func TestClassifyIntraAreaDirection(t *testing.T) {
	t.Parallel()

	fromResort := Classify(Input{
		Category: enums.ServiceCategoryCarRental,
		Pickup:   "Bavaro beach office",
		Dropoff:  "downtown",
	})
	if fromResort == nil || fromResort.Origin != "Bavaro" || fromResort.Destination != "Punta Cana" {
		t.Fatalf("unexpected corridor %+v", fromResort)
	}

	fromCity := Classify(Input{
		Category: enums.ServiceCategoryCarRental,
		Pickup:   "Punta Cana village",
		Dropoff:  "anywhere",
	})
	if fromCity == nil || fromCity.Origin != "Punta Cana" || fromCity.Destination != "Bavaro" {
		t.Fatalf("unexpected corridor %+v", fromCity)
	}
}

func TestClassifyIntraAreaDefaultsToAirportOrigin(t *testing.T) {
	t.Parallel()

	got := Classify(Input{
		Category:     enums.ServiceCategoryCarRental,
		Pickup:       "hotel lobby",
		Dropoff:      "unknown",
		ItemLocation: "Bavaro",
	})

	if got == nil {
		t.Fatal("area keyword in the item location should classify")
	}
	if got.Origin != "PUJ Airport" || got.Destination != "Bavaro" {
		t.Fatalf("unexpected corridor %+v", got)
	}
}

func TestClassifyNoMatch(t *testing.T) {
	t.Parallel()

	if got := Classify(Input{
		Category: enums.ServiceCategoryAirportTransfer,
		Pickup:   "Santo Domingo",
		Dropoff:  "La Romana",
	}); got != nil {
		t.Fatalf("expected no classification, got %+v", got)
	}

	// Hotel bookings never classify, even with matching keywords.
	if got := Classify(Input{
		Category: enums.ServiceCategoryHotel,
		Pickup:   "Bavaro",
		Dropoff:  "more Bavaro",
	}); got != nil {
		t.Fatalf("hotel category must not reach the intra-area rule, got %+v", got)
	}
}

func TestBranchSelection(t *testing.T) {
	t.Parallel()

	if Branch(nil) != enums.PaymentBranchRecordConfirm {
		t.Fatal("no classification must select the standard branch")
	}
	if Branch(&Classification{}) != enums.PaymentBranchDynamicCheckout {
		t.Fatal("any classification must select the dynamic branch")
	}
}

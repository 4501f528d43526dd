package pricing

import (
	"testing"

	"github.com/caribeway/caribeway-backend/pkg/enums"
)

func TestQuoteRejectsMissingOptionBlock(t *testing.T) {
	t.Parallel()

	if _, err := Quote(QuoteRequest{Category: enums.ServiceCategoryHotel}); err == nil {
		t.Fatal("expected error when hotel options are missing")
	}
	if _, err := Quote(QuoteRequest{Category: "boat"}); err == nil {
		t.Fatal("expected error for unknown category")
	}
}

func TestQuoteDispatchesPerCategory(t *testing.T) {
	t.Parallel()

	res, err := Quote(QuoteRequest{
		Category: enums.ServiceCategoryAirportTransfer,
		Transfer: &TransferOptions{VehicleTier: enums.VehicleTierMinivan},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Source != enums.PriceSourceStandard {
		t.Fatalf("unexpected price source %s", res.Source)
	}
}

// Package pricing computes booking quotes from the published rate rules.
// Every calculator is a pure function over an in-memory request; persistence
// and payment are the caller's problem.
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/caribeway/caribeway-backend/pkg/enums"
)

// QuoteRequest carries the category plus the option block for that category.
// Exactly one option block should be set; the dispatcher rejects requests
// where the block for the selected category is missing.
type QuoteRequest struct {
	Category  enums.ServiceCategory
	Transfer  *TransferOptions
	Hotel     *HotelOptions
	CarRental *CarRentalOptions
	Tour      *TourOptions
	Flight    *FlightOptions
}

// QuoteResult is the computed price for a request. Submittable reports
// whether the request has everything required to continue the funnel; an
// unsubmittable quote is a state, not an error.
type QuoteResult struct {
	Total       decimal.Decimal
	Source      enums.PriceSource
	Submittable bool
}

// Quote dispatches to the per-category calculator.
func Quote(req QuoteRequest) (QuoteResult, error) {
	switch req.Category {
	case enums.ServiceCategoryAirportTransfer:
		if req.Transfer == nil {
			return QuoteResult{}, fmt.Errorf("transfer options required for %s", req.Category)
		}
		return QuoteTransfer(*req.Transfer), nil
	case enums.ServiceCategoryHotel:
		if req.Hotel == nil {
			return QuoteResult{}, fmt.Errorf("hotel options required for %s", req.Category)
		}
		return QuoteHotel(*req.Hotel), nil
	case enums.ServiceCategoryCarRental:
		if req.CarRental == nil {
			return QuoteResult{}, fmt.Errorf("car rental options required for %s", req.Category)
		}
		return QuoteCarRental(*req.CarRental), nil
	case enums.ServiceCategoryTour:
		if req.Tour == nil {
			return QuoteResult{}, fmt.Errorf("tour options required for %s", req.Category)
		}
		return QuoteTour(*req.Tour), nil
	case enums.ServiceCategoryFlight:
		if req.Flight == nil {
			return QuoteResult{}, fmt.Errorf("flight options required for %s", req.Category)
		}
		return QuoteFlight(*req.Flight), nil
	}
	return QuoteResult{}, fmt.Errorf("unknown service category %q", req.Category)
}

package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/caribeway/caribeway-backend/internal/bookings"
	"github.com/caribeway/caribeway-backend/pkg/db/models"
	"github.com/caribeway/caribeway-backend/pkg/enums"
	pkgerrors "github.com/caribeway/caribeway-backend/pkg/errors"
	"github.com/caribeway/caribeway-backend/pkg/pagination"
)

type stubBookingService struct {
	booking     *models.Booking
	list        *bookings.List
	quote       *bookings.QuoteBreakdown
	err         error
	csv         string
	gotInput    *bookings.CreateInput
	gotFilters  *bookings.Filters
	gotID       uuid.UUID
	gotDriverID *uuid.UUID
}

func (s *stubBookingService) Quote(ctx context.Context, req bookings.QuoteRequest) (*bookings.QuoteBreakdown, error) {
	return s.quote, s.err
}

func (s *stubBookingService) Create(ctx context.Context, input bookings.CreateInput) (*models.Booking, error) {
	s.gotInput = &input
	return s.booking, s.err
}

func (s *stubBookingService) GetByReference(ctx context.Context, reference, email string) (*models.Booking, error) {
	if s.booking != nil && (s.booking.Reference != reference || s.booking.CustomerEmail != email) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "booking not found")
	}
	return s.booking, s.err
}

func (s *stubBookingService) ListBookings(ctx context.Context, filters bookings.Filters, params pagination.Params) (*bookings.List, error) {
	s.gotFilters = &filters
	return s.list, s.err
}

func (s *stubBookingService) Confirm(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	s.gotID = id
	return s.booking, s.err
}

func (s *stubBookingService) Cancel(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	s.gotID = id
	return s.booking, s.err
}

func (s *stubBookingService) Complete(ctx context.Context, id uuid.UUID, driverID *uuid.UUID) (*models.Booking, error) {
	s.gotID = id
	s.gotDriverID = driverID
	return s.booking, s.err
}

func (s *stubBookingService) AssignDriver(ctx context.Context, id, driverID uuid.UUID) (*models.Booking, error) {
	s.gotID = id
	s.gotDriverID = &driverID
	return s.booking, s.err
}

func (s *stubBookingService) ConfirmPaidByOrderID(ctx context.Context, orderID string) (*models.Booking, error) {
	return s.booking, s.err
}

func (s *stubBookingService) ExpireStale(ctx context.Context, now time.Time) (int64, error) {
	return 0, s.err
}

func (s *stubBookingService) ExportCSV(ctx context.Context, filters bookings.Filters, w io.Writer) error {
	s.gotFilters = &filters
	if s.err != nil {
		return s.err
	}
	_, err := io.WriteString(w, s.csv)
	return err
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func TestBookingCreateReturnsCreated(t *testing.T) {
	booking := &models.Booking{
		ID:            uuid.New(),
		Reference:     "CW-20260829-A1B2",
		Category:      enums.ServiceCategoryAirportTransfer,
		CustomerEmail: "guest@example.com",
		Status:        enums.BookingStatusPending,
	}
	svc := &stubBookingService{booking: booking}
	handler := BookingCreate(svc, nil)

	payload := map[string]any{
		"category":       "airport_transfer",
		"customer_name":  "Guest",
		"customer_email": "guest@example.com",
		"pickup_address": "PUJ Airport",
		"adults":         2,
	}
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", bytes.NewReader(body))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body %s", resp.Code, resp.Body.String())
	}
	if svc.gotInput == nil || svc.gotInput.CustomerEmail != "guest@example.com" {
		t.Fatalf("unexpected input %+v", svc.gotInput)
	}

	var envelope struct {
		Data models.Booking `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Reference != booking.Reference {
		t.Fatalf("unexpected reference %q", envelope.Data.Reference)
	}
}

func TestBookingCreateRejectsInvalidPayload(t *testing.T) {
	handler := BookingCreate(&stubBookingService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", bytes.NewReader([]byte(`{"category":"airport_transfer"}`)))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestBookingLookupRequiresEmail(t *testing.T) {
	handler := BookingLookup(&stubBookingService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/CW-20260829-A1B2", nil)
	req = withURLParam(req, "reference", "CW-20260829-A1B2")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestBookingLookupReturnsBooking(t *testing.T) {
	booking := &models.Booking{
		Reference:     "CW-20260829-A1B2",
		CustomerEmail: "guest@example.com",
		Status:        enums.BookingStatusConfirmed,
	}
	handler := BookingLookup(&stubBookingService{booking: booking}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/CW-20260829-A1B2?email=guest@example.com", nil)
	req = withURLParam(req, "reference", "CW-20260829-A1B2")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body %s", resp.Code, resp.Body.String())
	}
}

func TestQuoteCreateReturnsBreakdown(t *testing.T) {
	quote := &bookings.QuoteBreakdown{
		Total:         "95.00",
		TotalCents:    9500,
		Currency:      "USD",
		Source:        enums.PriceSourceStandard,
		Submittable:   true,
		PaymentBranch: enums.PaymentBranchDynamicCheckout,
		Category:      enums.ServiceCategoryAirportTransfer,
	}
	handler := QuoteCreate(&stubBookingService{quote: quote}, nil)

	payload := map[string]any{"category": "airport_transfer", "adults": 2, "pickup_address": "PUJ"}
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/quotes", bytes.NewReader(body))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Data bookings.QuoteBreakdown `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.TotalCents != 9500 || !envelope.Data.Submittable {
		t.Fatalf("unexpected breakdown %+v", envelope.Data)
	}
}

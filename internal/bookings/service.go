package bookings

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/caribeway/caribeway-backend/internal/pricing"
	"github.com/caribeway/caribeway-backend/internal/routing"
	"github.com/caribeway/caribeway-backend/pkg/db/models"
	"github.com/caribeway/caribeway-backend/pkg/enums"
	pkgerrors "github.com/caribeway/caribeway-backend/pkg/errors"
	"github.com/caribeway/caribeway-backend/pkg/logger"
	"github.com/caribeway/caribeway-backend/pkg/pagination"
	"github.com/caribeway/caribeway-backend/pkg/types"
)

const referenceRetries = 3

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type itemFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.ServiceItem, error)
}

// PaymentLink is the hosted checkout handle attached to a booking.
type PaymentLink struct {
	ID      string
	URL     string
	OrderID string
}

// PaymentLinkCreator provisions a hosted checkout for a dynamic-branch
// booking.
type PaymentLinkCreator interface {
	CreateBookingLink(ctx context.Context, booking *models.Booking) (*PaymentLink, error)
}

// Service exposes quoting plus the booking lifecycle.
type Service interface {
	Quote(ctx context.Context, req QuoteRequest) (*QuoteBreakdown, error)
	Create(ctx context.Context, input CreateInput) (*models.Booking, error)
	GetByReference(ctx context.Context, reference, email string) (*models.Booking, error)
	ListBookings(ctx context.Context, filters Filters, params pagination.Params) (*List, error)
	Confirm(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	Cancel(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	Complete(ctx context.Context, id uuid.UUID, driverID *uuid.UUID) (*models.Booking, error)
	AssignDriver(ctx context.Context, id, driverID uuid.UUID) (*models.Booking, error)
	ConfirmPaidByOrderID(ctx context.Context, orderID string) (*models.Booking, error)
	ExpireStale(ctx context.Context, now time.Time) (int64, error)
	ExportCSV(ctx context.Context, filters Filters, w io.Writer) error
}

// ServiceParams collects the booking service dependencies.
type ServiceParams struct {
	Repo    Repository
	Items   itemFinder
	Tx      txRunner
	Links   PaymentLinkCreator
	Logger  *logger.Logger
	HoldTTL time.Duration
}

type service struct {
	repo    Repository
	items   itemFinder
	tx      txRunner
	links   PaymentLinkCreator
	logg    *logger.Logger
	holdTTL time.Duration
	now     func() time.Time
}

// NewService builds the booking service. Links may be nil when hosted
// checkout is not configured; dynamic-branch bookings then stay pending
// without a link.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("bookings repository required")
	}
	if params.Items == nil {
		return nil, fmt.Errorf("catalog finder required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	holdTTL := params.HoldTTL
	if holdTTL <= 0 {
		holdTTL = 48 * time.Hour
	}
	return &service{
		repo:    params.Repo,
		items:   params.Items,
		tx:      params.Tx,
		links:   params.Links,
		logg:    params.Logger,
		holdTTL: holdTTL,
		now:     time.Now,
	}, nil
}

func (s *service) Quote(ctx context.Context, req QuoteRequest) (*QuoteBreakdown, error) {
	priced, item, err := s.price(ctx, req)
	if err != nil {
		return nil, err
	}

	classification := classify(req, item)
	branch := routing.Branch(classification)

	breakdown := &QuoteBreakdown{
		Total:         priced.Total.String(),
		TotalCents:    int(priced.Total.Mul(decimal.NewFromInt(100)).Round(0).IntPart()),
		Currency:      "USD",
		Source:        priced.Source,
		Submittable:   priced.Submittable,
		PaymentBranch: branch,
		Category:      req.Category,
	}
	if classification != nil {
		breakdown.RouteName = &classification.RouteName
		breakdown.RouteOrigin = &classification.Origin
		breakdown.RouteDest = &classification.Destination
	}
	return breakdown, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Booking, error) {
	name := strings.TrimSpace(input.CustomerName)
	email := strings.ToLower(strings.TrimSpace(input.CustomerEmail))
	if name == "" || email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer name and email required")
	}

	priced, item, err := s.price(ctx, input.QuoteRequest)
	if err != nil {
		return nil, err
	}
	if !priced.Submittable {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "booking details are incomplete for this service")
	}

	classification := classify(input.QuoteRequest, item)
	branch := routing.Branch(classification)

	now := s.now()
	holdExpiry := now.Add(s.holdTTL)
	booking := &models.Booking{
		Category:       input.Category,
		ItemID:         input.ItemID,
		CustomerName:   name,
		CustomerEmail:  email,
		CustomerPhone:  strings.TrimSpace(input.CustomerPhone),
		PickupAddress:  strings.TrimSpace(input.PickupAddress),
		DropoffAddress: strings.TrimSpace(input.DropoffAddress),
		FlightNumber:   strings.TrimSpace(input.FlightNumber),
		StartAt:        input.StartAt,
		EndAt:          input.EndAt,
		Adults:         input.Adults,
		Children:       input.Children,
		Infants:        input.Infants,
		Options:        snapshotOptions(input.QuoteRequest),
		TotalCents:     int(priced.Total.Mul(decimal.NewFromInt(100)).Round(0).IntPart()),
		Currency:       "USD",
		PriceSource:    priced.Source,
		PaymentBranch:  branch,
		Status:         enums.BookingStatusPending,
		HoldExpiresAt:  &holdExpiry,
	}
	if classification != nil {
		booking.RouteName = &classification.RouteName
		booking.RouteOrigin = &classification.Origin
		booking.RouteDestination = &classification.Destination
	}

	if err := s.persistWithReference(ctx, booking); err != nil {
		return nil, err
	}

	ctx = s.logg.WithBookingRef(ctx, booking.Reference)
	s.logg.Info(ctx, "booking created")

	if branch == enums.PaymentBranchDynamicCheckout && s.links != nil {
		link, linkErr := s.links.CreateBookingLink(ctx, booking)
		if linkErr != nil {
			// Booking survives; staff can retry the link from the admin
			// portal.
			s.logg.Error(ctx, "payment link creation failed", linkErr)
		} else {
			updates := map[string]any{
				"payment_link_id":  link.ID,
				"payment_link_url": link.URL,
				"payment_order_id": link.OrderID,
			}
			if err := s.repo.Update(ctx, booking.ID, updates); err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "attach payment link")
			}
			booking.PaymentLinkID = &link.ID
			booking.PaymentLinkURL = &link.URL
			booking.PaymentOrderID = &link.OrderID
		}
	}

	return booking, nil
}

func (s *service) persistWithReference(ctx context.Context, booking *models.Booking) error {
	var lastErr error
	for attempt := 0; attempt < referenceRetries; attempt++ {
		reference, err := NewReference(s.now())
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate booking reference")
		}
		booking.Reference = reference
		if _, err := s.repo.Create(ctx, booking); err != nil {
			lastErr = err
			if isUniqueViolation(err) {
				continue
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create booking")
		}
		return nil
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, lastErr, "allocate booking reference")
}

func (s *service) GetByReference(ctx context.Context, reference, email string) (*models.Booking, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "booking reference required")
	}
	booking, err := s.repo.FindByReference(ctx, reference)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "booking not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load booking")
	}
	// The public lookup requires the matching email; staff surfaces pass an
	// empty email to skip the check.
	if email != "" && !strings.EqualFold(strings.TrimSpace(email), booking.CustomerEmail) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "booking not found")
	}
	return booking, nil
}

func (s *service) ListBookings(ctx context.Context, filters Filters, params pagination.Params) (*List, error) {
	list, err := s.repo.List(ctx, filters, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list bookings")
	}
	return list, nil
}

func (s *service) Confirm(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	return s.transition(ctx, id, enums.BookingStatusConfirmed, nil)
}

func (s *service) Cancel(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	return s.transition(ctx, id, enums.BookingStatusCancelled, nil)
}

func (s *service) Complete(ctx context.Context, id uuid.UUID, driverID *uuid.UUID) (*models.Booking, error) {
	return s.transition(ctx, id, enums.BookingStatusCompleted, driverID)
}

func (s *service) AssignDriver(ctx context.Context, id, driverID uuid.UUID) (*models.Booking, error) {
	if id == uuid.Nil || driverID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "booking and driver ids required")
	}
	booking, err := s.loadBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.Status.IsTerminal() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "booking is no longer active")
	}
	if err := s.repo.Update(ctx, id, map[string]any{"driver_id": driverID}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "assign driver")
	}
	booking.DriverID = &driverID
	return booking, nil
}

func (s *service) ConfirmPaidByOrderID(ctx context.Context, orderID string) (*models.Booking, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment order id required")
	}
	booking, err := s.repo.FindByPaymentOrderID(ctx, orderID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no booking for payment order")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load booking by payment order")
	}
	if booking.Status == enums.BookingStatusConfirmed {
		return booking, nil
	}
	return s.transition(ctx, booking.ID, enums.BookingStatusConfirmed, nil)
}

func (s *service) ExpireStale(ctx context.Context, now time.Time) (int64, error) {
	expired, err := s.repo.ExpirePendingBefore(ctx, now)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "expire stale bookings")
	}
	return expired, nil
}

func (s *service) transition(ctx context.Context, id uuid.UUID, target enums.BookingStatus, driverID *uuid.UUID) (*models.Booking, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "booking id required")
	}

	var booking *models.Booking
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		loaded, err := repo.FindByID(ctx, id)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "booking not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load booking")
		}
		if loaded.Status == target {
			booking = loaded
			return nil
		}
		if err := validateTransition(loaded.Status, target); err != nil {
			return err
		}
		if target == enums.BookingStatusCompleted && driverID != nil {
			if loaded.DriverID == nil || *loaded.DriverID != *driverID {
				return pkgerrors.New(pkgerrors.CodeForbidden, "booking is not assigned to this driver")
			}
		}

		now := s.now()
		updates := map[string]any{"status": target}
		switch target {
		case enums.BookingStatusConfirmed:
			updates["confirmed_at"] = now
			updates["hold_expires_at"] = nil
		case enums.BookingStatusCompleted:
			updates["completed_at"] = now
		case enums.BookingStatusCancelled:
			updates["cancelled_at"] = now
		}
		if err := repo.Update(ctx, id, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update booking status")
		}

		loaded.Status = target
		switch target {
		case enums.BookingStatusConfirmed:
			loaded.ConfirmedAt = &now
			loaded.HoldExpiresAt = nil
		case enums.BookingStatusCompleted:
			loaded.CompletedAt = &now
		case enums.BookingStatusCancelled:
			loaded.CancelledAt = &now
		}
		booking = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

func validateTransition(from, to enums.BookingStatus) error {
	allowed := map[enums.BookingStatus][]enums.BookingStatus{
		enums.BookingStatusPending:   {enums.BookingStatusConfirmed, enums.BookingStatusCancelled, enums.BookingStatusExpired},
		enums.BookingStatusConfirmed: {enums.BookingStatusCompleted, enums.BookingStatusCancelled},
	}
	for _, candidate := range allowed[from] {
		if candidate == to {
			return nil
		}
	}
	return pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("cannot move booking from %s to %s", from, to))
}

func (s *service) loadBooking(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "booking not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load booking")
	}
	return booking, nil
}

// price recomputes the quote server-side; client-supplied totals are never
// trusted. Non-transfer categories price off the catalog item.
func (s *service) price(ctx context.Context, req QuoteRequest) (pricing.QuoteResult, *models.ServiceItem, error) {
	if !req.Category.IsValid() {
		return pricing.QuoteResult{}, nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown service category")
	}

	var item *models.ServiceItem
	if req.Category != enums.ServiceCategoryAirportTransfer {
		if req.ItemID == nil || *req.ItemID == uuid.Nil {
			return pricing.QuoteResult{}, nil, pkgerrors.New(pkgerrors.CodeValidation, "item id required for this category")
		}
		loaded, err := s.items.FindByID(ctx, *req.ItemID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pricing.QuoteResult{}, nil, pkgerrors.New(pkgerrors.CodeNotFound, "catalog item not found")
			}
			return pricing.QuoteResult{}, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load catalog item")
		}
		if !loaded.IsActive {
			return pricing.QuoteResult{}, nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog item is not bookable")
		}
		if loaded.Category != req.Category {
			return pricing.QuoteResult{}, nil, pkgerrors.New(pkgerrors.CodeValidation, "item does not belong to this category")
		}
		item = loaded
	}

	quoteReq, err := buildQuoteRequest(req, item)
	if err != nil {
		return pricing.QuoteResult{}, nil, err
	}
	result, err := pricing.Quote(quoteReq)
	if err != nil {
		return pricing.QuoteResult{}, nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "compute quote")
	}
	return result, item, nil
}

func buildQuoteRequest(req QuoteRequest, item *models.ServiceItem) (pricing.QuoteRequest, error) {
	out := pricing.QuoteRequest{Category: req.Category}

	var itemRate decimal.Decimal
	if item != nil {
		itemRate = decimal.New(int64(item.PriceCents), -2)
	}

	switch req.Category {
	case enums.ServiceCategoryAirportTransfer:
		tier := enums.VehicleTierSedan
		if strings.TrimSpace(req.VehicleTier) != "" {
			parsed, err := enums.ParseVehicleTier(req.VehicleTier)
			if err != nil {
				return pricing.QuoteRequest{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown vehicle tier")
			}
			tier = parsed
		}
		out.Transfer = &pricing.TransferOptions{
			VehicleTier:     tier,
			RoundTrip:       req.RoundTrip,
			PickupAt:        req.StartAt,
			PickupAddress:   req.PickupAddress,
			DropoffAddress:  req.DropoffAddress,
			PickupIsAirport: routing.MatchesAirport(req.PickupAddress),
			FlightNumber:    req.FlightNumber,
			CustomRate:      req.CustomRate,
		}
	case enums.ServiceCategoryHotel:
		out.Hotel = &pricing.HotelOptions{
			NightlyRate: itemRate,
			CheckIn:     timeOrZero(req.StartAt),
			CheckOut:    timeOrZero(req.EndAt),
			Rooms:       req.Rooms,
			RoomType:    enums.RoomType(req.RoomType),
		}
	case enums.ServiceCategoryCarRental:
		out.CarRental = &pricing.CarRentalOptions{
			DailyRate:        itemRate,
			PickupAt:         timeOrZero(req.StartAt),
			ReturnAt:         timeOrZero(req.EndAt),
			Insurance:        enums.InsuranceTier(req.Insurance),
			GPS:              req.GPS,
			ChildSeat:        req.ChildSeat,
			AdditionalDriver: req.AdditionalDriver,
		}
	case enums.ServiceCategoryTour:
		out.Tour = &pricing.TourOptions{
			AdultPrice:  itemRate,
			Adults:      req.Adults,
			Children:    req.Children,
			Infants:     req.Infants,
			HotelPickup: req.HotelPickup,
		}
	case enums.ServiceCategoryFlight:
		out.Flight = &pricing.FlightOptions{
			BasePrice:   itemRate,
			Adults:      req.Adults,
			Children:    req.Children,
			Infants:     req.Infants,
			RoundTrip:   req.RoundTrip,
			CabinClass:  enums.CabinClass(req.CabinClass),
			CheckedBags: req.CheckedBags,
			CarryOnBags: req.CarryOnBags,
		}
	}
	return out, nil
}

func classify(req QuoteRequest, item *models.ServiceItem) *routing.Classification {
	in := routing.Input{
		Category: req.Category,
		Pickup:   req.PickupAddress,
		Dropoff:  req.DropoffAddress,
	}
	if item != nil {
		in.ItemName = item.Name
		in.ItemLocation = item.Location
	}
	return routing.Classify(in)
}

func snapshotOptions(req QuoteRequest) types.QuoteOptions {
	return types.QuoteOptions{
		VehicleTier:      req.VehicleTier,
		RoundTrip:        req.RoundTrip,
		CustomRate:       req.CustomRate,
		RoomType:         req.RoomType,
		Rooms:            req.Rooms,
		Insurance:        req.Insurance,
		GPS:              req.GPS,
		ChildSeat:        req.ChildSeat,
		AdditionalDriver: req.AdditionalDriver,
		CabinClass:       req.CabinClass,
		CheckedBags:      req.CheckedBags,
		CarryOnBags:      req.CarryOnBags,
		HotelPickup:      req.HotelPickup,
	}
}

func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if err == gorm.ErrDuplicatedKey {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique")
}

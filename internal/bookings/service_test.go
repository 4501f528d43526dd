package bookings

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/caribeway/caribeway-backend/pkg/db/models"
	"github.com/caribeway/caribeway-backend/pkg/enums"
	pkgerrors "github.com/caribeway/caribeway-backend/pkg/errors"
	"github.com/caribeway/caribeway-backend/pkg/logger"
	"github.com/caribeway/caribeway-backend/pkg/pagination"
)

type stubBookingsRepo struct {
	byID      map[uuid.UUID]*models.Booking
	byRef     map[string]*models.Booking
	byOrder   map[string]*models.Booking
	updates   map[uuid.UUID]map[string]any
	createErr error
	expired   int64
}

func newStubBookingsRepo() *stubBookingsRepo {
	return &stubBookingsRepo{
		byID:    make(map[uuid.UUID]*models.Booking),
		byRef:   make(map[string]*models.Booking),
		byOrder: make(map[string]*models.Booking),
		updates: make(map[uuid.UUID]map[string]any),
	}
}

func (s *stubBookingsRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubBookingsRepo) Create(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	s.byID[booking.ID] = booking
	s.byRef[booking.Reference] = booking
	return booking, nil
}

func (s *stubBookingsRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	b, ok := s.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return b, nil
}

func (s *stubBookingsRepo) FindByReference(ctx context.Context, reference string) (*models.Booking, error) {
	b, ok := s.byRef[reference]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return b, nil
}

func (s *stubBookingsRepo) FindByPaymentOrderID(ctx context.Context, orderID string) (*models.Booking, error) {
	b, ok := s.byOrder[orderID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return b, nil
}

func (s *stubBookingsRepo) List(ctx context.Context, filters Filters, params pagination.Params) (*List, error) {
	return &List{}, nil
}

func (s *stubBookingsRepo) ListAll(ctx context.Context, filters Filters) ([]models.Booking, error) {
	var rows []models.Booking
	for _, b := range s.byID {
		rows = append(rows, *b)
	}
	return rows, nil
}

func (s *stubBookingsRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	if s.updates[id] == nil {
		s.updates[id] = make(map[string]any)
	}
	for k, v := range updates {
		s.updates[id][k] = v
	}
	if b, ok := s.byID[id]; ok {
		if status, ok := updates["status"].(enums.BookingStatus); ok {
			b.Status = status
		}
	}
	return nil
}

func (s *stubBookingsRepo) ExpirePendingBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return s.expired, nil
}

type stubItemFinder struct {
	items map[uuid.UUID]*models.ServiceItem
}

func (s *stubItemFinder) FindByID(ctx context.Context, id uuid.UUID) (*models.ServiceItem, error) {
	item, ok := s.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return item, nil
}

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type stubLinkCreator struct {
	link *PaymentLink
	err  error
}

func (s *stubLinkCreator) CreateBookingLink(ctx context.Context, booking *models.Booking) (*PaymentLink, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.link, nil
}

func newTestService(t *testing.T, repo *stubBookingsRepo, items *stubItemFinder, links PaymentLinkCreator) Service {
	t.Helper()
	if items == nil {
		items = &stubItemFinder{items: map[uuid.UUID]*models.ServiceItem{}}
	}
	svc, err := NewService(ServiceParams{
		Repo:    repo,
		Items:   items,
		Tx:      stubTxRunner{},
		Links:   links,
		Logger:  logger.New(logger.Options{ServiceName: "test"}),
		HoldTTL: 48 * time.Hour,
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func transferCreateInput() CreateInput {
	pickup := time.Date(2026, time.September, 12, 14, 0, 0, 0, time.UTC)
	return CreateInput{
		QuoteRequest: QuoteRequest{
			Category:       enums.ServiceCategoryAirportTransfer,
			PickupAddress:  "PUJ Airport Terminal B",
			DropoffAddress: "Hilton Bavaro",
			FlightNumber:   "AA1234",
			StartAt:        &pickup,
			VehicleTier:    "sedan",
			RoundTrip:      true,
		},
		CustomerName:  "Ana Diaz",
		CustomerEmail: "Ana@Example.com",
	}
}

func TestCreateTransferBookingComputesQuoteAndRoute(t *testing.T) {
	repo := newStubBookingsRepo()
	links := &stubLinkCreator{link: &PaymentLink{ID: "pl-1", URL: "https://square.link/x", OrderID: "order-1"}}
	svc := newTestService(t, repo, nil, links)

	booking, err := svc.Create(context.Background(), transferCreateInput())
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}

	// Sedan round trip: 35 * 1.9 = 66.50.
	if booking.TotalCents != 6650 {
		t.Fatalf("expected 6650 cents, got %d", booking.TotalCents)
	}
	if booking.PriceSource != enums.PriceSourceStandard {
		t.Fatalf("unexpected price source %s", booking.PriceSource)
	}
	if booking.RouteName == nil || *booking.RouteName != "PUJ Airport to Bavaro" {
		t.Fatalf("unexpected route name %v", booking.RouteName)
	}
	if booking.PaymentBranch != enums.PaymentBranchDynamicCheckout {
		t.Fatalf("expected dynamic checkout branch, got %s", booking.PaymentBranch)
	}
	if booking.PaymentLinkURL == nil || *booking.PaymentLinkURL != "https://square.link/x" {
		t.Fatalf("payment link not attached")
	}
	if booking.PaymentOrderID == nil || *booking.PaymentOrderID != "order-1" {
		t.Fatalf("payment order id not attached")
	}
	if booking.CustomerEmail != "ana@example.com" {
		t.Fatalf("email should be lower-cased, got %q", booking.CustomerEmail)
	}
	if !strings.HasPrefix(booking.Reference, "CW-") {
		t.Fatalf("unexpected reference %q", booking.Reference)
	}
	if booking.HoldExpiresAt == nil {
		t.Fatalf("pending booking should carry a hold expiry")
	}
}

func TestCreateBookingSurvivesLinkFailure(t *testing.T) {
	repo := newStubBookingsRepo()
	links := &stubLinkCreator{err: pkgerrors.New(pkgerrors.CodeDependency, "square down")}
	svc := newTestService(t, repo, nil, links)

	booking, err := svc.Create(context.Background(), transferCreateInput())
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	if booking.PaymentLinkURL != nil {
		t.Fatalf("link should be absent after failure")
	}
	if booking.Status != enums.BookingStatusPending {
		t.Fatalf("booking should remain pending")
	}
}

func TestCreateRejectsUnsubmittableRequest(t *testing.T) {
	repo := newStubBookingsRepo()
	svc := newTestService(t, repo, nil, nil)

	input := transferCreateInput()
	input.FlightNumber = "" // airport pickup without flight number

	_, err := svc.Create(context.Background(), input)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateHotelBookingPricesFromItem(t *testing.T) {
	itemID := uuid.New()
	items := &stubItemFinder{items: map[uuid.UUID]*models.ServiceItem{
		itemID: {
			ID:         itemID,
			Category:   enums.ServiceCategoryHotel,
			Name:       "Hilton Bavaro",
			Location:   "Bavaro",
			PriceCents: 10000,
			IsActive:   true,
		},
	}}
	repo := newStubBookingsRepo()
	svc := newTestService(t, repo, items, nil)

	checkIn := time.Date(2026, time.September, 10, 15, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, time.September, 13, 11, 0, 0, 0, time.UTC)
	booking, err := svc.Create(context.Background(), CreateInput{
		QuoteRequest: QuoteRequest{
			Category: enums.ServiceCategoryHotel,
			ItemID:   &itemID,
			StartAt:  &checkIn,
			EndAt:    &checkOut,
			Rooms:    3,
			RoomType: "deluxe",
		},
		CustomerName:  "Luis Perez",
		CustomerEmail: "luis@example.com",
	})
	if err != nil {
		t.Fatalf("create hotel booking: %v", err)
	}
	// 100 * 3 nights * 3 rooms * 1.3 = 1170.
	if booking.TotalCents != 117000 {
		t.Fatalf("expected 117000 cents, got %d", booking.TotalCents)
	}
	if booking.PaymentBranch != enums.PaymentBranchRecordConfirm {
		t.Fatalf("hotel bookings use the record/confirm branch, got %s", booking.PaymentBranch)
	}
}

func TestCreateRejectsInactiveOrMismatchedItem(t *testing.T) {
	itemID := uuid.New()
	items := &stubItemFinder{items: map[uuid.UUID]*models.ServiceItem{
		itemID: {ID: itemID, Category: enums.ServiceCategoryTour, PriceCents: 5000, IsActive: false},
	}}
	svc := newTestService(t, newStubBookingsRepo(), items, nil)

	_, err := svc.Create(context.Background(), CreateInput{
		QuoteRequest:  QuoteRequest{Category: enums.ServiceCategoryTour, ItemID: &itemID, Adults: 2},
		CustomerName:  "x",
		CustomerEmail: "x@example.com",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for inactive item, got %v", err)
	}
}

func TestGetByReferenceEnforcesEmailGuard(t *testing.T) {
	repo := newStubBookingsRepo()
	svc := newTestService(t, repo, nil, nil)

	booking, err := svc.Create(context.Background(), transferCreateInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.GetByReference(context.Background(), booking.Reference, "ANA@example.com"); err != nil {
		t.Fatalf("matching email should pass: %v", err)
	}
	_, err = svc.GetByReference(context.Background(), booking.Reference, "other@example.com")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("mismatched email should look like not-found, got %v", err)
	}
	if _, err := svc.GetByReference(context.Background(), booking.Reference, ""); err != nil {
		t.Fatalf("staff lookup without email should pass: %v", err)
	}
}

func TestLifecycleTransitions(t *testing.T) {
	repo := newStubBookingsRepo()
	svc := newTestService(t, repo, nil, nil)

	booking, err := svc.Create(context.Background(), transferCreateInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	confirmed, err := svc.Confirm(context.Background(), booking.ID)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if confirmed.Status != enums.BookingStatusConfirmed {
		t.Fatalf("expected confirmed, got %s", confirmed.Status)
	}
	if confirmed.HoldExpiresAt != nil {
		t.Fatalf("hold should clear on confirm")
	}

	driverID := uuid.New()
	if _, err := svc.AssignDriver(context.Background(), booking.ID, driverID); err != nil {
		t.Fatalf("assign driver: %v", err)
	}
	booking.DriverID = &driverID

	otherDriver := uuid.New()
	_, err = svc.Complete(context.Background(), booking.ID, &otherDriver)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("other driver should be rejected, got %v", err)
	}

	completed, err := svc.Complete(context.Background(), booking.ID, &driverID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if completed.Status != enums.BookingStatusCompleted {
		t.Fatalf("expected completed, got %s", completed.Status)
	}

	_, err = svc.Cancel(context.Background(), booking.ID)
	typed = pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("completed bookings cannot cancel, got %v", err)
	}
}

func TestConfirmPaidByOrderIDIsIdempotent(t *testing.T) {
	repo := newStubBookingsRepo()
	links := &stubLinkCreator{link: &PaymentLink{ID: "pl-1", URL: "u", OrderID: "order-9"}}
	svc := newTestService(t, repo, nil, links)

	booking, err := svc.Create(context.Background(), transferCreateInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	repo.byOrder["order-9"] = repo.byID[booking.ID]

	first, err := svc.ConfirmPaidByOrderID(context.Background(), "order-9")
	if err != nil {
		t.Fatalf("confirm paid: %v", err)
	}
	if first.Status != enums.BookingStatusConfirmed {
		t.Fatalf("expected confirmed, got %s", first.Status)
	}
	second, err := svc.ConfirmPaidByOrderID(context.Background(), "order-9")
	if err != nil {
		t.Fatalf("second confirm should be a no-op: %v", err)
	}
	if second.Status != enums.BookingStatusConfirmed {
		t.Fatalf("unexpected status %s", second.Status)
	}
}

func TestExportCSVWritesHeaderAndRows(t *testing.T) {
	repo := newStubBookingsRepo()
	svc := newTestService(t, repo, nil, nil)

	if _, err := svc.Create(context.Background(), transferCreateInput()); err != nil {
		t.Fatalf("create: %v", err)
	}

	var buf bytes.Buffer
	if err := svc.ExportCSV(context.Background(), Filters{}, &buf); err != nil {
		t.Fatalf("export: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header plus one row, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "reference,status,category") {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if !strings.Contains(lines[1], "66.50") {
		t.Fatalf("row should carry the formatted total, got %q", lines[1])
	}
}

func TestNewReferenceShape(t *testing.T) {
	ref, err := NewReference(time.Date(2026, time.August, 29, 10, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("new reference: %v", err)
	}
	if !strings.HasPrefix(ref, "CW-20260829-") {
		t.Fatalf("unexpected reference %q", ref)
	}
	if len(ref) != len("CW-20260829-")+referenceSuffixLen {
		t.Fatalf("unexpected reference length %q", ref)
	}
	for _, c := range ref[len("CW-20260829-"):] {
		if !strings.ContainsRune(referenceAlphabet, c) {
			t.Fatalf("suffix char %q outside alphabet", c)
		}
	}
}

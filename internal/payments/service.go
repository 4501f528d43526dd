// Package payments bridges bookings to Square hosted checkout. Dynamic-branch
// bookings get a payment link at creation; the Square webhook closes the loop
// by confirming the booking once the payment completes.
package payments

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/square/square-go-sdk"

	"github.com/caribeway/caribeway-backend/internal/bookings"
	"github.com/caribeway/caribeway-backend/pkg/db/models"
	"github.com/caribeway/caribeway-backend/pkg/enums"
	pkgerrors "github.com/caribeway/caribeway-backend/pkg/errors"
	"github.com/caribeway/caribeway-backend/pkg/logger"
	"github.com/caribeway/caribeway-backend/pkg/square"
)

type linkClient interface {
	CreatePaymentLink(ctx context.Context, params square.PaymentLinkCreateParams) (*sq.PaymentLink, error)
	GetPayment(ctx context.Context, paymentID string) (*sq.Payment, error)
}

type bookingConfirmer interface {
	ConfirmPaidByOrderID(ctx context.Context, orderID string) (*models.Booking, error)
}

// Service creates hosted checkout links and reconciles payment events.
type Service struct {
	client      linkClient
	logg        *logger.Logger
	redirectURL string
}

// NewService builds the payments service around the Square client.
func NewService(client linkClient, logg *logger.Logger, redirectURL string) (*Service, error) {
	if client == nil {
		return nil, fmt.Errorf("square client required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Service{
		client:      client,
		logg:        logg,
		redirectURL: strings.TrimSpace(redirectURL),
	}, nil
}

// CreateBookingLink provisions a Square payment link for the booking total.
func (s *Service) CreateBookingLink(ctx context.Context, booking *models.Booking) (*bookings.PaymentLink, error) {
	if booking == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "booking required")
	}
	if booking.TotalCents <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "booking total must be positive")
	}

	name := fmt.Sprintf("%s %s", categoryLabel(booking), booking.Reference)
	description := ""
	if booking.RouteName != nil {
		description = *booking.RouteName
	}

	redirect := s.redirectURL
	if redirect != "" {
		redirect = fmt.Sprintf("%s/%s", strings.TrimRight(redirect, "/"), booking.Reference)
	}

	link, err := s.client.CreatePaymentLink(ctx, square.PaymentLinkCreateParams{
		Name:        name,
		Description: description,
		AmountCents: int64(booking.TotalCents),
		Currency:    booking.Currency,
		ReferenceID: booking.Reference,
		RedirectURL: redirect,
		BuyerEmail:  booking.CustomerEmail,
	})
	if err != nil {
		return nil, err
	}

	return &bookings.PaymentLink{
		ID:      derefString(link.GetID()),
		URL:     derefString(link.GetURL()),
		OrderID: derefString(link.GetOrderID()),
	}, nil
}

// WebhookEvent is the subset of a Square event the service acts on.
type WebhookEvent struct {
	EventID string      `json:"event_id"`
	Type    string      `json:"type"`
	Data    WebhookData `json:"data"`
}

// WebhookData wraps the event object.
type WebhookData struct {
	Type   string        `json:"type"`
	ID     string        `json:"id"`
	Object WebhookObject `json:"object"`
}

// WebhookObject carries the payment payload for payment events.
type WebhookObject struct {
	Payment *WebhookPayment `json:"payment"`
}

// WebhookPayment is the payment subset needed for reconciliation.
type WebhookPayment struct {
	ID      string `json:"id"`
	Status  string `json:"status"`
	OrderID string `json:"order_id"`
}

// WebhookHandler processes payment webhooks against the booking store.
type WebhookHandler struct {
	bookings bookingConfirmer
	logg     *logger.Logger
}

// NewWebhookHandler builds the webhook processor.
func NewWebhookHandler(confirmer bookingConfirmer, logg *logger.Logger) (*WebhookHandler, error) {
	if confirmer == nil {
		return nil, fmt.Errorf("booking confirmer required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &WebhookHandler{bookings: confirmer, logg: logg}, nil
}

// HandleEvent confirms the matching booking when a payment completes. Events
// for other types or non-final statuses are acknowledged without action.
func (h *WebhookHandler) HandleEvent(ctx context.Context, event *WebhookEvent) error {
	if event == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "square event required")
	}

	switch strings.ToLower(event.Type) {
	case "payment.created", "payment.updated":
	default:
		return nil
	}

	payment := event.Data.Object.Payment
	if payment == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "payment payload missing")
	}
	if !strings.EqualFold(payment.Status, "COMPLETED") {
		return nil
	}
	if strings.TrimSpace(payment.OrderID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "payment order id missing")
	}

	booking, err := h.bookings.ConfirmPaidByOrderID(ctx, payment.OrderID)
	if err != nil {
		typed := pkgerrors.As(err)
		if typed != nil && typed.Code() == pkgerrors.CodeNotFound {
			// Payments created outside the funnel (e.g. POS) reuse the same
			// webhook; nothing to reconcile.
			h.logg.Info(ctx, fmt.Sprintf("no booking for square order %s", payment.OrderID))
			return nil
		}
		return err
	}

	ctx = h.logg.WithBookingRef(ctx, booking.Reference)
	h.logg.Info(ctx, "booking confirmed from square payment")
	return nil
}

func categoryLabel(booking *models.Booking) string {
	switch booking.Category {
	case enums.ServiceCategoryAirportTransfer:
		return "Airport transfer"
	case enums.ServiceCategoryHotel:
		return "Hotel stay"
	case enums.ServiceCategoryCarRental:
		return "Car rental"
	case enums.ServiceCategoryTour:
		return "Tour"
	case enums.ServiceCategoryFlight:
		return "Flight"
	}
	return "Booking"
}

func derefString(ptr *string) string {
	if ptr == nil {
		return ""
	}
	return *ptr
}

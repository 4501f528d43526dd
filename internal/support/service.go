package support

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/caribeway/caribeway-backend/pkg/db/models"
	"github.com/caribeway/caribeway-backend/pkg/enums"
	pkgerrors "github.com/caribeway/caribeway-backend/pkg/errors"
	"github.com/caribeway/caribeway-backend/pkg/logger"
	"github.com/caribeway/caribeway-backend/pkg/pagination"
)

// CreateTicketInput is the public payload for opening a ticket. The booking
// reference is optional and links the ticket to an existing booking.
type CreateTicketInput struct {
	CustomerEmail    string `json:"customer_email" validate:"required,email"`
	Subject          string `json:"subject" validate:"required,max=200"`
	Message          string `json:"message" validate:"required,max=5000"`
	BookingReference string `json:"booking_reference,omitempty"`
}

// UpdateTicketInput mutates status and assignment from the support portal.
type UpdateTicketInput struct {
	Status     *enums.TicketStatus `json:"status,omitempty"`
	AssigneeID *uuid.UUID          `json:"assignee_id,omitempty"`
}

// Service defines the ticket behavior used by the support controllers.
type Service interface {
	CreateTicket(ctx context.Context, input CreateTicketInput) (*models.SupportTicket, error)
	GetTicket(ctx context.Context, id uuid.UUID) (*models.SupportTicket, error)
	ListTickets(ctx context.Context, filters TicketFilters, params pagination.Params) (*TicketList, error)
	UpdateTicket(ctx context.Context, id uuid.UUID, input UpdateTicketInput) (*models.SupportTicket, error)
}

type bookingFinder interface {
	FindByReference(ctx context.Context, reference string) (*models.Booking, error)
}

type service struct {
	repo     Repository
	bookings bookingFinder
	logg     *logger.Logger
}

// ServiceParams bundles the dependencies required to build a support service.
type ServiceParams struct {
	Repo     Repository
	Bookings bookingFinder
	Logger   *logger.Logger
}

// NewService constructs a support service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("support repository is required")
	}
	if params.Bookings == nil {
		return nil, fmt.Errorf("bookings finder is required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &service{
		repo:     params.Repo,
		bookings: params.Bookings,
		logg:     params.Logger,
	}, nil
}

// Tickets can always move forward through triage; closed is terminal except
// for an explicit reopen back to open.
var ticketTransitions = map[enums.TicketStatus][]enums.TicketStatus{
	enums.TicketStatusOpen:       {enums.TicketStatusInProgress, enums.TicketStatusResolved, enums.TicketStatusClosed},
	enums.TicketStatusInProgress: {enums.TicketStatusOpen, enums.TicketStatusResolved, enums.TicketStatusClosed},
	enums.TicketStatusResolved:   {enums.TicketStatusOpen, enums.TicketStatusClosed},
	enums.TicketStatusClosed:     {enums.TicketStatusOpen},
}

func (s *service) CreateTicket(ctx context.Context, input CreateTicketInput) (*models.SupportTicket, error) {
	email := strings.ToLower(strings.TrimSpace(input.CustomerEmail))
	subject := strings.TrimSpace(input.Subject)
	message := strings.TrimSpace(input.Message)
	if email == "" || subject == "" || message == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email, subject, and message are required")
	}

	ticket := &models.SupportTicket{
		CustomerEmail: email,
		Subject:       subject,
		Message:       message,
		Status:        enums.TicketStatusOpen,
	}

	if reference := strings.TrimSpace(input.BookingReference); reference != "" {
		booking, err := s.bookings.FindByReference(ctx, strings.ToUpper(reference))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "booking not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup booking")
		}
		if !strings.EqualFold(booking.CustomerEmail, email) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "booking not found")
		}
		ticket.BookingID = &booking.ID
	}

	created, err := s.repo.Create(ctx, ticket)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create ticket")
	}

	logCtx := s.logg.WithField(ctx, "ticket_id", created.ID)
	s.logg.Info(logCtx, "support ticket opened")
	return created, nil
}

func (s *service) GetTicket(ctx context.Context, id uuid.UUID) (*models.SupportTicket, error) {
	ticket, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "ticket not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup ticket")
	}
	return ticket, nil
}

func (s *service) ListTickets(ctx context.Context, filters TicketFilters, params pagination.Params) (*TicketList, error) {
	filters.CustomerEmail = strings.ToLower(strings.TrimSpace(filters.CustomerEmail))
	list, err := s.repo.List(ctx, filters, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list tickets")
	}
	return list, nil
}

func (s *service) UpdateTicket(ctx context.Context, id uuid.UUID, input UpdateTicketInput) (*models.SupportTicket, error) {
	ticket, err := s.GetTicket(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}

	if input.Status != nil {
		next := *input.Status
		if !next.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid ticket status %q", next))
		}
		if next != ticket.Status {
			if !transitionAllowed(ticket.Status, next) {
				return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
					fmt.Sprintf("cannot move ticket from %s to %s", ticket.Status, next))
			}
			updates["status"] = next
			switch next {
			case enums.TicketStatusResolved, enums.TicketStatusClosed:
				now := time.Now().UTC()
				updates["resolved_at"] = now
				ticket.ResolvedAt = &now
			case enums.TicketStatusOpen:
				updates["resolved_at"] = nil
				ticket.ResolvedAt = nil
			}
			ticket.Status = next
		}
	}

	if input.AssigneeID != nil {
		if *input.AssigneeID == uuid.Nil {
			updates["assignee_id"] = nil
			ticket.AssigneeID = nil
		} else {
			updates["assignee_id"] = *input.AssigneeID
			ticket.AssigneeID = input.AssigneeID
		}
	}

	if len(updates) == 0 {
		return ticket, nil
	}

	if err := s.repo.Update(ctx, id, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "ticket not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update ticket")
	}
	return ticket, nil
}

func transitionAllowed(from, to enums.TicketStatus) bool {
	for _, candidate := range ticketTransitions[from] {
		if candidate == to {
			return true
		}
	}
	return false
}

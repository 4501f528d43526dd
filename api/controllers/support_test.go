package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/caribeway/caribeway-backend/internal/support"
	"github.com/caribeway/caribeway-backend/pkg/db/models"
	"github.com/caribeway/caribeway-backend/pkg/enums"
	"github.com/caribeway/caribeway-backend/pkg/pagination"
)

type stubSupportService struct {
	ticket     *models.SupportTicket
	list       *support.TicketList
	err        error
	gotInput   *support.CreateTicketInput
	gotUpdate  *support.UpdateTicketInput
	gotFilters *support.TicketFilters
}

func (s *stubSupportService) CreateTicket(ctx context.Context, input support.CreateTicketInput) (*models.SupportTicket, error) {
	s.gotInput = &input
	return s.ticket, s.err
}

func (s *stubSupportService) GetTicket(ctx context.Context, id uuid.UUID) (*models.SupportTicket, error) {
	return s.ticket, s.err
}

func (s *stubSupportService) ListTickets(ctx context.Context, filters support.TicketFilters, params pagination.Params) (*support.TicketList, error) {
	s.gotFilters = &filters
	return s.list, s.err
}

func (s *stubSupportService) UpdateTicket(ctx context.Context, id uuid.UUID, input support.UpdateTicketInput) (*models.SupportTicket, error) {
	s.gotUpdate = &input
	return s.ticket, s.err
}

func TestSupportTicketCreateReturnsCreated(t *testing.T) {
	ticket := &models.SupportTicket{
		ID:     uuid.New(),
		Status: enums.TicketStatusOpen,
	}
	svc := &stubSupportService{ticket: ticket}
	handler := SupportTicketCreate(svc, nil)

	payload := map[string]string{
		"customer_email": "guest@example.com",
		"subject":        "Lost luggage",
		"message":        "Left a bag in the minivan",
	}
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/support/tickets", bytes.NewReader(body))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body %s", resp.Code, resp.Body.String())
	}
	if svc.gotInput == nil || svc.gotInput.Subject != "Lost luggage" {
		t.Fatalf("unexpected input %+v", svc.gotInput)
	}
}

func TestSupportTicketListParsesStatusFilter(t *testing.T) {
	svc := &stubSupportService{list: &support.TicketList{}}
	handler := SupportTicketList(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/support/tickets?status=in_progress", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body %s", resp.Code, resp.Body.String())
	}
	if svc.gotFilters == nil || svc.gotFilters.Status == nil || *svc.gotFilters.Status != enums.TicketStatusInProgress {
		t.Fatalf("unexpected filters %+v", svc.gotFilters)
	}
}

func TestSupportTicketListRejectsUnknownStatus(t *testing.T) {
	handler := SupportTicketList(&stubSupportService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/support/tickets?status=escalated_to_mars", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestSupportTicketUpdateForwardsInput(t *testing.T) {
	id := uuid.New()
	svc := &stubSupportService{ticket: &models.SupportTicket{ID: id, Status: enums.TicketStatusResolved}}
	handler := SupportTicketUpdate(svc, nil)

	body, _ := json.Marshal(map[string]string{"status": "resolved"})
	req := httptest.NewRequest(http.MethodPatch, "/api/support/tickets/"+id.String(), bytes.NewReader(body))
	req = withURLParam(req, "ticketId", id.String())
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body %s", resp.Code, resp.Body.String())
	}
	if svc.gotUpdate == nil || svc.gotUpdate.Status == nil || *svc.gotUpdate.Status != enums.TicketStatusResolved {
		t.Fatalf("unexpected update %+v", svc.gotUpdate)
	}
}

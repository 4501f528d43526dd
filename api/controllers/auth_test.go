package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/caribeway/caribeway-backend/api/middleware"
	"github.com/caribeway/caribeway-backend/internal/staff"
	"github.com/caribeway/caribeway-backend/pkg/db/models"
	"github.com/caribeway/caribeway-backend/pkg/enums"
	pkgerrors "github.com/caribeway/caribeway-backend/pkg/errors"
)

type stubStaffService struct {
	login       *staff.LoginResponse
	refresh     *staff.RefreshResponse
	user        *staff.UserSummary
	drivers     []staff.Driver
	profile     *models.DriverProfile
	err         error
	revokedID   string
	gotCreate   *staff.CreateStaffInput
	gotProfile  *staff.DriverProfileInput
	gotUserID   uuid.UUID
	gotActive   *bool
}

func (s *stubStaffService) Login(ctx context.Context, req staff.LoginRequest) (*staff.LoginResponse, error) {
	return s.login, s.err
}

func (s *stubStaffService) Refresh(ctx context.Context, req staff.RefreshRequest) (*staff.RefreshResponse, error) {
	return s.refresh, s.err
}

func (s *stubStaffService) Logout(ctx context.Context, accessID string) error {
	if accessID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "access id is required")
	}
	s.revokedID = accessID
	return s.err
}

func (s *stubStaffService) CreateStaff(ctx context.Context, input staff.CreateStaffInput) (*staff.UserSummary, error) {
	s.gotCreate = &input
	return s.user, s.err
}

func (s *stubStaffService) GetUser(ctx context.Context, id uuid.UUID) (*staff.UserSummary, error) {
	return s.user, s.err
}

func (s *stubStaffService) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	s.gotUserID = id
	s.gotActive = &active
	return s.err
}

func (s *stubStaffService) ListDrivers(ctx context.Context) ([]staff.Driver, error) {
	return s.drivers, s.err
}

func (s *stubStaffService) UpsertDriverProfile(ctx context.Context, userID uuid.UUID, input staff.DriverProfileInput) (*models.DriverProfile, error) {
	s.gotUserID = userID
	s.gotProfile = &input
	return s.profile, s.err
}

func TestAuthLoginReturnsTokenPair(t *testing.T) {
	svc := &stubStaffService{login: &staff.LoginResponse{
		AccessToken:  "access",
		RefreshToken: "refresh",
		User:         staff.UserSummary{ID: uuid.New(), Role: enums.StaffRoleAdmin},
	}}
	handler := AuthLogin(svc, nil)

	body, _ := json.Marshal(map[string]string{"email": "ops@example.com", "password": "long-enough-pass"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Data staff.LoginResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.AccessToken != "access" || envelope.Data.RefreshToken != "refresh" {
		t.Fatalf("unexpected tokens %+v", envelope.Data)
	}
}

func TestAuthLoginRejectsMissingFields(t *testing.T) {
	handler := AuthLogin(&stubStaffService{}, nil)

	body, _ := json.Marshal(map[string]string{"email": "ops@example.com"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestAuthLoginPropagatesUnauthorized(t *testing.T) {
	handler := AuthLogin(&stubStaffService{err: pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")}, nil)

	body, _ := json.Marshal(map[string]string{"email": "ops@example.com", "password": "wrong"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthLogoutRevokesSession(t *testing.T) {
	svc := &stubStaffService{}
	handler := AuthLogout(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req = req.WithContext(middleware.WithAccessID(req.Context(), "jti-123"))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body %s", resp.Code, resp.Body.String())
	}
	if svc.revokedID != "jti-123" {
		t.Fatalf("expected revoked jti-123 got %q", svc.revokedID)
	}
}

func TestAuthLogoutWithoutAccessID(t *testing.T) {
	handler := AuthLogout(&stubStaffService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

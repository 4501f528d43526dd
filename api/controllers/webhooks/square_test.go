package webhooks

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/caribeway/caribeway-backend/internal/payments"
	"github.com/caribeway/caribeway-backend/pkg/logger"
)

const (
	testSigningSecret   = "whsec-test"
	testNotificationURL = "https://api.caribeway.com/api/v1/webhooks/square"
)

type fakeWebhookService struct {
	events []*payments.WebhookEvent
	err    error
}

func (f *fakeWebhookService) HandleEvent(ctx context.Context, event *payments.WebhookEvent) error {
	f.events = append(f.events, event)
	return f.err
}

type fakeGuard struct {
	seen    map[string]bool
	deleted []string
}

func newFakeGuard() *fakeGuard {
	return &fakeGuard{seen: map[string]bool{}}
}

func (f *fakeGuard) CheckAndMark(ctx context.Context, eventID string) (bool, error) {
	if f.seen[eventID] {
		return true, nil
	}
	f.seen[eventID] = true
	return false, nil
}

func (f *fakeGuard) Delete(ctx context.Context, eventID string) error {
	f.deleted = append(f.deleted, eventID)
	delete(f.seen, eventID)
	return nil
}

type fakeSquareClient struct{}

func (fakeSquareClient) SigningSecret() string   { return testSigningSecret }
func (fakeSquareClient) NotificationURL() string { return testNotificationURL }

func signPayload(payload []byte) string {
	mac := hmac.New(sha256.New, []byte(testSigningSecret))
	mac.Write([]byte(testNotificationURL))
	mac.Write(payload)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func postWebhook(t *testing.T, handler http.HandlerFunc, payload []byte, signature string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/webhooks/square", bytes.NewReader(payload))
	if signature != "" {
		req.Header.Set("x-square-hmacsha256-signature", signature)
	}
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	return resp
}

func TestSquareWebhookProcessesSignedEvent(t *testing.T) {
	svc := &fakeWebhookService{}
	guard := newFakeGuard()
	handler := SquareWebhook(svc, fakeSquareClient{}, guard, logger.New(logger.Options{ServiceName: "test"}))

	payload := []byte(`{"event_id":"evt-1","type":"payment.updated","data":{"id":"pay-1","object":{"payment":{"id":"pay-1","status":"COMPLETED","order_id":"ord-1"}}}}`)
	resp := postWebhook(t, handler, payload, signPayload(payload))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if len(svc.events) != 1 {
		t.Fatalf("expected one handled event, got %d", len(svc.events))
	}
	if svc.events[0].Data.Object.Payment.OrderID != "ord-1" {
		t.Fatalf("unexpected payment payload: %+v", svc.events[0].Data.Object.Payment)
	}
}

func TestSquareWebhookRejectsBadSignature(t *testing.T) {
	svc := &fakeWebhookService{}
	handler := SquareWebhook(svc, fakeSquareClient{}, newFakeGuard(), logger.New(logger.Options{ServiceName: "test"}))

	payload := []byte(`{"event_id":"evt-1","type":"payment.updated"}`)
	resp := postWebhook(t, handler, payload, "deadbeef")
	if resp.Code == http.StatusOK {
		t.Fatalf("expected error for bad signature, got 200")
	}
	if len(svc.events) != 0 {
		t.Fatalf("expected no handled events, got %d", len(svc.events))
	}

	resp = postWebhook(t, handler, payload, "")
	if resp.Code == http.StatusOK {
		t.Fatalf("expected error for missing signature, got 200")
	}
}

func TestSquareWebhookSkipsDuplicateEvents(t *testing.T) {
	svc := &fakeWebhookService{}
	guard := newFakeGuard()
	handler := SquareWebhook(svc, fakeSquareClient{}, guard, logger.New(logger.Options{ServiceName: "test"}))

	payload := []byte(`{"event_id":"evt-dup","type":"payment.updated","data":{"id":"pay-1","object":{"payment":{"id":"pay-1","status":"COMPLETED","order_id":"ord-1"}}}}`)
	signature := signPayload(payload)

	if resp := postWebhook(t, handler, payload, signature); resp.Code != http.StatusOK {
		t.Fatalf("first delivery: expected 200 got %d", resp.Code)
	}
	if resp := postWebhook(t, handler, payload, signature); resp.Code != http.StatusOK {
		t.Fatalf("second delivery: expected 200 got %d", resp.Code)
	}
	if len(svc.events) != 1 {
		t.Fatalf("expected duplicate suppressed, handled %d events", len(svc.events))
	}
}

func TestSquareWebhookReleasesGuardOnFailure(t *testing.T) {
	svc := &fakeWebhookService{err: context.DeadlineExceeded}
	guard := newFakeGuard()
	handler := SquareWebhook(svc, fakeSquareClient{}, guard, logger.New(logger.Options{ServiceName: "test"}))

	payload := []byte(`{"event_id":"evt-fail","type":"payment.updated","data":{"id":"pay-1","object":{"payment":{"id":"pay-1","status":"COMPLETED","order_id":"ord-1"}}}}`)
	resp := postWebhook(t, handler, payload, signPayload(payload))
	if resp.Code == http.StatusOK {
		t.Fatalf("expected error response, got 200")
	}
	if len(guard.deleted) != 1 || guard.deleted[0] != "evt-fail" {
		t.Fatalf("expected guard released for evt-fail, got %v", guard.deleted)
	}
}

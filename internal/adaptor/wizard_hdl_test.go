package adaptor

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/internal/usecase"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// stubWizardService overrides only what a test exercises; the embedded
// interface panics on anything else.
type stubWizardService struct {
	usecase.WizardService
	stored   []byte
	storeErr error
}

func (s *stubWizardService) StoreDraft(ctx context.Context, sessionID string, payload []byte) error {
	s.stored = payload
	return s.storeErr
}

func storeDraftRouter(stub *stubWizardService) *chi.Mux {
	h := NewWizardHandler(stub, zap.NewNop())
	r := chi.NewRouter()
	r.Put("/api/wizard/sessions/{id}/stored-draft", h.StoreDraft)
	return r
}

func TestStoreDraftUnwrapsEnvelope(t *testing.T) {
	stub := &stubWizardService{}
	router := storeDraftRouter(stub)

	body := bytes.NewBufferString(`{"draft":{"version":"2","serviceType":"hourly"}}`)
	req := httptest.NewRequest(http.MethodPut, "/api/wizard/sessions/abc/stored-draft", body)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var payload map[string]any
	if err := json.Unmarshal(stub.stored, &payload); err != nil {
		t.Fatalf("stored payload is not the inner draft: %v", err)
	}
	if payload["serviceType"] != "hourly" {
		t.Fatalf("unexpected stored draft: %s", stub.stored)
	}
}

func TestStoreDraftRequiresDraftField(t *testing.T) {
	stub := &stubWizardService{}
	router := storeDraftRouter(stub)

	req := httptest.NewRequest(http.MethodPut, "/api/wizard/sessions/abc/stored-draft", bytes.NewBufferString(`{}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if stub.stored != nil {
		t.Fatal("nothing must reach the store on a validation failure")
	}
}

func TestStoreDraftRejectsMalformedBody(t *testing.T) {
	stub := &stubWizardService{}
	router := storeDraftRouter(stub)

	req := httptest.NewRequest(http.MethodPut, "/api/wizard/sessions/abc/stored-draft", bytes.NewBufferString(`{broken`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

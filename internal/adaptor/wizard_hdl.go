package adaptor

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/internal/data/entity"
	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/internal/dto/request"
	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/internal/dto/response"
	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/internal/usecase"
	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/internal/wizard"
	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type WizardHandler struct {
	service usecase.WizardService
	log     *zap.Logger
}

func NewWizardHandler(service usecase.WizardService, log *zap.Logger) *WizardHandler {
	return &WizardHandler{
		service: service,
		log:     log.With(zap.String("handler", "wizard")),
	}
}

// CreateSession handles POST /api/wizard/sessions
func (h *WizardHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req request.CreateSessionRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.ResponseBadRequest(w, "Invalid request body", nil)
			return
		}
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	state, err := h.service.CreateSession(r.Context(), req.Draft, req.Step)
	if err != nil {
		h.handleServiceError(w, err, "create session")
		return
	}

	utils.ResponseCreated(w, "Wizard session created", state)
}

// GetState handles GET /api/wizard/sessions/{id}
func (h *WizardHandler) GetState(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	if sessionID == "" {
		utils.ResponseBadRequest(w, "Session ID is required", nil)
		return
	}

	state, err := h.service.GetState(r.Context(), sessionID)
	if err != nil {
		h.handleServiceError(w, err, "get state")
		return
	}

	utils.ResponseSuccess(w, "Wizard state retrieved", state)
}

// UpdateDraft handles PATCH /api/wizard/sessions/{id}/draft
func (h *WizardHandler) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	if sessionID == "" {
		utils.ResponseBadRequest(w, "Session ID is required", nil)
		return
	}

	var patch entity.DraftPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	state, err := h.service.ApplyUpdate(r.Context(), sessionID, patch)
	if err != nil {
		h.handleServiceError(w, err, "update draft")
		return
	}

	utils.ResponseSuccess(w, "Draft updated", state)
}

// StoreDraft handles PUT /api/wizard/sessions/{id}/stored-draft
func (h *WizardHandler) StoreDraft(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	if sessionID == "" {
		utils.ResponseBadRequest(w, "Session ID is required", nil)
		return
	}

	var req request.StoreDraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	if err := h.service.StoreDraft(r.Context(), sessionID, req.Draft); err != nil {
		h.handleServiceError(w, err, "store draft")
		return
	}

	utils.ResponseSuccess(w, "Draft stored", nil)
}

// Hydrate handles POST /api/wizard/sessions/{id}/hydrate
func (h *WizardHandler) Hydrate(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	if sessionID == "" {
		utils.ResponseBadRequest(w, "Session ID is required", nil)
		return
	}

	state, err := h.service.Hydrate(r.Context(), sessionID)
	if err != nil {
		h.handleServiceError(w, err, "hydrate")
		return
	}

	utils.ResponseSuccess(w, "Draft hydrated", state)
}

// Next handles POST /api/wizard/sessions/{id}/next
func (h *WizardHandler) Next(w http.ResponseWriter, r *http.Request) {
	h.navigate(w, r, "next", h.service.Next)
}

// Back handles POST /api/wizard/sessions/{id}/back
func (h *WizardHandler) Back(w http.ResponseWriter, r *http.Request) {
	h.navigate(w, r, "back", h.service.Back)
}

// Reset handles POST /api/wizard/sessions/{id}/reset
func (h *WizardHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.navigate(w, r, "reset", h.service.Reset)
}

// GoTo handles POST /api/wizard/sessions/{id}/goto
func (h *WizardHandler) GoTo(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	if sessionID == "" {
		utils.ResponseBadRequest(w, "Session ID is required", nil)
		return
	}

	var req struct {
		Step int `json:"step"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	state, err := h.service.GoTo(r.Context(), sessionID, req.Step)
	if err != nil {
		h.handleServiceError(w, err, "go to step")
		return
	}

	utils.ResponseSuccess(w, "Step changed", state)
}

// Quote handles POST /api/wizard/sessions/{id}/quote
func (h *WizardHandler) Quote(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	if sessionID == "" {
		utils.ResponseBadRequest(w, "Session ID is required", nil)
		return
	}

	quote, err := h.service.Quote(r.Context(), sessionID)
	if err != nil {
		h.handleServiceError(w, err, "quote")
		return
	}

	utils.ResponseSuccess(w, "Quote calculated", quote)
}

func (h *WizardHandler) navigate(
	w http.ResponseWriter,
	r *http.Request,
	operation string,
	fn func(ctx context.Context, sessionID string) (*response.WizardStateResponse, error),
) {
	sessionID := chi.URLParam(r, "id")
	if sessionID == "" {
		utils.ResponseBadRequest(w, "Session ID is required", nil)
		return
	}

	state, err := fn(r.Context(), sessionID)
	if err != nil {
		h.handleServiceError(w, err, operation)
		return
	}

	utils.ResponseSuccess(w, "Step changed", state)
}

// handleServiceError maps wizard service errors onto HTTP statuses. Parse
// failures from stored drafts come back as 422 so the client knows the
// payload itself is at fault.
func (h *WizardHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	var parseErr *wizard.DraftParseError

	switch {
	case errors.Is(err, usecase.ErrSessionNotFound):
		h.log.Warn(operation+" failed - session not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrNoDraft):
		h.log.Warn(operation+" failed - no stored draft", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.As(err, &parseErr):
		h.log.Warn(operation+" failed - unparseable draft", zap.Error(err))
		utils.ResponseUnprocessable(w, "Stored draft could not be parsed", err.Error())

	default:
		h.log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/internal/dto/request"
	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/internal/usecase"
	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// SubmitBooking handles POST /api/bookings
func (h *BookingHandler) SubmitBooking(w http.ResponseWriter, r *http.Request) {
	var req request.SubmitBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	booking, err := h.service.Submit(r.Context(), req)
	if err != nil {
		h.handleServiceError(w, err, "submit booking")
		return
	}

	utils.ResponseCreated(w, "Booking created successfully", booking)
}

// GetBookingByReference handles GET /api/bookings/{reference}
func (h *BookingHandler) GetBookingByReference(w http.ResponseWriter, r *http.Request) {
	reference := chi.URLParam(r, "reference")
	if reference == "" {
		utils.ResponseBadRequest(w, "Booking reference is required", nil)
		return
	}

	booking, err := h.service.GetByReference(r.Context(), reference)
	if err != nil {
		h.handleServiceError(w, err, "get booking by reference")
		return
	}

	utils.ResponseSuccess(w, "Booking retrieved", booking)
}

// ListBookings handles GET /api/admin/bookings
func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	bookings, err := h.service.List(r.Context(), req)
	if err != nil {
		h.handleServiceError(w, err, "list bookings")
		return
	}

	utils.ResponseSuccess(w, "Bookings retrieved", bookings)
}

// GetBookingByID handles GET /api/admin/bookings/{id}
func (h *BookingHandler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid booking ID", nil)
		return
	}

	booking, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err, "get booking by ID")
		return
	}

	utils.ResponseSuccess(w, "Booking retrieved", booking)
}

// CancelBooking handles POST /api/admin/bookings/{id}/cancel
func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid booking ID", nil)
		return
	}

	booking, err := h.service.Cancel(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err, "cancel booking")
		return
	}

	utils.ResponseSuccess(w, "Booking cancelled", booking)
}

func (h *BookingHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	var incomplete *usecase.DraftIncompleteError

	switch {
	case errors.Is(err, usecase.ErrBookingNotFound),
		errors.Is(err, usecase.ErrSessionNotFound),
		errors.Is(err, usecase.ErrVehicleNotFound):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.As(err, &incomplete):
		h.log.Warn(operation+" failed - draft incomplete", zap.Error(err))
		utils.ResponseUnprocessable(w, "Booking draft is incomplete", incomplete.Fields)

	case errors.Is(err, usecase.ErrInvalidPricing):
		h.log.Warn(operation+" failed - invalid pricing", zap.Error(err))
		utils.ResponseUnprocessable(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrAlreadyCancelled),
		errors.Is(err, usecase.ErrNotCancellable):
		h.log.Warn(operation+" failed - status conflict", zap.Error(err))
		utils.ResponseConflict(w, err.Error())

	default:
		h.log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

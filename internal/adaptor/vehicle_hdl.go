package adaptor

import (
	"errors"
	"net/http"

	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/internal/usecase"
	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type VehicleHandler struct {
	service usecase.VehicleService
	log     *zap.Logger
}

func NewVehicleHandler(service usecase.VehicleService, log *zap.Logger) *VehicleHandler {
	return &VehicleHandler{
		service: service,
		log:     log.With(zap.String("handler", "vehicle")),
	}
}

// GetVehicles handles GET /api/vehicles
func (h *VehicleHandler) GetVehicles(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.service.GetAvailableVehicles(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "get vehicles")
		return
	}

	utils.ResponseSuccess(w, "Vehicles retrieved", vehicles)
}

// GetVehicleByID handles GET /api/vehicles/{id}
func (h *VehicleHandler) GetVehicleByID(w http.ResponseWriter, r *http.Request) {
	vehicleID := chi.URLParam(r, "id")
	if vehicleID == "" {
		utils.ResponseBadRequest(w, "Vehicle ID is required", nil)
		return
	}

	vehicle, err := h.service.GetVehicleByID(r.Context(), vehicleID)
	if err != nil {
		h.handleServiceError(w, err, "get vehicle by ID")
		return
	}

	utils.ResponseSuccess(w, "Vehicle retrieved", vehicle)
}

func (h *VehicleHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrVehicleNotFound):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	default:
		h.log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

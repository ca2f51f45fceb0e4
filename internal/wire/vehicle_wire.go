package wire

import (
	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireVehicle(r chi.Router, vehicleHandler *adaptor.VehicleHandler) {
	// GET /api/vehicles - active fleet (public)
	r.Get("/api/vehicles", vehicleHandler.GetVehicles)

	// GET /api/vehicles/{id} - single vehicle (public)
	r.Get("/api/vehicles/{id}", vehicleHandler.GetVehicleByID)
}

package response

import (
	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/internal/data/entity"
)

type VehicleResponse struct {
	ID           string                 `json:"id"`
	Category     string                 `json:"category"`
	Name         string                 `json:"name"`
	Capacity     entity.VehicleCapacity `json:"capacity"`
	BasePrice    float64                `json:"base_price"`
	PricePerKm   float64                `json:"price_per_km"`
	PricePerHour float64                `json:"price_per_hour"`
	Features     []string               `json:"features"`
}

func VehicleToResponse(v *entity.Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:           v.ID,
		Category:     v.Category,
		Name:         v.Name,
		Capacity:     v.Capacity,
		BasePrice:    v.BasePrice,
		PricePerKm:   v.PricePerKm,
		PricePerHour: v.PricePerHour,
		Features:     v.Features,
	}
}

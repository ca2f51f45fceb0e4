package response

import (
	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/internal/data/entity"
)

type WizardStateResponse struct {
	SessionID  string              `json:"session_id"`
	Step       int                 `json:"step"`
	CanAdvance bool                `json:"can_advance"`
	Draft      entity.BookingDraft `json:"draft"`
}

type QuoteResponse struct {
	DistanceKm  float64               `json:"distance_km,omitempty"`
	DurationMin float64               `json:"duration_min,omitempty"`
	Pricing     entity.PriceBreakdown `json:"pricing"`
}

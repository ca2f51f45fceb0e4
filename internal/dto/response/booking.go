package response

import (
	"time"

	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/internal/data/entity"
)

type BookingResponse struct {
	ID            string                `json:"id"`
	Reference     string                `json:"reference"`
	ServiceType   entity.ServiceType    `json:"service_type"`
	TransferType  entity.TransferType   `json:"transfer_type,omitempty"`
	Pickup        entity.Location       `json:"pickup"`
	Dropoff       *entity.Location      `json:"dropoff,omitempty"`
	TripDate      string                `json:"trip_date"`
	TripTime      string                `json:"trip_time"`
	ReturnDate    string                `json:"return_date,omitempty"`
	ReturnTime    string                `json:"return_time,omitempty"`
	Passengers    entity.PassengerInfo  `json:"passengers"`
	VehicleID     string                `json:"vehicle_id"`
	Pricing       entity.PriceBreakdown `json:"pricing"`
	PaymentMethod string                `json:"payment_method"`
	PaymentStatus entity.PaymentStatus  `json:"payment_status"`
	Status        entity.BookingStatus  `json:"status"`
	CheckoutURL   string                `json:"checkout_url,omitempty"`
	CreatedAt     time.Time             `json:"created_at"`
}

func BookingToResponse(b *entity.Booking, checkoutURL string) BookingResponse {
	resp := BookingResponse{
		ID:            b.ID.String(),
		Reference:     b.Reference,
		ServiceType:   b.ServiceType,
		TransferType:  b.TransferType,
		Pickup:        b.Pickup,
		TripDate:      b.DateTime.Date,
		TripTime:      b.DateTime.Time,
		ReturnDate:    b.DateTime.ReturnDate,
		ReturnTime:    b.DateTime.ReturnTime,
		Passengers:    b.Passengers,
		VehicleID:     b.VehicleID,
		Pricing:       b.Pricing,
		PaymentMethod: b.PaymentMethod,
		PaymentStatus: b.PaymentStatus,
		Status:        b.Status,
		CheckoutURL:   checkoutURL,
		CreatedAt:     b.CreatedAt,
	}
	if b.ServiceType == entity.ServiceDistance {
		dropoff := b.Dropoff
		resp.Dropoff = &dropoff
	}
	return resp
}

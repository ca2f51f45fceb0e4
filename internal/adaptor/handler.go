package adaptor

import (
	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/internal/usecase"
	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Wizard  *WizardHandler
	Vehicle *VehicleHandler
	Booking *BookingHandler
	Payment *PaymentHandler
}

func NewHandler(service *usecase.Service, config *utils.Config, log *zap.Logger) *Handler {
	return &Handler{
		Wizard:  NewWizardHandler(service.Wizard, log),
		Vehicle: NewVehicleHandler(service.Vehicle, log),
		Booking: NewBookingHandler(service.Booking, log),
		Payment: NewPaymentHandler(service.Booking, config.Stripe.WebhookSecret, log),
	}
}

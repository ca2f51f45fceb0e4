package wire

import (
	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wirePayment(r chi.Router, paymentHandler *adaptor.PaymentHandler) {
	// POST /api/payments/stripe/webhook - checkout session lifecycle events
	r.Post("/api/payments/stripe/webhook", paymentHandler.StripeWebhook)
}

package adaptor

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/internal/usecase"
	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/pkg/utils"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"
)

// Stripe documents 64KB as the webhook payload ceiling.
const webhookMaxBody = 65536

type PaymentHandler struct {
	service       usecase.BookingService
	webhookSecret string
	log           *zap.Logger
}

func NewPaymentHandler(service usecase.BookingService, webhookSecret string, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		service:       service,
		webhookSecret: webhookSecret,
		log:           log.With(zap.String("handler", "payment")),
	}
}

// StripeWebhook handles POST /api/payments/stripe/webhook. Stripe retries on
// any non-2xx response, so only transient failures return one; events for
// unknown or non-card bookings are acknowledged and dropped.
func (h *PaymentHandler) StripeWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, webhookMaxBody))
	if err != nil {
		utils.ResponseBadRequest(w, "Unable to read payload", nil)
		return
	}

	event, err := webhook.ConstructEvent(payload, r.Header.Get("Stripe-Signature"), h.webhookSecret)
	if err != nil {
		h.log.Warn("Webhook signature verification failed", zap.Error(err))
		utils.ResponseBadRequest(w, "Invalid signature", nil)
		return
	}

	switch event.Type {
	case "checkout.session.completed", "checkout.session.expired":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			h.log.Warn("Malformed checkout session in webhook event", zap.Error(err))
			utils.ResponseBadRequest(w, "Malformed event payload", nil)
			return
		}
		if session.ClientReferenceID == "" {
			h.log.Warn("Checkout event without client reference", zap.String("event_type", string(event.Type)))
			break
		}

		if event.Type == "checkout.session.completed" {
			_, err = h.service.ConfirmPayment(r.Context(), session.ClientReferenceID)
		} else {
			err = h.service.FailPayment(r.Context(), session.ClientReferenceID)
		}

		switch {
		case err == nil:
		case errors.Is(err, usecase.ErrBookingNotFound), errors.Is(err, usecase.ErrNotCardPayment):
			// Likely another environment's event; acknowledge so Stripe
			// stops retrying.
			h.log.Warn("Checkout event did not match a card booking",
				zap.Error(err),
				zap.String("reference", session.ClientReferenceID),
			)
		default:
			h.log.Error("Failed to process checkout event",
				zap.Error(err),
				zap.String("reference", session.ClientReferenceID),
			)
			utils.ResponseInternalError(w, "Internal server error")
			return
		}

	default:
		// Unsubscribed event types are acknowledged and ignored.
	}

	utils.ResponseSuccess(w, "Webhook processed", nil)
}

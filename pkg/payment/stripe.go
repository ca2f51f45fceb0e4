package payment

import (
	"context"
	"fmt"
	"math"

	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/internal/data/entity"
	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/pkg/utils"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"go.uber.org/zap"
)

type CheckoutSession struct {
	ID  string
	URL string
}

// Provider creates a hosted payment session for a booking. The booking it
// receives has already passed the server-side re-pricing; the provider never
// recalculates anything.
type Provider interface {
	CreateCheckoutSession(ctx context.Context, booking *entity.Booking) (CheckoutSession, error)
}

type stripeProvider struct {
	cfg utils.StripeConfig
	log *zap.Logger
}

func NewStripeProvider(cfg utils.StripeConfig, log *zap.Logger) Provider {
	stripe.Key = cfg.SecretKey
	return &stripeProvider{
		cfg: cfg,
		log: log.With(zap.String("collaborator", "stripe")),
	}
}

func (p *stripeProvider) CreateCheckoutSession(ctx context.Context, booking *entity.Booking) (CheckoutSession, error) {
	if booking.Pricing.Total <= 0 {
		return CheckoutSession{}, fmt.Errorf("checkout session for non-positive total %.2f", booking.Pricing.Total)
	}

	amount := int64(math.Round(booking.Pricing.Total * 100))

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String("eur"),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String("Private transfer " + booking.Reference),
						Description: stripe.String(tripDescription(booking)),
					},
					UnitAmount: stripe.Int64(amount),
				},
				Quantity: stripe.Int64(1),
			},
		},
		ClientReferenceID: stripe.String(booking.Reference),
		CustomerEmail:     stripe.String(booking.Contact.Email),
		SuccessURL:        stripe.String(p.cfg.SuccessURL),
		CancelURL:         stripe.String(p.cfg.CancelURL),
	}
	params.Context = ctx

	s, err := session.New(params)
	if err != nil {
		p.log.Error("Failed to create checkout session",
			zap.Error(err),
			zap.String("reference", booking.Reference),
			zap.Int64("amount_cents", amount),
		)
		return CheckoutSession{}, fmt.Errorf("create checkout session for %s: %w", booking.Reference, err)
	}

	p.log.Info("Checkout session created",
		zap.String("reference", booking.Reference),
		zap.String("session_id", s.ID),
		zap.Int64("amount_cents", amount),
	)

	return CheckoutSession{ID: s.ID, URL: s.URL}, nil
}

func tripDescription(b *entity.Booking) string {
	if b.ServiceType == entity.ServiceHourly {
		return fmt.Sprintf("Chauffeur service, %dh from %s", b.HourlyDuration, b.Pickup.Address)
	}
	return fmt.Sprintf("Transfer from %s to %s", b.Pickup.Address, b.Dropoff.Address)
}

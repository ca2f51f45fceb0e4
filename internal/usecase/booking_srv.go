package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/internal/data/entity"
	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/internal/data/repository"
	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/internal/dto/request"
	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/internal/dto/response"
	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/internal/wizard"
	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/pkg/geo"
	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/pkg/payment"
	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrBookingNotFound  = errors.New("booking not found")
	ErrInvalidPricing   = errors.New("invalid pricing: total must be positive")
	ErrAlreadyCancelled = errors.New("booking already cancelled")
	ErrNotCancellable   = errors.New("booking can no longer be cancelled")
	ErrNotCardPayment   = errors.New("booking was not paid by card")
)

// DraftIncompleteError reports which draft fields block submission.
type DraftIncompleteError struct {
	Fields map[string]string
}

func (e *DraftIncompleteError) Error() string {
	return "draft incomplete: " + utils.FormatValidationErrors(e.Fields)
}

type BookingService interface {
	Submit(ctx context.Context, req request.SubmitBookingRequest) (*response.BookingResponse, error)
	GetByReference(ctx context.Context, reference string) (*response.BookingResponse, error)
	ConfirmPayment(ctx context.Context, reference string) (*response.BookingResponse, error)
	FailPayment(ctx context.Context, reference string) error
	List(ctx context.Context, req request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	GetByID(ctx context.Context, id uuid.UUID) (*response.BookingResponse, error)
	Cancel(ctx context.Context, id uuid.UUID) (*response.BookingResponse, error)
}

type bookingService struct {
	repo     *repository.Repository
	wizard   WizardService
	resolver geo.Resolver
	provider payment.Provider
	rates    wizard.Rates
	log      *zap.Logger
}

func NewBookingService(
	repo *repository.Repository,
	wizardSrv WizardService,
	resolver geo.Resolver,
	provider payment.Provider,
	config *utils.Config,
	log *zap.Logger,
) BookingService {
	return &bookingService{
		repo:     repo,
		wizard:   wizardSrv,
		resolver: resolver,
		provider: provider,
		rates:    RatesFromConfig(config.Pricing),
		log:      log.With(zap.String("service", "booking")),
	}
}

// Submit turns a completed wizard draft into a persisted booking. The price
// is recomputed here from the stored vehicle and a fresh distance lookup;
// whatever quote the draft carries is advisory only.
func (s *bookingService) Submit(ctx context.Context, req request.SubmitBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); errs != nil {
		return nil, &DraftIncompleteError{Fields: errs}
	}

	draft, err := s.wizard.Draft(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}

	if errs := validateDraft(draft); len(errs) > 0 {
		return nil, &DraftIncompleteError{Fields: errs}
	}

	vehicle, err := s.repo.Vehicle.FindByID(ctx, draft.SelectedVehicle.ID)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, ErrVehicleNotFound
	}
	draft.SelectedVehicle = vehicle

	trip := s.authoritativeTrip(ctx, draft)
	pricing := wizard.Price(draft, trip.DistanceKm, s.rates)
	if pricing.Total <= 0 {
		s.log.Warn("Rejecting booking with non-positive total",
			zap.String("session_id", req.SessionID),
			zap.Float64("total", pricing.Total),
		)
		return nil, ErrInvalidPricing
	}

	now := time.Now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Reference:      utils.GenerateBookingReference(),
		ServiceType:    draft.ServiceType,
		TransferType:   draft.TransferType,
		Pickup:         draft.Pickup,
		Dropoff:        draft.Dropoff,
		DistanceKm:     trip.DistanceKm,
		DurationMin:    trip.DurationMin,
		DateTime:       draft.DateTime,
		Passengers:     draft.Passengers,
		Contact:        draft.PassengerDetails,
		Extras:         draft.Extras,
		HourlyDuration: draft.HourlyDuration,
		VehicleID:      vehicle.ID,
		Pricing:        pricing,
		PaymentMethod:  req.PaymentMethod,
		PaymentStatus:  entity.PaymentStatusPending,
		Status:         entity.BookingStatusPending,
	}

	var checkoutURL string
	switch req.PaymentMethod {
	case "cash":
		// Cash bookings confirm immediately; the driver settles on pickup.
		booking.Status = entity.BookingStatusConfirmed
	case "card":
		checkout, err := s.provider.CreateCheckoutSession(ctx, booking)
		if err != nil {
			return nil, err
		}
		booking.CheckoutSessionID = checkout.ID
		checkoutURL = checkout.URL
	}

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		return nil, err
	}

	if _, err := s.wizard.Reset(ctx, req.SessionID); err != nil {
		s.log.Warn("Failed to reset wizard session after submit",
			zap.Error(err),
			zap.String("session_id", req.SessionID),
		)
	}

	s.log.Info("Booking created",
		zap.String("reference", booking.Reference),
		zap.String("payment_method", booking.PaymentMethod),
		zap.Float64("total", pricing.Total),
	)

	resp := response.BookingToResponse(booking, checkoutURL)
	return &resp, nil
}

func (s *bookingService) GetByReference(ctx context.Context, reference string) (*response.BookingResponse, error) {
	booking, err := s.repo.Booking.FindByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}

	resp := response.BookingToResponse(booking, "")
	return &resp, nil
}

// ConfirmPayment marks a card booking paid after the payment provider reports
// the checkout session completed. Idempotent: confirming an already-paid
// booking changes nothing.
func (s *bookingService) ConfirmPayment(ctx context.Context, reference string) (*response.BookingResponse, error) {
	booking, err := s.repo.Booking.FindByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	if booking.PaymentMethod != "card" {
		return nil, ErrNotCardPayment
	}

	if booking.PaymentStatus != entity.PaymentStatusPaid {
		if err := s.repo.Booking.UpdatePaymentStatus(ctx, booking.ID, entity.PaymentStatusPaid); err != nil {
			return nil, err
		}
		if err := s.repo.Booking.UpdateStatus(ctx, booking.ID, entity.BookingStatusConfirmed); err != nil {
			return nil, err
		}
		booking.PaymentStatus = entity.PaymentStatusPaid
		booking.Status = entity.BookingStatusConfirmed

		s.log.Info("Payment confirmed",
			zap.String("reference", booking.Reference),
			zap.Float64("total", booking.Pricing.Total),
		)
	}

	resp := response.BookingToResponse(booking, "")
	return &resp, nil
}

// FailPayment records an expired or failed checkout session and releases the
// booking. A booking that already completed payment is left alone; checkout
// events can arrive out of order.
func (s *bookingService) FailPayment(ctx context.Context, reference string) error {
	booking, err := s.repo.Booking.FindByReference(ctx, reference)
	if err != nil {
		return err
	}
	if booking == nil {
		return ErrBookingNotFound
	}
	if booking.PaymentMethod != "card" {
		return ErrNotCardPayment
	}
	if booking.PaymentStatus == entity.PaymentStatusPaid {
		return nil
	}

	if err := s.repo.Booking.UpdatePaymentStatus(ctx, booking.ID, entity.PaymentStatusFailed); err != nil {
		return err
	}
	if err := s.repo.Booking.UpdateStatus(ctx, booking.ID, entity.BookingStatusCancelled); err != nil {
		return err
	}

	s.log.Info("Payment failed, booking released",
		zap.String("reference", booking.Reference),
	)
	return nil
}

func (s *bookingService) List(ctx context.Context, req request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	limit := req.Limit()

	bookings, err := s.repo.Booking.FindAll(ctx, limit, req.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Booking.Count(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]response.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		items = append(items, response.BookingToResponse(b, ""))
	}

	return response.NewPaginatedResponse(items, req.Page, limit, total), nil
}

func (s *bookingService) GetByID(ctx context.Context, id uuid.UUID) (*response.BookingResponse, error) {
	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}

	resp := response.BookingToResponse(booking, "")
	return &resp, nil
}

func (s *bookingService) Cancel(ctx context.Context, id uuid.UUID) (*response.BookingResponse, error) {
	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}

	switch booking.Status {
	case entity.BookingStatusCancelled:
		return nil, ErrAlreadyCancelled
	case entity.BookingStatusCompleted:
		return nil, ErrNotCancellable
	}

	if err := s.repo.Booking.UpdateStatus(ctx, id, entity.BookingStatusCancelled); err != nil {
		return nil, err
	}

	s.log.Info("Booking cancelled",
		zap.String("booking_id", id.String()),
		zap.String("reference", booking.Reference),
	)

	booking.Status = entity.BookingStatusCancelled
	resp := response.BookingToResponse(booking, "")
	return &resp, nil
}

// authoritativeTrip re-resolves distance and duration for distance-based
// bookings so the persisted record carries one consistent measurement. If the
// lookup fails the draft's last known values are used, so a Maps outage
// degrades the quote rather than blocking the booking.
func (s *bookingService) authoritativeTrip(ctx context.Context, draft entity.BookingDraft) geo.Distance {
	if draft.ServiceType == entity.ServiceHourly {
		return geo.Distance{}
	}
	if draft.Pickup.PlaceID == "" || draft.Dropoff.PlaceID == "" {
		return geo.Distance{DistanceKm: draft.DistanceKm, DurationMin: draft.DurationMin}
	}

	dist, err := s.resolver.Resolve(ctx, draft.Pickup.PlaceID, draft.Dropoff.PlaceID)
	if err != nil {
		s.log.Warn("Distance lookup failed at submit, using draft distance",
			zap.Error(err),
			zap.Float64("draft_distance_km", draft.DistanceKm),
		)
		return geo.Distance{DistanceKm: draft.DistanceKm, DurationMin: draft.DurationMin}
	}
	return dist
}

// validateDraft checks the draft for everything a booking record needs.
// Wizard gates already enforce most of this per step, but a session driven
// over the API can reach submit with holes in earlier steps.
func validateDraft(d entity.BookingDraft) map[string]string {
	errs := make(map[string]string)

	if d.SelectedVehicle == nil || d.SelectedVehicle.ID == "" {
		errs["vehicle"] = "A vehicle must be selected"
	}
	if d.Pickup.Address == "" {
		errs["pickup"] = "Pickup location is required"
	}
	if d.ServiceType != entity.ServiceHourly && d.Dropoff.Address == "" {
		errs["dropoff"] = "Dropoff location is required"
	}
	if d.ServiceType == entity.ServiceHourly && d.HourlyDuration < 2 {
		errs["hourlyDuration"] = "Minimum is 2"
	}
	if d.DateTime.Date == "" || d.DateTime.Time == "" {
		errs["dateTime"] = "Pickup date and time are required"
	}
	if d.TransferType == entity.TransferReturn {
		if d.DateTime.ReturnDate == "" || d.DateTime.ReturnTime == "" {
			errs["returnDateTime"] = "Return date and time are required"
		}
	}
	if d.Passengers.Count < 1 {
		errs["passengers"] = "Minimum is 1"
	}
	if d.PassengerDetails.FirstName == "" {
		errs["firstName"] = "This field is required"
	}
	if d.PassengerDetails.LastName == "" {
		errs["lastName"] = "This field is required"
	}
	if d.PassengerDetails.Email == "" {
		errs["email"] = "This field is required"
	}
	if d.PassengerDetails.Phone == "" {
		errs["phone"] = "This field is required"
	}

	if d.SelectedVehicle != nil && d.Passengers.Count > d.SelectedVehicle.Capacity.Passengers {
		errs["passengers"] = fmt.Sprintf("Maximum is %d", d.SelectedVehicle.Capacity.Passengers)
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

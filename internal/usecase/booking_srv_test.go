package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/internal/data/entity"
	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/internal/data/repository"
	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/internal/dto/request"
	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/pkg/geo"
	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/pkg/payment"

	"github.com/google/uuid"
)

type bookingFixture struct {
	service     BookingService
	wizard      WizardService
	bookingRepo *fakeBookingRepo
	resolver    *fakeResolver
	provider    *fakeProvider
	sessionID   string
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()

	bookingRepo := newFakeBookingRepo()
	vehicleRepo := newFakeVehicleRepo(sedanVehicle())
	repo := &repository.Repository{Booking: bookingRepo, Vehicle: vehicleRepo}

	resolver := &fakeResolver{distance: geo.Distance{DistanceKm: 12, DurationMin: 25}}
	provider := &fakeProvider{session: payment.CheckoutSession{ID: "cs_test_1", URL: "https://checkout.test/cs_test_1"}}

	wizardSrv := NewWizardService(newFakeDraftStore(), resolver, testConfig(), testLogger())
	bookingSrv := NewBookingService(repo, wizardSrv, resolver, provider, testConfig(), testLogger())

	created, err := wizardSrv.CreateSession(context.Background(), nil, 0)
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	return &bookingFixture{
		service:     bookingSrv,
		wizard:      wizardSrv,
		bookingRepo: bookingRepo,
		resolver:    resolver,
		provider:    provider,
		sessionID:   created.SessionID,
	}
}

// completeDraft fills the session with everything a distance booking needs.
func (f *bookingFixture) completeDraft(t *testing.T) {
	t.Helper()

	serviceType := entity.ServiceDistance
	transferType := entity.TransferOneWay
	pickup := "Barcelona Airport T1"
	pickupPlace := "p1"
	dropoff := "Hotel Arts"
	dropoffPlace := "p2"
	date := "2026-09-01"
	tm := "10:00"
	first := "Marta"
	last := "Serra"
	email := "marta@example.com"
	phone := "+34600111222"

	_, err := f.wizard.ApplyUpdate(context.Background(), f.sessionID, entity.DraftPatch{
		ServiceType:     &serviceType,
		TransferType:    &transferType,
		Pickup:          &entity.LocationPatch{Address: &pickup, PlaceID: &pickupPlace},
		Dropoff:         &entity.LocationPatch{Address: &dropoff, PlaceID: &dropoffPlace},
		DateTime:        &entity.DateTimePatch{Date: &date, Time: &tm},
		SelectedVehicle: sedanVehicle(),
		PassengerDetails: &entity.ContactPatch{
			FirstName: &first,
			LastName:  &last,
			Email:     &email,
			Phone:     &phone,
		},
	})
	if err != nil {
		t.Fatalf("ApplyUpdate failed: %v", err)
	}
}

func TestSubmitCashBooking(t *testing.T) {
	f := newBookingFixture(t)
	f.completeDraft(t)

	resp, err := f.service.Submit(context.Background(), request.SubmitBookingRequest{
		SessionID:     f.sessionID,
		PaymentMethod: "cash",
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	if len(f.bookingRepo.created) != 1 {
		t.Fatalf("expected one booking persisted, got %d", len(f.bookingRepo.created))
	}
	booking := f.bookingRepo.created[0]

	if !strings.HasPrefix(resp.Reference, "RT-") {
		t.Fatalf("unexpected reference format: %q", resp.Reference)
	}
	if resp.Status != entity.BookingStatusConfirmed {
		t.Fatalf("cash bookings confirm immediately, got %q", resp.Status)
	}
	if resp.CheckoutURL != "" {
		t.Fatal("cash bookings must not carry a checkout URL")
	}
	if f.provider.calls != 0 {
		t.Fatal("cash bookings must not touch the payment provider")
	}

	// Server-side re-price: 35 base + 12km*2 + 15 airport fee = 74, tax 21%.
	if booking.Pricing.Subtotal != 74 {
		t.Fatalf("expected subtotal 74, got %v", booking.Pricing.Subtotal)
	}
	if booking.DistanceKm != 12 {
		t.Fatalf("expected authoritative distance 12, got %v", booking.DistanceKm)
	}

	// Submit consumes the wizard session.
	state, err := f.wizard.GetState(context.Background(), f.sessionID)
	if err != nil {
		t.Fatalf("GetState failed: %v", err)
	}
	if state.Draft.Pickup.Address != "" || state.Step != 0 {
		t.Fatal("wizard session must be reset after submit")
	}
}

func TestSubmitCardBooking(t *testing.T) {
	f := newBookingFixture(t)
	f.completeDraft(t)

	resp, err := f.service.Submit(context.Background(), request.SubmitBookingRequest{
		SessionID:     f.sessionID,
		PaymentMethod: "card",
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	if f.provider.calls != 1 {
		t.Fatalf("expected one checkout session, got %d", f.provider.calls)
	}
	if resp.CheckoutURL != "https://checkout.test/cs_test_1" {
		t.Fatalf("unexpected checkout URL: %q", resp.CheckoutURL)
	}
	if resp.Status != entity.BookingStatusPending {
		t.Fatalf("card bookings stay pending until payment, got %q", resp.Status)
	}

	booking := f.bookingRepo.created[0]
	if booking.CheckoutSessionID != "cs_test_1" {
		t.Fatalf("checkout session ID must be persisted, got %q", booking.CheckoutSessionID)
	}
}

func TestSubmitCardBookingProviderFailure(t *testing.T) {
	f := newBookingFixture(t)
	f.completeDraft(t)
	f.provider.err = errors.New("stripe unavailable")

	_, err := f.service.Submit(context.Background(), request.SubmitBookingRequest{
		SessionID:     f.sessionID,
		PaymentMethod: "card",
	})
	if err == nil {
		t.Fatal("expected an error when the provider fails")
	}
	if len(f.bookingRepo.created) != 0 {
		t.Fatal("no booking must be persisted when checkout creation fails")
	}
}

func TestSubmitIncompleteDraft(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.service.Submit(context.Background(), request.SubmitBookingRequest{
		SessionID:     f.sessionID,
		PaymentMethod: "cash",
	})

	var incomplete *DraftIncompleteError
	if !errors.As(err, &incomplete) {
		t.Fatalf("expected DraftIncompleteError, got %v", err)
	}
	for _, field := range []string{"vehicle", "pickup", "dropoff", "dateTime", "firstName", "email"} {
		if _, ok := incomplete.Fields[field]; !ok {
			t.Fatalf("expected %q in incomplete fields, got %v", field, incomplete.Fields)
		}
	}
	if len(f.bookingRepo.created) != 0 {
		t.Fatal("incomplete drafts must not be persisted")
	}
}

func TestSubmitCapacityExceeded(t *testing.T) {
	f := newBookingFixture(t)
	f.completeDraft(t)

	count := 5 // sedan holds 3
	f.wizard.ApplyUpdate(context.Background(), f.sessionID, entity.DraftPatch{
		Passengers: &entity.PassengersPatch{Count: &count},
	})

	_, err := f.service.Submit(context.Background(), request.SubmitBookingRequest{
		SessionID:     f.sessionID,
		PaymentMethod: "cash",
	})

	var incomplete *DraftIncompleteError
	if !errors.As(err, &incomplete) {
		t.Fatalf("expected DraftIncompleteError, got %v", err)
	}
	if _, ok := incomplete.Fields["passengers"]; !ok {
		t.Fatalf("expected passengers error, got %v", incomplete.Fields)
	}
}

func TestSubmitUnknownSession(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.service.Submit(context.Background(), request.SubmitBookingRequest{
		SessionID:     uuid.New().String(),
		PaymentMethod: "cash",
	})
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSubmitUnknownVehicle(t *testing.T) {
	f := newBookingFixture(t)
	f.completeDraft(t)

	ghost := sedanVehicle()
	ghost.ID = "retired-van"
	f.wizard.ApplyUpdate(context.Background(), f.sessionID, entity.DraftPatch{
		SelectedVehicle: ghost,
	})

	_, err := f.service.Submit(context.Background(), request.SubmitBookingRequest{
		SessionID:     f.sessionID,
		PaymentMethod: "cash",
	})
	if !errors.Is(err, ErrVehicleNotFound) {
		t.Fatalf("expected ErrVehicleNotFound, got %v", err)
	}
}

func TestSubmitFallsBackToDraftDistance(t *testing.T) {
	f := newBookingFixture(t)
	f.completeDraft(t)

	// Quote stores 12 km on the draft, then Maps goes down before submit.
	if _, err := f.wizard.Quote(context.Background(), f.sessionID); err != nil {
		t.Fatalf("Quote failed: %v", err)
	}
	f.resolver.err = errors.New("maps unavailable")

	_, err := f.service.Submit(context.Background(), request.SubmitBookingRequest{
		SessionID:     f.sessionID,
		PaymentMethod: "cash",
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	booking := f.bookingRepo.created[0]
	if booking.DistanceKm != 12 {
		t.Fatalf("expected fallback to draft distance 12, got %v", booking.DistanceKm)
	}
}

func TestGetByReference(t *testing.T) {
	f := newBookingFixture(t)
	f.completeDraft(t)

	created, err := f.service.Submit(context.Background(), request.SubmitBookingRequest{
		SessionID:     f.sessionID,
		PaymentMethod: "cash",
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	found, err := f.service.GetByReference(context.Background(), created.Reference)
	if err != nil {
		t.Fatalf("GetByReference failed: %v", err)
	}
	if found.ID != created.ID {
		t.Fatalf("expected booking %s, got %s", created.ID, found.ID)
	}

	if _, err := f.service.GetByReference(context.Background(), "RT-NOPE"); !errors.Is(err, ErrBookingNotFound) {
		t.Fatalf("expected ErrBookingNotFound, got %v", err)
	}
}

func TestCancelBooking(t *testing.T) {
	f := newBookingFixture(t)
	f.completeDraft(t)

	created, err := f.service.Submit(context.Background(), request.SubmitBookingRequest{
		SessionID:     f.sessionID,
		PaymentMethod: "cash",
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	id := uuid.MustParse(created.ID)

	cancelled, err := f.service.Cancel(context.Background(), id)
	if err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}
	if cancelled.Status != entity.BookingStatusCancelled {
		t.Fatalf("expected cancelled status, got %q", cancelled.Status)
	}

	if _, err := f.service.Cancel(context.Background(), id); !errors.Is(err, ErrAlreadyCancelled) {
		t.Fatalf("expected ErrAlreadyCancelled, got %v", err)
	}

	if _, err := f.service.Cancel(context.Background(), uuid.New()); !errors.Is(err, ErrBookingNotFound) {
		t.Fatalf("expected ErrBookingNotFound, got %v", err)
	}
}

func TestCancelCompletedBooking(t *testing.T) {
	f := newBookingFixture(t)
	f.completeDraft(t)

	created, err := f.service.Submit(context.Background(), request.SubmitBookingRequest{
		SessionID:     f.sessionID,
		PaymentMethod: "cash",
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	id := uuid.MustParse(created.ID)
	f.bookingRepo.byID[id].Status = entity.BookingStatusCompleted

	if _, err := f.service.Cancel(context.Background(), id); !errors.Is(err, ErrNotCancellable) {
		t.Fatalf("expected ErrNotCancellable, got %v", err)
	}
}

func TestListBookings(t *testing.T) {
	f := newBookingFixture(t)
	f.completeDraft(t)

	if _, err := f.service.Submit(context.Background(), request.SubmitBookingRequest{
		SessionID:     f.sessionID,
		PaymentMethod: "cash",
	}); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	page, err := f.service.List(context.Background(), request.PaginatedRequest{Page: 1, PerPage: 10})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(page.Data) != 1 {
		t.Fatalf("expected one booking, got %d", len(page.Data))
	}
	if page.Pagination.Total != 1 {
		t.Fatalf("expected total 1, got %d", page.Pagination.Total)
	}
	if page.Pagination.TotalPages != 1 {
		t.Fatalf("expected one page, got %d", page.Pagination.TotalPages)
	}
}

func TestListBookingsClampsPageSize(t *testing.T) {
	f := newBookingFixture(t)

	page, err := f.service.List(context.Background(), request.PaginatedRequest{Page: 1, PerPage: 0})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if page.Pagination.PerPage != 10 {
		t.Fatalf("expected per-page clamped to 10, got %d", page.Pagination.PerPage)
	}
}

func TestConfirmPayment(t *testing.T) {
	f := newBookingFixture(t)
	f.completeDraft(t)

	created, err := f.service.Submit(context.Background(), request.SubmitBookingRequest{
		SessionID:     f.sessionID,
		PaymentMethod: "card",
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	confirmed, err := f.service.ConfirmPayment(context.Background(), created.Reference)
	if err != nil {
		t.Fatalf("ConfirmPayment failed: %v", err)
	}
	if confirmed.PaymentStatus != entity.PaymentStatusPaid {
		t.Fatalf("expected payment status paid, got %q", confirmed.PaymentStatus)
	}
	if confirmed.Status != entity.BookingStatusConfirmed {
		t.Fatalf("expected booking confirmed after payment, got %q", confirmed.Status)
	}

	booking := f.bookingRepo.byRef[created.Reference]
	if booking.PaymentStatus != entity.PaymentStatusPaid || booking.Status != entity.BookingStatusConfirmed {
		t.Fatal("payment confirmation must be persisted")
	}

	// Stripe retries deliveries; a repeat confirmation is a no-op.
	again, err := f.service.ConfirmPayment(context.Background(), created.Reference)
	if err != nil {
		t.Fatalf("repeat ConfirmPayment failed: %v", err)
	}
	if again.PaymentStatus != entity.PaymentStatusPaid {
		t.Fatalf("expected paid on repeat confirmation, got %q", again.PaymentStatus)
	}
}

func TestConfirmPaymentRejectsCashBooking(t *testing.T) {
	f := newBookingFixture(t)
	f.completeDraft(t)

	created, err := f.service.Submit(context.Background(), request.SubmitBookingRequest{
		SessionID:     f.sessionID,
		PaymentMethod: "cash",
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	if _, err := f.service.ConfirmPayment(context.Background(), created.Reference); !errors.Is(err, ErrNotCardPayment) {
		t.Fatalf("expected ErrNotCardPayment, got %v", err)
	}

	if _, err := f.service.ConfirmPayment(context.Background(), "RT-NOPE"); !errors.Is(err, ErrBookingNotFound) {
		t.Fatalf("expected ErrBookingNotFound, got %v", err)
	}
}

func TestFailPaymentReleasesBooking(t *testing.T) {
	f := newBookingFixture(t)
	f.completeDraft(t)

	created, err := f.service.Submit(context.Background(), request.SubmitBookingRequest{
		SessionID:     f.sessionID,
		PaymentMethod: "card",
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	if err := f.service.FailPayment(context.Background(), created.Reference); err != nil {
		t.Fatalf("FailPayment failed: %v", err)
	}

	booking := f.bookingRepo.byRef[created.Reference]
	if booking.PaymentStatus != entity.PaymentStatusFailed {
		t.Fatalf("expected payment status failed, got %q", booking.PaymentStatus)
	}
	if booking.Status != entity.BookingStatusCancelled {
		t.Fatalf("expected booking released, got %q", booking.Status)
	}
}

func TestFailPaymentIgnoresPaidBooking(t *testing.T) {
	f := newBookingFixture(t)
	f.completeDraft(t)

	created, err := f.service.Submit(context.Background(), request.SubmitBookingRequest{
		SessionID:     f.sessionID,
		PaymentMethod: "card",
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if _, err := f.service.ConfirmPayment(context.Background(), created.Reference); err != nil {
		t.Fatalf("ConfirmPayment failed: %v", err)
	}

	// Out-of-order expiry after a completed payment must not touch the booking.
	if err := f.service.FailPayment(context.Background(), created.Reference); err != nil {
		t.Fatalf("FailPayment failed: %v", err)
	}

	booking := f.bookingRepo.byRef[created.Reference]
	if booking.PaymentStatus != entity.PaymentStatusPaid || booking.Status != entity.BookingStatusConfirmed {
		t.Fatal("paid booking must survive a late expiry event")
	}
}

func TestSubmitRefreshesTripMetrics(t *testing.T) {
	f := newBookingFixture(t)
	f.completeDraft(t)

	// Stale metrics from an earlier quote; the resolver is authoritative.
	staleDistance := 99.0
	staleDuration := 180.0
	f.wizard.ApplyUpdate(context.Background(), f.sessionID, entity.DraftPatch{
		DistanceKm:  &staleDistance,
		DurationMin: &staleDuration,
	})

	_, err := f.service.Submit(context.Background(), request.SubmitBookingRequest{
		SessionID:     f.sessionID,
		PaymentMethod: "cash",
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	booking := f.bookingRepo.created[0]
	if booking.DistanceKm != 12 {
		t.Fatalf("expected resolved distance 12, got %v", booking.DistanceKm)
	}
	if booking.DurationMin != 25 {
		t.Fatalf("expected resolved duration 25, got %v", booking.DurationMin)
	}
}

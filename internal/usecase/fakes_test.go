package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/internal/data/draftstore"
	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/internal/data/entity"
	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/pkg/geo"
	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/pkg/payment"
	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func testConfig() *utils.Config {
	return &utils.Config{
		Pricing: utils.PricingConfig{
			Currency:            "EUR",
			TaxRatePercent:      21,
			AirportFee:          15,
			MeetAndGreetFee:     20,
			ChildSeatFee:        10,
			ExtraStopFee:        10,
			HourlyFallbackHours: 3,
		},
		Wizard: utils.WizardConfig{
			DraftTTLMinutes:   30,
			SessionTTLMinutes: 120,
		},
	}
}

type fakeDraftStore struct {
	payloads map[string][]byte
	putErr   error
}

func newFakeDraftStore() *fakeDraftStore {
	return &fakeDraftStore{payloads: make(map[string][]byte)}
}

func (f *fakeDraftStore) Put(ctx context.Context, sessionID string, payload []byte, ttl time.Duration) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.payloads[sessionID] = payload
	return nil
}

func (f *fakeDraftStore) Get(ctx context.Context, sessionID string) ([]byte, error) {
	payload, ok := f.payloads[sessionID]
	if !ok {
		return nil, draftstore.ErrNotFound
	}
	return payload, nil
}

func (f *fakeDraftStore) Clear(ctx context.Context, sessionID string) error {
	delete(f.payloads, sessionID)
	return nil
}

type fakeResolver struct {
	distance geo.Distance
	err      error
	calls    int
}

func (f *fakeResolver) Resolve(ctx context.Context, originPlaceID, destPlaceID string) (geo.Distance, error) {
	f.calls++
	if f.err != nil {
		return geo.Distance{}, f.err
	}
	return f.distance, nil
}

type fakeProvider struct {
	session payment.CheckoutSession
	err     error
	calls   int
}

func (f *fakeProvider) CreateCheckoutSession(ctx context.Context, booking *entity.Booking) (payment.CheckoutSession, error) {
	f.calls++
	if f.err != nil {
		return payment.CheckoutSession{}, f.err
	}
	return f.session, nil
}

type fakeBookingRepo struct {
	created   []*entity.Booking
	byID      map[uuid.UUID]*entity.Booking
	byRef     map[string]*entity.Booking
	createErr error
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{
		byID:  make(map[uuid.UUID]*entity.Booking),
		byRef: make(map[string]*entity.Booking),
	}
}

func (f *fakeBookingRepo) Create(ctx context.Context, booking *entity.Booking) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, booking)
	f.byID[booking.ID] = booking
	f.byRef[booking.Reference] = booking
	return nil
}

func (f *fakeBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	return f.byID[id], nil
}

func (f *fakeBookingRepo) FindByReference(ctx context.Context, reference string) (*entity.Booking, error) {
	return f.byRef[reference], nil
}

func (f *fakeBookingRepo) FindAll(ctx context.Context, limit, offset int) ([]*entity.Booking, error) {
	return f.created, nil
}

func (f *fakeBookingRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.created)), nil
}

func (f *fakeBookingRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus) error {
	booking, ok := f.byID[id]
	if !ok {
		return errors.New("booking not found")
	}
	booking.Status = status
	return nil
}

func (f *fakeBookingRepo) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status entity.PaymentStatus) error {
	booking, ok := f.byID[id]
	if !ok {
		return errors.New("booking not found")
	}
	booking.PaymentStatus = status
	return nil
}

type fakeVehicleRepo struct {
	vehicles map[string]*entity.Vehicle
}

func newFakeVehicleRepo(vehicles ...*entity.Vehicle) *fakeVehicleRepo {
	f := &fakeVehicleRepo{vehicles: make(map[string]*entity.Vehicle)}
	for _, v := range vehicles {
		f.vehicles[v.ID] = v
	}
	return f
}

func (f *fakeVehicleRepo) FindAllActive(ctx context.Context) ([]*entity.Vehicle, error) {
	var out []*entity.Vehicle
	for _, v := range f.vehicles {
		if v.IsActive {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *fakeVehicleRepo) FindByID(ctx context.Context, id string) (*entity.Vehicle, error) {
	return f.vehicles[id], nil
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func sedanVehicle() *entity.Vehicle {
	return &entity.Vehicle{
		ID:       "business-sedan",
		Category: "business",
		Name:     "Mercedes E-Class",
		Capacity: entity.VehicleCapacity{
			Passengers: 3,
			Luggage:    3,
		},
		BasePrice:    35,
		PricePerKm:   2,
		PricePerHour: 60,
		IsActive:     true,
	}
}

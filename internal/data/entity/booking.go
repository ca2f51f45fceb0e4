package entity

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// Booking is the immutable record created from a submitted draft plus the
// server-computed price. Reference is the public, opaque booking identifier.
type Booking struct {
	Base
	Reference         string         `db:"reference"`
	ServiceType       ServiceType    `db:"service_type"`
	TransferType      TransferType   `db:"transfer_type"`
	Pickup            Location       `db:"pickup"`
	Dropoff           Location       `db:"dropoff"`
	DistanceKm        float64        `db:"distance_km"`
	DurationMin       float64        `db:"duration_min"`
	DateTime          TripDateTime   `db:"-"`
	Passengers        PassengerInfo  `db:"-"`
	Contact           ContactInfo    `db:"-"`
	Extras            Extras         `db:"extras"`
	HourlyDuration    int            `db:"hourly_duration"`
	VehicleID         string         `db:"vehicle_id"`
	Pricing           PriceBreakdown `db:"pricing"`
	PaymentMethod     string         `db:"payment_method"`
	PaymentStatus     PaymentStatus  `db:"payment_status"`
	Status            BookingStatus  `db:"status"`
	CheckoutSessionID string         `db:"checkout_session_id"`
}

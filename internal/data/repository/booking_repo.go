package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/internal/data/entity"
	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByReference(ctx context.Context, reference string) (*entity.Booking, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Booking, error)
	Count(ctx context.Context) (int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus) error
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status entity.PaymentStatus) error
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `
	id, reference, service_type, transfer_type, pickup, dropoff,
	distance_km, duration_min, trip_date, trip_time, return_date, return_time,
	passenger_count, luggage, child_seats,
	first_name, last_name, email, phone, flight_number, notes,
	extras, hourly_duration, vehicle_id, pricing, total_price, currency,
	payment_method, payment_status, status, checkout_session_id,
	created_at, updated_at
`

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
		        $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31, $32, $33)
	`

	pickup, err := json.Marshal(booking.Pickup)
	if err != nil {
		return fmt.Errorf("marshal pickup: %w", err)
	}
	dropoff, err := json.Marshal(booking.Dropoff)
	if err != nil {
		return fmt.Errorf("marshal dropoff: %w", err)
	}
	extras, err := json.Marshal(booking.Extras)
	if err != nil {
		return fmt.Errorf("marshal extras: %w", err)
	}
	pricing, err := json.Marshal(booking.Pricing)
	if err != nil {
		return fmt.Errorf("marshal pricing: %w", err)
	}

	_, err = r.db.Exec(ctx, query,
		booking.ID,
		booking.Reference,
		booking.ServiceType,
		booking.TransferType,
		pickup,
		dropoff,
		booking.DistanceKm,
		booking.DurationMin,
		booking.DateTime.Date,
		booking.DateTime.Time,
		booking.DateTime.ReturnDate,
		booking.DateTime.ReturnTime,
		booking.Passengers.Count,
		booking.Passengers.Luggage,
		booking.Passengers.ChildSeats,
		booking.Contact.FirstName,
		booking.Contact.LastName,
		booking.Contact.Email,
		booking.Contact.Phone,
		booking.Contact.FlightNumber,
		booking.Contact.Notes,
		extras,
		booking.HourlyDuration,
		booking.VehicleID,
		pricing,
		booking.Pricing.Total,
		booking.Pricing.Currency,
		booking.PaymentMethod,
		booking.PaymentStatus,
		booking.Status,
		booking.CheckoutSessionID,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("reference", booking.Reference),
		)
		return fmt.Errorf("create booking %s: %w", booking.Reference, err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := r.scanBooking(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByReference(ctx context.Context, reference string) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE reference = $1`

	booking, err := r.scanBooking(r.db.QueryRow(ctx, query, reference))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by reference",
			zap.Error(err),
			zap.String("reference", reference),
		)
		return nil, fmt.Errorf("find booking by reference %s: %w", reference, err)
	}

	return booking, nil
}

func (r *bookingRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to list bookings",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := r.scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, nil
}

func (r *bookingRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings`).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings", zap.Error(err))
		return 0, fmt.Errorf("count bookings: %w", err)
	}
	return count, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus) error {
	query := `UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update booking %s status to %s: %w", id.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", id.String())
	}

	return nil
}

func (r *bookingRepository) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status entity.PaymentStatus) error {
	query := `UPDATE bookings SET payment_status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		r.log.Error("Failed to update payment status",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.String("payment_status", string(status)),
		)
		return fmt.Errorf("update booking %s payment status to %s: %w", id.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", id.String())
	}

	return nil
}

func (r *bookingRepository) scanBooking(row pgx.Row) (*entity.Booking, error) {
	var booking entity.Booking
	var pickup, dropoff, extras, pricing []byte
	var totalPrice float64
	var currency string

	err := row.Scan(
		&booking.ID,
		&booking.Reference,
		&booking.ServiceType,
		&booking.TransferType,
		&pickup,
		&dropoff,
		&booking.DistanceKm,
		&booking.DurationMin,
		&booking.DateTime.Date,
		&booking.DateTime.Time,
		&booking.DateTime.ReturnDate,
		&booking.DateTime.ReturnTime,
		&booking.Passengers.Count,
		&booking.Passengers.Luggage,
		&booking.Passengers.ChildSeats,
		&booking.Contact.FirstName,
		&booking.Contact.LastName,
		&booking.Contact.Email,
		&booking.Contact.Phone,
		&booking.Contact.FlightNumber,
		&booking.Contact.Notes,
		&extras,
		&booking.HourlyDuration,
		&booking.VehicleID,
		&pricing,
		&totalPrice,
		&currency,
		&booking.PaymentMethod,
		&booking.PaymentStatus,
		&booking.Status,
		&booking.CheckoutSessionID,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(pickup, &booking.Pickup); err != nil {
		return nil, fmt.Errorf("unmarshal pickup: %w", err)
	}
	if err := json.Unmarshal(dropoff, &booking.Dropoff); err != nil {
		return nil, fmt.Errorf("unmarshal dropoff: %w", err)
	}
	if err := json.Unmarshal(extras, &booking.Extras); err != nil {
		return nil, fmt.Errorf("unmarshal extras: %w", err)
	}
	if err := json.Unmarshal(pricing, &booking.Pricing); err != nil {
		return nil, fmt.Errorf("unmarshal pricing: %w", err)
	}

	return &booking, nil
}

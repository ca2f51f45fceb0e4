package repository

import (
	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Booking BookingRepository
	Vehicle VehicleRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Booking: NewBookingRepository(db, log),
		Vehicle: NewVehicleRepository(db, log),
	}
}

package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/internal/data/entity"
	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type VehicleRepository interface {
	FindAllActive(ctx context.Context) ([]*entity.Vehicle, error)
	FindByID(ctx context.Context, id string) (*entity.Vehicle, error)
}

type vehicleRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewVehicleRepository(db database.PgxIface, log *zap.Logger) VehicleRepository {
	return &vehicleRepository{
		db:  db,
		log: log.With(zap.String("repository", "vehicle")),
	}
}

const vehicleColumns = `
	id, category, name, passengers, luggage,
	base_price, price_per_km, price_per_hour, features, is_active
`

func (r *vehicleRepository) FindAllActive(ctx context.Context) ([]*entity.Vehicle, error) {
	query := `
		SELECT ` + vehicleColumns + `
		FROM vehicles
		WHERE is_active = true
		ORDER BY base_price
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list vehicles", zap.Error(err))
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []*entity.Vehicle
	for rows.Next() {
		vehicle, err := scanVehicle(rows)
		if err != nil {
			r.log.Error("Failed to scan vehicle row", zap.Error(err))
			return nil, fmt.Errorf("scan vehicle row: %w", err)
		}
		vehicles = append(vehicles, vehicle)
	}

	return vehicles, nil
}

func (r *vehicleRepository) FindByID(ctx context.Context, id string) (*entity.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1`

	vehicle, err := scanVehicle(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find vehicle by ID",
			zap.Error(err),
			zap.String("vehicle_id", id),
		)
		return nil, fmt.Errorf("find vehicle by ID %s: %w", id, err)
	}

	return vehicle, nil
}

func scanVehicle(row pgx.Row) (*entity.Vehicle, error) {
	var vehicle entity.Vehicle
	var features []byte

	err := row.Scan(
		&vehicle.ID,
		&vehicle.Category,
		&vehicle.Name,
		&vehicle.Capacity.Passengers,
		&vehicle.Capacity.Luggage,
		&vehicle.BasePrice,
		&vehicle.PricePerKm,
		&vehicle.PricePerHour,
		&features,
		&vehicle.IsActive,
	)
	if err != nil {
		return nil, err
	}

	if len(features) > 0 {
		if err := json.Unmarshal(features, &vehicle.Features); err != nil {
			return nil, fmt.Errorf("unmarshal features: %w", err)
		}
	}

	return &vehicle, nil
}

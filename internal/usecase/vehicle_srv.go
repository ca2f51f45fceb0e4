package usecase

import (
	"context"
	"errors"

	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/internal/data/repository"
	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/internal/dto/response"

	"go.uber.org/zap"
)

var ErrVehicleNotFound = errors.New("vehicle not found")

type VehicleService interface {
	GetAvailableVehicles(ctx context.Context) ([]response.VehicleResponse, error)
	GetVehicleByID(ctx context.Context, id string) (*response.VehicleResponse, error)
}

type vehicleService struct {
	repo repository.VehicleRepository
	log  *zap.Logger
}

func NewVehicleService(repo repository.VehicleRepository, log *zap.Logger) VehicleService {
	return &vehicleService{
		repo: repo,
		log:  log.With(zap.String("service", "vehicle")),
	}
}

func (s *vehicleService) GetAvailableVehicles(ctx context.Context) ([]response.VehicleResponse, error) {
	vehicles, err := s.repo.FindAllActive(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]response.VehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		resp = append(resp, response.VehicleToResponse(v))
	}
	return resp, nil
}

func (s *vehicleService) GetVehicleByID(ctx context.Context, id string) (*response.VehicleResponse, error) {
	vehicle, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, ErrVehicleNotFound
	}

	resp := response.VehicleToResponse(vehicle)
	return &resp, nil
}

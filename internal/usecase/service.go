package usecase

import (
	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/internal/data/draftstore"
	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/internal/data/repository"
	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/pkg/geo"
	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/pkg/payment"
	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Wizard  WizardService
	Vehicle VehicleService
	Booking BookingService
}

func NewService(
	repo *repository.Repository,
	drafts draftstore.Store,
	resolver geo.Resolver,
	provider payment.Provider,
	config *utils.Config,
	log *zap.Logger,
) *Service {
	wizardSrv := NewWizardService(drafts, resolver, config, log)

	return &Service{
		Wizard:  wizardSrv,
		Vehicle: NewVehicleService(repo.Vehicle, log),
		Booking: NewBookingService(repo, wizardSrv, resolver, provider, config, log),
	}
}

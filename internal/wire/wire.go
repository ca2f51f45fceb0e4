package wire

import (
	"net/http"

	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/internal/adaptor"
	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/internal/data/draftstore"
	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/internal/data/repository"
	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/internal/usecase"
	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/pkg/geo"
	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/pkg/middleware"
	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/pkg/payment"
	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired application.
type App struct {
	Router *chi.Mux
}

// Wiring initializes services and handlers and mounts all routes.
func Wiring(
	repo *repository.Repository,
	drafts draftstore.Store,
	resolver geo.Resolver,
	provider payment.Provider,
	config *utils.Config,
	logger *zap.Logger,
) *App {
	service := usecase.NewService(repo, drafts, resolver, provider, config, logger)
	handler := adaptor.NewHandler(service, config, logger)

	router := setupRouter(handler, config, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	// Apply routes
	wireWizard(r, handler.Wizard)
	wireVehicle(r, handler.Vehicle)
	wireBooking(r, handler.Booking, config, logger)
	wirePayment(r, handler.Payment)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}

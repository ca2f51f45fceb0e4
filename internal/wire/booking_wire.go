package wire

import (
	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/internal/adaptor"
	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/pkg/middleware"
	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// POST /api/bookings - submit the active wizard session as a booking
	r.Post("/api/bookings", bookingHandler.SubmitBooking)

	// GET /api/bookings/{reference} - customer booking lookup
	r.Get("/api/bookings/{reference}", bookingHandler.GetBookingByReference)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/bookings", func(r chi.Router) {
		r.Use(middleware.AdminAuth(config.Admin.TokenHash, log))

		r.Get("/", bookingHandler.ListBookings)              // GET /api/admin/bookings
		r.Get("/{id}", bookingHandler.GetBookingByID)        // GET /api/admin/bookings/{id}
		r.Post("/{id}/cancel", bookingHandler.CancelBooking) // POST /api/admin/bookings/{id}/cancel
	})
}

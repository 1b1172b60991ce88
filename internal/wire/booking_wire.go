package wire

import (
	"net/http"

	"meeting-scheduler/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	slotHandler *adaptor.SlotHandler,
	auth func(http.Handler) http.Handler,
	public func(http.Handler) http.Handler,
) {
	// ==================== PUBLIC ROUTES ====================
	// Attendee: lihat slot, booking, dan kelola booking via management token
	r.Route("/api/public/bookings", func(r chi.Router) {
		r.Use(public)

		r.Get("/available-slots", slotHandler.Available)
		r.Post("/", bookingHandler.CreatePublic)
		r.Get("/manage/{token}", bookingHandler.GetByToken)
		r.Post("/manage/{token}/cancel", bookingHandler.CancelByToken)
	})

	// ==================== HOST ROUTES ====================
	r.Route("/api/bookings", func(r chi.Router) {
		r.Use(auth)

		r.Get("/", bookingHandler.List)
		r.Post("/", bookingHandler.Create)
		r.Get("/upcoming", bookingHandler.Upcoming)
		r.Get("/occupied-slots", slotHandler.Occupied)
		r.Get("/{id}", bookingHandler.Get)
		r.Put("/{id}", bookingHandler.Update)
		r.Post("/{id}/cancel", bookingHandler.Cancel)
		r.Post("/{id}/complete", bookingHandler.Complete)
	})
}

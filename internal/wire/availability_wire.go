package wire

import (
	"net/http"

	"meeting-scheduler/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAvailability(r chi.Router, availabilityHandler *adaptor.AvailabilityHandler, auth func(http.Handler) http.Handler) {
	r.Route("/api/availabilities", func(r chi.Router) {
		r.Use(auth)

		r.Get("/", availabilityHandler.List)
		r.Post("/", availabilityHandler.Create)
		r.Get("/{id}", availabilityHandler.Get)
		r.Put("/{id}", availabilityHandler.Update)
		r.Delete("/{id}", availabilityHandler.Delete)
	})
}

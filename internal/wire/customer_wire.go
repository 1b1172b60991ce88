package wire

import (
	"net/http"

	"meeting-scheduler/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireCustomer(r chi.Router, customerHandler *adaptor.CustomerHandler, auth func(http.Handler) http.Handler) {
	r.Route("/api/customers", func(r chi.Router) {
		r.Use(auth)

		r.Get("/", customerHandler.List)
		r.Post("/", customerHandler.Create)
		r.Get("/{id}", customerHandler.Get)
		r.Put("/{id}", customerHandler.Update)
		r.Delete("/{id}", customerHandler.Delete)
	})
}

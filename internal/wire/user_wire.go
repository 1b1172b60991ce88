package wire

import (
	"net/http"

	"meeting-scheduler/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireUser(r chi.Router, userHandler *adaptor.UserHandler, auth func(http.Handler) http.Handler) {
	r.With(auth).Get("/api/users/me", userHandler.Me)
	r.With(auth).Put("/api/users/me", userHandler.UpdateMe)
}

package wire

import (
	"net/http"

	"meeting-scheduler/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireMeetingPage(
	r chi.Router,
	pageHandler *adaptor.MeetingPageHandler,
	auth func(http.Handler) http.Handler,
	public func(http.Handler) http.Handler,
) {
	// ==================== PUBLIC ROUTES ====================
	r.With(public).Get("/api/public/meeting-pages/{slug}", pageHandler.GetPublic)

	// ==================== HOST ROUTES ====================
	r.Route("/api/meeting-pages", func(r chi.Router) {
		r.Use(auth)

		r.Get("/", pageHandler.List)
		r.Post("/", pageHandler.Create)
		r.Get("/{id}", pageHandler.Get)
		r.Put("/{id}", pageHandler.Update)
		r.Delete("/{id}", pageHandler.Delete)
		r.Post("/{id}/duplicate", pageHandler.Duplicate)
	})
}

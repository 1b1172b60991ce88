package wire

import (
	"net/http"

	"meeting-scheduler/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAnalytics(r chi.Router, analyticsHandler *adaptor.AnalyticsHandler, auth func(http.Handler) http.Handler) {
	r.With(auth).Get("/api/analytics", analyticsHandler.Overview)
}

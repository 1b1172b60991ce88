package adaptor

import (
	"net/http"

	"meeting-scheduler/internal/usecase"
	"meeting-scheduler/pkg/utils"

	"go.uber.org/zap"
)

type AnalyticsHandler struct {
	service usecase.AnalyticsService
	log     *zap.Logger
}

func NewAnalyticsHandler(service usecase.AnalyticsService, log *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		service: service,
		log:     log.With(zap.String("handler", "analytics")),
	}
}

// Overview handles GET /api/analytics
func (h *AnalyticsHandler) Overview(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	stats, err := h.service.Overview(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "get analytics")
		return
	}

	utils.ResponseSuccess(w, "success", stats)
}

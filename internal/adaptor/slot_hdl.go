package adaptor

import (
	"errors"
	"net/http"

	"meeting-scheduler/internal/dto/request"
	"meeting-scheduler/internal/dto/response"
	"meeting-scheduler/internal/usecase"
	"meeting-scheduler/pkg/utils"

	"go.uber.org/zap"
)

// SlotHandler serves the two slot endpoints. Both answer with a bare
// {slots, message} or {error} body instead of the usual envelope, which is
// what the booking widget parses.
type SlotHandler struct {
	service usecase.SlotService
	log     *zap.Logger
}

func NewSlotHandler(service usecase.SlotService, log *zap.Logger) *SlotHandler {
	return &SlotHandler{
		service: service,
		log:     log.With(zap.String("handler", "slot")),
	}
}

// Available handles GET /api/public/bookings/available-slots
func (h *SlotHandler) Available(w http.ResponseWriter, r *http.Request) {
	slots, err := h.service.AvailableSlots(r.Context(), slotQuery(r))
	if err != nil {
		h.handleServiceError(w, err, "get available slots")
		return
	}

	utils.WriteJSON(w, http.StatusOK, slots)
}

// Occupied handles GET /api/bookings/occupied-slots
func (h *SlotHandler) Occupied(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, response.SlotErrorResponse{Error: "Authentication required"})
		return
	}

	slots, err := h.service.OccupiedSlots(r.Context(), userID, slotQuery(r))
	if err != nil {
		h.handleServiceError(w, err, "get occupied slots")
		return
	}

	utils.WriteJSON(w, http.StatusOK, slots)
}

func slotQuery(r *http.Request) *request.SlotQuery {
	query := r.URL.Query()
	return &request.SlotQuery{
		MeetingPageID: query.Get("meeting_page_id"),
		Date:          query.Get("date"),
		Timezone:      query.Get("timezone"),
	}
}

func (h *SlotHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	code := http.StatusInternalServerError
	msg := "Internal server error"

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		code, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, usecase.ErrNotFound):
		code, msg = http.StatusNotFound, err.Error()
	}

	if code == http.StatusInternalServerError {
		h.log.Error("Failed to "+operation, zap.Error(err))
	} else {
		h.log.Warn(operation+" failed", zap.Error(err), zap.Int("status", code))
	}

	utils.WriteJSON(w, code, response.SlotErrorResponse{Error: msg})
}

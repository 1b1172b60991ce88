package adaptor

import (
	"encoding/json"
	"net/http"

	"meeting-scheduler/internal/dto/request"
	"meeting-scheduler/internal/usecase"
	"meeting-scheduler/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// ==================== PUBLIC ====================

// CreatePublic handles POST /api/public/bookings
func (h *BookingHandler) CreatePublic(w http.ResponseWriter, r *http.Request) {
	var req request.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	booking, err := h.service.CreatePublic(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create public booking")
		return
	}

	utils.ResponseCreated(w, "Booking created successfully", booking)
}

// GetByToken handles GET /api/public/bookings/manage/{token}
func (h *BookingHandler) GetByToken(w http.ResponseWriter, r *http.Request) {
	booking, err := h.service.GetByToken(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		handleServiceError(w, h.log, err, "get booking by token")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// CancelByToken handles POST /api/public/bookings/manage/{token}/cancel
func (h *BookingHandler) CancelByToken(w http.ResponseWriter, r *http.Request) {
	booking, err := h.service.CancelByToken(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		handleServiceError(w, h.log, err, "cancel booking by token")
		return
	}

	utils.ResponseSuccess(w, "Booking cancelled successfully", booking)
}

// ==================== HOST ====================

// List handles GET /api/bookings?status=&page=&per_page=
func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	req := &request.BookingListRequest{Status: r.URL.Query().Get("status")}
	req.Page, req.PerPage = paginationFromQuery(r)

	bookings, err := h.service.List(r.Context(), userID, req)
	if err != nil {
		handleServiceError(w, h.log, err, "list bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// Create handles POST /api/bookings
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req request.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	booking, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create booking")
		return
	}

	utils.ResponseCreated(w, "Booking created successfully", booking)
}

// Upcoming handles GET /api/bookings/upcoming
func (h *BookingHandler) Upcoming(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	bookings, err := h.service.Upcoming(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "list upcoming bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// Get handles GET /api/bookings/{id}
func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	booking, err := h.service.Get(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// Update handles PUT /api/bookings/{id}
func (h *BookingHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req request.UpdateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	booking, err := h.service.Update(r.Context(), userID, chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update booking")
		return
	}

	utils.ResponseSuccess(w, "Booking updated successfully", booking)
}

// Cancel handles POST /api/bookings/{id}/cancel
func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	booking, err := h.service.Cancel(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "cancel booking")
		return
	}

	utils.ResponseSuccess(w, "Booking cancelled successfully", booking)
}

// Complete handles POST /api/bookings/{id}/complete
func (h *BookingHandler) Complete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	booking, err := h.service.Complete(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "complete booking")
		return
	}

	utils.ResponseSuccess(w, "Booking marked as completed", booking)
}

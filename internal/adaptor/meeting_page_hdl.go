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

type MeetingPageHandler struct {
	service usecase.MeetingPageService
	log     *zap.Logger
}

func NewMeetingPageHandler(service usecase.MeetingPageService, log *zap.Logger) *MeetingPageHandler {
	return &MeetingPageHandler{
		service: service,
		log:     log.With(zap.String("handler", "meeting_page")),
	}
}

// List handles GET /api/meeting-pages
func (h *MeetingPageHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	req := &request.PaginatedRequest{}
	req.Page, req.PerPage = paginationFromQuery(r)

	pages, err := h.service.List(r.Context(), userID, req)
	if err != nil {
		handleServiceError(w, h.log, err, "list meeting pages")
		return
	}

	utils.ResponseSuccess(w, "success", pages)
}

// Create handles POST /api/meeting-pages
func (h *MeetingPageHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req request.MeetingPageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	page, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create meeting page")
		return
	}

	utils.ResponseCreated(w, "Meeting page created successfully", page)
}

// Get handles GET /api/meeting-pages/{id}
func (h *MeetingPageHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	page, err := h.service.Get(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get meeting page")
		return
	}

	utils.ResponseSuccess(w, "success", page)
}

// Update handles PUT /api/meeting-pages/{id}
func (h *MeetingPageHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req request.MeetingPageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	page, err := h.service.Update(r.Context(), userID, chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update meeting page")
		return
	}

	utils.ResponseSuccess(w, "Meeting page updated successfully", page)
}

// Delete handles DELETE /api/meeting-pages/{id}
func (h *MeetingPageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete meeting page")
		return
	}

	utils.ResponseSuccess(w, "Meeting page deleted successfully", nil)
}

// Duplicate handles POST /api/meeting-pages/{id}/duplicate
func (h *MeetingPageHandler) Duplicate(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	page, err := h.service.Duplicate(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "duplicate meeting page")
		return
	}

	utils.ResponseCreated(w, "Meeting page duplicated successfully", page)
}

// GetPublic handles GET /api/public/meeting-pages/{slug}
func (h *MeetingPageHandler) GetPublic(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.GetPublic(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		handleServiceError(w, h.log, err, "get public meeting page")
		return
	}

	utils.ResponseSuccess(w, "success", page)
}

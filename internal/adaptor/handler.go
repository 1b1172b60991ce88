package adaptor

import (
	"errors"
	"net/http"

	"meeting-scheduler/internal/usecase"
	"meeting-scheduler/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Handler struct {
	Auth         *AuthHandler
	User         *UserHandler
	MeetingPage  *MeetingPageHandler
	Availability *AvailabilityHandler
	Booking      *BookingHandler
	Slot         *SlotHandler
	Customer     *CustomerHandler
	Analytics    *AnalyticsHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(service.Auth, log),
		User:         NewUserHandler(service.User, log),
		MeetingPage:  NewMeetingPageHandler(service.MeetingPage, log),
		Availability: NewAvailabilityHandler(service.Availability, log),
		Booking:      NewBookingHandler(service.Booking, log),
		Slot:         NewSlotHandler(service.Slot, log),
		Customer:     NewCustomerHandler(service.Customer, log),
		Analytics:    NewAnalyticsHandler(service.Analytics, log),
	}
}

// handleServiceError maps usecase error kinds to the response envelope.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		var fields any
		if fe := usecase.FieldErrors(err); len(fe) > 0 {
			fields = fe
			log.Warn("Invalid input for "+operation,
				zap.Error(err),
				zap.String("fields", utils.FormatValidationErrors(fe)))
		} else {
			log.Warn("Invalid input for "+operation, zap.Error(err))
		}
		utils.ResponseBadRequest(w, err.Error(), fields)

	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrConflict):
		log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseConflict(w, err.Error())

	case errors.Is(err, usecase.ErrUnauthorized):
		log.Warn(operation+" failed - unauthorized", zap.Error(err))
		utils.ResponseUnauthorized(w, err.Error())

	case errors.Is(err, usecase.ErrForbidden):
		log.Warn(operation+" failed - forbidden", zap.Error(err))
		utils.ResponseForbidden(w, err.Error())

	default:
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

// requireUser returns the authenticated host id, writing 401 when absent.
func requireUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return uuid.Nil, false
	}
	return userID, true
}

func paginationFromQuery(r *http.Request) (page, perPage int) {
	query := r.URL.Query()
	return utils.ParseInt(query.Get("page"), 1), utils.ParseInt(query.Get("per_page"), 10)
}

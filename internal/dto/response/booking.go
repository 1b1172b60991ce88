package response

import (
	"time"

	"meeting-scheduler/internal/data/entity"
)

type BookingResponse struct {
	ID              string               `json:"id"`
	MeetingPageID   string               `json:"meeting_page_id"`
	MeetingTitle    string               `json:"meeting_title,omitempty"`
	UserInput       map[string]any       `json:"user_input"`
	Date            time.Time            `json:"date"`
	DurationMinutes int                  `json:"duration_minutes,omitempty"`
	Status          entity.BookingStatus `json:"status"`
	AttendeeName    string               `json:"attendee_name"`
	AttendeeEmail   string               `json:"attendee_email"`
	Notes           string               `json:"notes"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

// PublicBookingResponse adds the token attendees use to manage their booking.
type PublicBookingResponse struct {
	BookingResponse
	ManagementToken string `json:"management_token"`
}

func BookingToResponse(b *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:            b.ID.String(),
		MeetingPageID: b.MeetingPageID.String(),
		UserInput:     b.UserInput,
		Date:          b.Date,
		Status:        b.Status,
		AttendeeName:  b.AttendeeName,
		AttendeeEmail: b.AttendeeEmail,
		Notes:         b.Notes,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

func HostBookingToResponse(hb *entity.HostBooking) BookingResponse {
	resp := BookingToResponse(&hb.Booking)
	resp.MeetingTitle = hb.PageTitle
	resp.DurationMinutes = hb.DurationMinutes
	return resp
}

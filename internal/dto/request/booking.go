package request

import "time"

// CreateBookingRequest is submitted from a public meeting page, or by the
// host booking on behalf of an attendee.
type CreateBookingRequest struct {
	MeetingPageID string         `json:"meeting_page_id" validate:"required,uuid"`
	Date          time.Time      `json:"date" validate:"required"`
	UserInput     map[string]any `json:"user_input"`
	AttendeeName  string         `json:"attendee_name" validate:"max=255"`
	AttendeeEmail string         `json:"attendee_email" validate:"omitempty,email"`
	Notes         string         `json:"notes"`
}

type UpdateBookingRequest struct {
	Date          *time.Time     `json:"date,omitempty"`
	UserInput     map[string]any `json:"user_input,omitempty"`
	AttendeeName  *string        `json:"attendee_name,omitempty" validate:"omitempty,max=255"`
	AttendeeEmail *string        `json:"attendee_email,omitempty" validate:"omitempty,email"`
	Notes         *string        `json:"notes,omitempty"`
}

type BookingListRequest struct {
	PaginatedRequest
	Status string `json:"status" validate:"omitempty,oneof=booked cancelled completed"`
}

// SlotQuery is shared by the available and occupied slot endpoints.
type SlotQuery struct {
	MeetingPageID string `json:"meeting_page_id"`
	Date          string `json:"date"`
	Timezone      string `json:"timezone"`
}

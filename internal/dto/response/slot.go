package response

// SlotsResponse is returned without the standard envelope.
type SlotsResponse struct {
	Slots   []SlotResponse `json:"slots"`
	Message string         `json:"message,omitempty"`
}

type SlotResponse struct {
	Time            string `json:"time"`
	EndTime         string `json:"end_time"`
	Display         string `json:"display"`
	DurationMinutes int    `json:"duration_minutes"`
}

type OccupiedSlotsResponse struct {
	Slots []OccupiedSlotResponse `json:"slots"`
}

type OccupiedSlotResponse struct {
	Time            string `json:"time"`
	Display         string `json:"display"`
	DurationMinutes int    `json:"duration_minutes"`
	Status          string `json:"status"`
	BookingID       string `json:"booking_id"`
	AttendeeName    string `json:"attendee_name"`
	AttendeeEmail   string `json:"attendee_email"`
}

type SlotErrorResponse struct {
	Error string `json:"error"`
}

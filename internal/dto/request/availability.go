package request

// AvailabilityRequest times accept "15:04" or "15:04:05".
type AvailabilityRequest struct {
	Weekday   *int   `json:"weekday" validate:"required,min=0,max=6"`
	StartTime string `json:"start_time" validate:"required,clock"`
	EndTime   string `json:"end_time" validate:"required,clock"`
	IsActive  *bool  `json:"is_active,omitempty"`
}

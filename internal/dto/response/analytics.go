package response

type AnalyticsResponse struct {
	TotalBookings             int          `json:"total_bookings"`
	TotalCancellations        int          `json:"total_cancellations"`
	TotalCompleted            int          `json:"total_completed"`
	AverageBookingRatePerWeek float64      `json:"average_booking_rate_per_week"`
	UpcomingMeetingsCount     int          `json:"upcoming_meetings_count"`
	DailyStats                []StatBucket `json:"daily_stats"`
	WeeklyStats               []StatBucket `json:"weekly_stats"`
	MonthlyStats              []StatBucket `json:"monthly_stats"`
}

// StatBucket counts bookings created inside one period by current status.
// Exactly one of Date, Week or Month is set.
type StatBucket struct {
	Date          string `json:"date,omitempty"`
	Week          string `json:"week,omitempty"`
	Month         string `json:"month,omitempty"`
	Bookings      int    `json:"bookings"`
	Cancellations int    `json:"cancellations"`
	Completed     int    `json:"completed"`
}

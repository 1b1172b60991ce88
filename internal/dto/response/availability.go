package response

import "meeting-scheduler/internal/data/entity"

type AvailabilityResponse struct {
	ID        string `json:"id"`
	Weekday   int    `json:"weekday"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	IsActive  bool   `json:"is_active"`
}

func AvailabilityToResponse(a *entity.Availability) AvailabilityResponse {
	return AvailabilityResponse{
		ID:        a.ID.String(),
		Weekday:   a.Weekday,
		StartTime: a.StartTime,
		EndTime:   a.EndTime,
		IsActive:  a.IsActive,
	}
}

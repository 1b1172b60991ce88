package response

import (
	"encoding/json"
	"time"

	"meeting-scheduler/internal/data/entity"
)

type MeetingPageResponse struct {
	ID              string             `json:"id"`
	Title           string             `json:"title"`
	Slug            string             `json:"slug"`
	Theme           json.RawMessage    `json:"theme"`
	Fields          json.RawMessage    `json:"fields"`
	LayoutStyle     entity.LayoutStyle `json:"layout_style"`
	EventType       string             `json:"event_type"`
	DurationMinutes int                `json:"duration_minutes"`
	IsActive        bool               `json:"is_active"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

// PublicMeetingPageResponse is what attendees see on the booking page.
type PublicMeetingPageResponse struct {
	ID              string             `json:"id"`
	Title           string             `json:"title"`
	Slug            string             `json:"slug"`
	Theme           json.RawMessage    `json:"theme"`
	Fields          json.RawMessage    `json:"fields"`
	LayoutStyle     entity.LayoutStyle `json:"layout_style"`
	EventType       string             `json:"event_type"`
	DurationMinutes int                `json:"duration_minutes"`
	HostName        string             `json:"host_name"`
}

func MeetingPageToResponse(p *entity.MeetingPage) MeetingPageResponse {
	return MeetingPageResponse{
		ID:              p.ID.String(),
		Title:           p.Title,
		Slug:            p.Slug,
		Theme:           p.Theme,
		Fields:          p.Fields,
		LayoutStyle:     p.LayoutStyle,
		EventType:       p.EventType,
		DurationMinutes: p.SlotMinutes(),
		IsActive:        p.IsActive,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

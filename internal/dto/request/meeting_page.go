package request

import "encoding/json"

type MeetingPageRequest struct {
	Title           string          `json:"title" validate:"required,max=255"`
	Slug            string          `json:"slug" validate:"omitempty,max=255"`
	Theme           json.RawMessage `json:"theme,omitempty"`
	Fields          json.RawMessage `json:"fields,omitempty"`
	LayoutStyle     string          `json:"layout_style" validate:"omitempty,oneof=classic minimal modern"`
	EventType       string          `json:"event_type" validate:"max=100"`
	DurationMinutes int             `json:"duration_minutes" validate:"omitempty,min=5,max=720"`
	IsActive        *bool           `json:"is_active,omitempty"`
}

package entity

import (
	"encoding/json"

	"github.com/google/uuid"
)

type LayoutStyle string

const (
	LayoutClassic LayoutStyle = "classic"
	LayoutMinimal LayoutStyle = "minimal"
	LayoutModern  LayoutStyle = "modern"
)

const DefaultDurationMinutes = 30

// MeetingPage is a public booking page. Theme and Fields are stored as-is.
type MeetingPage struct {
	BaseNoDelete
	UserID          uuid.UUID       `db:"user_id"`
	Title           string          `db:"title"`
	Slug            string          `db:"slug"`
	Theme           json.RawMessage `db:"theme"`
	Fields          json.RawMessage `db:"fields"`
	LayoutStyle     LayoutStyle     `db:"layout_style"`
	EventType       string          `db:"event_type"`
	DurationMinutes int             `db:"duration_minutes"`
	IsActive        bool            `db:"is_active"`
}

// SlotMinutes is the slot length used for tiling; unset means 30.
func (p *MeetingPage) SlotMinutes() int {
	if p.DurationMinutes <= 0 {
		return DefaultDurationMinutes
	}
	return p.DurationMinutes
}

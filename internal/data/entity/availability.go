package entity

import "github.com/google/uuid"

// Availability is a recurring weekly window. Weekday 0 is Monday.
// StartTime and EndTime are wall-clock values formatted "15:04:05".
type Availability struct {
	BaseNoDelete
	UserID    uuid.UUID `db:"user_id"`
	Weekday   int       `db:"weekday"`
	StartTime string    `db:"start_time"`
	EndTime   string    `db:"end_time"`
	IsActive  bool      `db:"is_active"`
}

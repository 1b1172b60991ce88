// Package notification renders booking emails and delivers them off the
// request path.
package notification

import (
	"strings"

	"meeting-scheduler/internal/data/entity"
)

type Action string

const (
	ActionCreated   Action = "created"
	ActionUpdated   Action = "updated"
	ActionCancelled Action = "cancelled"
)

// StatusLine is the verb used in the subject and first sentence.
func (a Action) StatusLine() string {
	switch a {
	case ActionUpdated:
		return "updated"
	case ActionCancelled:
		return "cancelled"
	default:
		return "confirmed"
	}
}

// Job is a booking email waiting to be rendered and sent.
type Job struct {
	Action    Action
	Booking   entity.Booking
	PageTitle string
	HostName  string
}

type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// Recipient is the attendee email, or the form's email field.
func (j Job) Recipient() string {
	if email := strings.TrimSpace(j.Booking.AttendeeEmail); email != "" {
		return email
	}
	if email, ok := j.Booking.UserInput["email"].(string); ok {
		return strings.TrimSpace(email)
	}
	return ""
}

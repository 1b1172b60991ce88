package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusBooked    BookingStatus = "booked"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

type Booking struct {
	BaseNoDelete
	MeetingPageID   uuid.UUID      `db:"meeting_page_id"`
	UserInput       map[string]any `db:"user_input"`
	Date            time.Time      `db:"date"`
	Status          BookingStatus  `db:"status"`
	AttendeeName    string         `db:"attendee_name"`
	AttendeeEmail   string         `db:"attendee_email"`
	Notes           string         `db:"notes"`
	ManagementToken uuid.UUID      `db:"management_token"`
}

// HostBooking is a booking joined with the page it was made on.
type HostBooking struct {
	Booking
	HostID          uuid.UUID `db:"host_id"`
	PageTitle       string    `db:"page_title"`
	DurationMinutes int       `db:"duration_minutes"`
}

// BookingActivity is the slice of a booking analytics needs.
type BookingActivity struct {
	Status    BookingStatus `db:"status"`
	Date      time.Time     `db:"date"`
	CreatedAt time.Time     `db:"created_at"`
}

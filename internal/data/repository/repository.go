package repository

import (
	"meeting-scheduler/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User         UserRepository
	Session      SessionRepository
	MeetingPage  MeetingPageRepository
	Availability AvailabilityRepository
	Booking      BookingRepository
	Customer     CustomerRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:         NewUserRepository(db, log),
		Session:      NewSessionRepository(db, log),
		MeetingPage:  NewMeetingPageRepository(db, log),
		Availability: NewAvailabilityRepository(db, log),
		Booking:      NewBookingRepository(db, log),
		Customer:     NewCustomerRepository(db, log),
	}
}

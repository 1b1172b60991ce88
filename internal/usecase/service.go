package usecase

import (
	"context"

	"meeting-scheduler/internal/data/repository"
	"meeting-scheduler/internal/notification"
	"meeting-scheduler/internal/scheduling"
	"meeting-scheduler/pkg/utils"

	"go.uber.org/zap"
)

// TxRunner runs fn inside one database transaction.
type TxRunner func(ctx context.Context, fn func(ctx context.Context) error) error

// Notifier queues booking emails for delivery after the request.
type Notifier interface {
	Enqueue(job notification.Job) bool
}

type Service struct {
	Auth         AuthService
	User         UserService
	MeetingPage  MeetingPageService
	Availability AvailabilityService
	Booking      BookingService
	Slot         SlotService
	Customer     CustomerService
	Analytics    AnalyticsService
}

func NewService(
	repo *repository.Repository,
	tx TxRunner,
	notifier Notifier,
	settings scheduling.Settings,
	config *utils.Config,
	log *zap.Logger,
) *Service {
	return &Service{
		Auth:         NewAuthService(repo, config, log),
		User:         NewUserService(repo.User, log),
		MeetingPage:  NewMeetingPageService(repo, log),
		Availability: NewAvailabilityService(repo.Availability, log),
		Booking:      NewBookingService(repo, tx, notifier, log),
		Slot:         NewSlotService(repo, settings, log),
		Customer:     NewCustomerService(repo.Customer, log),
		Analytics:    NewAnalyticsService(repo.Booking, settings, log),
	}
}

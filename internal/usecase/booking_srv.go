package usecase

import (
	"context"
	"fmt"
	"maps"
	"strings"
	"time"

	"meeting-scheduler/internal/data/entity"
	"meeting-scheduler/internal/data/repository"
	"meeting-scheduler/internal/dto/request"
	"meeting-scheduler/internal/dto/response"
	"meeting-scheduler/internal/notification"
	"meeting-scheduler/pkg/database"
	"meeting-scheduler/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const upcomingLimit = 10

type BookingService interface {
	// Public, no authentication
	CreatePublic(ctx context.Context, req *request.CreateBookingRequest) (*response.PublicBookingResponse, error)
	GetByToken(ctx context.Context, token string) (*response.BookingResponse, error)
	CancelByToken(ctx context.Context, token string) (*response.BookingResponse, error)

	// Host
	Create(ctx context.Context, hostID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	List(ctx context.Context, hostID uuid.UUID, req *request.BookingListRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	Get(ctx context.Context, hostID uuid.UUID, bookingID string) (*response.BookingResponse, error)
	Update(ctx context.Context, hostID uuid.UUID, bookingID string, req *request.UpdateBookingRequest) (*response.BookingResponse, error)
	Cancel(ctx context.Context, hostID uuid.UUID, bookingID string) (*response.BookingResponse, error)
	Complete(ctx context.Context, hostID uuid.UUID, bookingID string) (*response.BookingResponse, error)
	Upcoming(ctx context.Context, hostID uuid.UUID) ([]response.BookingResponse, error)
}

type bookingService struct {
	repo     *repository.Repository
	tx       TxRunner
	notifier Notifier
	now      func() time.Time
	log      *zap.Logger
}

func NewBookingService(repo *repository.Repository, tx TxRunner, notifier Notifier, log *zap.Logger) BookingService {
	return &bookingService{
		repo:     repo,
		tx:       tx,
		notifier: notifier,
		now:      time.Now,
		log:      log.With(zap.String("service", "booking")),
	}
}

// CreatePublic books a slot from a public page and records the attendee as
// a customer of the host in the same transaction.
func (s *bookingService) CreatePublic(ctx context.Context, req *request.CreateBookingRequest) (*response.PublicBookingResponse, error) {
	page, booking, err := s.prepare(ctx, req)
	if err != nil {
		return nil, err
	}
	if !page.IsActive {
		return nil, notFound("meeting page")
	}

	host, err := s.findHost(ctx, page.UserID)
	if err != nil {
		return nil, err
	}

	err = s.tx(ctx, func(ctx context.Context) error {
		if err := s.insert(ctx, booking); err != nil {
			return err
		}
		if err := s.upsertCustomer(ctx, page.UserID, booking); err != nil {
			return err
		}
		s.notifyOnCommit(ctx, notification.ActionCreated, booking, page.Title, host)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Public booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("page_id", page.ID.String()),
		zap.Time("date", booking.Date))

	return &response.PublicBookingResponse{
		BookingResponse: bookingResponse(booking, page),
		ManagementToken: booking.ManagementToken.String(),
	}, nil
}

// Create books on behalf of an attendee from the host dashboard.
func (s *bookingService) Create(ctx context.Context, hostID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	page, booking, err := s.prepare(ctx, req)
	if err != nil {
		return nil, err
	}
	if page.UserID != hostID {
		return nil, notFound("meeting page")
	}

	host, err := s.findHost(ctx, hostID)
	if err != nil {
		return nil, err
	}

	err = s.tx(ctx, func(ctx context.Context) error {
		if err := s.insert(ctx, booking); err != nil {
			return err
		}
		s.notifyOnCommit(ctx, notification.ActionCreated, booking, page.Title, host)
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := bookingResponse(booking, page)
	return &resp, nil
}

func (s *bookingService) List(ctx context.Context, hostID uuid.UUID, req *request.BookingListRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	status := entity.BookingStatus(req.Status)
	bookings, err := s.repo.Booking.FindByHost(ctx, hostID, status, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	total, err := s.repo.Booking.CountByHost(ctx, hostID, status)
	if err != nil {
		return nil, fmt.Errorf("count bookings: %w", err)
	}

	items := make([]response.BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = response.HostBookingToResponse(b)
	}

	return response.NewPaginatedResponse(items, req.Page, req.Limit(), total), nil
}

func (s *bookingService) Get(ctx context.Context, hostID uuid.UUID, bookingID string) (*response.BookingResponse, error) {
	hb, err := s.findOwned(ctx, hostID, bookingID)
	if err != nil {
		return nil, err
	}

	resp := response.HostBookingToResponse(hb)
	return &resp, nil
}

func (s *bookingService) Update(ctx context.Context, hostID uuid.UUID, bookingID string, req *request.UpdateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	hb, err := s.findOwned(ctx, hostID, bookingID)
	if err != nil {
		return nil, err
	}

	b := &hb.Booking
	if req.Date != nil {
		if req.Date.IsZero() {
			return nil, invalidInput("date must not be empty")
		}
		b.Date = *req.Date
	}
	if req.UserInput != nil {
		b.UserInput = req.UserInput
	}
	if req.AttendeeName != nil {
		b.AttendeeName = strings.TrimSpace(*req.AttendeeName)
	}
	if req.AttendeeEmail != nil {
		b.AttendeeEmail = strings.TrimSpace(*req.AttendeeEmail)
	}
	if req.Notes != nil {
		b.Notes = *req.Notes
	}

	if err := s.save(ctx, hb, notification.ActionUpdated); err != nil {
		return nil, err
	}

	resp := response.HostBookingToResponse(hb)
	return &resp, nil
}

func (s *bookingService) Cancel(ctx context.Context, hostID uuid.UUID, bookingID string) (*response.BookingResponse, error) {
	hb, err := s.findOwned(ctx, hostID, bookingID)
	if err != nil {
		return nil, err
	}
	return s.cancel(ctx, hb)
}

// Complete marks a booking as held. No email is sent.
func (s *bookingService) Complete(ctx context.Context, hostID uuid.UUID, bookingID string) (*response.BookingResponse, error) {
	hb, err := s.findOwned(ctx, hostID, bookingID)
	if err != nil {
		return nil, err
	}

	if hb.Status == entity.BookingStatusCancelled {
		return nil, newError(ErrConflict, "cancelled booking cannot be completed")
	}

	hb.Status = entity.BookingStatusCompleted
	if err := s.save(ctx, hb, ""); err != nil {
		return nil, err
	}

	resp := response.HostBookingToResponse(hb)
	return &resp, nil
}

// Upcoming returns the next booked meetings from now.
func (s *bookingService) Upcoming(ctx context.Context, hostID uuid.UUID) ([]response.BookingResponse, error) {
	bookings, err := s.repo.Booking.FindUpcomingByHost(ctx, hostID, s.now(), upcomingLimit)
	if err != nil {
		return nil, fmt.Errorf("list upcoming bookings: %w", err)
	}

	items := make([]response.BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = response.HostBookingToResponse(b)
	}
	return items, nil
}

func (s *bookingService) GetByToken(ctx context.Context, token string) (*response.BookingResponse, error) {
	hb, err := s.findByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	resp := response.HostBookingToResponse(hb)
	return &resp, nil
}

// CancelByToken lets the attendee cancel using the link from their email.
func (s *bookingService) CancelByToken(ctx context.Context, token string) (*response.BookingResponse, error) {
	hb, err := s.findByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if hb.Status != entity.BookingStatusBooked {
		return nil, newError(ErrConflict, "booking is already %s", hb.Status)
	}
	return s.cancel(ctx, hb)
}

func (s *bookingService) cancel(ctx context.Context, hb *entity.HostBooking) (*response.BookingResponse, error) {
	if hb.Status == entity.BookingStatusCancelled {
		resp := response.HostBookingToResponse(hb)
		return &resp, nil
	}

	hb.Status = entity.BookingStatusCancelled
	if err := s.save(ctx, hb, notification.ActionCancelled); err != nil {
		return nil, err
	}

	s.log.Info("Booking cancelled", zap.String("booking_id", hb.ID.String()))

	resp := response.HostBookingToResponse(hb)
	return &resp, nil
}

// save persists hb and, when action is set, emails the attendee after commit.
func (s *bookingService) save(ctx context.Context, hb *entity.HostBooking, action notification.Action) error {
	var host *entity.User
	if action != "" {
		var err error
		if host, err = s.findHost(ctx, hb.HostID); err != nil {
			return err
		}
	}

	hb.UpdatedAt = s.now()
	return s.tx(ctx, func(ctx context.Context) error {
		if err := s.repo.Booking.Update(ctx, &hb.Booking); err != nil {
			if database.IsUniqueViolation(err) {
				return newError(ErrConflict, "slot already booked")
			}
			return fmt.Errorf("update booking: %w", err)
		}
		if action != "" {
			s.notifyOnCommit(ctx, action, &hb.Booking, hb.PageTitle, host)
		}
		return nil
	})
}

// prepare validates req and builds the booking without storing it.
func (s *bookingService) prepare(ctx context.Context, req *request.CreateBookingRequest) (*entity.MeetingPage, *entity.Booking, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, nil, validationError(errs)
	}

	pageID, err := uuid.Parse(req.MeetingPageID)
	if err != nil {
		return nil, nil, invalidInput("invalid meeting_page_id")
	}

	page, err := s.repo.MeetingPage.FindByID(ctx, pageID)
	if err != nil {
		return nil, nil, fmt.Errorf("find meeting page: %w", err)
	}
	if page == nil {
		return nil, nil, notFound("meeting page")
	}

	form := req.UserInput
	if form == nil {
		form = map[string]any{}
	}

	name := strings.TrimSpace(req.AttendeeName)
	if name == "" {
		name = formValue(form, "name")
	}
	email := strings.TrimSpace(req.AttendeeEmail)
	if email == "" {
		email = formValue(form, "email")
	}

	now := s.now()
	booking := &entity.Booking{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		MeetingPageID:   page.ID,
		UserInput:       form,
		Date:            req.Date,
		Status:          entity.BookingStatusBooked,
		AttendeeName:    name,
		AttendeeEmail:   email,
		Notes:           req.Notes,
		ManagementToken: uuid.New(),
	}

	return page, booking, nil
}

func (s *bookingService) insert(ctx context.Context, b *entity.Booking) error {
	if err := s.repo.Booking.Create(ctx, b); err != nil {
		if database.IsUniqueViolation(err) {
			return newError(ErrConflict, "slot already booked")
		}
		return fmt.Errorf("create booking: %w", err)
	}
	return nil
}

func (s *bookingService) upsertCustomer(ctx context.Context, hostID uuid.UUID, b *entity.Booking) error {
	metadata := maps.Clone(b.UserInput)
	if metadata == nil {
		metadata = map[string]any{}
	}

	c := &entity.Customer{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: b.CreatedAt,
			UpdatedAt: b.CreatedAt,
		},
		UserID:       hostID,
		Name:         b.AttendeeName,
		Phone:        formValue(b.UserInput, "phone"),
		Organization: formValue(b.UserInput, "organization"),
		Metadata:     metadata,
	}
	if b.AttendeeEmail != "" {
		email := b.AttendeeEmail
		c.Email = &email
	}

	if err := s.repo.Customer.UpsertByEmail(ctx, c); err != nil {
		return fmt.Errorf("record customer: %w", err)
	}
	return nil
}

func (s *bookingService) notifyOnCommit(ctx context.Context, action notification.Action, b *entity.Booking, title string, host *entity.User) {
	job := notification.Job{
		Action:    action,
		Booking:   *b,
		PageTitle: title,
		HostName:  host.DisplayName(),
	}
	database.OnCommit(ctx, func() {
		s.notifier.Enqueue(job)
	})
}

func (s *bookingService) findHost(ctx context.Context, hostID uuid.UUID) (*entity.User, error) {
	host, err := s.repo.User.FindByID(ctx, hostID)
	if err != nil {
		return nil, fmt.Errorf("find host: %w", err)
	}
	if host == nil {
		return nil, notFound("host")
	}
	return host, nil
}

func (s *bookingService) findOwned(ctx context.Context, hostID uuid.UUID, bookingID string) (*entity.HostBooking, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, notFound("booking")
	}

	hb, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if hb == nil || hb.HostID != hostID {
		return nil, notFound("booking")
	}
	return hb, nil
}

func (s *bookingService) findByToken(ctx context.Context, token string) (*entity.HostBooking, error) {
	id, err := uuid.Parse(token)
	if err != nil {
		return nil, notFound("booking")
	}

	hb, err := s.repo.Booking.FindByManagementToken(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if hb == nil {
		return nil, notFound("booking")
	}
	return hb, nil
}

func bookingResponse(b *entity.Booking, page *entity.MeetingPage) response.BookingResponse {
	resp := response.BookingToResponse(b)
	resp.MeetingTitle = page.Title
	resp.DurationMinutes = page.SlotMinutes()
	return resp
}

func formValue(form map[string]any, key string) string {
	v, _ := form[key].(string)
	return strings.TrimSpace(v)
}

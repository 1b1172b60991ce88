package usecase

import (
	"context"
	"time"

	"meeting-scheduler/internal/data/entity"
	"meeting-scheduler/internal/data/repository"
	"meeting-scheduler/internal/notification"
	"meeting-scheduler/internal/scheduling"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Fakes embed the repository interfaces; calling a method a test did not
// expect panics on the nil embedded value.

type fakeUsers struct {
	repository.UserRepository
	users   map[uuid.UUID]*entity.User
	updated []*entity.User
}

func (f *fakeUsers) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return f.users[id], nil
}

func (f *fakeUsers) Update(ctx context.Context, user *entity.User) error {
	f.updated = append(f.updated, user)
	return nil
}

type fakeSessions struct {
	repository.SessionRepository
	revokedFor []uuid.UUID
}

func (f *fakeSessions) RevokeAllUserSessions(ctx context.Context, userID uuid.UUID) error {
	f.revokedFor = append(f.revokedFor, userID)
	return nil
}

type fakePages struct {
	repository.MeetingPageRepository
	pages map[uuid.UUID]*entity.MeetingPage
}

func (f *fakePages) FindByID(ctx context.Context, id uuid.UUID) (*entity.MeetingPage, error) {
	return f.pages[id], nil
}

func (f *fakePages) FindBySlug(ctx context.Context, slug string) (*entity.MeetingPage, error) {
	for _, p := range f.pages {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakePages) SlugExists(ctx context.Context, slug string) (bool, error) {
	p, _ := f.FindBySlug(ctx, slug)
	return p != nil, nil
}

func (f *fakePages) Create(ctx context.Context, page *entity.MeetingPage) error {
	f.pages[page.ID] = page
	return nil
}

type fakeAvailability struct {
	repository.AvailabilityRepository
	rows []*entity.Availability
}

func (f *fakeAvailability) Create(ctx context.Context, a *entity.Availability) error {
	f.rows = append(f.rows, a)
	return nil
}

func (f *fakeAvailability) FindActiveByUserAndWeekday(ctx context.Context, userID uuid.UUID, weekday int) ([]*entity.Availability, error) {
	var out []*entity.Availability
	for _, a := range f.rows {
		if a.UserID == userID && a.Weekday == weekday && a.IsActive {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeBookings struct {
	repository.BookingRepository
	bookings  []*entity.HostBooking
	activity  []entity.BookingActivity
	createErr error
	updateErr error
	created   []*entity.Booking
	updated   []*entity.Booking
}

func (f *fakeBookings) Create(ctx context.Context, b *entity.Booking) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, b)
	return nil
}

func (f *fakeBookings) Update(ctx context.Context, b *entity.Booking) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = append(f.updated, b)
	return nil
}

func (f *fakeBookings) FindByID(ctx context.Context, id uuid.UUID) (*entity.HostBooking, error) {
	for _, b := range f.bookings {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, nil
}

func (f *fakeBookings) FindByManagementToken(ctx context.Context, token uuid.UUID) (*entity.HostBooking, error) {
	for _, b := range f.bookings {
		if b.ManagementToken == token {
			return b, nil
		}
	}
	return nil, nil
}

func (f *fakeBookings) FindByPageInRange(ctx context.Context, pageID uuid.UUID, from, to time.Time, status entity.BookingStatus) ([]*entity.Booking, error) {
	var out []*entity.Booking
	for _, b := range f.bookings {
		if b.MeetingPageID != pageID || b.Date.Before(from) || !b.Date.Before(to) {
			continue
		}
		if status != "" && b.Status != status {
			continue
		}
		out = append(out, &b.Booking)
	}
	return out, nil
}

func (f *fakeBookings) FindByHostInRange(ctx context.Context, hostID uuid.UUID, from, to time.Time) ([]*entity.HostBooking, error) {
	var out []*entity.HostBooking
	for _, b := range f.bookings {
		if b.HostID == hostID && !b.Date.Before(from) && b.Date.Before(to) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookings) FindActivityByHost(ctx context.Context, hostID uuid.UUID) ([]entity.BookingActivity, error) {
	return f.activity, nil
}

type fakeCustomers struct {
	repository.CustomerRepository
	upserted  []*entity.Customer
	created   []*entity.Customer
	createErr error
}

func (f *fakeCustomers) UpsertByEmail(ctx context.Context, c *entity.Customer) error {
	f.upserted = append(f.upserted, c)
	return nil
}

func (f *fakeCustomers) Create(ctx context.Context, c *entity.Customer) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, c)
	return nil
}

type fakeNotifier struct {
	jobs []notification.Job
}

func (f *fakeNotifier) Enqueue(job notification.Job) bool {
	f.jobs = append(f.jobs, job)
	return true
}

// directTx runs fn without a transaction, so commit hooks fire immediately.
func directTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fixture is one host with one active 30-minute meeting page.
type fixture struct {
	host         *entity.User
	page         *entity.MeetingPage
	users        *fakeUsers
	pages        *fakePages
	availability *fakeAvailability
	bookings     *fakeBookings
	customers    *fakeCustomers
	repo         *repository.Repository
}

func newFixture() *fixture {
	host := &entity.User{
		Base:      entity.Base{ID: uuid.New()},
		Email:     "host@example.com",
		FirstName: "Dana",
		LastName:  "Host",
	}
	page := &entity.MeetingPage{
		BaseNoDelete:    entity.BaseNoDelete{ID: uuid.New()},
		UserID:          host.ID,
		Title:           "Intro call",
		Slug:            "intro-call",
		DurationMinutes: 30,
		IsActive:        true,
	}

	f := &fixture{
		host:         host,
		page:         page,
		users:        &fakeUsers{users: map[uuid.UUID]*entity.User{host.ID: host}},
		pages:        &fakePages{pages: map[uuid.UUID]*entity.MeetingPage{page.ID: page}},
		availability: &fakeAvailability{},
		bookings:     &fakeBookings{},
		customers:    &fakeCustomers{},
	}
	f.repo = &repository.Repository{
		User:         f.users,
		MeetingPage:  f.pages,
		Availability: f.availability,
		Booking:      f.bookings,
		Customer:     f.customers,
	}
	return f
}

func (f *fixture) addWindow(weekday int, start, end string) {
	f.availability.rows = append(f.availability.rows, &entity.Availability{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New()},
		UserID:       f.host.ID,
		Weekday:      weekday,
		StartTime:    start,
		EndTime:      end,
		IsActive:     true,
	})
}

func (f *fixture) addBooking(date time.Time, status entity.BookingStatus, form map[string]any) *entity.HostBooking {
	b := &entity.HostBooking{
		Booking: entity.Booking{
			BaseNoDelete:    entity.BaseNoDelete{ID: uuid.New()},
			MeetingPageID:   f.page.ID,
			UserInput:       form,
			Date:            date,
			Status:          status,
			AttendeeName:    "Alex",
			AttendeeEmail:   "alex@example.com",
			ManagementToken: uuid.New(),
		},
		HostID:          f.host.ID,
		PageTitle:       f.page.Title,
		DurationMinutes: f.page.DurationMinutes,
	}
	f.bookings.bookings = append(f.bookings.bookings, b)
	return b
}

func testSettings(now time.Time, policy scheduling.OverlapPolicy) scheduling.Settings {
	return scheduling.Settings{
		DefaultLocation: time.UTC,
		Now:             func() time.Time { return now },
		Policy:          policy,
	}
}

var testLog = zap.NewNop()

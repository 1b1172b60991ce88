package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"meeting-scheduler/internal/data/entity"
	"meeting-scheduler/internal/data/repository"
	"meeting-scheduler/internal/dto/request"
	"meeting-scheduler/internal/dto/response"
	"meeting-scheduler/internal/scheduling"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const noAvailabilityMessage = "No availability configured for this date."

// SlotService answers "what can be booked" and "what is already taken"
// for one meeting page and calendar date.
type SlotService interface {
	AvailableSlots(ctx context.Context, q *request.SlotQuery) (*response.SlotsResponse, error)
	OccupiedSlots(ctx context.Context, hostID uuid.UUID, q *request.SlotQuery) (*response.OccupiedSlotsResponse, error)
}

type slotService struct {
	pages        repository.MeetingPageRepository
	availability repository.AvailabilityRepository
	bookings     repository.BookingRepository
	settings     scheduling.Settings
	log          *zap.Logger
}

func NewSlotService(repo *repository.Repository, settings scheduling.Settings, log *zap.Logger) SlotService {
	return &slotService{
		pages:        repo.MeetingPage,
		availability: repo.Availability,
		bookings:     repo.Booking,
		settings:     settings,
		log:          log.With(zap.String("service", "slot")),
	}
}

func (s *slotService) AvailableSlots(ctx context.Context, q *request.SlotQuery) (*response.SlotsResponse, error) {
	if err := requireSlotQuery(q); err != nil {
		return nil, err
	}

	page, err := s.findPage(ctx, q.MeetingPageID)
	if err != nil {
		return nil, err
	}
	if page == nil || !page.IsActive {
		return nil, notFound("Meeting page")
	}

	date, err := scheduling.ParseDate(q.Date)
	if err != nil {
		return nil, invalidInput("Invalid date format")
	}
	loc := s.viewerLocation(q.Timezone)

	rows, err := s.availability.FindActiveByUserAndWeekday(ctx, page.UserID, scheduling.Weekday(date))
	if err != nil {
		return nil, fmt.Errorf("load availability: %w", err)
	}
	if len(rows) == 0 {
		return &response.SlotsResponse{Slots: []response.SlotResponse{}, Message: noAvailabilityMessage}, nil
	}

	windows := make([]scheduling.Window, 0, len(rows))
	for _, row := range rows {
		w, err := toWindow(row)
		if err != nil {
			s.log.Warn("Skipping unreadable availability window",
				zap.String("availability_id", row.ID.String()),
				zap.Error(err))
			continue
		}
		windows = append(windows, w)
	}

	duration := time.Duration(page.SlotMinutes()) * time.Minute

	// Bookings that start up to one duration before midnight still run into the day.
	from, to := scheduling.DayRange(date, loc)
	booked, err := s.bookings.FindByPageInRange(ctx, page.ID, from.Add(-duration), to, entity.BookingStatusBooked)
	if err != nil {
		return nil, fmt.Errorf("load bookings: %w", err)
	}

	instants := make([]time.Time, len(booked))
	for i, b := range booked {
		instants[i] = b.Date
	}

	slots := s.settings.AvailableSlots(date, loc, windows, duration, instants)

	resp := &response.SlotsResponse{Slots: make([]response.SlotResponse, len(slots))}
	for i, slot := range slots {
		resp.Slots[i] = response.SlotResponse{
			Time:            slot.Start.In(loc).Format(time.RFC3339),
			EndTime:         slot.End.In(loc).Format(time.RFC3339),
			Display:         slot.Display,
			DurationMinutes: slot.DurationMinutes,
		}
	}

	s.log.Debug("Available slots computed",
		zap.String("page_id", page.ID.String()),
		zap.String("date", q.Date),
		zap.String("timezone", loc.String()),
		zap.Int("slots", len(slots)),
		zap.Int("booked", len(booked)))

	return resp, nil
}

// OccupiedSlots lists every booking of the page host's pages on the date,
// whatever its status, ordered by stored instant. Display times honour the
// date and time the attendee picked on the form.
func (s *slotService) OccupiedSlots(ctx context.Context, hostID uuid.UUID, q *request.SlotQuery) (*response.OccupiedSlotsResponse, error) {
	if err := requireSlotQuery(q); err != nil {
		return nil, err
	}

	page, err := s.findPage(ctx, q.MeetingPageID)
	if err != nil {
		return nil, err
	}
	if page == nil || page.UserID != hostID {
		return nil, notFound("Meeting page")
	}

	date, err := scheduling.ParseDate(q.Date)
	if err != nil {
		return nil, invalidInput("Invalid date format")
	}
	loc := s.viewerLocation(q.Timezone)

	from, to := scheduling.DayRange(date, loc)
	bookings, err := s.bookings.FindByHostInRange(ctx, page.UserID, from, to)
	if err != nil {
		return nil, fmt.Errorf("load bookings: %w", err)
	}

	slices.SortStableFunc(bookings, func(a, b *entity.HostBooking) int {
		return a.Date.Compare(b.Date)
	})

	resp := &response.OccupiedSlotsResponse{Slots: make([]response.OccupiedSlotResponse, len(bookings))}
	for i, b := range bookings {
		when := scheduling.NewSchedule(b.Date, b.UserInput).Resolve(loc).In(loc)

		minutes := b.DurationMinutes
		if minutes <= 0 {
			minutes = entity.DefaultDurationMinutes
		}

		resp.Slots[i] = response.OccupiedSlotResponse{
			Time:            when.Format(time.RFC3339),
			Display:         when.Format(scheduling.DisplayLayout),
			DurationMinutes: minutes,
			Status:          string(b.Status),
			BookingID:       b.ID.String(),
			AttendeeName:    b.AttendeeName,
			AttendeeEmail:   b.AttendeeEmail,
		}
	}

	return resp, nil
}

func requireSlotQuery(q *request.SlotQuery) error {
	q.MeetingPageID = strings.TrimSpace(q.MeetingPageID)
	q.Date = strings.TrimSpace(q.Date)
	if q.MeetingPageID == "" || q.Date == "" {
		return invalidInput("meeting_page_id and date are required")
	}
	return nil
}

// findPage treats a malformed id like a missing page.
func (s *slotService) findPage(ctx context.Context, rawID string) (*entity.MeetingPage, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, nil
	}

	page, err := s.pages.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find meeting page: %w", err)
	}
	return page, nil
}

func (s *slotService) viewerLocation(name string) *time.Location {
	loc, ok := scheduling.ResolveLocation(name, s.settings.Location())
	if !ok && strings.TrimSpace(name) != "" {
		s.log.Debug("Unknown timezone, using default",
			zap.String("timezone", name),
			zap.String("default", loc.String()))
	}
	return loc
}

func toWindow(a *entity.Availability) (scheduling.Window, error) {
	start, err := scheduling.ParseClock(a.StartTime)
	if err != nil {
		return scheduling.Window{}, err
	}
	end, err := scheduling.ParseClock(a.EndTime)
	if err != nil {
		return scheduling.Window{}, err
	}
	return scheduling.Window{Start: start, End: end}, nil
}

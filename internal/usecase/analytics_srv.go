package usecase

import (
	"context"
	"fmt"
	"math"
	"time"

	"meeting-scheduler/internal/data/entity"
	"meeting-scheduler/internal/data/repository"
	"meeting-scheduler/internal/dto/response"
	"meeting-scheduler/internal/scheduling"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	rateWindowWeeks = 4
	dailyBuckets    = 30
	weeklyBuckets   = 12
	monthlyBuckets  = 12

	day  = 24 * time.Hour
	week = 7 * day
)

type AnalyticsService interface {
	Overview(ctx context.Context, hostID uuid.UUID) (*response.AnalyticsResponse, error)
}

type analyticsService struct {
	bookingRepo repository.BookingRepository
	settings    scheduling.Settings
	log         *zap.Logger
}

func NewAnalyticsService(bookingRepo repository.BookingRepository, settings scheduling.Settings, log *zap.Logger) AnalyticsService {
	return &analyticsService{
		bookingRepo: bookingRepo,
		settings:    settings,
		log:         log.With(zap.String("service", "analytics")),
	}
}

func (s *analyticsService) Overview(ctx context.Context, hostID uuid.UUID) (*response.AnalyticsResponse, error) {
	activity, err := s.bookingRepo.FindActivityByHost(ctx, hostID)
	if err != nil {
		return nil, fmt.Errorf("load booking activity: %w", err)
	}

	now := time.Now()
	if s.settings.Now != nil {
		now = s.settings.Now()
	}

	return summarize(activity, now, s.settings.Location()), nil
}

// summarize buckets bookings by creation time. Daily buckets follow calendar
// days in loc; weekly and monthly buckets are rolling 7- and 30-day windows
// ending at now. All series are oldest first.
func summarize(activity []entity.BookingActivity, now time.Time, loc *time.Location) *response.AnalyticsResponse {
	resp := &response.AnalyticsResponse{
		TotalBookings: len(activity),
		DailyStats:    make([]response.StatBucket, dailyBuckets),
		WeeklyStats:   make([]response.StatBucket, weeklyBuckets),
		MonthlyStats:  make([]response.StatBucket, monthlyBuckets),
	}

	rateSince := now.Add(-rateWindowWeeks * week)
	recent := 0

	local := now.In(loc)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)

	for i := range dailyBuckets {
		start := today.AddDate(0, 0, -(dailyBuckets - 1 - i))
		resp.DailyStats[i].Date = start.Format("2006-01-02")
	}
	for i := range weeklyBuckets {
		start := now.Add(-time.Duration(weeklyBuckets-i) * week)
		resp.WeeklyStats[i].Week = start.In(loc).Format(time.RFC3339)
	}
	for i := range monthlyBuckets {
		start := now.Add(-time.Duration(monthlyBuckets-i) * 30 * day)
		resp.MonthlyStats[i].Month = start.In(loc).Format("2006-01")
	}

	for _, a := range activity {
		switch a.Status {
		case entity.BookingStatusCancelled:
			resp.TotalCancellations++
		case entity.BookingStatusCompleted:
			resp.TotalCompleted++
		case entity.BookingStatusBooked:
			if !a.Date.Before(now) {
				resp.UpcomingMeetingsCount++
			}
		}

		if !a.CreatedAt.Before(rateSince) {
			recent++
		}

		if a.CreatedAt.After(now) {
			continue
		}

		// Calendar days back from today; DST days may be 23 or 25 hours.
		created := a.CreatedAt.In(loc)
		createdDay := time.Date(created.Year(), created.Month(), created.Day(), 0, 0, 0, 0, loc)
		if back := daysBetween(createdDay, today); back >= 0 && back < dailyBuckets {
			count(&resp.DailyStats[dailyBuckets-1-back], a.Status)
		}

		age := now.Sub(a.CreatedAt)
		if back := int(age / week); back < weeklyBuckets {
			count(&resp.WeeklyStats[weeklyBuckets-1-back], a.Status)
		}
		if back := int(age / (30 * day)); back < monthlyBuckets {
			count(&resp.MonthlyStats[monthlyBuckets-1-back], a.Status)
		}
	}

	resp.AverageBookingRatePerWeek = math.Round(float64(recent)/rateWindowWeeks*100) / 100
	return resp
}

func daysBetween(from, to time.Time) int {
	return int(math.Round(to.Sub(from).Hours() / 24))
}

func count(b *response.StatBucket, status entity.BookingStatus) {
	switch status {
	case entity.BookingStatusBooked:
		b.Bookings++
	case entity.BookingStatusCancelled:
		b.Cancellations++
	case entity.BookingStatusCompleted:
		b.Completed++
	}
}

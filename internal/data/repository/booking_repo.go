package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"meeting-scheduler/internal/data/entity"
	"meeting-scheduler/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingRepository interface {
	Create(ctx context.Context, b *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.HostBooking, error)
	FindByManagementToken(ctx context.Context, token uuid.UUID) (*entity.HostBooking, error)
	FindByHost(ctx context.Context, hostID uuid.UUID, status entity.BookingStatus, limit, offset int) ([]*entity.HostBooking, error)
	CountByHost(ctx context.Context, hostID uuid.UUID, status entity.BookingStatus) (int64, error)
	FindUpcomingByHost(ctx context.Context, hostID uuid.UUID, from time.Time, limit int) ([]*entity.HostBooking, error)
	FindByPageInRange(ctx context.Context, pageID uuid.UUID, from, to time.Time, status entity.BookingStatus) ([]*entity.Booking, error)
	FindByHostInRange(ctx context.Context, hostID uuid.UUID, from, to time.Time) ([]*entity.HostBooking, error)
	FindActivityByHost(ctx context.Context, hostID uuid.UUID) ([]entity.BookingActivity, error)
	Update(ctx context.Context, b *entity.Booking) error
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `b.id, b.meeting_page_id, b.user_input, b.date, b.status,
		       b.attendee_name, b.attendee_email, b.notes, b.management_token,
		       b.created_at, b.updated_at`

const hostBookingSelect = `
		SELECT ` + bookingColumns + `, p.user_id, p.title, p.duration_minutes
		FROM bookings b
		JOIN meeting_pages p ON p.id = b.meeting_page_id
`

func bookingDest(b *entity.Booking) []any {
	return []any{
		&b.ID,
		&b.MeetingPageID,
		&b.UserInput,
		&b.Date,
		&b.Status,
		&b.AttendeeName,
		&b.AttendeeEmail,
		&b.Notes,
		&b.ManagementToken,
		&b.CreatedAt,
		&b.UpdatedAt,
	}
}

func scanHostBooking(row pgx.Row) (*entity.HostBooking, error) {
	var hb entity.HostBooking
	dest := append(bookingDest(&hb.Booking), &hb.HostID, &hb.PageTitle, &hb.DurationMinutes)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &hb, nil
}

// Create relies on the partial unique index on (meeting_page_id, date) for
// booked rows; callers check database.IsUniqueViolation.
func (r *bookingRepository) Create(ctx context.Context, b *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, meeting_page_id, user_input, date, status,
		                      attendee_name, attendee_email, notes, management_token,
		                      created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := database.Conn(ctx, r.db).Exec(ctx, query,
		b.ID,
		b.MeetingPageID,
		b.UserInput,
		b.Date,
		b.Status,
		b.AttendeeName,
		b.AttendeeEmail,
		b.Notes,
		b.ManagementToken,
		b.CreatedAt,
		b.UpdatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			r.log.Warn("Booking slot already taken",
				zap.String("page_id", b.MeetingPageID.String()),
				zap.Time("date", b.Date),
			)
		} else {
			r.log.Error("Failed to create booking",
				zap.Error(err),
				zap.String("page_id", b.MeetingPageID.String()),
			)
		}
		return fmt.Errorf("create booking: %w", err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.HostBooking, error) {
	query := hostBookingSelect + ` WHERE b.id = $1`

	hb, err := scanHostBooking(database.Conn(ctx, r.db).QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking", zap.Error(err), zap.String("booking_id", id.String()))
		return nil, fmt.Errorf("find booking %s: %w", id, err)
	}

	return hb, nil
}

func (r *bookingRepository) FindByManagementToken(ctx context.Context, token uuid.UUID) (*entity.HostBooking, error) {
	query := hostBookingSelect + ` WHERE b.management_token = $1`

	hb, err := scanHostBooking(database.Conn(ctx, r.db).QueryRow(ctx, query, token))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by management token", zap.Error(err))
		return nil, fmt.Errorf("find booking by token: %w", err)
	}

	return hb, nil
}

// FindByHost lists the host's bookings, newest appointment first. An empty
// status matches every status.
func (r *bookingRepository) FindByHost(ctx context.Context, hostID uuid.UUID, status entity.BookingStatus, limit, offset int) ([]*entity.HostBooking, error) {
	query := hostBookingSelect + `
		WHERE p.user_id = $1 AND ($2 = '' OR b.status = $2)
		ORDER BY b.date DESC
		LIMIT $3 OFFSET $4
	`
	return r.listHostBookings(ctx, query, hostID, string(status), limit, offset)
}

func (r *bookingRepository) CountByHost(ctx context.Context, hostID uuid.UUID, status entity.BookingStatus) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM bookings b
		JOIN meeting_pages p ON p.id = b.meeting_page_id
		WHERE p.user_id = $1 AND ($2 = '' OR b.status = $2)
	`

	var count int64
	if err := database.Conn(ctx, r.db).QueryRow(ctx, query, hostID, string(status)).Scan(&count); err != nil {
		r.log.Error("Failed to count bookings", zap.Error(err))
		return 0, fmt.Errorf("count bookings: %w", err)
	}
	return count, nil
}

func (r *bookingRepository) FindUpcomingByHost(ctx context.Context, hostID uuid.UUID, from time.Time, limit int) ([]*entity.HostBooking, error) {
	query := hostBookingSelect + `
		WHERE p.user_id = $1 AND b.status = 'booked' AND b.date >= $2
		ORDER BY b.date ASC
		LIMIT $3
	`
	return r.listHostBookings(ctx, query, hostID, from, limit)
}

// FindByPageInRange returns bookings of one page with from <= date < to.
func (r *bookingRepository) FindByPageInRange(ctx context.Context, pageID uuid.UUID, from, to time.Time, status entity.BookingStatus) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings b
		WHERE b.meeting_page_id = $1 AND b.date >= $2 AND b.date < $3
		  AND ($4 = '' OR b.status = $4)
		ORDER BY b.date ASC
	`

	rows, err := database.Conn(ctx, r.db).Query(ctx, query, pageID, from, to, string(status))
	if err != nil {
		r.log.Error("Failed to query page bookings", zap.Error(err), zap.String("page_id", pageID.String()))
		return nil, fmt.Errorf("query bookings of page %s: %w", pageID, err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		var b entity.Booking
		if err := rows.Scan(bookingDest(&b)...); err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate booking rows: %w", err)
	}

	return bookings, nil
}

// FindByHostInRange returns bookings of every page of the host with
// from <= date < to, any status, ordered by the stored instant.
func (r *bookingRepository) FindByHostInRange(ctx context.Context, hostID uuid.UUID, from, to time.Time) ([]*entity.HostBooking, error) {
	query := hostBookingSelect + `
		WHERE p.user_id = $1 AND b.date >= $2 AND b.date < $3
		ORDER BY b.date ASC
	`
	return r.listHostBookings(ctx, query, hostID, from, to)
}

func (r *bookingRepository) listHostBookings(ctx context.Context, query string, args ...any) ([]*entity.HostBooking, error) {
	rows, err := database.Conn(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to query bookings", zap.Error(err))
		return nil, fmt.Errorf("query bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*entity.HostBooking
	for rows.Next() {
		hb, err := scanHostBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, hb)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate booking rows: %w", err)
	}

	return bookings, nil
}

func (r *bookingRepository) FindActivityByHost(ctx context.Context, hostID uuid.UUID) ([]entity.BookingActivity, error) {
	query := `
		SELECT b.status, b.date, b.created_at
		FROM bookings b
		JOIN meeting_pages p ON p.id = b.meeting_page_id
		WHERE p.user_id = $1
	`

	rows, err := database.Conn(ctx, r.db).Query(ctx, query, hostID)
	if err != nil {
		r.log.Error("Failed to query booking activity", zap.Error(err), zap.String("user_id", hostID.String()))
		return nil, fmt.Errorf("query booking activity: %w", err)
	}
	defer rows.Close()

	activity, err := pgx.CollectRows(rows, pgx.RowToStructByPos[entity.BookingActivity])
	if err != nil {
		return nil, fmt.Errorf("collect booking activity: %w", err)
	}

	return activity, nil
}

func (r *bookingRepository) Update(ctx context.Context, b *entity.Booking) error {
	query := `
		UPDATE bookings
		SET user_input = $2, date = $3, status = $4, attendee_name = $5,
		    attendee_email = $6, notes = $7, updated_at = $8
		WHERE id = $1
	`

	result, err := database.Conn(ctx, r.db).Exec(ctx, query,
		b.ID,
		b.UserInput,
		b.Date,
		b.Status,
		b.AttendeeName,
		b.AttendeeEmail,
		b.Notes,
		b.UpdatedAt,
	)
	if err != nil {
		if !database.IsUniqueViolation(err) {
			r.log.Error("Failed to update booking", zap.Error(err), zap.String("booking_id", b.ID.String()))
		}
		return fmt.Errorf("update booking %s: %w", b.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", b.ID)
	}

	return nil
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"meeting-scheduler/internal/data/entity"
	"meeting-scheduler/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type AvailabilityRepository interface {
	Create(ctx context.Context, a *entity.Availability) error
	FindByID(ctx context.Context, id, userID uuid.UUID) (*entity.Availability, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Availability, error)
	FindActiveByUserAndWeekday(ctx context.Context, userID uuid.UUID, weekday int) ([]*entity.Availability, error)
	Update(ctx context.Context, a *entity.Availability) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

type availabilityRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAvailabilityRepository(db database.PgxIface, log *zap.Logger) AvailabilityRepository {
	return &availabilityRepository{
		db:  db,
		log: log.With(zap.String("repository", "availability")),
	}
}

// TIME columns are read back as text ("15:04:05") and parsed by the caller.
const availabilityColumns = `id, user_id, weekday, start_time::text, end_time::text,
		       is_active, created_at, updated_at`

func scanAvailability(row pgx.Row) (*entity.Availability, error) {
	var a entity.Availability
	err := row.Scan(
		&a.ID,
		&a.UserID,
		&a.Weekday,
		&a.StartTime,
		&a.EndTime,
		&a.IsActive,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *availabilityRepository) Create(ctx context.Context, a *entity.Availability) error {
	query := `
		INSERT INTO availabilities (id, user_id, weekday, start_time, end_time,
		                            is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4::text::time, $5::text::time, $6, $7, $8)
	`

	_, err := database.Conn(ctx, r.db).Exec(ctx, query,
		a.ID,
		a.UserID,
		a.Weekday,
		a.StartTime,
		a.EndTime,
		a.IsActive,
		a.CreatedAt,
		a.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create availability",
			zap.Error(err),
			zap.String("user_id", a.UserID.String()),
			zap.Int("weekday", a.Weekday),
		)
		return fmt.Errorf("create availability: %w", err)
	}

	return nil
}

func (r *availabilityRepository) FindByID(ctx context.Context, id, userID uuid.UUID) (*entity.Availability, error) {
	query := `SELECT ` + availabilityColumns + ` FROM availabilities WHERE id = $1 AND user_id = $2`

	a, err := scanAvailability(database.Conn(ctx, r.db).QueryRow(ctx, query, id, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find availability", zap.Error(err), zap.String("availability_id", id.String()))
		return nil, fmt.Errorf("find availability %s: %w", id, err)
	}

	return a, nil
}

func (r *availabilityRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Availability, error) {
	query := `
		SELECT ` + availabilityColumns + `
		FROM availabilities
		WHERE user_id = $1
		ORDER BY weekday, start_time
	`
	return r.list(ctx, query, userID)
}

// FindActiveByUserAndWeekday returns active windows ordered by start time.
func (r *availabilityRepository) FindActiveByUserAndWeekday(ctx context.Context, userID uuid.UUID, weekday int) ([]*entity.Availability, error) {
	query := `
		SELECT ` + availabilityColumns + `
		FROM availabilities
		WHERE user_id = $1 AND weekday = $2 AND is_active = TRUE
		ORDER BY start_time
	`
	return r.list(ctx, query, userID, weekday)
}

func (r *availabilityRepository) list(ctx context.Context, query string, args ...any) ([]*entity.Availability, error) {
	rows, err := database.Conn(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to query availabilities", zap.Error(err))
		return nil, fmt.Errorf("query availabilities: %w", err)
	}
	defer rows.Close()

	var windows []*entity.Availability
	for rows.Next() {
		a, err := scanAvailability(rows)
		if err != nil {
			r.log.Error("Failed to scan availability row", zap.Error(err))
			return nil, fmt.Errorf("scan availability row: %w", err)
		}
		windows = append(windows, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate availability rows: %w", err)
	}

	return windows, nil
}

func (r *availabilityRepository) Update(ctx context.Context, a *entity.Availability) error {
	query := `
		UPDATE availabilities
		SET weekday = $3, start_time = $4::text::time, end_time = $5::text::time,
		    is_active = $6, updated_at = $7
		WHERE id = $1 AND user_id = $2
	`

	result, err := database.Conn(ctx, r.db).Exec(ctx, query,
		a.ID,
		a.UserID,
		a.Weekday,
		a.StartTime,
		a.EndTime,
		a.IsActive,
		a.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update availability", zap.Error(err), zap.String("availability_id", a.ID.String()))
		return fmt.Errorf("update availability %s: %w", a.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("availability %s not found", a.ID)
	}

	return nil
}

func (r *availabilityRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	result, err := database.Conn(ctx, r.db).Exec(ctx,
		`DELETE FROM availabilities WHERE id = $1 AND user_id = $2`, id, userID,
	)
	if err != nil {
		r.log.Error("Failed to delete availability", zap.Error(err), zap.String("availability_id", id.String()))
		return fmt.Errorf("delete availability %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("availability %s not found", id)
	}

	return nil
}

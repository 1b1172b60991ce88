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

type MeetingPageRepository interface {
	Create(ctx context.Context, page *entity.MeetingPage) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.MeetingPage, error)
	FindBySlug(ctx context.Context, slug string) (*entity.MeetingPage, error)
	FindByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.MeetingPage, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	Update(ctx context.Context, page *entity.MeetingPage) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

type meetingPageRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMeetingPageRepository(db database.PgxIface, log *zap.Logger) MeetingPageRepository {
	return &meetingPageRepository{
		db:  db,
		log: log.With(zap.String("repository", "meeting_page")),
	}
}

const meetingPageColumns = `id, user_id, title, slug, theme, fields, layout_style,
		       event_type, duration_minutes, is_active, created_at, updated_at`

func scanMeetingPage(row pgx.Row) (*entity.MeetingPage, error) {
	var p entity.MeetingPage
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Title,
		&p.Slug,
		&p.Theme,
		&p.Fields,
		&p.LayoutStyle,
		&p.EventType,
		&p.DurationMinutes,
		&p.IsActive,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *meetingPageRepository) Create(ctx context.Context, page *entity.MeetingPage) error {
	query := `
		INSERT INTO meeting_pages (id, user_id, title, slug, theme, fields, layout_style,
		                           event_type, duration_minutes, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := database.Conn(ctx, r.db).Exec(ctx, query,
		page.ID,
		page.UserID,
		page.Title,
		page.Slug,
		page.Theme,
		page.Fields,
		page.LayoutStyle,
		page.EventType,
		page.DurationMinutes,
		page.IsActive,
		page.CreatedAt,
		page.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create meeting page",
			zap.Error(err),
			zap.String("slug", page.Slug),
			zap.String("user_id", page.UserID.String()),
		)
		return fmt.Errorf("create meeting page %s: %w", page.Slug, err)
	}

	return nil
}

func (r *meetingPageRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.MeetingPage, error) {
	query := `SELECT ` + meetingPageColumns + ` FROM meeting_pages WHERE id = $1`

	page, err := scanMeetingPage(database.Conn(ctx, r.db).QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find meeting page", zap.Error(err), zap.String("page_id", id.String()))
		return nil, fmt.Errorf("find meeting page %s: %w", id, err)
	}

	return page, nil
}

func (r *meetingPageRepository) FindBySlug(ctx context.Context, slug string) (*entity.MeetingPage, error) {
	query := `SELECT ` + meetingPageColumns + ` FROM meeting_pages WHERE slug = $1`

	page, err := scanMeetingPage(database.Conn(ctx, r.db).QueryRow(ctx, query, slug))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find meeting page by slug", zap.Error(err), zap.String("slug", slug))
		return nil, fmt.Errorf("find meeting page by slug %s: %w", slug, err)
	}

	return page, nil
}

func (r *meetingPageRepository) FindByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.MeetingPage, error) {
	query := `
		SELECT ` + meetingPageColumns + `
		FROM meeting_pages
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := database.Conn(ctx, r.db).Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to list meeting pages", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("list meeting pages of %s: %w", userID, err)
	}
	defer rows.Close()

	var pages []*entity.MeetingPage
	for rows.Next() {
		page, err := scanMeetingPage(rows)
		if err != nil {
			r.log.Error("Failed to scan meeting page row", zap.Error(err))
			return nil, fmt.Errorf("scan meeting page row: %w", err)
		}
		pages = append(pages, page)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate meeting page rows: %w", err)
	}

	return pages, nil
}

func (r *meetingPageRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := database.Conn(ctx, r.db).QueryRow(ctx,
		`SELECT COUNT(*) FROM meeting_pages WHERE user_id = $1`, userID,
	).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count meeting pages", zap.Error(err))
		return 0, fmt.Errorf("count meeting pages: %w", err)
	}
	return count, nil
}

func (r *meetingPageRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := database.Conn(ctx, r.db).QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM meeting_pages WHERE slug = $1)`, slug,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check slug %s: %w", slug, err)
	}
	return exists, nil
}

func (r *meetingPageRepository) Update(ctx context.Context, page *entity.MeetingPage) error {
	query := `
		UPDATE meeting_pages
		SET title = $3, slug = $4, theme = $5, fields = $6, layout_style = $7,
		    event_type = $8, duration_minutes = $9, is_active = $10, updated_at = $11
		WHERE id = $1 AND user_id = $2
	`

	result, err := database.Conn(ctx, r.db).Exec(ctx, query,
		page.ID,
		page.UserID,
		page.Title,
		page.Slug,
		page.Theme,
		page.Fields,
		page.LayoutStyle,
		page.EventType,
		page.DurationMinutes,
		page.IsActive,
		page.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update meeting page", zap.Error(err), zap.String("page_id", page.ID.String()))
		return fmt.Errorf("update meeting page %s: %w", page.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("meeting page %s not found", page.ID)
	}

	return nil
}

// Delete removes the page; its bookings go with it (ON DELETE CASCADE).
func (r *meetingPageRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	result, err := database.Conn(ctx, r.db).Exec(ctx,
		`DELETE FROM meeting_pages WHERE id = $1 AND user_id = $2`, id, userID,
	)
	if err != nil {
		r.log.Error("Failed to delete meeting page", zap.Error(err), zap.String("page_id", id.String()))
		return fmt.Errorf("delete meeting page %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("meeting page %s not found", id)
	}

	r.log.Info("Meeting page deleted", zap.String("page_id", id.String()))
	return nil
}

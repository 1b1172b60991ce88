package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"meeting-scheduler/internal/data/entity"
	"meeting-scheduler/internal/data/repository"
	"meeting-scheduler/internal/dto/request"
	"meeting-scheduler/internal/dto/response"
	"meeting-scheduler/pkg/database"
	"meeting-scheduler/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MeetingPageService interface {
	Create(ctx context.Context, hostID uuid.UUID, req *request.MeetingPageRequest) (*response.MeetingPageResponse, error)
	List(ctx context.Context, hostID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.MeetingPageResponse], error)
	Get(ctx context.Context, hostID uuid.UUID, pageID string) (*response.MeetingPageResponse, error)
	Update(ctx context.Context, hostID uuid.UUID, pageID string, req *request.MeetingPageRequest) (*response.MeetingPageResponse, error)
	Delete(ctx context.Context, hostID uuid.UUID, pageID string) error
	Duplicate(ctx context.Context, hostID uuid.UUID, pageID string) (*response.MeetingPageResponse, error)
	GetPublic(ctx context.Context, slug string) (*response.PublicMeetingPageResponse, error)
}

type meetingPageService struct {
	repo *repository.Repository
	now  func() time.Time
	log  *zap.Logger
}

func NewMeetingPageService(repo *repository.Repository, log *zap.Logger) MeetingPageService {
	return &meetingPageService{
		repo: repo,
		now:  time.Now,
		log:  log.With(zap.String("service", "meeting_page")),
	}
}

var (
	defaultTheme  = json.RawMessage(`{}`)
	defaultFields = json.RawMessage(`[]`)
)

func (s *meetingPageService) Create(ctx context.Context, hostID uuid.UUID, req *request.MeetingPageRequest) (*response.MeetingPageResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	now := s.now()
	page := &entity.MeetingPage{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:          hostID,
		LayoutStyle:     entity.LayoutClassic,
		EventType:       "default",
		DurationMinutes: entity.DefaultDurationMinutes,
		IsActive:        true,
		Theme:           defaultTheme,
		Fields:          defaultFields,
	}

	if err := applyPageRequest(page, req); err != nil {
		return nil, err
	}

	if err := s.ensureSlugFree(ctx, page.Slug); err != nil {
		return nil, err
	}

	if err := s.repo.MeetingPage.Create(ctx, page); err != nil {
		return nil, s.mapWriteError(err)
	}

	s.log.Info("Meeting page created",
		zap.String("page_id", page.ID.String()),
		zap.String("slug", page.Slug))

	resp := response.MeetingPageToResponse(page)
	return &resp, nil
}

func (s *meetingPageService) List(ctx context.Context, hostID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.MeetingPageResponse], error) {
	pages, err := s.repo.MeetingPage.FindByUser(ctx, hostID, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("list meeting pages: %w", err)
	}

	total, err := s.repo.MeetingPage.CountByUser(ctx, hostID)
	if err != nil {
		return nil, fmt.Errorf("count meeting pages: %w", err)
	}

	items := make([]response.MeetingPageResponse, len(pages))
	for i, p := range pages {
		items[i] = response.MeetingPageToResponse(p)
	}

	return response.NewPaginatedResponse(items, req.Page, req.Limit(), total), nil
}

func (s *meetingPageService) Get(ctx context.Context, hostID uuid.UUID, pageID string) (*response.MeetingPageResponse, error) {
	page, err := s.findOwned(ctx, hostID, pageID)
	if err != nil {
		return nil, err
	}

	resp := response.MeetingPageToResponse(page)
	return &resp, nil
}

func (s *meetingPageService) Update(ctx context.Context, hostID uuid.UUID, pageID string, req *request.MeetingPageRequest) (*response.MeetingPageResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	page, err := s.findOwned(ctx, hostID, pageID)
	if err != nil {
		return nil, err
	}

	oldSlug := page.Slug
	if err := applyPageRequest(page, req); err != nil {
		return nil, err
	}

	if page.Slug != oldSlug {
		if err := s.ensureSlugFree(ctx, page.Slug); err != nil {
			return nil, err
		}
	}

	page.UpdatedAt = s.now()
	if err := s.repo.MeetingPage.Update(ctx, page); err != nil {
		return nil, s.mapWriteError(err)
	}

	resp := response.MeetingPageToResponse(page)
	return &resp, nil
}

func (s *meetingPageService) Delete(ctx context.Context, hostID uuid.UUID, pageID string) error {
	page, err := s.findOwned(ctx, hostID, pageID)
	if err != nil {
		return err
	}

	if err := s.repo.MeetingPage.Delete(ctx, page.ID, hostID); err != nil {
		return fmt.Errorf("delete meeting page: %w", err)
	}
	return nil
}

// Duplicate copies a page as "<slug>-copy" titled "<title> (Copy)".
func (s *meetingPageService) Duplicate(ctx context.Context, hostID uuid.UUID, pageID string) (*response.MeetingPageResponse, error) {
	original, err := s.findOwned(ctx, hostID, pageID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	copied := *original
	copied.ID = uuid.New()
	copied.Slug = utils.CopySlug(original.Slug)
	copied.Title = original.Title + " (Copy)"
	copied.CreatedAt = now
	copied.UpdatedAt = now

	if err := s.ensureSlugFree(ctx, copied.Slug); err != nil {
		return nil, err
	}

	if err := s.repo.MeetingPage.Create(ctx, &copied); err != nil {
		return nil, s.mapWriteError(err)
	}

	s.log.Info("Meeting page duplicated",
		zap.String("source_id", original.ID.String()),
		zap.String("page_id", copied.ID.String()))

	resp := response.MeetingPageToResponse(&copied)
	return &resp, nil
}

// GetPublic returns an active page by slug together with its host's name.
func (s *meetingPageService) GetPublic(ctx context.Context, slug string) (*response.PublicMeetingPageResponse, error) {
	page, err := s.repo.MeetingPage.FindBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("find meeting page: %w", err)
	}
	if page == nil || !page.IsActive {
		return nil, notFound("meeting page")
	}

	host, err := s.repo.User.FindByID(ctx, page.UserID)
	if err != nil {
		return nil, fmt.Errorf("find host: %w", err)
	}

	resp := &response.PublicMeetingPageResponse{
		ID:              page.ID.String(),
		Title:           page.Title,
		Slug:            page.Slug,
		Theme:           page.Theme,
		Fields:          page.Fields,
		LayoutStyle:     page.LayoutStyle,
		EventType:       page.EventType,
		DurationMinutes: page.SlotMinutes(),
	}
	if host != nil {
		resp.HostName = host.DisplayName()
	}

	return resp, nil
}

func (s *meetingPageService) findOwned(ctx context.Context, hostID uuid.UUID, pageID string) (*entity.MeetingPage, error) {
	id, err := uuid.Parse(pageID)
	if err != nil {
		return nil, notFound("meeting page")
	}

	page, err := s.repo.MeetingPage.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find meeting page: %w", err)
	}
	if page == nil || page.UserID != hostID {
		return nil, notFound("meeting page")
	}
	return page, nil
}

func (s *meetingPageService) ensureSlugFree(ctx context.Context, slug string) error {
	exists, err := s.repo.MeetingPage.SlugExists(ctx, slug)
	if err != nil {
		return fmt.Errorf("check slug: %w", err)
	}
	if exists {
		return newError(ErrConflict, "slug %q is already in use", slug)
	}
	return nil
}

func (s *meetingPageService) mapWriteError(err error) error {
	if database.IsUniqueViolation(err) {
		return newError(ErrConflict, "slug is already in use")
	}
	return fmt.Errorf("save meeting page: %w", err)
}

func applyPageRequest(page *entity.MeetingPage, req *request.MeetingPageRequest) error {
	page.Title = strings.TrimSpace(req.Title)

	slug := utils.Slugify(req.Slug)
	if slug == "" {
		slug = utils.Slugify(req.Title)
	}
	if slug == "" {
		slug = utils.RandomSlug("page")
	}
	page.Slug = slug

	if len(req.Theme) > 0 {
		if !json.Valid(req.Theme) {
			return invalidInput("theme must be valid JSON")
		}
		page.Theme = req.Theme
	}
	if len(req.Fields) > 0 {
		var fields []any
		if err := json.Unmarshal(req.Fields, &fields); err != nil {
			return invalidInput("fields must be a JSON list")
		}
		page.Fields = req.Fields
	}

	if req.LayoutStyle != "" {
		page.LayoutStyle = entity.LayoutStyle(req.LayoutStyle)
	}
	if req.EventType != "" {
		page.EventType = req.EventType
	}
	if req.DurationMinutes > 0 {
		page.DurationMinutes = req.DurationMinutes
	}
	if req.IsActive != nil {
		page.IsActive = *req.IsActive
	}
	return nil
}

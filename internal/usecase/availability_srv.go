package usecase

import (
	"context"
	"fmt"
	"time"

	"meeting-scheduler/internal/data/entity"
	"meeting-scheduler/internal/data/repository"
	"meeting-scheduler/internal/dto/request"
	"meeting-scheduler/internal/dto/response"
	"meeting-scheduler/internal/scheduling"
	"meeting-scheduler/pkg/database"
	"meeting-scheduler/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AvailabilityService interface {
	Create(ctx context.Context, hostID uuid.UUID, req *request.AvailabilityRequest) (*response.AvailabilityResponse, error)
	List(ctx context.Context, hostID uuid.UUID) ([]response.AvailabilityResponse, error)
	Get(ctx context.Context, hostID uuid.UUID, id string) (*response.AvailabilityResponse, error)
	Update(ctx context.Context, hostID uuid.UUID, id string, req *request.AvailabilityRequest) (*response.AvailabilityResponse, error)
	Delete(ctx context.Context, hostID uuid.UUID, id string) error
}

type availabilityService struct {
	availabilityRepo repository.AvailabilityRepository
	now              func() time.Time
	log              *zap.Logger
}

func NewAvailabilityService(availabilityRepo repository.AvailabilityRepository, log *zap.Logger) AvailabilityService {
	return &availabilityService{
		availabilityRepo: availabilityRepo,
		now:              time.Now,
		log:              log.With(zap.String("service", "availability")),
	}
}

func (s *availabilityService) Create(ctx context.Context, hostID uuid.UUID, req *request.AvailabilityRequest) (*response.AvailabilityResponse, error) {
	start, end, err := parseWindow(req)
	if err != nil {
		return nil, err
	}

	now := s.now()
	a := &entity.Availability{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:    hostID,
		Weekday:   *req.Weekday,
		StartTime: start.String(),
		EndTime:   end.String(),
		IsActive:  req.IsActive == nil || *req.IsActive,
	}

	if err := s.availabilityRepo.Create(ctx, a); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, newError(ErrConflict, "availability window already exists")
		}
		return nil, fmt.Errorf("create availability: %w", err)
	}

	s.log.Info("Availability created",
		zap.String("user_id", hostID.String()),
		zap.Int("weekday", a.Weekday),
		zap.String("start", a.StartTime),
		zap.String("end", a.EndTime))

	resp := response.AvailabilityToResponse(a)
	return &resp, nil
}

func (s *availabilityService) List(ctx context.Context, hostID uuid.UUID) ([]response.AvailabilityResponse, error) {
	windows, err := s.availabilityRepo.FindByUser(ctx, hostID)
	if err != nil {
		return nil, fmt.Errorf("list availability: %w", err)
	}

	resp := make([]response.AvailabilityResponse, len(windows))
	for i, a := range windows {
		resp[i] = response.AvailabilityToResponse(a)
	}
	return resp, nil
}

func (s *availabilityService) Get(ctx context.Context, hostID uuid.UUID, id string) (*response.AvailabilityResponse, error) {
	a, err := s.findOwned(ctx, hostID, id)
	if err != nil {
		return nil, err
	}

	resp := response.AvailabilityToResponse(a)
	return &resp, nil
}

func (s *availabilityService) Update(ctx context.Context, hostID uuid.UUID, id string, req *request.AvailabilityRequest) (*response.AvailabilityResponse, error) {
	start, end, err := parseWindow(req)
	if err != nil {
		return nil, err
	}

	a, err := s.findOwned(ctx, hostID, id)
	if err != nil {
		return nil, err
	}

	a.Weekday = *req.Weekday
	a.StartTime = start.String()
	a.EndTime = end.String()
	if req.IsActive != nil {
		a.IsActive = *req.IsActive
	}
	a.UpdatedAt = s.now()

	if err := s.availabilityRepo.Update(ctx, a); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, newError(ErrConflict, "availability window already exists")
		}
		return nil, fmt.Errorf("update availability: %w", err)
	}

	resp := response.AvailabilityToResponse(a)
	return &resp, nil
}

func (s *availabilityService) Delete(ctx context.Context, hostID uuid.UUID, id string) error {
	a, err := s.findOwned(ctx, hostID, id)
	if err != nil {
		return err
	}

	if err := s.availabilityRepo.Delete(ctx, a.ID, hostID); err != nil {
		return fmt.Errorf("delete availability: %w", err)
	}
	return nil
}

func (s *availabilityService) findOwned(ctx context.Context, hostID uuid.UUID, id string) (*entity.Availability, error) {
	availabilityID, err := uuid.Parse(id)
	if err != nil {
		return nil, notFound("availability")
	}

	a, err := s.availabilityRepo.FindByID(ctx, availabilityID, hostID)
	if err != nil {
		return nil, fmt.Errorf("find availability: %w", err)
	}
	if a == nil {
		return nil, notFound("availability")
	}
	return a, nil
}

// parseWindow validates the request and rejects windows that do not end
// after they start.
func parseWindow(req *request.AvailabilityRequest) (scheduling.Clock, scheduling.Clock, error) {
	var zero scheduling.Clock

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return zero, zero, validationError(errs)
	}

	start, err := scheduling.ParseClock(req.StartTime)
	if err != nil {
		return zero, zero, invalidInput("start_time: %v", err)
	}
	end, err := scheduling.ParseClock(req.EndTime)
	if err != nil {
		return zero, zero, invalidInput("end_time: %v", err)
	}

	if !start.Before(end) {
		return zero, zero, invalidInput("start_time must be before end_time")
	}
	return start, end, nil
}

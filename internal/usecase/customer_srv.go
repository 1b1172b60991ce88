package usecase

import (
	"context"
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

type CustomerService interface {
	Create(ctx context.Context, hostID uuid.UUID, req *request.CustomerRequest) (*response.CustomerResponse, error)
	List(ctx context.Context, hostID uuid.UUID, req *request.CustomerListRequest) (*response.PaginatedResponse[response.CustomerResponse], error)
	Get(ctx context.Context, hostID uuid.UUID, id string) (*response.CustomerResponse, error)
	Update(ctx context.Context, hostID uuid.UUID, id string, req *request.CustomerRequest) (*response.CustomerResponse, error)
	Delete(ctx context.Context, hostID uuid.UUID, id string) error
}

type customerService struct {
	customerRepo repository.CustomerRepository
	now          func() time.Time
	log          *zap.Logger
}

func NewCustomerService(customerRepo repository.CustomerRepository, log *zap.Logger) CustomerService {
	return &customerService{
		customerRepo: customerRepo,
		now:          time.Now,
		log:          log.With(zap.String("service", "customer")),
	}
}

func (s *customerService) Create(ctx context.Context, hostID uuid.UUID, req *request.CustomerRequest) (*response.CustomerResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	now := s.now()
	c := &entity.Customer{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID: hostID,
	}
	applyCustomerRequest(c, req)

	if err := s.customerRepo.Create(ctx, c); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, newError(ErrConflict, "customer with this email already exists")
		}
		return nil, fmt.Errorf("create customer: %w", err)
	}

	resp := response.CustomerToResponse(c)
	return &resp, nil
}

func (s *customerService) List(ctx context.Context, hostID uuid.UUID, req *request.CustomerListRequest) (*response.PaginatedResponse[response.CustomerResponse], error) {
	search := strings.TrimSpace(req.Search)

	customers, err := s.customerRepo.FindByUser(ctx, hostID, search, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}

	total, err := s.customerRepo.CountByUser(ctx, hostID, search)
	if err != nil {
		return nil, fmt.Errorf("count customers: %w", err)
	}

	items := make([]response.CustomerResponse, len(customers))
	for i, c := range customers {
		items[i] = response.CustomerToResponse(c)
	}

	return response.NewPaginatedResponse(items, req.Page, req.Limit(), total), nil
}

func (s *customerService) Get(ctx context.Context, hostID uuid.UUID, id string) (*response.CustomerResponse, error) {
	c, err := s.findOwned(ctx, hostID, id)
	if err != nil {
		return nil, err
	}

	resp := response.CustomerToResponse(c)
	return &resp, nil
}

func (s *customerService) Update(ctx context.Context, hostID uuid.UUID, id string, req *request.CustomerRequest) (*response.CustomerResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	c, err := s.findOwned(ctx, hostID, id)
	if err != nil {
		return nil, err
	}

	applyCustomerRequest(c, req)
	c.UpdatedAt = s.now()

	if err := s.customerRepo.Update(ctx, c); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, newError(ErrConflict, "customer with this email already exists")
		}
		return nil, fmt.Errorf("update customer: %w", err)
	}

	resp := response.CustomerToResponse(c)
	return &resp, nil
}

func (s *customerService) Delete(ctx context.Context, hostID uuid.UUID, id string) error {
	c, err := s.findOwned(ctx, hostID, id)
	if err != nil {
		return err
	}

	if err := s.customerRepo.Delete(ctx, c.ID, hostID); err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	return nil
}

func (s *customerService) findOwned(ctx context.Context, hostID uuid.UUID, id string) (*entity.Customer, error) {
	customerID, err := uuid.Parse(id)
	if err != nil {
		return nil, notFound("customer")
	}

	c, err := s.customerRepo.FindByID(ctx, customerID, hostID)
	if err != nil {
		return nil, fmt.Errorf("find customer: %w", err)
	}
	if c == nil {
		return nil, notFound("customer")
	}
	return c, nil
}

func applyCustomerRequest(c *entity.Customer, req *request.CustomerRequest) {
	c.Name = strings.TrimSpace(req.Name)
	c.Phone = strings.TrimSpace(req.Phone)
	c.Organization = strings.TrimSpace(req.Organization)

	c.Email = nil
	if req.Email != nil {
		if email := strings.TrimSpace(*req.Email); email != "" {
			c.Email = &email
		}
	}

	c.Metadata = req.Metadata
	if c.Metadata == nil {
		c.Metadata = map[string]any{}
	}
}

package response

import (
	"time"

	"meeting-scheduler/internal/data/entity"
)

type CustomerResponse struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Email        *string        `json:"email"`
	Phone        string         `json:"phone"`
	Organization string         `json:"organization"`
	Metadata     map[string]any `json:"metadata"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

func CustomerToResponse(c *entity.Customer) CustomerResponse {
	return CustomerResponse{
		ID:           c.ID.String(),
		Name:         c.Name,
		Email:        c.Email,
		Phone:        c.Phone,
		Organization: c.Organization,
		Metadata:     c.Metadata,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

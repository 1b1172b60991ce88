package request

type CustomerRequest struct {
	Name         string         `json:"name" validate:"required,max=255"`
	Email        *string        `json:"email,omitempty" validate:"omitempty,email"`
	Phone        string         `json:"phone" validate:"max=50"`
	Organization string         `json:"organization" validate:"max=255"`
	Metadata     map[string]any `json:"metadata,omitempty"`
}

type CustomerListRequest struct {
	PaginatedRequest
	Search string `json:"search"`
}

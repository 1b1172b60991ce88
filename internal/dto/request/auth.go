package request

type RegisterRequest struct {
	Username     string  `json:"username" validate:"required,min=3,max=50"`
	Email        string  `json:"email" validate:"required,email"`
	Password     string  `json:"password" validate:"required,min=8"`
	FirstName    string  `json:"first_name" validate:"max=100"`
	LastName     string  `json:"last_name" validate:"max=100"`
	Organization *string `json:"organization,omitempty" validate:"omitempty,max=255"`
}

// UpdateProfileRequest only touches the fields that are sent.
type UpdateProfileRequest struct {
	FirstName    *string `json:"first_name,omitempty" validate:"omitempty,max=100"`
	LastName     *string `json:"last_name,omitempty" validate:"omitempty,max=100"`
	Organization *string `json:"organization,omitempty" validate:"omitempty,max=255"`
}

// LoginRequest accepts either the username or the email as identifier.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

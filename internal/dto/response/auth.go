package response

import (
	"time"

	"meeting-scheduler/internal/data/entity"
)

type AuthResponse struct {
	User      UserResponse `json:"user"`
	Token     string       `json:"token,omitempty"`
	ExpiresAt *time.Time   `json:"expires_at,omitempty"`
}

type UserResponse struct {
	ID           string          `json:"id"`
	Username     string          `json:"username"`
	Email        string          `json:"email"`
	FirstName    string          `json:"first_name"`
	LastName     string          `json:"last_name"`
	DisplayName  string          `json:"display_name"`
	Organization *string         `json:"organization,omitempty"`
	Plan         entity.UserPlan `json:"plan"`
	CreatedAt    time.Time       `json:"created_at"`
}

func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:           user.ID.String(),
		Username:     user.Username,
		Email:        user.Email,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		DisplayName:  user.DisplayName(),
		Organization: user.Organization,
		Plan:         user.Plan,
		CreatedAt:    user.CreatedAt,
	}
}

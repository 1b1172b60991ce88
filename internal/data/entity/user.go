package entity

import "strings"

type UserPlan string

const (
	PlanFree    UserPlan = "free"
	PlanPremium UserPlan = "premium"
)

// User is a host: the owner of meeting pages, availability and customers.
type User struct {
	Base
	Username     string   `db:"username"`
	Email        string   `db:"email"`
	PasswordHash string   `db:"password"`
	FirstName    string   `db:"first_name"`
	LastName     string   `db:"last_name"`
	Organization *string  `db:"organization"`
	Plan         UserPlan `db:"plan"`
	IsActive     bool     `db:"is_active"`
}

// DisplayName returns the full name, or the email when no name is set.
func (u *User) DisplayName() string {
	if name := strings.TrimSpace(u.FirstName + " " + u.LastName); name != "" {
		return name
	}
	return u.Email
}

package entity

import "github.com/google/uuid"

type Customer struct {
	BaseNoDelete
	UserID       uuid.UUID      `db:"user_id"`
	Name         string         `db:"name"`
	Email        *string        `db:"email"`
	Phone        string         `db:"phone"`
	Organization string         `db:"organization"`
	Metadata     map[string]any `db:"metadata"`
}

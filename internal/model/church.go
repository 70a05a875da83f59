package model

import "time"

// Church is the owning account. Every member and transaction row belongs to
// exactly one church, and a login session is always bound to one church.
type Church struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

package user

import (
	"errors"
	"time"
)

var (
	ErrNotFound         = errors.New("user not found")
	ErrEmailAlreadyUsed = errors.New("email already used")
	ErrNameRequired     = errors.New("name is required")
	ErrEmailRequired    = errors.New("email is required")
	ErrEmailInvalid     = errors.New("email is invalid")
)

// User is a marketplace participant. The same account may own items and book
// other users' items.
type User struct {
	ID        string // UUID
	Name      string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Filter defines parameters for listing users.
type Filter struct {
	Email    string
	Name     string
	Page     int
	PageSize int
}

// Package users manages tenant user accounts and their permission maps.
package users

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already registered")
	ErrInvalidUser    = errors.New("invalid user")
)

// User is a tenant account. Permissions maps an area name to a level; see
// the permission package for the closed sets of both.
type User struct {
	ID           uuid.UUID         `json:"id"`
	TenantID     uuid.UUID         `json:"-"`
	Name         string            `json:"name"`
	Email        string            `json:"email"`
	Role         string            `json:"role"`
	Permissions  map[string]string `json:"permissions"`
	PasswordHash string            `json:"-"`
	IsActive     bool              `json:"is_active"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

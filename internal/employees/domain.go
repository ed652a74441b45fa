// Package employees keeps the labor roster. An employee's stored rates
// pre-fill new labor cost entries.
package employees

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound        = errors.New("employee not found")
	ErrInvalidEmployee = errors.New("invalid employee")
)

// Employee is a roster entry with default billing rates.
type Employee struct {
	ID       uuid.UUID `json:"id"`
	TenantID uuid.UUID `json:"-"`
	Name     string    `json:"name"`

	StRate  float64 `json:"st_rate"`
	OtRate  float64 `json:"ot_rate"`
	DtRate  float64 `json:"dt_rate"`
	PerDiem float64 `json:"per_diem"`
	MobRate float64 `json:"mob_rate"`

	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Package projects manages construction projects and their change orders.
package projects

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Status enumerates project lifecycle states.
type Status string

const (
	StatusActive    Status = "Active"
	StatusInactive  Status = "Inactive"
	StatusCompleted Status = "Completed"
	StatusOnHold    Status = "On Hold"
)

// ValidStatus reports whether s is a known lifecycle state.
func ValidStatus(s Status) bool {
	switch s {
	case StatusActive, StatusInactive, StatusCompleted, StatusOnHold:
		return true
	}
	return false
}

// Location enumerates where the work is performed.
type Location string

const (
	LocationField Location = "Field"
	LocationShop  Location = "Shop"
	LocationBoth  Location = "Both"
)

// ValidLocation reports whether l is a known work location.
func ValidLocation(l Location) bool {
	switch l {
	case LocationField, LocationShop, LocationBoth:
		return true
	}
	return false
}

var (
	ErrNotFound       = errors.New("project not found")
	ErrInvalidProject = errors.New("invalid project")
	ErrDuplicateJob   = errors.New("job number already exists")
)

// Project is a tracked construction job.
type Project struct {
	ID                 uuid.UUID `json:"id"`
	TenantID           uuid.UUID `json:"-"`
	JobNumber          string    `json:"job_number"`
	JobName            string    `json:"job_name"`
	Customer           string    `json:"customer"`
	FieldShopBoth      Location  `json:"field_shop_both"`
	TotalContractValue float64   `json:"total_contract_value"`
	Status             Status    `json:"status"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// ChangeOrder is contract scope added on top of a project's base contract.
type ChangeOrder struct {
	ID                      uuid.UUID `json:"id"`
	TenantID                uuid.UUID `json:"-"`
	ProjectID               uuid.UUID `json:"project_id"`
	Name                    string    `json:"name"`
	Description             string    `json:"description,omitempty"`
	AdditionalContractValue float64   `json:"additional_contract_value"`
	CreatedAt               time.Time `json:"created_at"`
	UpdatedAt               time.Time `json:"updated_at"`
}

// GrandTotalContractValue is the base contract plus every change order.
func GrandTotalContractValue(p Project, orders []ChangeOrder) float64 {
	total := p.TotalContractValue
	for _, co := range orders {
		total += co.AdditionalContractValue
	}
	return total
}

// Package budgets stores the per-project budget row, one column per cost
// category. A project's budget springs into existence as zeros the first
// time it is read, so callers never see a missing row.
package budgets

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/protrack-app/protrack/internal/costs"
)

// ErrInvalidBudget occurs when a budget fails business validation.
var ErrInvalidBudget = errors.New("invalid budget")

// Budget holds the allocation for every cost category of one project.
type Budget struct {
	ID        uuid.UUID `json:"id"`
	TenantID  uuid.UUID `json:"-"`
	ProjectID uuid.UUID `json:"project_id"`

	Material      float64 `json:"material_budget"`
	Labor         float64 `json:"labor_budget"`
	Equipment     float64 `json:"equipment_budget"`
	Subcontractor float64 `json:"subcontractor_budget"`
	Others        float64 `json:"others_budget"`
	CapLeases     float64 `json:"cap_leases_budget"`
	Consumable    float64 `json:"consumable_budget"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Amount returns the allocation for a category.
func (b Budget) Amount(c costs.Category) float64 {
	switch c {
	case costs.CategoryMaterial:
		return b.Material
	case costs.CategoryLabor:
		return b.Labor
	case costs.CategoryEquipment:
		return b.Equipment
	case costs.CategorySubcontractor:
		return b.Subcontractor
	case costs.CategoryOthers:
		return b.Others
	case costs.CategoryCapLeases:
		return b.CapLeases
	case costs.CategoryConsumable:
		return b.Consumable
	}
	return 0
}

// SetAmount sets the allocation for a category.
func (b *Budget) SetAmount(c costs.Category, v float64) {
	switch c {
	case costs.CategoryMaterial:
		b.Material = v
	case costs.CategoryLabor:
		b.Labor = v
	case costs.CategoryEquipment:
		b.Equipment = v
	case costs.CategorySubcontractor:
		b.Subcontractor = v
	case costs.CategoryOthers:
		b.Others = v
	case costs.CategoryCapLeases:
		b.CapLeases = v
	case costs.CategoryConsumable:
		b.Consumable = v
	}
}

// TotalBudget sums all category allocations.
func (b Budget) TotalBudget() float64 {
	var total float64
	for _, c := range costs.Categories() {
		total += b.Amount(c)
	}
	return total
}

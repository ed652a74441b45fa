// Package costs models project cost entries across the seven tracked
// categories and provides the in-memory filter pipeline used by the
// category views and exports.
package costs

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Category enumerates the tracked cost types.
type Category string

const (
	CategoryMaterial      Category = "material"
	CategoryLabor         Category = "labor"
	CategoryEquipment     Category = "equipment"
	CategorySubcontractor Category = "subcontractor"
	CategoryOthers        Category = "others"
	CategoryCapLeases     Category = "capLeases"
	CategoryConsumable    Category = "consumable"
)

// Categories returns all categories in display order.
func Categories() []Category {
	return []Category{
		CategoryMaterial,
		CategoryLabor,
		CategoryEquipment,
		CategorySubcontractor,
		CategoryOthers,
		CategoryCapLeases,
		CategoryConsumable,
	}
}

// ErrUnknownCategory occurs when a category string is not one of the seven.
var ErrUnknownCategory = errors.New("costs: unknown category")

// ParseCategory validates a category string from a route or payload.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if _, ok := descriptors[c]; !ok {
		return "", ErrUnknownCategory
	}
	return c, nil
}

// Descriptor captures the per-category shape: storage table, budget column
// and CSV layout. Encoded as a closed table so a new category cannot be
// silently mis-mapped (the others/capLeases budget columns break the
// "<category>_budget" convention).
type Descriptor struct {
	Category     Category
	Label        string
	Table        string
	BudgetColumn string
	CSVColumns   []string
}

var csvColumnsStandard = []string{"Date", "Vendor/Subcontractor", "Invoice Number", "Cost", "In System"}

var descriptors = map[Category]Descriptor{
	CategoryMaterial: {
		Category:     CategoryMaterial,
		Label:        "Material",
		Table:        "material_costs",
		BudgetColumn: "material_budget",
		CSVColumns:   csvColumnsStandard,
	},
	CategoryLabor: {
		Category:     CategoryLabor,
		Label:        "Labor",
		Table:        "labor_costs",
		BudgetColumn: "labor_budget",
		CSVColumns: []string{
			"Date", "Employee Name", "ST Hours", "ST Rate", "OT Hours", "OT Rate",
			"DT Hours", "DT Rate", "Per Diem", "MOB Quantity", "MOB Rate", "Total Cost",
		},
	},
	CategoryEquipment: {
		Category:     CategoryEquipment,
		Label:        "Equipment",
		Table:        "equipment_costs",
		BudgetColumn: "equipment_budget",
		CSVColumns:   csvColumnsStandard,
	},
	CategorySubcontractor: {
		Category:     CategorySubcontractor,
		Label:        "Subcontractors",
		Table:        "subcontractor_costs",
		BudgetColumn: "subcontractor_budget",
		CSVColumns:   csvColumnsStandard,
	},
	CategoryOthers: {
		Category:     CategoryOthers,
		Label:        "Other",
		Table:        "other_costs",
		BudgetColumn: "others_budget",
		CSVColumns:   []string{"Date", "Vendor", "Description", "Invoice Number", "Cost", "In System"},
	},
	CategoryCapLeases: {
		Category:     CategoryCapLeases,
		Label:        "Cap Leases",
		Table:        "cap_lease_costs",
		BudgetColumn: "cap_leases_budget",
		CSVColumns:   csvColumnsStandard,
	},
	CategoryConsumable: {
		Category:     CategoryConsumable,
		Label:        "Consumables",
		Table:        "consumable_costs",
		BudgetColumn: "consumable_budget",
		CSVColumns:   csvColumnsStandard,
	},
}

// Describe returns the descriptor for a category.
func Describe(c Category) Descriptor {
	return descriptors[c]
}

// Entry is a single cost record. One struct covers all seven categories;
// category-specific fields are zero-valued elsewhere. Labor entries have no
// stored cost, it is derived via LaborCost.
type Entry struct {
	ID            uuid.UUID  `json:"id"`
	TenantID      uuid.UUID  `json:"-"`
	ProjectID     *uuid.UUID `json:"project_id"`
	ChangeOrderID *uuid.UUID `json:"change_order_id,omitempty"`
	Date          string     `json:"date"`
	InSystem      bool       `json:"in_system"`

	Vendor        string  `json:"vendor,omitempty"`
	InvoiceNumber string  `json:"invoice_number,omitempty"`
	Cost          float64 `json:"cost,omitempty"`

	Description       string `json:"description,omitempty"`
	SubcontractorName string `json:"subcontractor_name,omitempty"`

	EmployeeID   *uuid.UUID `json:"employee_id,omitempty"`
	EmployeeName string     `json:"employee_name,omitempty"`
	StHours      float64    `json:"st_hours,omitempty"`
	StRate       float64    `json:"st_rate,omitempty"`
	OtHours      float64    `json:"ot_hours,omitempty"`
	OtRate       float64    `json:"ot_rate,omitempty"`
	DtHours      float64    `json:"dt_hours,omitempty"`
	DtRate       float64    `json:"dt_rate,omitempty"`
	PerDiem      float64    `json:"per_diem,omitempty"`
	MobQty       float64    `json:"mob_qty,omitempty"`
	MobRate      float64    `json:"mob_rate,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LaborCost derives the cost of a labor entry: straight, overtime and
// double-time hours at their rates, plus the flat per diem and the
// mobilization line item. Absent factors contribute zero.
func (e Entry) LaborCost() float64 {
	return e.StHours*e.StRate +
		e.OtHours*e.OtRate +
		e.DtHours*e.DtRate +
		e.PerDiem +
		e.MobQty*e.MobRate
}

// WorkedHours sums straight, overtime and double-time hours. Mobilization
// quantity is not hours and is excluded.
func (e Entry) WorkedHours() float64 {
	return e.StHours + e.OtHours + e.DtHours
}

// Amount returns the entry's cost contribution for the given category.
func (e Entry) Amount(c Category) float64 {
	if c == CategoryLabor {
		return e.LaborCost()
	}
	return e.Cost
}

// VisibleUnder reports whether the entry counts toward the given project.
// Entries with no project are legacy global rows visible under every project.
func (e Entry) VisibleUnder(projectID uuid.UUID) bool {
	return e.ProjectID == nil || *e.ProjectID == projectID
}

// Total sums the contributions of all entries for a category.
func Total(entries []Entry, c Category) float64 {
	var sum float64
	for _, e := range entries {
		sum += e.Amount(c)
	}
	return sum
}

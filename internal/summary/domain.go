// Package summary computes per-project financial rollups: category cost
// totals, budget variances and profitability. Results are cached in Redis
// and invalidated by a version bump whenever underlying records change.
package summary

import (
	"github.com/google/uuid"

	"github.com/protrack-app/protrack/internal/costs"
)

// Totals is the complete financial rollup for one project. Variance is
// budget minus cost, so a negative value means the category is over budget.
type Totals struct {
	ProjectID uuid.UUID `json:"project_id"`

	Categories map[costs.Category]float64 `json:"categories"`
	Budgets    map[costs.Category]float64 `json:"budgets"`
	Variances  map[costs.Category]float64 `json:"variances"`

	TotalCosts    float64 `json:"total_costs"`
	TotalBudget   float64 `json:"total_budget"`
	TotalVariance float64 `json:"total_variance"`

	TotalBilled float64 `json:"total_billed_to_date"`
	GrossProfit float64 `json:"gross_profit"`

	// ProfitMargin is GrossProfit over TotalBilled as a fraction. Zero when
	// nothing has been billed.
	ProfitMargin float64 `json:"profit_margin"`
}

func emptyTotals() Totals {
	return Totals{
		Categories: make(map[costs.Category]float64),
		Budgets:    make(map[costs.Category]float64),
		Variances:  make(map[costs.Category]float64),
	}
}

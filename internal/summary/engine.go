package summary

import (
	"github.com/protrack-app/protrack/internal/budgets"
	"github.com/protrack-app/protrack/internal/costs"
	"github.com/protrack-app/protrack/internal/invoices"
	"github.com/protrack-app/protrack/internal/projects"
)

// Calculate builds the rollup for a project from raw records. Cost entries
// are reduced to the ones visible under the project (including legacy global
// rows); invoices count only on an exact project match. Callers may pass
// supersets. A nil project yields all-zero totals with usable maps.
func Calculate(p *projects.Project, entriesByCategory map[costs.Category][]costs.Entry, b budgets.Budget, invs []invoices.Invoice) Totals {
	t := emptyTotals()
	if p == nil {
		return t
	}
	t.ProjectID = p.ID

	for _, c := range costs.Categories() {
		visible := costs.VisibleEntries(entriesByCategory[c], p.ID)
		total := costs.Total(visible, c)
		budget := b.Amount(c)

		t.Categories[c] = total
		t.Budgets[c] = budget
		t.Variances[c] = budget - total

		t.TotalCosts += total
	}
	t.TotalBudget = b.TotalBudget()
	t.TotalVariance = t.TotalBudget - t.TotalCosts

	for _, inv := range invs {
		if inv.BelongsTo(p.ID) {
			t.TotalBilled += inv.Amount
		}
	}
	t.GrossProfit = t.TotalBilled - t.TotalCosts
	if t.TotalBilled != 0 {
		t.ProfitMargin = t.GrossProfit / t.TotalBilled
	}
	return t
}

package summary

import (
	"testing"

	"github.com/google/uuid"

	"github.com/protrack-app/protrack/internal/budgets"
	"github.com/protrack-app/protrack/internal/costs"
	"github.com/protrack-app/protrack/internal/invoices"
	"github.com/protrack-app/protrack/internal/projects"
)

func ptr(id uuid.UUID) *uuid.UUID { return &id }

func TestCalculateVarianceSign(t *testing.T) {
	p := &projects.Project{ID: uuid.New()}
	entries := map[costs.Category][]costs.Entry{
		costs.CategoryMaterial: {
			{ProjectID: ptr(p.ID), Cost: 1500},
		},
	}
	var b budgets.Budget
	b.SetAmount(costs.CategoryMaterial, 1000)

	got := Calculate(p, entries, b, nil)

	if got.Variances[costs.CategoryMaterial] != -500 {
		t.Fatalf("material variance = %v, want -500 (over budget)", got.Variances[costs.CategoryMaterial])
	}
	if got.TotalVariance != got.TotalBudget-got.TotalCosts {
		t.Fatalf("total variance %v inconsistent with budget %v and cost %v",
			got.TotalVariance, got.TotalBudget, got.TotalCosts)
	}
	if got.TotalBudget != b.TotalBudget() {
		t.Fatalf("rollup budget %v disagrees with budget total %v", got.TotalBudget, b.TotalBudget())
	}
}

func TestCalculateProfitMarginFallsBackToZero(t *testing.T) {
	p := &projects.Project{ID: uuid.New()}
	entries := map[costs.Category][]costs.Entry{
		costs.CategoryEquipment: {{ProjectID: ptr(p.ID), Cost: 400}},
	}

	got := Calculate(p, entries, budgets.Budget{}, nil)

	if got.TotalBilled != 0 {
		t.Fatalf("total billed = %v, want 0", got.TotalBilled)
	}
	if got.ProfitMargin != 0 {
		t.Fatalf("profit margin with no billings = %v, want 0", got.ProfitMargin)
	}
	if got.GrossProfit != -400 {
		t.Fatalf("gross profit = %v, want -400", got.GrossProfit)
	}
}

func TestCalculateProfitMargin(t *testing.T) {
	p := &projects.Project{ID: uuid.New()}
	entries := map[costs.Category][]costs.Entry{
		costs.CategoryMaterial: {{ProjectID: ptr(p.ID), Cost: 6000}},
	}
	invs := []invoices.Invoice{
		{ProjectID: ptr(p.ID), Amount: 10000},
	}

	got := Calculate(p, entries, budgets.Budget{}, invs)

	if got.GrossProfit != 4000 {
		t.Fatalf("gross profit = %v, want 4000", got.GrossProfit)
	}
	if got.ProfitMargin != 0.4 {
		t.Fatalf("profit margin = %v, want 0.4", got.ProfitMargin)
	}
}

func TestCalculateCountsGlobalEntries(t *testing.T) {
	p := &projects.Project{ID: uuid.New()}
	other := uuid.New()
	entries := map[costs.Category][]costs.Entry{
		costs.CategoryConsumable: {
			{ProjectID: ptr(p.ID), Cost: 100},
			{ProjectID: nil, Cost: 50},
			{ProjectID: ptr(other), Cost: 999},
		},
	}
	invs := []invoices.Invoice{
		{ProjectID: ptr(p.ID), Amount: 25},
		{ProjectID: nil, Amount: 111},
		{ProjectID: ptr(other), Amount: 999},
	}

	got := Calculate(p, entries, budgets.Budget{}, invs)

	if got.Categories[costs.CategoryConsumable] != 150 {
		t.Fatalf("consumable total = %v, want 150 (own + global)", got.Categories[costs.CategoryConsumable])
	}
	if got.TotalBilled != 25 {
		t.Fatalf("total billed = %v, want 25 (exact project match only)", got.TotalBilled)
	}
}

func TestCalculateLaborUsesDerivedCost(t *testing.T) {
	p := &projects.Project{ID: uuid.New()}
	entries := map[costs.Category][]costs.Entry{
		costs.CategoryLabor: {
			{ProjectID: ptr(p.ID), StHours: 40, StRate: 50, OtHours: 5, OtRate: 75, PerDiem: 100, MobQty: 2, MobRate: 150},
		},
	}

	got := Calculate(p, entries, budgets.Budget{}, nil)

	if got.Categories[costs.CategoryLabor] != 2775 {
		t.Fatalf("labor total = %v, want 2775", got.Categories[costs.CategoryLabor])
	}
}

func TestCalculateNilProjectIsZero(t *testing.T) {
	got := Calculate(nil, map[costs.Category][]costs.Entry{
		costs.CategoryMaterial: {{Cost: 100}},
	}, budgets.Budget{}, []invoices.Invoice{{Amount: 100}})

	if got.TotalCosts != 0 || got.TotalBilled != 0 || got.ProfitMargin != 0 {
		t.Fatalf("nil project totals = %+v, want zeros", got)
	}
	if got.Categories == nil || got.Budgets == nil || got.Variances == nil {
		t.Fatal("nil project must still return usable maps")
	}
}

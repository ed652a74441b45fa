package budgets

import (
	"testing"

	"github.com/protrack-app/protrack/internal/costs"
)

func TestAmountRoundTrip(t *testing.T) {
	var b Budget
	want := map[costs.Category]float64{
		costs.CategoryMaterial:      100,
		costs.CategoryLabor:         200,
		costs.CategoryEquipment:     300,
		costs.CategorySubcontractor: 400,
		costs.CategoryOthers:        500,
		costs.CategoryCapLeases:     600,
		costs.CategoryConsumable:    700,
	}
	for c, v := range want {
		b.SetAmount(c, v)
	}
	for c, v := range want {
		if got := b.Amount(c); got != v {
			t.Errorf("%s amount = %v, want %v", c, got, v)
		}
	}
	if got := b.TotalBudget(); got != 2800 {
		t.Fatalf("total budget = %v, want 2800", got)
	}
}

func TestZeroBudgetTotalsZero(t *testing.T) {
	var b Budget
	if got := b.TotalBudget(); got != 0 {
		t.Fatalf("zero budget total = %v", got)
	}
	for _, c := range costs.Categories() {
		if b.Amount(c) != 0 {
			t.Fatalf("zero budget %s amount = %v", c, b.Amount(c))
		}
	}
}
